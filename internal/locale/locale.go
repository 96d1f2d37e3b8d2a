// Package locale resolves bilingual text bundles and derives the request
// language for the public API.
package locale

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported content language code.
type Lang string

const (
	EN Lang = "en"
	TR Lang = "tr"
)

// Default is the language used when nothing else matches.
const Default = EN

// Supported lists every language a Bundle carries, in fallback order.
var Supported = []Lang{EN, TR}

// Normalize lower-cases s and collapses anything unsupported to Default.
func Normalize(s string) Lang {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case EN:
		return EN
	case TR:
		return TR
	default:
		return Default
	}
}

// Bundle holds the parallel en/tr variants of a text field.
type Bundle struct {
	EN string `json:"en"`
	TR string `json:"tr"`
}

// NewBundle builds a Bundle from its two variants.
func NewBundle(en, tr string) Bundle {
	return Bundle{EN: en, TR: tr}
}

// Get returns the raw variant for lang with no fallback.
func (b Bundle) Get(lang Lang) string {
	if lang == TR {
		return b.TR
	}
	return b.EN
}

// Resolve returns the lang variant, falling back to en, then tr, then "".
func (b Bundle) Resolve(lang Lang) string {
	if v := b.Get(lang); v != "" {
		return v
	}
	if b.EN != "" {
		return b.EN
	}
	return b.TR
}

// Resolve picks a display string from v. Plain strings are returned as-is;
// bundles and string maps go through the en/tr fallback chain. Anything else
// resolves to "".
func Resolve(v any, lang Lang) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case Bundle:
		return t.Resolve(lang)
	case *Bundle:
		if t == nil {
			return ""
		}
		return t.Resolve(lang)
	case map[string]string:
		return Bundle{EN: t[string(EN)], TR: t[string(TR)]}.Resolve(lang)
	case map[string]any:
		en, _ := t[string(EN)].(string)
		tr, _ := t[string(TR)].(string)
		return Bundle{EN: en, TR: tr}.Resolve(lang)
	default:
		return ""
	}
}

// FromRequest derives the response language: the lang query parameter wins,
// then the first Accept-Language entry, then Default.
func FromRequest(r *http.Request) Lang {
	if q := r.URL.Query().Get("lang"); q != "" {
		return Normalize(q)
	}
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return Default
	}
	first := strings.TrimSpace(strings.SplitN(header, ",", 2)[0])
	if i := strings.IndexByte(first, ';'); i >= 0 {
		first = first[:i]
	}
	tag, err := language.Parse(first)
	if err != nil {
		return Normalize(strings.SplitN(first, "-", 2)[0])
	}
	base, _ := tag.Base()
	return Normalize(base.String())
}

type contextKey struct{}

// Middleware stores the request language on the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithLang(r.Context(), FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithLang returns a copy of ctx carrying lang.
func WithLang(ctx context.Context, lang Lang) context.Context {
	return context.WithValue(ctx, contextKey{}, lang)
}

// FromContext returns the language stored by Middleware, or Default.
func FromContext(ctx context.Context) Lang {
	if l, ok := ctx.Value(contextKey{}).(Lang); ok {
		return l
	}
	return Default
}
