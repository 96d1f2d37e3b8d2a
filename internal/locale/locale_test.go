package locale_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/4liaghaie/sait/internal/locale"
)

func TestBundle_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		bundle locale.Bundle
		lang   locale.Lang
		want   string
	}{
		{"requested tr", locale.NewBundle("Hello", "Merhaba"), locale.TR, "Merhaba"},
		{"requested en", locale.NewBundle("Hello", "Merhaba"), locale.EN, "Hello"},
		{"tr empty falls back to en", locale.NewBundle("Hello", ""), locale.TR, "Hello"},
		{"en empty falls back to tr", locale.NewBundle("", "Merhaba"), locale.EN, "Merhaba"},
		{"both empty", locale.NewBundle("", ""), locale.TR, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bundle.Resolve(tt.lang))
		})
	}
}

func TestResolve_PlainStringUnchanged(t *testing.T) {
	assert.Equal(t, "literal", locale.Resolve("literal", locale.TR))
	assert.Equal(t, "", locale.Resolve(nil, locale.EN))
	assert.Equal(t, "", locale.Resolve(42, locale.EN))
}

func TestResolve_Maps(t *testing.T) {
	assert.Equal(t, "Merhaba", locale.Resolve(map[string]string{"en": "Hello", "tr": "Merhaba"}, locale.TR))
	assert.Equal(t, "Hello", locale.Resolve(map[string]any{"en": "Hello", "tr": ""}, locale.TR))
	b := locale.NewBundle("", "Merhaba")
	assert.Equal(t, "Merhaba", locale.Resolve(&b, locale.EN))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, locale.TR, locale.Normalize("TR"))
	assert.Equal(t, locale.EN, locale.Normalize("en"))
	assert.Equal(t, locale.EN, locale.Normalize("de"))
	assert.Equal(t, locale.EN, locale.Normalize(""))
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		accept string
		want   locale.Lang
	}{
		{"query param wins", "/api/about?lang=tr", "en-US", locale.TR},
		{"query param upper case", "/api/about?lang=TR", "", locale.TR},
		{"unsupported query param", "/api/about?lang=fr", "tr-TR", locale.EN},
		{"accept-language region", "/api/about", "tr-TR,tr;q=0.9,en;q=0.8", locale.TR},
		{"accept-language with weight", "/api/about", "tr;q=0.9", locale.TR},
		{"accept-language unsupported", "/api/about", "de-DE,tr;q=0.5", locale.EN},
		{"nothing", "/api/about", "", locale.EN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			assert.Equal(t, tt.want, locale.FromRequest(r))
		})
	}
}

func TestMiddleware_StoresLanguage(t *testing.T) {
	var got locale.Lang
	h := locale.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = locale.FromContext(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/?lang=tr", nil)
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, locale.TR, got)
}
