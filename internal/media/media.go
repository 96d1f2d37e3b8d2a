// Package media turns stored image paths into public URL descriptors and
// persists uploaded files.
package media

import (
	"net/http"
	"net/url"
	"strings"
)

// Format is a single rendition of a media reference.
type Format struct {
	URL string `json:"url"`
}

// Formats lists the renditions the gallery client reads. Only medium exists;
// its URL always equals the top-level URL.
type Formats struct {
	Medium Format `json:"medium"`
}

// Ref is the public descriptor of a stored image path.
type Ref struct {
	URL     string  `json:"url"`
	Formats Formats `json:"formats"`
}

// Resolver joins relative paths onto a public base URL.
type Resolver struct {
	BaseURL string
}

// NewResolver returns a Resolver for baseURL.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{BaseURL: baseURL}
}

// Resolve returns nil for an empty path, the path verbatim when it already
// carries a URI scheme, and otherwise the base URL joined with exactly one
// slash.
func (r *Resolver) Resolve(path string) *Ref {
	if path == "" {
		return nil
	}
	u := path
	if !IsAbsolute(path) {
		u = join(r.BaseURL, path)
	}
	return &Ref{URL: u, Formats: Formats{Medium: Format{URL: u}}}
}

// IsAbsolute reports whether p begins with a URI scheme.
func IsAbsolute(p string) bool {
	u, err := url.Parse(p)
	return err == nil && u.Scheme != ""
}

func join(base, path string) string {
	base = strings.TrimRight(base, "/")
	return base + "/" + strings.TrimLeft(path, "/")
}

// ForRequest returns r when it has a configured base URL. Otherwise it
// derives one from the request's scheme and host.
func (r *Resolver) ForRequest(req *http.Request) *Resolver {
	if r != nil && r.BaseURL != "" {
		return r
	}
	return NewResolver(RequestBaseURL(req))
}

// RequestBaseURL builds scheme://host for req, honoring X-Forwarded-Proto.
func RequestBaseURL(req *http.Request) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if p := req.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = strings.TrimSpace(strings.SplitN(p, ",", 2)[0])
	}
	return scheme + "://" + req.Host
}
