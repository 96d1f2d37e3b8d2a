package api

import (
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/4liaghaie/sait/internal/media"
	"github.com/4liaghaie/sait/internal/query"
	"github.com/4liaghaie/sait/internal/store"
)

const (
	paramHome          = "filters[home][$eq]"
	paramCategoryTitle = "filters[categories][Title][$eq]"
	paramPage          = "pagination[page]"
	paramPageSize      = "pagination[pageSize]"
)

// parseImageQuery reads the bracketed filter and pagination parameters.
// A home filter applies whenever its key is present, even when empty.
func parseImageQuery(r *http.Request) (query.ImageFilter, query.Pagination) {
	q := r.URL.Query()
	var f query.ImageFilter
	if vs, ok := q[paramHome]; ok && len(vs) > 0 {
		home := query.ParseBool(vs[0])
		f.Home = &home
	}
	f.CategoryTitle = q.Get(paramCategoryTitle)

	var p query.Pagination
	if vs, ok := q[paramPage]; ok && len(vs) > 0 {
		p.Page = &vs[0]
	}
	if vs, ok := q[paramPageSize]; ok && len(vs) > 0 {
		p.PageSize = &vs[0]
	}
	return f, p
}

// parseForm parses a multipart body up to maxBytes, falling back to
// url-encoded forms for clients that send no files.
func parseForm(r *http.Request, maxBytes int64) error {
	err := r.ParseMultipartForm(maxBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formValue returns the first body value for key and whether the key was
// sent at all.
func formValue(r *http.Request, key string) (string, bool) {
	vs, ok := r.PostForm[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func optionalString(r *http.Request, key string) store.Optional[string] {
	if v, ok := formValue(r, key); ok {
		return store.Some(v)
	}
	return store.Unset[string]()
}

func optionalBool(r *http.Request, key string) store.Optional[bool] {
	if v, ok := formValue(r, key); ok {
		return store.Some(query.ParseBool(v))
	}
	return store.Unset[bool]()
}

func optionalInt(r *http.Request, key string) store.Optional[int] {
	if v, ok := formValue(r, key); ok {
		return store.Some(parseNumber(v, 0))
	}
	return store.Unset[int]()
}

func optionalIDs(r *http.Request, key string) store.Optional[mapset.Set[string]] {
	if v, ok := formValue(r, key); ok {
		return store.Some(splitIDs(v))
	}
	return store.Unset[mapset.Set[string]]()
}

// splitIDs turns a comma-joined id list into a set, dropping blanks.
func splitIDs(s string) mapset.Set[string] {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return store.NewIDSet(parts...)
}

// parseNumber accepts any finite decimal and truncates it; anything else
// yields fallback.
func parseNumber(s string, fallback int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
		return fallback
	}
	return int(f)
}

// mediaPath picks the stored path for one media slot: a non-empty remote URL
// wins, then an uploaded file. ok is false when neither was supplied.
func mediaPath(r *http.Request, up *media.Uploader, fileKey, remoteKey string) (path string, ok bool, err error) {
	if v, _ := formValue(r, remoteKey); v != "" {
		return v, true, nil
	}
	fh := formFile(r, fileKey)
	if fh == nil {
		return "", false, nil
	}
	if up == nil {
		return "", false, errors.New("uploads are not configured")
	}
	p, err := up.Save(fh)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

func formFile(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if fhs := r.MultipartForm.File[key]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}
