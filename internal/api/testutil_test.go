package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/4liaghaie/sait/internal/api"
	"github.com/4liaghaie/sait/internal/auth"
	"github.com/4liaghaie/sait/internal/media"
	"github.com/4liaghaie/sait/internal/store"
	"github.com/4liaghaie/sait/internal/testutil"
)

const testPassword = "open-sesame"

// testEnv holds the router plus the stores behind it.
type testEnv struct {
	Router     http.Handler
	Content    *store.ContentStore
	Categories *store.CategoryStore
	Images     *store.ImageStore
	References *store.ReferenceStore
	Sessions   *auth.MemorySessionStore
	UploadDir  string
}

// newTestEnv wires the full router against a migrated in-memory database,
// a memory session store and a temp upload directory. Media paths resolve
// against https://cdn.test.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithBase(t, "https://cdn.test")
}

// newTestEnvWithBase is newTestEnv with a custom media base URL. An empty
// base derives it from each request.
func newTestEnvWithBase(t *testing.T, base string) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	pw, err := auth.NewPasswordCheckerCost(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	dir := t.TempDir()
	up, err := media.NewUploader(dir, "/uploads")
	require.NoError(t, err)

	env := &testEnv{
		Content:    store.NewContentStore(db),
		Categories: store.NewCategoryStore(db),
		Images:     store.NewImageStore(db),
		References: store.NewReferenceStore(db),
		Sessions:   auth.NewMemorySessionStore(),
		UploadDir:  dir,
	}
	env.Router = api.NewRouter(api.Deps{
		Content:    env.Content,
		Categories: env.Categories,
		Images:     env.Images,
		References: env.References,
		Sessions:   env.Sessions,
		Password:   pw,
		SessionTTL: time.Hour,
		Media:      media.NewResolver(base),
		Uploader:   up,
	})
	return env
}

// login obtains a bearer token through the real login endpoint.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := e.do(t, jsonRequest(t, http.MethodPost, "/admin/login", map[string]string{"password": testPassword}), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

// do serves req, attaching token as a bearer credential when non-empty.
func (e *testEnv) do(t *testing.T, req *http.Request, token string) *httptest.ResponseRecorder {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil), "")
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// upload is one file part of a multipart request.
type upload struct {
	Field, Name, Content string
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.Field, f.Name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// imagesURL builds /api/images with the given query parameters.
func imagesURL(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	if len(q) == 0 {
		return "/api/images"
	}
	return "/api/images?" + q.Encode()
}

// decodeData unmarshals the "data" member of a response body into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v), string(env.Data))
}

func seedImage(t *testing.T, e *testEnv, c store.CreateImage) *store.Image {
	t.Helper()
	img, err := e.Images.Create(context.Background(), c)
	require.NoError(t, err)
	return img
}
