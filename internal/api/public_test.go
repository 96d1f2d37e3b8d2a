package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/query"
	"github.com/4liaghaie/sait/internal/store"
	"github.com/4liaghaie/sait/internal/view"
)

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  string   `json:"status"`
		Message string   `json:"message"`
		Docs    []string `json:"docs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, resp.Docs, "/api/images")
}

func TestAbout_LanguageSelection(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Content.UpdateAbout(context.Background(), store.UpdateAbout{
		ContentEN: store.Some("<p>hello</p>"),
		ContentTR: store.Some("<p>merhaba</p>"),
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"default", "/api/about", "", "<p>hello</p>"},
		{"query", "/api/about?lang=tr", "", "<p>merhaba</p>"},
		{"header", "/api/about", "tr-TR,tr;q=0.9,en;q=0.8", "<p>merhaba</p>"},
		{"query beats header", "/api/about?lang=en", "tr", "<p>hello</p>"},
		{"unsupported", "/api/about?lang=de", "", "<p>hello</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			rec := env.do(t, req, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var about view.AboutView
			decodeData(t, rec, &about)
			assert.Equal(t, tt.want, about.Text)
			assert.Equal(t, locale.NewBundle("<p>hello</p>", "<p>merhaba</p>"), about.Translations)
		})
	}
}

func TestLogo_ResolvesMedia(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Content.UpdateLogo(context.Background(), store.UpdateLogo{
		ImagePath: store.Some("/uploads/logo.png"),
		AltTR:     store.Some(""),
	})
	require.NoError(t, err)

	rec := env.get(t, "/api/logo?lang=tr")
	require.Equal(t, http.StatusOK, rec.Code)

	var logo view.LogoView
	decodeData(t, rec, &logo)
	require.NotNil(t, logo.Img)
	assert.Equal(t, "https://cdn.test/uploads/logo.png", logo.Img.URL)
	assert.Equal(t, logo.Img.URL, logo.Img.Formats.Medium.URL)
	assert.Equal(t, "Portfolio logo", logo.Alt, "empty tr alt falls back to en")
}

func TestCategories_SortedByPosition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, c := range []store.CreateCategory{
		{ID: "c", Title: locale.NewBundle("Third", ""), Position: 5},
		{ID: "a", Title: locale.NewBundle("First", ""), Position: 1},
		{ID: "b", Title: locale.NewBundle("Second", ""), Position: 1},
	} {
		_, err := env.Categories.Create(ctx, c)
		require.NoError(t, err)
	}

	rec := env.get(t, "/api/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []view.CategoryView
	decodeData(t, rec, &cats)
	require.Len(t, cats, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{cats[0].ID, cats[1].ID, cats[2].ID})
	assert.Equal(t, "First", cats[0].Title)
}

func TestReferences_NestedStubs(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.References.Create(context.Background(), store.CreateReference{
		ID:       "ref-1",
		Title:    locale.NewBundle("Acme", "Acme TR"),
		ImageIDs: store.NewIDSet("img-b", "img-a", "ghost"),
	})
	require.NoError(t, err)

	rec := env.get(t, "/api/references")
	require.Equal(t, http.StatusOK, rec.Code)

	var refs []struct {
		ID     string           `json:"id"`
		Title  string           `json:"title"`
		Images []view.ImageStub `json:"images"`
	}
	decodeData(t, rec, &refs)
	require.Len(t, refs, 1)
	assert.Equal(t, "Acme", refs[0].Title)
	assert.Equal(t, []view.ImageStub{
		{DocumentID: "ghost", ID: "ghost"},
		{DocumentID: "img-a", ID: "img-a"},
		{DocumentID: "img-b", ID: "img-b"},
	}, refs[0].Images)
}

func TestGetImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.Categories.Create(ctx, store.CreateCategory{ID: "cat-1", Title: locale.NewBundle("Portrait", "Portre")})
	require.NoError(t, err)
	_, err = env.References.Create(ctx, store.CreateReference{ID: "ref-1", Title: locale.NewBundle("Acme", "")})
	require.NoError(t, err)
	seedImage(t, env, store.CreateImage{
		ID:           "img-1",
		Title:        locale.NewBundle("Sunset", "Gün batımı"),
		ImagePath:    "https://images.test/sunset.jpg",
		CategoryIDs:  store.NewIDSet("cat-1", "missing"),
		ReferenceIDs: store.NewIDSet("ref-1"),
	})

	rec := env.get(t, "/api/images/img-1?lang=tr")
	require.Equal(t, http.StatusOK, rec.Code)

	var img view.ImageView
	decodeData(t, rec, &img)
	assert.Equal(t, "img-1", img.DocumentID)
	assert.Equal(t, "Gün batımı", img.Title)
	require.NotNil(t, img.Image)
	assert.Equal(t, "https://images.test/sunset.jpg", img.Image.URL)
	require.Len(t, img.Categories, 1, "dangling category id is dropped")
	assert.Equal(t, "Portre", img.Categories[0].Title)
	require.Len(t, img.References, 1)
	assert.Equal(t, "ref-1", img.References[0].ID)
}

func TestGetImage_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get(t, "/api/images/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Image not found"}`, rec.Body.String())
}

type imageList struct {
	Data []view.ImageView `json:"data"`
	Meta query.Meta       `json:"meta"`
}

func listImages(t *testing.T, env *testEnv, params map[string]string) imageList {
	t.Helper()
	rec := env.get(t, imagesURL(params))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out imageList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func ids(views []view.ImageView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestListImages_FiltersAndPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.Categories.Create(ctx, store.CreateCategory{ID: "cat-arch", Title: locale.NewBundle("Architecture", "Mimari")})
	require.NoError(t, err)

	seedImage(t, env, store.CreateImage{ID: "old", CreatedAt: 1000, Home: true, CategoryIDs: store.NewIDSet("cat-arch")})
	seedImage(t, env, store.CreateImage{ID: "mid", CreatedAt: 2000})
	seedImage(t, env, store.CreateImage{ID: "new", CreatedAt: 3000, Home: true})

	t.Run("no params returns everything newest first", func(t *testing.T) {
		got := listImages(t, env, nil)
		assert.Equal(t, []string{"new", "mid", "old"}, ids(got.Data))
		assert.Equal(t, query.PageMeta{Page: 1, PageSize: 3, PageCount: 1, Total: 3}, got.Meta.Pagination)
	})

	t.Run("home filter", func(t *testing.T) {
		got := listImages(t, env, map[string]string{"filters[home][$eq]": "true"})
		assert.Equal(t, []string{"new", "old"}, ids(got.Data))
		got = listImages(t, env, map[string]string{"filters[home][$eq]": "false"})
		assert.Equal(t, []string{"mid"}, ids(got.Data))
	})

	t.Run("category title in either language", func(t *testing.T) {
		got := listImages(t, env, map[string]string{"filters[categories][Title][$eq]": "mimari"})
		assert.Equal(t, []string{"old"}, ids(got.Data))
		got = listImages(t, env, map[string]string{"filters[categories][Title][$eq]": "ARCHITECTURE"})
		assert.Equal(t, []string{"old"}, ids(got.Data))
	})

	t.Run("pagination", func(t *testing.T) {
		got := listImages(t, env, map[string]string{"pagination[page]": "2", "pagination[pageSize]": "2"})
		assert.Equal(t, []string{"old"}, ids(got.Data))
		assert.Equal(t, query.PageMeta{Page: 2, PageSize: 2, PageCount: 2, Total: 3}, got.Meta.Pagination)
	})

	t.Run("invalid page size falls back", func(t *testing.T) {
		got := listImages(t, env, map[string]string{"pagination[pageSize]": "abc"})
		assert.Equal(t, query.FallbackPageSize, got.Meta.Pagination.PageSize)
		assert.Len(t, got.Data, 3)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		got := listImages(t, env, map[string]string{"pagination[page]": "9", "pagination[pageSize]": "2"})
		assert.Empty(t, got.Data)
		assert.NotNil(t, got.Data)
		assert.Equal(t, 2, got.Meta.Pagination.PageCount)
	})
}

func TestListImages_Empty(t *testing.T) {
	env := newTestEnv(t)
	got := listImages(t, env, nil)
	assert.Empty(t, got.Data)
	assert.Equal(t, query.PageMeta{Page: 1, PageSize: 1, PageCount: 1, Total: 0}, got.Meta.Pagination)
}

func TestMediaBaseDerivedFromRequest(t *testing.T) {
	env := newTestEnvWithBase(t, "")
	seedImage(t, env, store.CreateImage{ID: "img", ImagePath: "/uploads/a.jpg"})

	req := httptest.NewRequest(http.MethodGet, "/api/images/img", nil)
	req.Host = "portfolio.test"
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := env.do(t, req, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var img view.ImageView
	decodeData(t, rec, &img)
	require.NotNil(t, img.Image)
	assert.Equal(t, "https://portfolio.test/uploads/a.jpg", img.Image.URL)
}
