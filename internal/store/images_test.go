package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/store"
)

func TestImageStore_CategorySetReplace(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	img, err := s.Images.Create(ctx, store.CreateImage{
		Title:       locale.NewBundle("Sunlit lines", "Güneşli çizgiler"),
		CategoryIDs: store.NewIDSet("c1", "c2"),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2"}, img.CategoryIDs.ToSlice())

	got, err := s.Images.Get(ctx, img.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2"}, got.CategoryIDs.ToSlice())

	updated, err := s.Images.Update(ctx, img.ID, store.UpdateImage{
		CategoryIDs: store.Some(store.NewIDSet("c3")),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c3"}, updated.CategoryIDs.ToSlice())
}

func TestImageStore_Create_NoSetsYieldsEmpty(t *testing.T) {
	s := newTestStores(t)
	img, err := s.Images.Create(context.Background(), store.CreateImage{})
	require.NoError(t, err)
	require.NotNil(t, img.CategoryIDs)
	require.NotNil(t, img.ReferenceIDs)
	assert.Equal(t, 0, img.CategoryIDs.Cardinality())
	assert.Equal(t, 0, img.ReferenceIDs.Cardinality())
	assert.NotZero(t, img.CreatedAt)
}

func TestImageStore_Update_UnsetSetsKept(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()
	img, err := s.Images.Create(ctx, store.CreateImage{
		CategoryIDs:  store.NewIDSet("c1"),
		ReferenceIDs: store.NewIDSet("r1"),
		Position:     4,
		Home:         true,
		CreatedAt:    1000,
	})
	require.NoError(t, err)

	updated, err := s.Images.Update(ctx, img.ID, store.UpdateImage{
		Position: store.Some(0),
		Home:     store.Some(false),
		AltEN:    store.Some("alt"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Position)
	assert.False(t, updated.Home)
	assert.Equal(t, "alt", updated.Alt.EN)
	assert.Equal(t, int64(1000), updated.CreatedAt)
	assert.ElementsMatch(t, []string{"c1"}, updated.CategoryIDs.ToSlice())
	assert.ElementsMatch(t, []string{"r1"}, updated.ReferenceIDs.ToSlice())
}

func TestImageStore_Update_EmptySetClears(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()
	img, err := s.Images.Create(ctx, store.CreateImage{CategoryIDs: store.NewIDSet("c1")})
	require.NoError(t, err)

	updated, err := s.Images.Update(ctx, img.ID, store.UpdateImage{CategoryIDs: store.Some(store.NewIDSet())})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.CategoryIDs.Cardinality())
}

func TestImageStore_Update_NotFound(t *testing.T) {
	s := newTestStores(t)
	_, err := s.Images.Update(context.Background(), "missing", store.UpdateImage{Home: store.Some(true)})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestImageStore_List_NewestFirst(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()
	_, err := s.Images.Create(ctx, store.CreateImage{ID: "old", CreatedAt: 100})
	require.NoError(t, err)
	_, err = s.Images.Create(ctx, store.CreateImage{ID: "new", CreatedAt: 300})
	require.NoError(t, err)
	_, err = s.Images.Create(ctx, store.CreateImage{ID: "tie-a", CreatedAt: 200})
	require.NoError(t, err)
	_, err = s.Images.Create(ctx, store.CreateImage{ID: "tie-b", CreatedAt: 200, CategoryIDs: store.NewIDSet("c1")})
	require.NoError(t, err)

	imgs, err := s.Images.List(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(imgs))
	for _, img := range imgs {
		ids = append(ids, img.ID)
	}
	assert.Equal(t, []string{"new", "tie-b", "tie-a", "old"}, ids)
	assert.ElementsMatch(t, []string{"c1"}, imgs[1].CategoryIDs.ToSlice())
	assert.Equal(t, 0, imgs[0].CategoryIDs.Cardinality())
}

func TestImageStore_Delete_CascadesLinks(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()
	ref, err := s.References.Create(ctx, store.CreateReference{ID: "r1"})
	require.NoError(t, err)
	img, err := s.Images.Create(ctx, store.CreateImage{
		CategoryIDs:  store.NewIDSet("c1"),
		ReferenceIDs: store.NewIDSet(ref.ID),
	})
	require.NoError(t, err)

	got, err := s.References.Get(ctx, ref.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{img.ID}, got.ImageIDs.ToSlice())

	require.NoError(t, s.Images.Delete(ctx, img.ID))
	require.NoError(t, s.Images.Delete(ctx, img.ID))

	_, err = s.Images.Get(ctx, img.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err = s.References.Get(ctx, ref.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ImageIDs.Cardinality())
}

func TestImage_MarshalJSON(t *testing.T) {
	img := store.Image{
		ID:           "i1",
		Title:        locale.NewBundle("a", "b"),
		CategoryIDs:  store.NewIDSet("z", "a"),
		ReferenceIDs: nil,
	}
	b, err := json.Marshal(img)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, []any{"a", "z"}, out["categoryIds"])
	assert.Equal(t, []any{}, out["referenceIds"])
	assert.Equal(t, map[string]any{"en": "a", "tr": "b"}, out["title"])
}
