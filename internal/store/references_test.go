package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/store"
)

func TestReferenceStore_CreateUpdate(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()

	ref, err := s.References.Create(ctx, store.CreateReference{
		Title:         locale.NewBundle("Sample brand", "Örnek marka"),
		Year:          "2024",
		LogoLightPath: "/uploads/light.png",
		ImageIDs:      store.NewIDSet("i1", "i2"),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"i1", "i2"}, ref.ImageIDs.ToSlice())

	updated, err := s.References.Update(ctx, ref.ID, store.UpdateReference{
		Year:         store.Some(""),
		LogoDarkPath: store.Some("https://cdn.test/dark.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Year)
	assert.Equal(t, "/uploads/light.png", updated.LogoLightPath)
	assert.Equal(t, "https://cdn.test/dark.png", updated.LogoDarkPath)
	assert.ElementsMatch(t, []string{"i1", "i2"}, updated.ImageIDs.ToSlice())

	updated, err = s.References.Update(ctx, ref.ID, store.UpdateReference{ImageIDs: store.Some(store.NewIDSet("i3"))})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"i3"}, updated.ImageIDs.ToSlice())
}

func TestReferenceStore_ImageSideSeesLinks(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()
	img, err := s.Images.Create(ctx, store.CreateImage{ID: "i1"})
	require.NoError(t, err)
	_, err = s.References.Create(ctx, store.CreateReference{ID: "r1", ImageIDs: store.NewIDSet(img.ID)})
	require.NoError(t, err)

	got, err := s.Images.Get(ctx, img.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"r1"}, got.ReferenceIDs.ToSlice())
}

func TestReferenceStore_Delete(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()
	_, err := s.Images.Create(ctx, store.CreateImage{ID: "i1"})
	require.NoError(t, err)
	_, err = s.References.Create(ctx, store.CreateReference{ID: "r1", ImageIDs: store.NewIDSet("i1")})
	require.NoError(t, err)

	require.NoError(t, s.References.Delete(ctx, "r1"))

	_, err = s.References.Get(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	img, err := s.Images.Get(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 0, img.ReferenceIDs.Cardinality())
}

func TestReferenceStore_List(t *testing.T) {
	s := newTestStores(t)
	ctx := context.Background()
	_, err := s.References.Create(ctx, store.CreateReference{ID: "r2", ImageIDs: store.NewIDSet("i1")})
	require.NoError(t, err)
	_, err = s.References.Create(ctx, store.CreateReference{ID: "r1"})
	require.NoError(t, err)

	refs, err := s.References.List(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "r2", refs[0].ID)
	assert.ElementsMatch(t, []string{"i1"}, refs[0].ImageIDs.ToSlice())
	assert.Equal(t, "r1", refs[1].ID)
	assert.Equal(t, 0, refs[1].ImageIDs.Cardinality())
}

func TestReferenceStore_Update_NotFound(t *testing.T) {
	s := newTestStores(t)
	_, err := s.References.Update(context.Background(), "missing", store.UpdateReference{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
