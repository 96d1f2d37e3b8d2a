package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4liaghaie/sait/internal/locale"
	"github.com/4liaghaie/sait/internal/store"
	"github.com/4liaghaie/sait/internal/testutil"
)

func TestConcurrentWritesWaitForLock(t *testing.T) {
	db := testutil.NewFileDB(t)
	categories := store.NewCategoryStore(db)
	images := store.NewImageStore(db)
	ctx := context.Background()

	const writers = 20
	errs := make(chan error, 2*writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := categories.Create(ctx, store.CreateCategory{
				ID:    fmt.Sprintf("cat-%02d", i),
				Title: locale.NewBundle(fmt.Sprintf("category %d", i), ""),
			})
			errs <- err
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := images.Create(ctx, store.CreateImage{
				ID:          fmt.Sprintf("img-%02d", i),
				CategoryIDs: store.NewIDSet(fmt.Sprintf("cat-%02d", i)),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	cats, err := categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, writers)
	imgs, err := images.List(ctx)
	require.NoError(t, err)
	assert.Len(t, imgs, writers)
}
