package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonog/arcraiders-go/internal/adapters/persistence"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/wishlist"
	"github.com/harrisonog/arcraiders-go/test/helpers"
)

func sampleWishlistEntry(itemID string, sources ...string) *wishlist.Entry {
	sourceSet := make(map[string]bool, len(sources))
	for _, ref := range sources {
		sourceSet[ref] = true
	}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &wishlist.Entry{
		ItemID:         itemID,
		ItemName:       "Sample Item",
		QuantityNeeded: 3,
		Sources:        sourceSet,
		DateAdded:      now,
		LastUpdated:    now,
	}
}

func TestWishlistRepository_SaveAndFind(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWishlistRepository(db, nil)

	entry := sampleWishlistEntry("scrap", "q1", "w1")
	entry.IsManual = true

	require.NoError(t, repo.Save(context.Background(), entry))

	found, err := repo.FindByID(context.Background(), "scrap")
	require.NoError(t, err)
	assert.Equal(t, 3, found.QuantityNeeded)
	assert.True(t, found.IsManual)
	assert.True(t, found.HasSource("q1"))
	assert.True(t, found.HasSource("w1"))
}

func TestWishlistRepository_FindBySource(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWishlistRepository(db, nil)

	require.NoError(t, repo.Save(context.Background(), sampleWishlistEntry("scrap", "q1")))
	require.NoError(t, repo.Save(context.Background(), sampleWishlistEntry("fabric", "q1", "w1")))
	require.NoError(t, repo.Save(context.Background(), sampleWishlistEntry("alloy", "w1")))

	entries, err := repo.FindBySource(context.Background(), "q1")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	ids := []string{entries[0].ItemID, entries[1].ItemID}
	assert.ElementsMatch(t, []string{"scrap", "fabric"}, ids)
}

func TestWishlistRepository_DeleteTolerant(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWishlistRepository(db, nil)

	require.NoError(t, repo.Save(context.Background(), sampleWishlistEntry("scrap")))

	require.NoError(t, repo.Delete(context.Background(), "scrap"))
	require.NoError(t, repo.Delete(context.Background(), "scrap"), "deleting twice must not error")

	_, err := repo.FindByID(context.Background(), "scrap")
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
