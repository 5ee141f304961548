package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonog/arcraiders-go/internal/adapters/persistence"
	"github.com/harrisonog/arcraiders-go/internal/domain/inventory"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/test/helpers"
)

func TestInventoryRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	entry := &inventory.Entry{
		ItemID:   "metal-parts",
		ItemName: "Metal Parts",
		Quantity: 7,
		ImageURL: "https://cdn.metaforge.app/metal-parts.png",
	}

	// Act
	err := repo.Save(context.Background(), entry)
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), "metal-parts")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Metal Parts", found.ItemName)
	assert.Equal(t, 7, found.Quantity)
}

func TestInventoryRepository_FindByID_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	// Act
	_, err := repo.FindByID(context.Background(), "missing")

	// Assert
	require.Error(t, err)
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestInventoryRepository_Save_ClampsNegativeQuantity(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	entry := &inventory.Entry{ItemID: "fabric", ItemName: "Fabric", Quantity: -3}

	// Act
	err := repo.Save(context.Background(), entry)
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), "fabric")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, found.Quantity)
}

func TestInventoryRepository_UpdateQuantity(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	require.NoError(t, repo.Save(context.Background(), &inventory.Entry{
		ItemID: "scrap", ItemName: "Scrap", Quantity: 2,
	}))

	// Act
	err := repo.UpdateQuantity(context.Background(), "scrap", 9)

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), "scrap")
	require.NoError(t, err)
	assert.Equal(t, 9, found.Quantity)
}

func TestInventoryRepository_UpdateQuantity_ClampsAtZero(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	require.NoError(t, repo.Save(context.Background(), &inventory.Entry{
		ItemID: "scrap", ItemName: "Scrap", Quantity: 5,
	}))

	// Act
	err := repo.UpdateQuantity(context.Background(), "scrap", -4)

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), "scrap")
	require.NoError(t, err)
	assert.Equal(t, 0, found.Quantity)
}

func TestInventoryRepository_UpdateQuantity_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	// Act
	err := repo.UpdateQuantity(context.Background(), "missing", 1)

	// Assert
	require.Error(t, err)
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestInventoryRepository_CollectedCount(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	require.NoError(t, repo.Save(context.Background(), &inventory.Entry{ItemID: "a", ItemName: "A", Quantity: 3}))
	require.NoError(t, repo.Save(context.Background(), &inventory.Entry{ItemID: "b", ItemName: "B", Quantity: 1}))
	require.NoError(t, repo.Save(context.Background(), &inventory.Entry{ItemID: "c", ItemName: "C", Quantity: 0}))

	// Act
	count, err := repo.CollectedCount(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestInventoryRepository_FindByIDs(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	require.NoError(t, repo.Save(context.Background(), &inventory.Entry{ItemID: "a", ItemName: "A", Quantity: 3}))
	require.NoError(t, repo.Save(context.Background(), &inventory.Entry{ItemID: "b", ItemName: "B", Quantity: 1}))

	// Act
	entries, err := repo.FindByIDs(context.Background(), []string{"a", "missing"})

	// Assert
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ItemID)

	none, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
