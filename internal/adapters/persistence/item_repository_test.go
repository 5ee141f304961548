package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonog/arcraiders-go/internal/adapters/persistence"
	"github.com/harrisonog/arcraiders-go/internal/domain/item"
	"github.com/harrisonog/arcraiders-go/test/helpers"
)

func sampleItem() *item.Item {
	value := 120
	return &item.Item{
		ID:              "power-cell",
		Name:            "Power Cell",
		Description:     "A charged ARC power cell",
		Category:        item.CategoryMaterial,
		Rarity:          item.RarityRare,
		IsQuestItem:     true,
		NeededForQuests: []string{"q-gateway-1"},
		SellValue:       &value,
		RecyclingMaterials: []item.RecyclingMaterial{
			{MaterialName: "Metal Parts", Quantity: 2},
			{MaterialName: "Wires", Quantity: 3},
		},
	}
}

func TestItemRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormItemRepository(db, nil)

	// Act
	err := repo.Save(context.Background(), sampleItem())
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), "power-cell")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Power Cell", found.Name)
	assert.Equal(t, item.RarityRare, found.Rarity)
	require.NotNil(t, found.SellValue)
	assert.Equal(t, 120, *found.SellValue)
	require.Len(t, found.RecyclingMaterials, 2)
	assert.Equal(t, "Wires", found.RecyclingMaterials[1].MaterialName)
	assert.Equal(t, []string{"q-gateway-1"}, found.NeededForQuests)
}

func TestItemRepository_FindByCategoryAndRarity(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormItemRepository(db, nil)

	require.NoError(t, repo.Save(context.Background(), sampleItem()))
	common := &item.Item{
		ID: "scrap", Name: "Scrap",
		Category: item.CategoryMaterial, Rarity: item.RarityCommon,
	}
	require.NoError(t, repo.Save(context.Background(), common))

	// Act
	materials, err := repo.FindByCategory(context.Background(), item.CategoryMaterial)
	require.NoError(t, err)
	rare, err := repo.FindByRarity(context.Background(), item.RarityRare)

	// Assert
	require.NoError(t, err)
	assert.Len(t, materials, 2)
	require.Len(t, rare, 1)
	assert.Equal(t, "power-cell", rare[0].ID)
}

func TestItemRepository_Count(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormItemRepository(db, nil)
	require.NoError(t, repo.Save(context.Background(), sampleItem()))

	// Act
	count, err := repo.Count(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
