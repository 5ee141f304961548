package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/harrisonog/arcraiders-go/internal/domain/item"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// GormItemRepository implements item.Repository using GORM
type GormItemRepository struct {
	db      *gorm.DB
	watcher *StoreWatcher
}

// Compile-time interface check
var _ item.Repository = (*GormItemRepository)(nil)

// NewGormItemRepository creates a new GORM item repository
func NewGormItemRepository(db *gorm.DB, watcher *StoreWatcher) *GormItemRepository {
	return &GormItemRepository{db: db, watcher: watcher}
}

// FindByID retrieves an item by ID
func (r *GormItemRepository) FindByID(ctx context.Context, itemID string) (*item.Item, error) {
	var model ItemModel
	result := r.db.WithContext(ctx).Where("id = ?", itemID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError("item", itemID)
		}
		return nil, fmt.Errorf("failed to find item: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// FindAll retrieves every item ordered by name
func (r *GormItemRepository) FindAll(ctx context.Context) ([]*item.Item, error) {
	var models []ItemModel
	result := r.db.WithContext(ctx).Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list items: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindByCategory retrieves items in a category
func (r *GormItemRepository) FindByCategory(ctx context.Context, category item.Category) ([]*item.Item, error) {
	var models []ItemModel
	result := r.db.WithContext(ctx).Where("category = ?", string(category)).Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list items by category: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindByRarity retrieves items of a rarity tier
func (r *GormItemRepository) FindByRarity(ctx context.Context, rarity item.Rarity) ([]*item.Item, error) {
	var models []ItemModel
	result := r.db.WithContext(ctx).Where("rarity = ?", string(rarity)).Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list items by rarity: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// Save upserts an item
func (r *GormItemRepository) Save(ctx context.Context, i *item.Item) error {
	model, err := r.entityToModel(i)
	if err != nil {
		return fmt.Errorf("failed to convert item to model: %w", err)
	}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save item: %w", result.Error)
	}
	r.watcher.Notify(TableItems)
	return nil
}

// Count returns the number of items in the table
func (r *GormItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if result := r.db.WithContext(ctx).Model(&ItemModel{}).Count(&count); result.Error != nil {
		return 0, fmt.Errorf("failed to count items: %w", result.Error)
	}
	return count, nil
}

func (r *GormItemRepository) modelsToEntities(models []ItemModel) ([]*item.Item, error) {
	items := make([]*item.Item, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert item %s: %w", models[i].ID, err)
		}
		items = append(items, entity)
	}
	return items, nil
}

type recyclingJSON struct {
	MaterialName string `json:"material_name"`
	Quantity     int    `json:"quantity"`
}

func (r *GormItemRepository) modelToEntity(model *ItemModel) (*item.Item, error) {
	neededFor, err := unmarshalStringSlice(model.NeededForQuestsJSON)
	if err != nil {
		return nil, err
	}
	var recycling []recyclingJSON
	if err := json.Unmarshal([]byte(model.RecyclingJSON), &recycling); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recycling materials: %w", err)
	}
	materials := make([]item.RecyclingMaterial, 0, len(recycling))
	for _, m := range recycling {
		materials = append(materials, item.RecyclingMaterial{
			MaterialName: m.MaterialName,
			Quantity:     m.Quantity,
		})
	}

	return &item.Item{
		ID:                 model.ID,
		Name:               model.Name,
		Description:        model.Description,
		ImageURL:           model.ImageURL,
		Category:           item.Category(model.Category),
		Rarity:             item.Rarity(model.Rarity),
		IsQuestItem:        model.IsQuestItem,
		NeededForQuests:    neededFor,
		SellValue:          model.SellValue,
		RecyclingMaterials: materials,
	}, nil
}

func (r *GormItemRepository) entityToModel(i *item.Item) (*ItemModel, error) {
	neededForRaw, err := marshalStringSlice(i.NeededForQuests)
	if err != nil {
		return nil, err
	}
	recycling := make([]recyclingJSON, 0, len(i.RecyclingMaterials))
	for _, m := range i.RecyclingMaterials {
		recycling = append(recycling, recyclingJSON{
			MaterialName: m.MaterialName,
			Quantity:     m.Quantity,
		})
	}
	recyclingRaw, err := json.Marshal(recycling)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recycling materials: %w", err)
	}

	return &ItemModel{
		ID:                  i.ID,
		Name:                i.Name,
		Description:         i.Description,
		ImageURL:            i.ImageURL,
		Category:            string(i.Category),
		Rarity:              string(i.Rarity),
		IsQuestItem:         i.IsQuestItem,
		NeededForQuestsJSON: neededForRaw,
		SellValue:           i.SellValue,
		RecyclingJSON:       string(recyclingRaw),
	}, nil
}
