package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/harrisonog/arcraiders-go/internal/domain/inventory"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// GormInventoryRepository implements inventory.Repository using GORM
type GormInventoryRepository struct {
	db      *gorm.DB
	watcher *StoreWatcher
}

// Compile-time interface check
var _ inventory.Repository = (*GormInventoryRepository)(nil)

// NewGormInventoryRepository creates a new GORM inventory repository
func NewGormInventoryRepository(db *gorm.DB, watcher *StoreWatcher) *GormInventoryRepository {
	return &GormInventoryRepository{db: db, watcher: watcher}
}

// FindByID retrieves an inventory entry by item ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, itemID string) (*inventory.Entry, error) {
	var model InventoryModel
	result := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError("inventory entry", itemID)
		}
		return nil, fmt.Errorf("failed to find inventory entry: %w", result.Error)
	}
	return modelToInventoryEntry(&model), nil
}

// FindAll retrieves every entry ordered by item name
func (r *GormInventoryRepository) FindAll(ctx context.Context) ([]*inventory.Entry, error) {
	var models []InventoryModel
	result := r.db.WithContext(ctx).Order("item_name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", result.Error)
	}
	entries := make([]*inventory.Entry, 0, len(models))
	for i := range models {
		entries = append(entries, modelToInventoryEntry(&models[i]))
	}
	return entries, nil
}

// FindByIDs retrieves entries for the given item IDs
func (r *GormInventoryRepository) FindByIDs(ctx context.Context, itemIDs []string) ([]*inventory.Entry, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []InventoryModel
	result := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list inventory entries: %w", result.Error)
	}
	entries := make([]*inventory.Entry, 0, len(models))
	for i := range models {
		entries = append(entries, modelToInventoryEntry(&models[i]))
	}
	return entries, nil
}

// Save upserts an entry, clamping the quantity at zero
func (r *GormInventoryRepository) Save(ctx context.Context, e *inventory.Entry) error {
	e.Clamp()
	model := &InventoryModel{
		ItemID:   e.ItemID,
		ItemName: e.ItemName,
		Quantity: e.Quantity,
		ImageURL: e.ImageURL,
	}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save inventory entry: %w", result.Error)
	}
	r.watcher.Notify(TableInventory)
	return nil
}

// UpdateQuantity sets only the quantity column, clamped at zero
func (r *GormInventoryRepository) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 0 {
		quantity = 0
	}
	result := r.db.WithContext(ctx).Model(&InventoryModel{}).
		Where("item_id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update inventory quantity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("inventory entry", itemID)
	}
	r.watcher.Notify(TableInventory)
	return nil
}

// CollectedCount returns the number of distinct items with quantity > 0
func (r *GormInventoryRepository) CollectedCount(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&InventoryModel{}).
		Where("quantity > 0").
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count collected items: %w", result.Error)
	}
	return count, nil
}

func modelToInventoryEntry(model *InventoryModel) *inventory.Entry {
	return &inventory.Entry{
		ItemID:   model.ItemID,
		ItemName: model.ItemName,
		Quantity: model.Quantity,
		ImageURL: model.ImageURL,
	}
}
