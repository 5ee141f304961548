package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/wishlist"
)

// GormWishlistRepository implements wishlist.Repository using GORM
type GormWishlistRepository struct {
	db      *gorm.DB
	watcher *StoreWatcher
}

// Compile-time interface check
var _ wishlist.Repository = (*GormWishlistRepository)(nil)

// NewGormWishlistRepository creates a new GORM wishlist repository
func NewGormWishlistRepository(db *gorm.DB, watcher *StoreWatcher) *GormWishlistRepository {
	return &GormWishlistRepository{db: db, watcher: watcher}
}

// FindByID retrieves a wishlist entry by item ID
func (r *GormWishlistRepository) FindByID(ctx context.Context, itemID string) (*wishlist.Entry, error) {
	var model WishlistModel
	result := r.db.WithContext(ctx).Where("item_id = ?", itemID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError("wishlist entry", itemID)
		}
		return nil, fmt.Errorf("failed to find wishlist entry: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// FindAll retrieves every entry, oldest first
func (r *GormWishlistRepository) FindAll(ctx context.Context) ([]*wishlist.Entry, error) {
	var models []WishlistModel
	result := r.db.WithContext(ctx).Order("date_added").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", result.Error)
	}
	entries := make([]*wishlist.Entry, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert wishlist entry %s: %w", models[i].ItemID, err)
		}
		entries = append(entries, entity)
	}
	return entries, nil
}

// FindBySource retrieves entries whose source set contains the given ref.
// Source sets are small JSON arrays, so this filters in memory rather than
// depending on dialect-specific JSON operators.
func (r *GormWishlistRepository) FindBySource(ctx context.Context, sourceRef string) ([]*wishlist.Entry, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*wishlist.Entry, 0, len(all))
	for _, e := range all {
		if e.HasSource(sourceRef) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Save upserts an entry
func (r *GormWishlistRepository) Save(ctx context.Context, e *wishlist.Entry) error {
	model, err := r.entityToModel(e)
	if err != nil {
		return fmt.Errorf("failed to convert wishlist entry to model: %w", err)
	}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save wishlist entry: %w", result.Error)
	}
	r.watcher.Notify(TableWishlist)
	return nil
}

// Delete removes an entry. Deleting a missing entry is not an error.
func (r *GormWishlistRepository) Delete(ctx context.Context, itemID string) error {
	result := r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&WishlistModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete wishlist entry: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		r.watcher.Notify(TableWishlist)
	}
	return nil
}

// Count returns the number of wishlist entries
func (r *GormWishlistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if result := r.db.WithContext(ctx).Model(&WishlistModel{}).Count(&count); result.Error != nil {
		return 0, fmt.Errorf("failed to count wishlist entries: %w", result.Error)
	}
	return count, nil
}

func (r *GormWishlistRepository) modelToEntity(model *WishlistModel) (*wishlist.Entry, error) {
	sources, err := unmarshalStringSet(model.SourcesJSON)
	if err != nil {
		return nil, err
	}
	return &wishlist.Entry{
		ItemID:         model.ItemID,
		ItemName:       model.ItemName,
		QuantityNeeded: model.QuantityNeeded,
		ImageURL:       model.ImageURL,
		IsManual:       model.IsManual,
		Sources:        sources,
		DateAdded:      model.DateAdded,
		LastUpdated:    model.LastUpdated,
	}, nil
}

func (r *GormWishlistRepository) entityToModel(e *wishlist.Entry) (*WishlistModel, error) {
	sourcesRaw, err := marshalStringSet(e.Sources)
	if err != nil {
		return nil, err
	}
	return &WishlistModel{
		ItemID:         e.ItemID,
		ItemName:       e.ItemName,
		QuantityNeeded: e.QuantityNeeded,
		ImageURL:       e.ImageURL,
		IsManual:       e.IsManual,
		SourcesJSON:    sourcesRaw,
		DateAdded:      e.DateAdded,
		LastUpdated:    e.LastUpdated,
	}, nil
}
