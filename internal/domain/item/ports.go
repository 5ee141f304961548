package item

import "context"

// Repository defines persistence operations for catalog items
type Repository interface {
	FindByID(ctx context.Context, itemID string) (*Item, error)
	FindAll(ctx context.Context) ([]*Item, error)
	FindByCategory(ctx context.Context, category Category) ([]*Item, error)
	FindByRarity(ctx context.Context, rarity Rarity) ([]*Item, error)
	Save(ctx context.Context, i *Item) error
	Count(ctx context.Context) (int64, error)
}
