package wishlist

import "context"

// Repository defines persistence operations for the wishlist
type Repository interface {
	FindByID(ctx context.Context, itemID string) (*Entry, error)
	FindAll(ctx context.Context) ([]*Entry, error)
	FindBySource(ctx context.Context, sourceRef string) ([]*Entry, error)
	Save(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, itemID string) error
	Count(ctx context.Context) (int64, error)
}
