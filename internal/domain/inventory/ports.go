package inventory

import "context"

// Repository defines persistence operations for the user's inventory
type Repository interface {
	FindByID(ctx context.Context, itemID string) (*Entry, error)
	FindAll(ctx context.Context) ([]*Entry, error)
	FindByIDs(ctx context.Context, itemIDs []string) ([]*Entry, error)
	Save(ctx context.Context, e *Entry) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	CollectedCount(ctx context.Context) (int64, error)
}
