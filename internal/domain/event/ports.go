package event

import "context"

// Repository defines persistence operations for map events
type Repository interface {
	FindByID(ctx context.Context, eventID string) (*MapEvent, error)
	FindAll(ctx context.Context) ([]*MapEvent, error)
	FindByMap(ctx context.Context, mapName string) ([]*MapEvent, error)
	Save(ctx context.Context, e *MapEvent) error
	Count(ctx context.Context) (int64, error)
}

// DescriptionProvider supplies the bundled event descriptions used when the
// remote record carries none. A missing description is an absent value, not
// an error.
type DescriptionProvider interface {
	Description(eventName string) (string, bool)
}
