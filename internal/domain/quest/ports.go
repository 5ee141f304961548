package quest

import "context"

// Repository defines persistence operations for quests
type Repository interface {
	FindByID(ctx context.Context, questID string) (*Quest, error)
	FindAll(ctx context.Context) ([]*Quest, error)
	FindByStatus(ctx context.Context, status Status) ([]*Quest, error)
	FindByChain(ctx context.Context, questChain string) ([]*Quest, error)
	Save(ctx context.Context, q *Quest) error
	UpdateStatus(ctx context.Context, questID string, status Status) error
	UpdateCompletedObjectives(ctx context.Context, questID string, completed map[string]bool) error
	Count(ctx context.Context) (int64, error)
}
