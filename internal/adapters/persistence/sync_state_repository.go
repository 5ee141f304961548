package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/harrisonog/arcraiders-go/internal/domain/syncstate"
)

// GormSyncStateRepository implements syncstate.Repository using GORM
type GormSyncStateRepository struct {
	db *gorm.DB
}

// Compile-time interface check
var _ syncstate.Repository = (*GormSyncStateRepository)(nil)

// NewGormSyncStateRepository creates a new GORM sync state repository
func NewGormSyncStateRepository(db *gorm.DB) *GormSyncStateRepository {
	return &GormSyncStateRepository{db: db}
}

// LastSync returns the timestamp of the last successful sync for the kind.
// The second return is false when the kind has never synced.
func (r *GormSyncStateRepository) LastSync(ctx context.Context, kind syncstate.DataKind) (time.Time, bool, error) {
	var model SyncStateModel
	result := r.db.WithContext(ctx).Where("data_kind = ?", string(kind)).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to read sync state: %w", result.Error)
	}
	return model.LastSyncedAt, true, nil
}

// RecordSync upserts the last-sync timestamp for the kind
func (r *GormSyncStateRepository) RecordSync(ctx context.Context, kind syncstate.DataKind, at time.Time) error {
	model := SyncStateModel{DataKind: string(kind), LastSyncedAt: at}
	if result := r.db.WithContext(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("failed to record sync state: %w", result.Error)
	}
	return nil
}
