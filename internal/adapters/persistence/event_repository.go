package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/harrisonog/arcraiders-go/internal/domain/event"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// GormEventRepository implements event.Repository using GORM
type GormEventRepository struct {
	db      *gorm.DB
	watcher *StoreWatcher
}

// Compile-time interface check
var _ event.Repository = (*GormEventRepository)(nil)

// NewGormEventRepository creates a new GORM map-event repository
func NewGormEventRepository(db *gorm.DB, watcher *StoreWatcher) *GormEventRepository {
	return &GormEventRepository{db: db, watcher: watcher}
}

// FindByID retrieves a map event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, eventID string) (*event.MapEvent, error) {
	var model MapEventModel
	result := r.db.WithContext(ctx).Where("id = ?", eventID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError("map event", eventID)
		}
		return nil, fmt.Errorf("failed to find map event: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// FindAll retrieves every map event ordered by map, then name
func (r *GormEventRepository) FindAll(ctx context.Context) ([]*event.MapEvent, error) {
	var models []MapEventModel
	result := r.db.WithContext(ctx).Order("map, name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list map events: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindByMap retrieves the events of one map
func (r *GormEventRepository) FindByMap(ctx context.Context, mapName string) ([]*event.MapEvent, error) {
	var models []MapEventModel
	result := r.db.WithContext(ctx).Where("map = ?", mapName).Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list map events by map: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// Save upserts a map event
func (r *GormEventRepository) Save(ctx context.Context, e *event.MapEvent) error {
	model, err := r.entityToModel(e)
	if err != nil {
		return fmt.Errorf("failed to convert map event to model: %w", err)
	}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save map event: %w", result.Error)
	}
	r.watcher.Notify(TableMapEvents)
	return nil
}

// Count returns the number of map events
func (r *GormEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if result := r.db.WithContext(ctx).Model(&MapEventModel{}).Count(&count); result.Error != nil {
		return 0, fmt.Errorf("failed to count map events: %w", result.Error)
	}
	return count, nil
}

func (r *GormEventRepository) modelsToEntities(models []MapEventModel) ([]*event.MapEvent, error) {
	events := make([]*event.MapEvent, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert map event %s: %w", models[i].ID, err)
		}
		events = append(events, entity)
	}
	return events, nil
}

type windowJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r *GormEventRepository) modelToEntity(model *MapEventModel) (*event.MapEvent, error) {
	var windows []windowJSON
	if err := json.Unmarshal([]byte(model.TimesJSON), &windows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event times: %w", err)
	}
	times := make([]event.Window, 0, len(windows))
	for _, w := range windows {
		times = append(times, event.Window{Start: w.Start, End: w.End})
	}
	return &event.MapEvent{
		ID:          model.ID,
		Name:        model.Name,
		Map:         model.Map,
		IconURL:     model.IconURL,
		Description: model.Description,
		Times:       times,
	}, nil
}

func (r *GormEventRepository) entityToModel(e *event.MapEvent) (*MapEventModel, error) {
	windows := make([]windowJSON, 0, len(e.Times))
	for _, w := range e.Times {
		windows = append(windows, windowJSON{Start: w.Start, End: w.End})
	}
	timesRaw, err := json.Marshal(windows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event times: %w", err)
	}
	return &MapEventModel{
		ID:          e.ID,
		Name:        e.Name,
		Map:         e.Map,
		IconURL:     e.IconURL,
		Description: e.Description,
		TimesJSON:   string(timesRaw),
	}, nil
}
