package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/workshop"
)

// GormWorkshopRepository implements workshop.Repository using GORM
type GormWorkshopRepository struct {
	db      *gorm.DB
	watcher *StoreWatcher
}

// Compile-time interface check
var _ workshop.Repository = (*GormWorkshopRepository)(nil)

// NewGormWorkshopRepository creates a new GORM workshop repository
func NewGormWorkshopRepository(db *gorm.DB, watcher *StoreWatcher) *GormWorkshopRepository {
	return &GormWorkshopRepository{db: db, watcher: watcher}
}

// FindByID retrieves an upgrade level by ID
func (r *GormWorkshopRepository) FindByID(ctx context.Context, levelID string) (*workshop.Upgrade, error) {
	var model WorkshopUpgradeModel
	result := r.db.WithContext(ctx).Where("level_id = ?", levelID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError("upgrade", levelID)
		}
		return nil, fmt.Errorf("failed to find upgrade: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// FindAll retrieves every upgrade level ordered by station and level number
func (r *GormWorkshopRepository) FindAll(ctx context.Context) ([]*workshop.Upgrade, error) {
	var models []WorkshopUpgradeModel
	result := r.db.WithContext(ctx).Order("station_id, level_number").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list upgrades: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindByStation retrieves a station's levels in level order
func (r *GormWorkshopRepository) FindByStation(ctx context.Context, stationID string) ([]*workshop.Upgrade, error) {
	var models []WorkshopUpgradeModel
	result := r.db.WithContext(ctx).Where("station_id = ?", stationID).Order("level_number").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list station upgrades: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindByStatus retrieves upgrades with the given status
func (r *GormWorkshopRepository) FindByStatus(ctx context.Context, status workshop.Status) ([]*workshop.Upgrade, error) {
	var models []WorkshopUpgradeModel
	result := r.db.WithContext(ctx).Where("status = ?", string(status)).Order("station_id, level_number").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list upgrades by status: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// StationIDs returns the distinct station identifiers present in the table
func (r *GormWorkshopRepository) StationIDs(ctx context.Context) ([]string, error) {
	var ids []string
	result := r.db.WithContext(ctx).Model(&WorkshopUpgradeModel{}).
		Distinct("station_id").
		Order("station_id").
		Pluck("station_id", &ids)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list station ids: %w", result.Error)
	}
	return ids, nil
}

// Save upserts a single upgrade level
func (r *GormWorkshopRepository) Save(ctx context.Context, u *workshop.Upgrade) error {
	model, err := r.entityToModel(u)
	if err != nil {
		return fmt.Errorf("failed to convert upgrade to model: %w", err)
	}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save upgrade: %w", result.Error)
	}
	r.watcher.Notify(TableWorkshopUpgrades)
	return nil
}

// SaveAll upserts a batch of upgrade levels in one transaction
func (r *GormWorkshopRepository) SaveAll(ctx context.Context, upgrades []*workshop.Upgrade) error {
	if len(upgrades) == 0 {
		return nil
	}
	models := make([]*WorkshopUpgradeModel, 0, len(upgrades))
	for _, u := range upgrades {
		model, err := r.entityToModel(u)
		if err != nil {
			return fmt.Errorf("failed to convert upgrade %s to model: %w", u.LevelID, err)
		}
		models = append(models, model)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range models {
			if result := tx.Save(model); result.Error != nil {
				return fmt.Errorf("failed to save upgrade %s: %w", model.LevelID, result.Error)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.watcher.Notify(TableWorkshopUpgrades)
	return nil
}

// UpdateStatus sets only the status column
func (r *GormWorkshopRepository) UpdateStatus(ctx context.Context, levelID string, status workshop.Status) error {
	result := r.db.WithContext(ctx).Model(&WorkshopUpgradeModel{}).
		Where("level_id = ?", levelID).
		Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("failed to update upgrade status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("upgrade", levelID)
	}
	r.watcher.Notify(TableWorkshopUpgrades)
	return nil
}

func (r *GormWorkshopRepository) modelsToEntities(models []WorkshopUpgradeModel) ([]*workshop.Upgrade, error) {
	upgrades := make([]*workshop.Upgrade, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert upgrade %s: %w", models[i].LevelID, err)
		}
		upgrades = append(upgrades, entity)
	}
	return upgrades, nil
}

func (r *GormWorkshopRepository) modelToEntity(model *WorkshopUpgradeModel) (*workshop.Upgrade, error) {
	required, err := unmarshalRequiredItems(model.RequiredItemsJSON)
	if err != nil {
		return nil, err
	}
	rewards, err := unmarshalRewards(model.RewardsJSON)
	if err != nil {
		return nil, err
	}
	status, err := workshop.ParseStatus(model.Status)
	if err != nil {
		return nil, err
	}
	return &workshop.Upgrade{
		LevelID:       model.LevelID,
		StationID:     model.StationID,
		LevelNumber:   model.LevelNumber,
		Name:          model.Name,
		Description:   model.Description,
		RequiredItems: required,
		Rewards:       rewards,
		Unlocks:       model.Unlocks,
		Status:        status,
		ImageURL:      model.ImageURL,
	}, nil
}

func (r *GormWorkshopRepository) entityToModel(u *workshop.Upgrade) (*WorkshopUpgradeModel, error) {
	requiredRaw, err := marshalRequiredItems(u.RequiredItems)
	if err != nil {
		return nil, err
	}
	rewardsRaw, err := marshalRewards(u.Rewards)
	if err != nil {
		return nil, err
	}
	return &WorkshopUpgradeModel{
		LevelID:           u.LevelID,
		StationID:         u.StationID,
		LevelNumber:       u.LevelNumber,
		Name:              u.Name,
		Description:       u.Description,
		RequiredItemsJSON: requiredRaw,
		RewardsJSON:       rewardsRaw,
		Unlocks:           u.Unlocks,
		Status:            string(u.Status),
		ImageURL:          u.ImageURL,
	}, nil
}
