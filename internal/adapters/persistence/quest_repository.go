package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/harrisonog/arcraiders-go/internal/domain/quest"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// GormQuestRepository implements quest.Repository using GORM
type GormQuestRepository struct {
	db      *gorm.DB
	watcher *StoreWatcher
}

// Compile-time interface check
var _ quest.Repository = (*GormQuestRepository)(nil)

// NewGormQuestRepository creates a new GORM quest repository
func NewGormQuestRepository(db *gorm.DB, watcher *StoreWatcher) *GormQuestRepository {
	return &GormQuestRepository{db: db, watcher: watcher}
}

// FindByID retrieves a quest by ID
func (r *GormQuestRepository) FindByID(ctx context.Context, questID string) (*quest.Quest, error) {
	var model QuestModel
	result := r.db.WithContext(ctx).Where("id = ?", questID).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, shared.NewNotFoundError("quest", questID)
		}
		return nil, fmt.Errorf("failed to find quest: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// FindAll retrieves every quest ordered by name
func (r *GormQuestRepository) FindAll(ctx context.Context) ([]*quest.Quest, error) {
	var models []QuestModel
	result := r.db.WithContext(ctx).Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list quests: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindByStatus retrieves quests with the given status
func (r *GormQuestRepository) FindByStatus(ctx context.Context, status quest.Status) ([]*quest.Quest, error) {
	var models []QuestModel
	result := r.db.WithContext(ctx).Where("status = ?", string(status)).Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list quests by status: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// FindByChain retrieves quests belonging to a quest chain
func (r *GormQuestRepository) FindByChain(ctx context.Context, questChain string) ([]*quest.Quest, error) {
	var models []QuestModel
	result := r.db.WithContext(ctx).Where("quest_chain = ?", questChain).Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list quests by chain: %w", result.Error)
	}
	return r.modelsToEntities(models)
}

// Save upserts a quest
func (r *GormQuestRepository) Save(ctx context.Context, q *quest.Quest) error {
	model, err := r.entityToModel(q)
	if err != nil {
		return fmt.Errorf("failed to convert quest to model: %w", err)
	}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save quest: %w", result.Error)
	}
	r.watcher.Notify(TableQuests)
	return nil
}

// UpdateStatus sets only the status column
func (r *GormQuestRepository) UpdateStatus(ctx context.Context, questID string, status quest.Status) error {
	result := r.db.WithContext(ctx).Model(&QuestModel{}).
		Where("id = ?", questID).
		Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("failed to update quest status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("quest", questID)
	}
	r.watcher.Notify(TableQuests)
	return nil
}

// UpdateCompletedObjectives sets only the completed-objective set
func (r *GormQuestRepository) UpdateCompletedObjectives(ctx context.Context, questID string, completed map[string]bool) error {
	raw, err := marshalStringSet(completed)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&QuestModel{}).
		Where("id = ?", questID).
		Update("completed_objectives_json", raw)
	if result.Error != nil {
		return fmt.Errorf("failed to update completed objectives: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("quest", questID)
	}
	r.watcher.Notify(TableQuests)
	return nil
}

// Count returns the number of quests in the table
func (r *GormQuestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if result := r.db.WithContext(ctx).Model(&QuestModel{}).Count(&count); result.Error != nil {
		return 0, fmt.Errorf("failed to count quests: %w", result.Error)
	}
	return count, nil
}

func (r *GormQuestRepository) modelsToEntities(models []QuestModel) ([]*quest.Quest, error) {
	quests := make([]*quest.Quest, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert quest %s: %w", models[i].ID, err)
		}
		quests = append(quests, entity)
	}
	return quests, nil
}

type objectiveJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

func (r *GormQuestRepository) modelToEntity(model *QuestModel) (*quest.Quest, error) {
	var objectives []objectiveJSON
	if err := json.Unmarshal([]byte(model.ObjectivesJSON), &objectives); err != nil {
		return nil, fmt.Errorf("failed to unmarshal objectives: %w", err)
	}
	required, err := unmarshalRequiredItems(model.RequiredItemsJSON)
	if err != nil {
		return nil, err
	}
	rewards, err := unmarshalRewards(model.RewardsJSON)
	if err != nil {
		return nil, err
	}
	completed, err := unmarshalStringSet(model.CompletedObjectivesJSON)
	if err != nil {
		return nil, err
	}
	prerequisites, err := unmarshalStringSlice(model.PrerequisitesJSON)
	if err != nil {
		return nil, err
	}
	status, err := quest.ParseStatus(model.Status)
	if err != nil {
		return nil, err
	}

	entityObjectives := make([]quest.Objective, 0, len(objectives))
	for _, obj := range objectives {
		entityObjectives = append(entityObjectives, quest.Objective{
			ID:          obj.ID,
			Description: obj.Description,
			OrderIndex:  obj.OrderIndex,
		})
	}

	return &quest.Quest{
		ID:                  model.ID,
		Name:                model.Name,
		Description:         model.Description,
		Objectives:          entityObjectives,
		RequiredItems:       required,
		Rewards:             rewards,
		XPReward:            model.XPReward,
		Status:              status,
		CompletedObjectives: completed,
		MapLocation:         model.MapLocation,
		QuestChain:          model.QuestChain,
		Prerequisites:       prerequisites,
		ImageURL:            model.ImageURL,
	}, nil
}

func (r *GormQuestRepository) entityToModel(q *quest.Quest) (*QuestModel, error) {
	objectives := make([]objectiveJSON, 0, len(q.Objectives))
	for _, obj := range q.Objectives {
		objectives = append(objectives, objectiveJSON{
			ID:          obj.ID,
			Description: obj.Description,
			OrderIndex:  obj.OrderIndex,
		})
	}
	objectivesRaw, err := json.Marshal(objectives)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal objectives: %w", err)
	}
	requiredRaw, err := marshalRequiredItems(q.RequiredItems)
	if err != nil {
		return nil, err
	}
	rewardsRaw, err := marshalRewards(q.Rewards)
	if err != nil {
		return nil, err
	}
	completedRaw, err := marshalStringSet(q.CompletedObjectives)
	if err != nil {
		return nil, err
	}
	prerequisitesRaw, err := marshalStringSlice(q.Prerequisites)
	if err != nil {
		return nil, err
	}

	return &QuestModel{
		ID:                      q.ID,
		Name:                    q.Name,
		Description:             q.Description,
		ObjectivesJSON:          string(objectivesRaw),
		RequiredItemsJSON:       requiredRaw,
		RewardsJSON:             rewardsRaw,
		XPReward:                q.XPReward,
		Status:                  string(q.Status),
		CompletedObjectivesJSON: completedRaw,
		MapLocation:             q.MapLocation,
		QuestChain:              q.QuestChain,
		PrerequisitesJSON:       prerequisitesRaw,
		ImageURL:                q.ImageURL,
	}, nil
}
