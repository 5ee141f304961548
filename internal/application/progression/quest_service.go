package progression

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appwishlist "github.com/harrisonog/arcraiders-go/internal/application/wishlist"
	"github.com/harrisonog/arcraiders-go/internal/domain/inventory"
	"github.com/harrisonog/arcraiders-go/internal/domain/quest"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// QuestWithInventory pairs a quest with the owned counts of its required items
type QuestWithInventory struct {
	Quest         *quest.Quest
	RequiredItems []shared.RequiredItemWithInventory
}

// QuestService drives quest progress and its wishlist side effects
type QuestService struct {
	questRepo     quest.Repository
	inventoryRepo inventory.Repository
	wishlist      *appwishlist.Service
	logger        *zap.Logger
}

// NewQuestService creates a new quest service
func NewQuestService(
	questRepo quest.Repository,
	inventoryRepo inventory.Repository,
	wishlist *appwishlist.Service,
	logger *zap.Logger,
) *QuestService {
	return &QuestService{
		questRepo:     questRepo,
		inventoryRepo: inventoryRepo,
		wishlist:      wishlist,
		logger:        logger,
	}
}

// SetStatus moves a quest to the given status. Entering IN_PROGRESS merges the
// quest's required items into the wishlist under the quest id; entering
// COMPLETED releases that demand. Transitions are otherwise unrestricted.
func (s *QuestService) SetStatus(ctx context.Context, questID string, status quest.Status) error {
	q, err := s.questRepo.FindByID(ctx, questID)
	if err != nil {
		return err
	}

	if err := s.questRepo.UpdateStatus(ctx, questID, status); err != nil {
		return err
	}
	s.logger.Info("quest status updated",
		zap.String("quest_id", questID),
		zap.String("from", string(q.Status)),
		zap.String("to", string(status)))

	switch status {
	case quest.StatusInProgress:
		if len(q.RequiredItems) > 0 {
			if err := s.wishlist.MergeRequiredItems(ctx, questID, q.RequiredItems); err != nil {
				return fmt.Errorf("failed to merge quest demand into wishlist: %w", err)
			}
		}
	case quest.StatusCompleted:
		if err := s.wishlist.ReleaseDemand(ctx, questID); err != nil {
			return fmt.Errorf("failed to release quest demand from wishlist: %w", err)
		}
	}
	return nil
}

// ToggleObjective flips one objective and applies the implied status
// transition, if any, through SetStatus so wishlist side effects fire.
// Returns the quest's resulting status.
func (s *QuestService) ToggleObjective(ctx context.Context, questID, objectiveID string) (quest.Status, error) {
	q, err := s.questRepo.FindByID(ctx, questID)
	if err != nil {
		return "", err
	}

	newStatus, transitioned, err := q.ToggleObjective(objectiveID)
	if err != nil {
		return "", err
	}

	if err := s.questRepo.UpdateCompletedObjectives(ctx, questID, q.CompletedObjectives); err != nil {
		return "", err
	}

	if !transitioned {
		return q.Status, nil
	}
	if err := s.SetStatus(ctx, questID, newStatus); err != nil {
		return "", err
	}
	return newStatus, nil
}

// GetQuest returns a single quest
func (s *QuestService) GetQuest(ctx context.Context, questID string) (*quest.Quest, error) {
	return s.questRepo.FindByID(ctx, questID)
}

// ListQuests returns quests, optionally filtered by status or chain.
// Both filters empty means all quests.
func (s *QuestService) ListQuests(ctx context.Context, status quest.Status, chain string) ([]*quest.Quest, error) {
	switch {
	case status != "":
		return s.questRepo.FindByStatus(ctx, status)
	case chain != "":
		return s.questRepo.FindByChain(ctx, chain)
	default:
		return s.questRepo.FindAll(ctx)
	}
}

// GetQuestWithInventory returns a quest with owned counts joined onto its
// required items
func (s *QuestService) GetQuestWithInventory(ctx context.Context, questID string) (*QuestWithInventory, error) {
	q, err := s.questRepo.FindByID(ctx, questID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]string, 0, len(q.RequiredItems))
	for _, required := range q.RequiredItems {
		itemIDs = append(itemIDs, required.ItemID)
	}
	owned, err := s.inventoryRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory for quest: %w", err)
	}
	ownedByID := make(map[string]int, len(owned))
	for _, inv := range owned {
		ownedByID[inv.ItemID] = inv.Quantity
	}

	joined := make([]shared.RequiredItemWithInventory, 0, len(q.RequiredItems))
	for _, required := range q.RequiredItems {
		joined = append(joined, shared.RequiredItemWithInventory{
			ItemID:         required.ItemID,
			ItemName:       required.ItemName,
			QuantityNeeded: required.Quantity,
			QuantityOwned:  ownedByID[required.ItemID],
			ImageURL:       required.ImageURL,
		})
	}

	return &QuestWithInventory{Quest: q, RequiredItems: joined}, nil
}
