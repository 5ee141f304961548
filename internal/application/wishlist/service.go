package wishlist

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/harrisonog/arcraiders-go/internal/domain/inventory"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/wishlist"
)

// Service aggregates item demand from quests, workshop upgrades and manual
// additions into the wishlist.
type Service struct {
	wishlistRepo  wishlist.Repository
	inventoryRepo inventory.Repository
	clock         shared.Clock
	logger        *zap.Logger
}

// NewService creates a new wishlist service
func NewService(
	wishlistRepo wishlist.Repository,
	inventoryRepo inventory.Repository,
	clock shared.Clock,
	logger *zap.Logger,
) *Service {
	return &Service{
		wishlistRepo:  wishlistRepo,
		inventoryRepo: inventoryRepo,
		clock:         clock,
		logger:        logger,
	}
}

// MergeDemand records demand for an item. A new entry starts with the given
// quantity; an existing entry grows by it only when the source ref is new or
// the demand is a manual add. Re-merging an already-present ref is a no-op for
// quantity, so restarting a quest cannot inflate the wishlist. Sources union,
// and a manual flag never unsets.
func (s *Service) MergeDemand(ctx context.Context, itemID, itemName string, quantity int, imageURL, sourceRef string, isManual bool) error {
	if itemID == "" {
		return shared.NewValidationError("itemID", "must not be empty")
	}
	if quantity < 0 {
		return shared.NewValidationError("quantity", "must not be negative")
	}

	now := s.clock.Now()

	existing, err := s.wishlistRepo.FindByID(ctx, itemID)
	if err != nil {
		var notFound *shared.NotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to load wishlist entry: %w", err)
		}

		entry := &wishlist.Entry{
			ItemID:         itemID,
			ItemName:       itemName,
			QuantityNeeded: quantity,
			ImageURL:       imageURL,
			IsManual:       isManual,
			Sources:        map[string]bool{},
			DateAdded:      now,
			LastUpdated:    now,
		}
		entry.AddSource(sourceRef)

		if err := s.wishlistRepo.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save wishlist entry: %w", err)
		}
		s.logger.Debug("wishlist entry created",
			zap.String("item_id", itemID),
			zap.Int("quantity", quantity),
			zap.String("source", sourceRef))
		return nil
	}

	refAdded := existing.AddSource(sourceRef)
	if refAdded || (isManual && sourceRef == "") {
		existing.QuantityNeeded += quantity
	}
	existing.IsManual = existing.IsManual || isManual
	existing.LastUpdated = now

	if err := s.wishlistRepo.Save(ctx, existing); err != nil {
		return fmt.Errorf("failed to save wishlist entry: %w", err)
	}
	s.logger.Debug("wishlist entry merged",
		zap.String("item_id", itemID),
		zap.Int("quantity_needed", existing.QuantityNeeded),
		zap.String("source", sourceRef),
		zap.Bool("ref_added", refAdded))
	return nil
}

// MergeRequiredItems merges every demand of one source in a single call
func (s *Service) MergeRequiredItems(ctx context.Context, sourceRef string, items []shared.RequiredItem) error {
	for _, required := range items {
		if err := s.MergeDemand(ctx, required.ItemID, required.ItemName, required.Quantity, required.ImageURL, sourceRef, false); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseDemand removes a source ref from every entry carrying it. Entries
// left with no sources and no manual flag are deleted; all others keep their
// accumulated quantity.
func (s *Service) ReleaseDemand(ctx context.Context, sourceRef string) error {
	if sourceRef == "" {
		return shared.NewValidationError("sourceRef", "must not be empty")
	}

	entries, err := s.wishlistRepo.FindBySource(ctx, sourceRef)
	if err != nil {
		return fmt.Errorf("failed to find wishlist entries for source: %w", err)
	}

	for _, entry := range entries {
		if !entry.RemoveSource(sourceRef) {
			continue
		}

		if entry.Orphaned() {
			if err := s.wishlistRepo.Delete(ctx, entry.ItemID); err != nil {
				return fmt.Errorf("failed to delete wishlist entry: %w", err)
			}
			s.logger.Debug("wishlist entry released",
				zap.String("item_id", entry.ItemID),
				zap.String("source", sourceRef))
			continue
		}

		entry.LastUpdated = s.clock.Now()
		if err := s.wishlistRepo.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save wishlist entry: %w", err)
		}
	}
	return nil
}

// ManualAdd adds or grows a user-driven wishlist entry
func (s *Service) ManualAdd(ctx context.Context, itemID, itemName string, quantity int, imageURL string) error {
	return s.MergeDemand(ctx, itemID, itemName, quantity, imageURL, "", true)
}

// ManualRemove deletes an entry outright, regardless of remaining sources
func (s *Service) ManualRemove(ctx context.Context, itemID string) error {
	if err := s.wishlistRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to remove wishlist entry: %w", err)
	}
	return nil
}

// SetQuantity overrides the needed quantity of an entry, clamped at zero
func (s *Service) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	entry, err := s.wishlistRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}

	if quantity < 0 {
		quantity = 0
	}
	entry.QuantityNeeded = quantity
	entry.LastUpdated = s.clock.Now()

	if err := s.wishlistRepo.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to save wishlist entry: %w", err)
	}
	return nil
}

// GetEntry returns a single wishlist entry
func (s *Service) GetEntry(ctx context.Context, itemID string) (*wishlist.Entry, error) {
	return s.wishlistRepo.FindByID(ctx, itemID)
}

// ListEntries returns the full wishlist
func (s *Service) ListEntries(ctx context.Context) ([]*wishlist.Entry, error) {
	return s.wishlistRepo.FindAll(ctx)
}

// ListWithInventory returns the wishlist joined against owned quantities
func (s *Service) ListWithInventory(ctx context.Context) ([]*wishlist.EntryWithInventory, error) {
	entries, err := s.wishlistRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		itemIDs = append(itemIDs, entry.ItemID)
	}

	owned, err := s.inventoryRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory for wishlist: %w", err)
	}
	ownedByID := make(map[string]int, len(owned))
	for _, inv := range owned {
		ownedByID[inv.ItemID] = inv.Quantity
	}

	result := make([]*wishlist.EntryWithInventory, 0, len(entries))
	for _, entry := range entries {
		result = append(result, &wishlist.EntryWithInventory{
			Entry:         *entry,
			QuantityOwned: ownedByID[entry.ItemID],
		})
	}
	return result, nil
}

// Count returns the number of wishlist entries
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.wishlistRepo.Count(ctx)
}
