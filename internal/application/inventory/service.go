package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/harrisonog/arcraiders-go/internal/domain/inventory"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// Service tracks owned quantities per catalog item
type Service struct {
	inventoryRepo inventory.Repository
	logger        *zap.Logger
}

// NewService creates a new inventory service
func NewService(inventoryRepo inventory.Repository, logger *zap.Logger) *Service {
	return &Service{inventoryRepo: inventoryRepo, logger: logger}
}

// Set writes the owned quantity for an item, creating the entry on first
// write. Negative quantities clamp to zero.
func (s *Service) Set(ctx context.Context, itemID, itemName string, quantity int, imageURL string) error {
	if itemID == "" {
		return shared.NewValidationError("itemID", "must not be empty")
	}

	existing, err := s.inventoryRepo.FindByID(ctx, itemID)
	if err != nil {
		var notFound *shared.NotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to load inventory entry: %w", err)
		}
		entry := &inventory.Entry{
			ItemID:   itemID,
			ItemName: itemName,
			Quantity: quantity,
			ImageURL: imageURL,
		}
		entry.Clamp()
		if err := s.inventoryRepo.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save inventory entry: %w", err)
		}
		return nil
	}

	if quantity < 0 {
		quantity = 0
	}
	if err := s.inventoryRepo.UpdateQuantity(ctx, existing.ItemID, quantity); err != nil {
		return fmt.Errorf("failed to update inventory quantity: %w", err)
	}
	return nil
}

// Increment adds one to the owned quantity, creating the entry at 1
func (s *Service) Increment(ctx context.Context, itemID, itemName, imageURL string) error {
	existing, err := s.inventoryRepo.FindByID(ctx, itemID)
	if err != nil {
		var notFound *shared.NotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to load inventory entry: %w", err)
		}
		entry := &inventory.Entry{
			ItemID:   itemID,
			ItemName: itemName,
			Quantity: 1,
			ImageURL: imageURL,
		}
		if err := s.inventoryRepo.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save inventory entry: %w", err)
		}
		return nil
	}

	if err := s.inventoryRepo.UpdateQuantity(ctx, itemID, existing.Quantity+1); err != nil {
		return fmt.Errorf("failed to update inventory quantity: %w", err)
	}
	return nil
}

// Decrement subtracts one from the owned quantity. Missing entries and
// entries already at zero are left untouched.
func (s *Service) Decrement(ctx context.Context, itemID string) error {
	existing, err := s.inventoryRepo.FindByID(ctx, itemID)
	if err != nil {
		var notFound *shared.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to load inventory entry: %w", err)
	}

	if existing.Quantity <= 0 {
		return nil
	}
	if err := s.inventoryRepo.UpdateQuantity(ctx, itemID, existing.Quantity-1); err != nil {
		return fmt.Errorf("failed to update inventory quantity: %w", err)
	}
	return nil
}

// GetEntry returns a single inventory entry
func (s *Service) GetEntry(ctx context.Context, itemID string) (*inventory.Entry, error) {
	return s.inventoryRepo.FindByID(ctx, itemID)
}

// ListEntries returns the full inventory
func (s *Service) ListEntries(ctx context.Context) ([]*inventory.Entry, error) {
	return s.inventoryRepo.FindAll(ctx)
}

// CollectedCount returns how many distinct items are owned with quantity > 0
func (s *Service) CollectedCount(ctx context.Context) (int64, error) {
	return s.inventoryRepo.CollectedCount(ctx)
}
