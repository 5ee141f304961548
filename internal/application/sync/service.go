package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harrisonog/arcraiders-go/internal/domain/event"
	"github.com/harrisonog/arcraiders-go/internal/domain/item"
	"github.com/harrisonog/arcraiders-go/internal/domain/quest"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/syncstate"
)

// CatalogClient is the remote source of reference data
type CatalogClient interface {
	GetQuests(ctx context.Context) ([]*quest.Quest, error)
	GetItems(ctx context.Context, itemType string) ([]*item.Item, error)
	GetEventTimers(ctx context.Context) ([]*event.MapEvent, error)
}

// Service refreshes the local catalog from the remote API. Reference data is
// slow-moving, so a kind only refreshes when its table is empty or its last
// successful sync is older than the configured maximum age. The local cache
// stays untouched when a fetch fails.
type Service struct {
	client       CatalogClient
	questRepo    quest.Repository
	itemRepo     item.Repository
	eventRepo    event.Repository
	stateRepo    syncstate.Repository
	descriptions event.DescriptionProvider
	clock        shared.Clock
	maxAge       time.Duration
	logger       *zap.Logger
}

// NewService creates a new sync service
func NewService(
	client CatalogClient,
	questRepo quest.Repository,
	itemRepo item.Repository,
	eventRepo event.Repository,
	stateRepo syncstate.Repository,
	descriptions event.DescriptionProvider,
	clock shared.Clock,
	maxAge time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		client:       client,
		questRepo:    questRepo,
		itemRepo:     itemRepo,
		eventRepo:    eventRepo,
		stateRepo:    stateRepo,
		descriptions: descriptions,
		clock:        clock,
		maxAge:       maxAge,
		logger:       logger,
	}
}

// SyncAll runs Sync for every data kind, stopping at the first failure
func (s *Service) SyncAll(ctx context.Context) error {
	for _, kind := range syncstate.Kinds() {
		if err := s.Sync(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

// Sync refreshes one data kind when it is stale, otherwise succeeds without
// touching the network
func (s *Service) Sync(ctx context.Context, kind syncstate.DataKind) error {
	stale, err := s.isStale(ctx, kind)
	if err != nil {
		return err
	}
	if !stale {
		s.logger.Debug("catalog fresh, skipping sync", zap.String("kind", string(kind)))
		return nil
	}
	return s.Refresh(ctx, kind)
}

// Refresh unconditionally fetches one data kind and upserts it into the local
// store, then records the sync time
func (s *Service) Refresh(ctx context.Context, kind syncstate.DataKind) error {
	var err error
	switch kind {
	case syncstate.KindQuests:
		err = s.refreshQuests(ctx)
	case syncstate.KindItems:
		err = s.refreshItems(ctx)
	case syncstate.KindEvents:
		err = s.refreshEvents(ctx)
	default:
		return shared.NewValidationError("kind", fmt.Sprintf("unknown data kind: %s", kind))
	}
	if err != nil {
		return err
	}

	if err := s.stateRepo.RecordSync(ctx, kind, s.clock.Now()); err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}
	return nil
}

func (s *Service) isStale(ctx context.Context, kind syncstate.DataKind) (bool, error) {
	var count int64
	var err error
	switch kind {
	case syncstate.KindQuests:
		count, err = s.questRepo.Count(ctx)
	case syncstate.KindItems:
		count, err = s.itemRepo.Count(ctx)
	case syncstate.KindEvents:
		count, err = s.eventRepo.Count(ctx)
	default:
		return false, shared.NewValidationError("kind", fmt.Sprintf("unknown data kind: %s", kind))
	}
	if err != nil {
		return false, fmt.Errorf("failed to count %s: %w", kind, err)
	}
	if count == 0 {
		return true, nil
	}

	lastSync, ok, err := s.stateRepo.LastSync(ctx, kind)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return s.clock.Now().Sub(lastSync) > s.maxAge, nil
}

// refreshQuests upserts the quest catalog while preserving local progress:
// a quest already in the store keeps its status and completed objectives.
func (s *Service) refreshQuests(ctx context.Context) error {
	quests, err := s.client.GetQuests(ctx)
	if err != nil {
		return fmt.Errorf("quest sync failed: %w", err)
	}

	for _, q := range quests {
		existing, err := s.questRepo.FindByID(ctx, q.ID)
		if err != nil {
			var notFound *shared.NotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to load quest %s: %w", q.ID, err)
			}
		} else {
			q.Status = existing.Status
			q.CompletedObjectives = existing.CompletedObjectives
		}

		if err := s.questRepo.Save(ctx, q); err != nil {
			return fmt.Errorf("failed to save quest %s: %w", q.ID, err)
		}
	}

	s.logger.Info("quest catalog synced", zap.Int("count", len(quests)))
	return nil
}

func (s *Service) refreshItems(ctx context.Context) error {
	items, err := s.client.GetItems(ctx, "")
	if err != nil {
		return fmt.Errorf("item sync failed: %w", err)
	}

	for _, i := range items {
		if err := s.itemRepo.Save(ctx, i); err != nil {
			return fmt.Errorf("failed to save item %s: %w", i.ID, err)
		}
	}

	s.logger.Info("item catalog synced", zap.Int("count", len(items)))
	return nil
}

// refreshEvents upserts the event schedule, filling blank descriptions from
// the bundled lookup
func (s *Service) refreshEvents(ctx context.Context) error {
	events, err := s.client.GetEventTimers(ctx)
	if err != nil {
		return fmt.Errorf("event sync failed: %w", err)
	}

	for _, e := range events {
		if e.Description == "" {
			if description, ok := s.descriptions.Description(e.Name); ok {
				e.Description = description
			}
		}
		if err := s.eventRepo.Save(ctx, e); err != nil {
			return fmt.Errorf("failed to save event %s: %w", e.ID, err)
		}
	}

	s.logger.Info("event schedule synced", zap.Int("count", len(events)))
	return nil
}
