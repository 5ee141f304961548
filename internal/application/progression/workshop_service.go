package progression

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appwishlist "github.com/harrisonog/arcraiders-go/internal/application/wishlist"
	"github.com/harrisonog/arcraiders-go/internal/domain/inventory"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/workshop"
)

// UpgradeWithInventory pairs an upgrade level with the owned counts of its
// required items
type UpgradeWithInventory struct {
	Upgrade       *workshop.Upgrade
	RequiredItems []shared.RequiredItemWithInventory
}

// WorkshopService drives workshop upgrade progression and its wishlist side
// effects. Level definitions come from the bundled assets; statuses live in
// the local store.
type WorkshopService struct {
	workshopRepo  workshop.Repository
	levelProvider workshop.LevelProvider
	inventoryRepo inventory.Repository
	wishlist      *appwishlist.Service
	logger        *zap.Logger
}

// NewWorkshopService creates a new workshop service
func NewWorkshopService(
	workshopRepo workshop.Repository,
	levelProvider workshop.LevelProvider,
	inventoryRepo inventory.Repository,
	wishlist *appwishlist.Service,
	logger *zap.Logger,
) *WorkshopService {
	return &WorkshopService{
		workshopRepo:  workshopRepo,
		levelProvider: levelProvider,
		inventoryRepo: inventoryRepo,
		wishlist:      wishlist,
		logger:        logger,
	}
}

// InitializeStations loads the bundled level definitions into the store.
// Idempotent: a persisted status always wins; fresh levels get level 1 and
// the level right after a station's highest completed one as NOT_STARTED,
// everything else LOCKED.
func (s *WorkshopService) InitializeStations(ctx context.Context) error {
	existing, err := s.workshopRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load persisted upgrades: %w", err)
	}
	persisted := make(map[string]workshop.Status, len(existing))
	highestCompleted := make(map[string]int)
	for _, u := range existing {
		persisted[u.LevelID] = u.Status
		if u.IsCompleted() && u.LevelNumber > highestCompleted[u.StationID] {
			highestCompleted[u.StationID] = u.LevelNumber
		}
	}

	defs := s.levelProvider.AllUpgrades()
	upgrades := make([]*workshop.Upgrade, 0, len(defs))
	for _, def := range defs {
		u := *def
		if status, ok := persisted[u.LevelID]; ok {
			u.Status = status
		} else {
			u.Status = workshop.InitialStatus(u.LevelNumber, highestCompleted[u.StationID])
		}
		upgrades = append(upgrades, &u)
	}

	if err := s.workshopRepo.SaveAll(ctx, upgrades); err != nil {
		return fmt.Errorf("failed to save upgrades: %w", err)
	}
	s.logger.Info("workshop stations initialized", zap.Int("levels", len(upgrades)))
	return nil
}

// StartUpgrade moves a level to IN_PROGRESS and merges its required items
// into the wishlist under the level id. Locked levels are rejected.
func (s *WorkshopService) StartUpgrade(ctx context.Context, levelID string) error {
	u, err := s.workshopRepo.FindByID(ctx, levelID)
	if err != nil {
		return err
	}
	if u.Status == workshop.StatusLocked {
		return shared.NewLockedUpgradeError(levelID)
	}

	if err := s.workshopRepo.UpdateStatus(ctx, levelID, workshop.StatusInProgress); err != nil {
		return err
	}
	s.logger.Info("workshop upgrade started",
		zap.String("level_id", levelID),
		zap.String("station_id", u.StationID))

	if len(u.RequiredItems) > 0 {
		if err := s.wishlist.MergeRequiredItems(ctx, levelID, u.RequiredItems); err != nil {
			return fmt.Errorf("failed to merge upgrade demand into wishlist: %w", err)
		}
	}
	return nil
}

// CompleteUpgrade commits a level as COMPLETED, releases its wishlist demand,
// and unlocks the station's next level if that level is currently LOCKED. A
// next level already carrying progress is left alone.
func (s *WorkshopService) CompleteUpgrade(ctx context.Context, levelID string) error {
	u, err := s.workshopRepo.FindByID(ctx, levelID)
	if err != nil {
		return err
	}

	if err := s.workshopRepo.UpdateStatus(ctx, levelID, workshop.StatusCompleted); err != nil {
		return err
	}
	s.logger.Info("workshop upgrade completed",
		zap.String("level_id", levelID),
		zap.String("station_id", u.StationID))

	if err := s.wishlist.ReleaseDemand(ctx, levelID); err != nil {
		return fmt.Errorf("failed to release upgrade demand from wishlist: %w", err)
	}

	siblings, err := s.workshopRepo.FindByStation(ctx, u.StationID)
	if err != nil {
		return fmt.Errorf("failed to load station levels: %w", err)
	}
	for _, sibling := range siblings {
		if sibling.LevelNumber != u.LevelNumber+1 {
			continue
		}
		if sibling.Status == workshop.StatusLocked {
			if err := s.workshopRepo.UpdateStatus(ctx, sibling.LevelID, workshop.StatusNotStarted); err != nil {
				return fmt.Errorf("failed to unlock next level: %w", err)
			}
			s.logger.Info("workshop level unlocked", zap.String("level_id", sibling.LevelID))
		}
		break
	}
	return nil
}

// SetStatus writes a level status directly, without unlock or wishlist side
// effects
func (s *WorkshopService) SetStatus(ctx context.Context, levelID string, status workshop.Status) error {
	return s.workshopRepo.UpdateStatus(ctx, levelID, status)
}

// GetStation returns one station with its levels sorted by level number
func (s *WorkshopService) GetStation(ctx context.Context, stationID string) (*workshop.Station, error) {
	levels, err := s.workshopRepo.FindByStation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, shared.NewNotFoundError("station", stationID)
	}
	return s.buildStation(stationID, levels), nil
}

// ListStations returns every station with its levels
func (s *WorkshopService) ListStations(ctx context.Context) ([]*workshop.Station, error) {
	all, err := s.workshopRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byStation := make(map[string][]*workshop.Upgrade)
	var order []string
	for _, u := range all {
		if _, ok := byStation[u.StationID]; !ok {
			order = append(order, u.StationID)
		}
		byStation[u.StationID] = append(byStation[u.StationID], u)
	}

	stations := make([]*workshop.Station, 0, len(order))
	for _, stationID := range order {
		stations = append(stations, s.buildStation(stationID, byStation[stationID]))
	}
	return stations, nil
}

// GetUpgradeWithInventory returns a level with owned counts joined onto its
// required items
func (s *WorkshopService) GetUpgradeWithInventory(ctx context.Context, levelID string) (*UpgradeWithInventory, error) {
	u, err := s.workshopRepo.FindByID(ctx, levelID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]string, 0, len(u.RequiredItems))
	for _, required := range u.RequiredItems {
		itemIDs = append(itemIDs, required.ItemID)
	}
	owned, err := s.inventoryRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory for upgrade: %w", err)
	}
	ownedByID := make(map[string]int, len(owned))
	for _, inv := range owned {
		ownedByID[inv.ItemID] = inv.Quantity
	}

	joined := make([]shared.RequiredItemWithInventory, 0, len(u.RequiredItems))
	for _, required := range u.RequiredItems {
		joined = append(joined, shared.RequiredItemWithInventory{
			ItemID:         required.ItemID,
			ItemName:       required.ItemName,
			QuantityNeeded: required.Quantity,
			QuantityOwned:  ownedByID[required.ItemID],
			ImageURL:       required.ImageURL,
		})
	}
	return &UpgradeWithInventory{Upgrade: u, RequiredItems: joined}, nil
}

func (s *WorkshopService) buildStation(stationID string, levels []*workshop.Upgrade) *workshop.Station {
	station := &workshop.Station{
		StationID: stationID,
		Levels:    levels,
	}
	if meta, ok := s.levelProvider.StationMetadata(stationID); ok {
		station.StationName = meta.StationName
		station.Description = meta.Description
		station.ImageURL = meta.ImageURL
	}
	station.SortLevels()
	return station
}
