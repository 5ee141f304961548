package progression_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonog/arcraiders-go/internal/adapters/persistence"
	"github.com/harrisonog/arcraiders-go/internal/application/progression"
	appwishlist "github.com/harrisonog/arcraiders-go/internal/application/wishlist"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/workshop"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/logging"
	"github.com/harrisonog/arcraiders-go/test/helpers"
)

// stubLevelProvider serves a fixed three-level printer station
type stubLevelProvider struct {
	upgrades []*workshop.Upgrade
	metadata map[string]*workshop.StationMetadata
}

func (p *stubLevelProvider) AllUpgrades() []*workshop.Upgrade { return p.upgrades }

func (p *stubLevelProvider) StationMetadata(stationID string) (*workshop.StationMetadata, bool) {
	m, ok := p.metadata[stationID]
	return m, ok
}

func (p *stubLevelProvider) AllStationMetadata() []*workshop.StationMetadata {
	out := make([]*workshop.StationMetadata, 0, len(p.metadata))
	for _, m := range p.metadata {
		out = append(out, m)
	}
	return out
}

func printerProvider() *stubLevelProvider {
	return &stubLevelProvider{
		upgrades: []*workshop.Upgrade{
			{
				LevelID: "printer_1", StationID: "printer", LevelNumber: 1,
				Name: "Printer I",
				RequiredItems: []shared.RequiredItem{
					{ItemID: "metal-parts", ItemName: "Metal Parts", Quantity: 4},
				},
			},
			{
				LevelID: "printer_2", StationID: "printer", LevelNumber: 2,
				Name: "Printer II",
				RequiredItems: []shared.RequiredItem{
					{ItemID: "metal-parts", ItemName: "Metal Parts", Quantity: 8},
				},
			},
			{
				LevelID: "printer_3", StationID: "printer", LevelNumber: 3,
				Name: "Printer III",
			},
		},
		metadata: map[string]*workshop.StationMetadata{
			"printer": {StationID: "printer", StationName: "3D Printer"},
		},
	}
}

type workshopServiceFixture struct {
	svc          *progression.WorkshopService
	workshopRepo *persistence.GormWorkshopRepository
	wishlist     *appwishlist.Service
}

func newWorkshopServiceFixture(t *testing.T) *workshopServiceFixture {
	t.Helper()
	db := helpers.NewTestDB(t)
	logger := logging.NewNopLogger()
	clock := shared.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	workshopRepo := persistence.NewGormWorkshopRepository(db, nil)
	inventoryRepo := persistence.NewGormInventoryRepository(db, nil)
	wishlistRepo := persistence.NewGormWishlistRepository(db, nil)
	wishlistSvc := appwishlist.NewService(wishlistRepo, inventoryRepo, clock, logger)

	svc := progression.NewWorkshopService(workshopRepo, printerProvider(), inventoryRepo, wishlistSvc, logger)
	return &workshopServiceFixture{svc: svc, workshopRepo: workshopRepo, wishlist: wishlistSvc}
}

func TestWorkshopService_InitializeStations_FreshStore(t *testing.T) {
	// Arrange
	f := newWorkshopServiceFixture(t)
	ctx := context.Background()

	// Act
	err := f.svc.InitializeStations(ctx)

	// Assert: only level 1 starts available
	require.NoError(t, err)
	levels, err := f.workshopRepo.FindByStation(ctx, "printer")
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, workshop.StatusNotStarted, levels[0].Status)
	assert.Equal(t, workshop.StatusLocked, levels[1].Status)
	assert.Equal(t, workshop.StatusLocked, levels[2].Status)
}

func TestWorkshopService_InitializeStations_PersistedStatusWins(t *testing.T) {
	// Arrange: level 1 already completed in the store
	f := newWorkshopServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.workshopRepo.Save(ctx, &workshop.Upgrade{
		LevelID: "printer_1", StationID: "printer", LevelNumber: 1,
		Name: "Printer I", Status: workshop.StatusCompleted,
	}))

	// Act
	err := f.svc.InitializeStations(ctx)

	// Assert: level 2 unlocks from the persisted completion, level 3 stays locked
	require.NoError(t, err)
	levels, err := f.workshopRepo.FindByStation(ctx, "printer")
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, workshop.StatusCompleted, levels[0].Status)
	assert.Equal(t, workshop.StatusNotStarted, levels[1].Status)
	assert.Equal(t, workshop.StatusLocked, levels[2].Status)
}

func TestWorkshopService_InitializeStations_IsIdempotent(t *testing.T) {
	// Arrange
	f := newWorkshopServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.InitializeStations(ctx))
	require.NoError(t, f.svc.StartUpgrade(ctx, "printer_1"))

	// Act
	err := f.svc.InitializeStations(ctx)

	// Assert: progress survives a re-initialization
	require.NoError(t, err)
	level, err := f.workshopRepo.FindByID(ctx, "printer_1")
	require.NoError(t, err)
	assert.Equal(t, workshop.StatusInProgress, level.Status)
}

func TestWorkshopService_StartUpgrade_MergesDemand(t *testing.T) {
	// Arrange
	f := newWorkshopServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.InitializeStations(ctx))

	// Act
	err := f.svc.StartUpgrade(ctx, "printer_1")

	// Assert
	require.NoError(t, err)
	entry, err := f.wishlist.GetEntry(ctx, "metal-parts")
	require.NoError(t, err)
	assert.Equal(t, 4, entry.QuantityNeeded)
	assert.True(t, entry.HasSource("printer_1"))
}

func TestWorkshopService_StartUpgrade_RejectsLockedLevel(t *testing.T) {
	// Arrange
	f := newWorkshopServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.InitializeStations(ctx))

	// Act
	err := f.svc.StartUpgrade(ctx, "printer_2")

	// Assert
	var locked *shared.LockedUpgradeError
	assert.ErrorAs(t, err, &locked)
}

func TestWorkshopService_CompleteUpgrade_UnlocksNextLevel(t *testing.T) {
	// Arrange
	f := newWorkshopServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.InitializeStations(ctx))
	require.NoError(t, f.svc.StartUpgrade(ctx, "printer_1"))

	// Act
	err := f.svc.CompleteUpgrade(ctx, "printer_1")

	// Assert: demand released and level 2 unlocked, level 3 untouched
	require.NoError(t, err)
	_, err = f.wishlist.GetEntry(ctx, "metal-parts")
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	levels, err := f.workshopRepo.FindByStation(ctx, "printer")
	require.NoError(t, err)
	assert.Equal(t, workshop.StatusCompleted, levels[0].Status)
	assert.Equal(t, workshop.StatusNotStarted, levels[1].Status)
	assert.Equal(t, workshop.StatusLocked, levels[2].Status)
}

func TestWorkshopService_CompleteUpgrade_FullChain(t *testing.T) {
	// Arrange
	f := newWorkshopServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.InitializeStations(ctx))

	// Act: work through every level in order
	for _, levelID := range []string{"printer_1", "printer_2", "printer_3"} {
		require.NoError(t, f.svc.StartUpgrade(ctx, levelID))
		require.NoError(t, f.svc.CompleteUpgrade(ctx, levelID))
	}

	// Assert
	station, err := f.svc.GetStation(ctx, "printer")
	require.NoError(t, err)
	assert.Equal(t, 3, station.CurrentLevel())
	assert.InDelta(t, 1.0, station.Progress(), 0.0001)
	assert.Nil(t, station.NextUpgrade())
}

func TestWorkshopService_CompleteUpgrade_NextLevelWithProgressUntouched(t *testing.T) {
	// Arrange: level 2 forced into IN_PROGRESS, then level 1 completes
	f := newWorkshopServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.InitializeStations(ctx))
	require.NoError(t, f.svc.SetStatus(ctx, "printer_2", workshop.StatusInProgress))

	// Act
	err := f.svc.CompleteUpgrade(ctx, "printer_1")

	// Assert
	require.NoError(t, err)
	level, err := f.workshopRepo.FindByID(ctx, "printer_2")
	require.NoError(t, err)
	assert.Equal(t, workshop.StatusInProgress, level.Status)
}

func TestWorkshopService_GetStation_FillsMetadata(t *testing.T) {
	// Arrange
	f := newWorkshopServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.InitializeStations(ctx))

	// Act
	station, err := f.svc.GetStation(ctx, "printer")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "3D Printer", station.StationName)
	assert.Equal(t, 3, station.MaxLevel())
	require.NotNil(t, station.NextUpgrade())
	assert.Equal(t, "printer_1", station.NextUpgrade().LevelID)
}

func TestWorkshopService_GetStation_Unknown(t *testing.T) {
	// Arrange
	f := newWorkshopServiceFixture(t)

	// Act
	_, err := f.svc.GetStation(context.Background(), "smelter")

	// Assert
	var notFound *shared.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
