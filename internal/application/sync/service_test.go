package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonog/arcraiders-go/internal/adapters/persistence"
	appsync "github.com/harrisonog/arcraiders-go/internal/application/sync"
	"github.com/harrisonog/arcraiders-go/internal/domain/event"
	"github.com/harrisonog/arcraiders-go/internal/domain/item"
	"github.com/harrisonog/arcraiders-go/internal/domain/quest"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/syncstate"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/logging"
	"github.com/harrisonog/arcraiders-go/test/helpers"
)

// mockCatalogClient serves canned catalog data and counts calls
type mockCatalogClient struct {
	quests []*quest.Quest
	items  []*item.Item
	events []*event.MapEvent

	questCalls int
	itemCalls  int
	eventCalls int

	err error
}

func (m *mockCatalogClient) GetQuests(ctx context.Context) ([]*quest.Quest, error) {
	m.questCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.quests, nil
}

func (m *mockCatalogClient) GetItems(ctx context.Context, itemType string) ([]*item.Item, error) {
	m.itemCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockCatalogClient) GetEventTimers(ctx context.Context) ([]*event.MapEvent, error) {
	m.eventCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

// mockDescriptions is a fixed event-name to description lookup
type mockDescriptions map[string]string

func (m mockDescriptions) Description(eventName string) (string, bool) {
	d, ok := m[eventName]
	return d, ok
}

type syncServiceFixture struct {
	svc       *appsync.Service
	client    *mockCatalogClient
	questRepo *persistence.GormQuestRepository
	itemRepo  *persistence.GormItemRepository
	eventRepo *persistence.GormEventRepository
	stateRepo *persistence.GormSyncStateRepository
	clock     *shared.MockClock
}

func newSyncServiceFixture(t *testing.T) *syncServiceFixture {
	t.Helper()
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	client := &mockCatalogClient{
		quests: []*quest.Quest{{
			ID:   "q-scrap-run",
			Name: "Scrap Run",
			Objectives: []quest.Objective{
				{ID: "obj-1", Description: "Collect scrap", OrderIndex: 0},
			},
			Status:              quest.StatusNotStarted,
			CompletedObjectives: map[string]bool{},
		}},
		items: []*item.Item{{
			ID: "scrap", Name: "Scrap", Category: item.CategoryMaterial,
		}},
		events: []*event.MapEvent{{
			ID:   "dam_battlegrounds_electromagnetic_storm",
			Name: "Electromagnetic Storm",
			Map:  "Dam Battlegrounds",
			Times: []event.Window{
				{Start: "13:00", End: "14:00"},
			},
		}},
	}

	questRepo := persistence.NewGormQuestRepository(db, nil)
	itemRepo := persistence.NewGormItemRepository(db, nil)
	eventRepo := persistence.NewGormEventRepository(db, nil)
	stateRepo := persistence.NewGormSyncStateRepository(db)

	descriptions := mockDescriptions{
		"Electromagnetic Storm": "Disables shields and electronics in the area",
	}

	svc := appsync.NewService(
		client, questRepo, itemRepo, eventRepo, stateRepo,
		descriptions, clock, 21*24*time.Hour, logging.NewNopLogger(),
	)

	return &syncServiceFixture{
		svc:       svc,
		client:    client,
		questRepo: questRepo,
		itemRepo:  itemRepo,
		eventRepo: eventRepo,
		stateRepo: stateRepo,
		clock:     clock,
	}
}

func TestSyncService_Sync_RefreshesEmptyStore(t *testing.T) {
	// Arrange
	f := newSyncServiceFixture(t)
	ctx := context.Background()

	// Act
	err := f.svc.Sync(ctx, syncstate.KindQuests)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, f.client.questCalls)

	count, err := f.questRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	last, ok, err := f.stateRepo.LastSync(ctx, syncstate.KindQuests)
	require.NoError(t, err)
	require.True(t, ok)
	assert.WithinDuration(t, f.clock.Now(), last, time.Second)
}

func TestSyncService_Sync_SkipsFreshStore(t *testing.T) {
	// Arrange
	f := newSyncServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Sync(ctx, syncstate.KindQuests))

	// Act: one day later the catalog is still considered fresh
	f.clock.Advance(24 * time.Hour)
	err := f.svc.Sync(ctx, syncstate.KindQuests)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, f.client.questCalls)
}

func TestSyncService_Sync_RefreshesStaleStore(t *testing.T) {
	// Arrange
	f := newSyncServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Sync(ctx, syncstate.KindQuests))

	// Act: past the maximum age the catalog refreshes again
	f.clock.Advance(22 * 24 * time.Hour)
	err := f.svc.Sync(ctx, syncstate.KindQuests)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, f.client.questCalls)
}

func TestSyncService_Refresh_PreservesQuestProgress(t *testing.T) {
	// Arrange: sync once, make local progress, then force a re-sync
	f := newSyncServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx, syncstate.KindQuests))
	require.NoError(t, f.questRepo.UpdateStatus(ctx, "q-scrap-run", quest.StatusInProgress))
	require.NoError(t, f.questRepo.UpdateCompletedObjectives(ctx, "q-scrap-run", map[string]bool{"obj-1": true}))

	// The remote copy arrives with fresh state every time
	f.client.quests[0].Status = quest.StatusNotStarted
	f.client.quests[0].CompletedObjectives = map[string]bool{}

	// Act
	err := f.svc.Refresh(ctx, syncstate.KindQuests)

	// Assert
	require.NoError(t, err)
	q, err := f.questRepo.FindByID(ctx, "q-scrap-run")
	require.NoError(t, err)
	assert.Equal(t, quest.StatusInProgress, q.Status)
	assert.True(t, q.CompletedObjectives["obj-1"])
}

func TestSyncService_Refresh_FillsBlankEventDescription(t *testing.T) {
	// Arrange
	f := newSyncServiceFixture(t)
	ctx := context.Background()

	// Act
	err := f.svc.Refresh(ctx, syncstate.KindEvents)

	// Assert
	require.NoError(t, err)
	e, err := f.eventRepo.FindByID(ctx, "dam_battlegrounds_electromagnetic_storm")
	require.NoError(t, err)
	assert.Equal(t, "Disables shields and electronics in the area", e.Description)
}

func TestSyncService_Refresh_KeepsRemoteEventDescription(t *testing.T) {
	// Arrange
	f := newSyncServiceFixture(t)
	ctx := context.Background()
	f.client.events[0].Description = "Remote description"

	// Act
	err := f.svc.Refresh(ctx, syncstate.KindEvents)

	// Assert
	require.NoError(t, err)
	e, err := f.eventRepo.FindByID(ctx, "dam_battlegrounds_electromagnetic_storm")
	require.NoError(t, err)
	assert.Equal(t, "Remote description", e.Description)
}

func TestSyncService_Refresh_FetchFailureLeavesCacheUntouched(t *testing.T) {
	// Arrange
	f := newSyncServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Refresh(ctx, syncstate.KindItems))
	f.client.err = shared.NewTransportError("max retries exceeded", nil)

	// Act
	err := f.svc.Refresh(ctx, syncstate.KindItems)

	// Assert: the error surfaces and the previous catalog survives
	require.Error(t, err)
	count, err := f.itemRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSyncService_SyncAll_StopsAtFirstFailure(t *testing.T) {
	// Arrange
	f := newSyncServiceFixture(t)
	f.client.err = shared.NewTransportError("max retries exceeded", nil)

	// Act
	err := f.svc.SyncAll(context.Background())

	// Assert: quests fail first, items and events are never fetched
	require.Error(t, err)
	assert.Equal(t, 1, f.client.questCalls)
	assert.Equal(t, 0, f.client.itemCalls)
	assert.Equal(t, 0, f.client.eventCalls)
}

func TestSyncService_SyncAll_RefreshesEveryKind(t *testing.T) {
	// Arrange
	f := newSyncServiceFixture(t)
	ctx := context.Background()

	// Act
	err := f.svc.SyncAll(ctx)

	// Assert
	require.NoError(t, err)
	for _, kind := range syncstate.Kinds() {
		_, ok, err := f.stateRepo.LastSync(ctx, kind)
		require.NoError(t, err)
		assert.True(t, ok, "expected a recorded sync for %s", kind)
	}
}
