package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonog/arcraiders-go/internal/adapters/api"
	"github.com/harrisonog/arcraiders-go/internal/domain/item"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.Handler) *api.MetaForgeClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.APIConfig{
		BaseURL:  server.URL,
		PageSize: 2,
		RateLimit: config.RateLimitConfig{
			Requests: 1000,
			Burst:    1000,
		},
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts: 2,
			BackoffBase: time.Millisecond,
		},
	}
	clock := shared.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	return api.NewMetaForgeClientWithConfig(cfg, clock)
}

func TestMetaForgeClient_GetQuests_FollowsPagination(t *testing.T) {
	// Arrange: two pages of quests
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quests", r.URL.Path)
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		if page == "1" {
			fmt.Fprint(w, `{
				"data": [
					{"id": "q1", "name": "First", "objectives": [{"id": "o1", "description": "Go", "order": 0}]},
					{"id": "q2", "name": "Second"}
				],
				"pagination": {"page": 1, "totalPages": 2}
			}`)
			return
		}
		fmt.Fprint(w, `{
			"data": [{"id": "q3", "name": "Third"}],
			"pagination": {"page": 2, "totalPages": 2}
		}`)
	})
	client := newTestClient(t, handler)

	// Act
	quests, err := client.GetQuests(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, quests, 3)
	assert.Equal(t, "q1", quests[0].ID)
	assert.Equal(t, "q3", quests[2].ID)
	require.Len(t, quests[0].Objectives, 1)
	assert.Equal(t, "o1", quests[0].Objectives[0].ID)
}

func TestMetaForgeClient_GetQuests_SkipsRecordsMissingIDOrName(t *testing.T) {
	// Arrange
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [
				{"id": "", "name": "Nameless"},
				{"id": "q-ok", "name": "Fine"},
				{"id": "q-missing-name"}
			],
			"pagination": {"page": 1, "totalPages": 1}
		}`)
	})
	client := newTestClient(t, handler)

	// Act
	quests, err := client.GetQuests(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, quests, 1)
	assert.Equal(t, "q-ok", quests[0].ID)
}

func TestMetaForgeClient_GetQuests_RewardQuantityDefaultsToOne(t *testing.T) {
	// Arrange
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [{
				"id": "q1", "name": "First",
				"rewards": [{"item_name": "Credits", "type": "currency"}]
			}],
			"pagination": {"page": 1, "totalPages": 1}
		}`)
	})
	client := newTestClient(t, handler)

	// Act
	quests, err := client.GetQuests(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, quests, 1)
	require.Len(t, quests[0].Rewards, 1)
	assert.Equal(t, 1, quests[0].Rewards[0].Quantity)
}

func TestMetaForgeClient_GetItems_PassesTypeFilter(t *testing.T) {
	// Arrange
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "material", r.URL.Query().Get("item_type"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [{
				"id": "scrap", "name": "Scrap", "item_type": "material", "rarity": "common",
				"recycling_materials": [{"material_name": "Metal", "quantity": 2}]
			}],
			"pagination": {"page": 1, "totalPages": 1}
		}`)
	})
	client := newTestClient(t, handler)

	// Act
	items, err := client.GetItems(context.Background(), "material")

	// Assert
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.CategoryMaterial, items[0].Category)
	assert.Equal(t, item.RarityCommon, items[0].Rarity)
	require.Len(t, items[0].RecyclingMaterials, 1)
	assert.Equal(t, "Metal", items[0].RecyclingMaterials[0].MaterialName)
}

func TestMetaForgeClient_GetEventTimers_DerivesStableIDs(t *testing.T) {
	// Arrange
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/event-timers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [
				{
					"name": "Electromagnetic Storm", "map": "Dam Battlegrounds",
					"times": [{"start": "13:00", "end": "14:00"}, {"start": "21:00"}]
				},
				{"name": "No Map Event"}
			]
		}`)
	})
	client := newTestClient(t, handler)

	// Act
	events, err := client.GetEventTimers(context.Background())

	// Assert: mapless record skipped, incomplete window dropped
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "dam_battlegrounds_electromagnetic_storm", events[0].ID)
	require.Len(t, events[0].Times, 1)
	assert.Equal(t, "13:00", events[0].Times[0].Start)
}

func TestMetaForgeClient_RetriesServerErrors(t *testing.T) {
	// Arrange: first two responses fail, third succeeds
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": []}`)
	})
	client := newTestClient(t, handler)

	// Act
	events, err := client.GetEventTimers(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 3, attempts)
}

func TestMetaForgeClient_RetriesRateLimitWithRetryAfter(t *testing.T) {
	// Arrange
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": []}`)
	})
	client := newTestClient(t, handler)

	// Act
	_, err := client.GetEventTimers(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestMetaForgeClient_GivesUpAfterMaxRetries(t *testing.T) {
	// Arrange
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := newTestClient(t, handler)

	// Act
	_, err := client.GetEventTimers(context.Background())

	// Assert
	require.Error(t, err)
	var transport *shared.TransportError
	assert.ErrorAs(t, err, &transport)
	assert.Equal(t, 3, attempts)
}

func TestMetaForgeClient_ClientErrorIsTerminal(t *testing.T) {
	// Arrange
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	})
	client := newTestClient(t, handler)

	// Act
	_, err := client.GetEventTimers(context.Background())

	// Assert: 4xx never retries
	require.Error(t, err)
	var transport *shared.TransportError
	assert.ErrorAs(t, err, &transport)
	assert.Equal(t, 1, attempts)
}
