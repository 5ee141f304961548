package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/harrisonog/arcraiders-go/internal/domain/event"
	"github.com/harrisonog/arcraiders-go/internal/domain/item"
	"github.com/harrisonog/arcraiders-go/internal/domain/quest"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/config"
)

const (
	defaultBaseURL     = "https://metaforge.app/api/arc-raiders"
	defaultTimeout     = 30 * time.Second
	defaultPageSize    = 100
	defaultMaxRetries  = 3
	defaultBackoffBase = time.Second
)

// MetaForgeClient talks to the MetaForge ARC Raiders API
type MetaForgeClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	pageSize    int
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// NewMetaForgeClient creates a client with default settings
// Rate limit: 2 requests per second with burst of 4
func NewMetaForgeClient() *MetaForgeClient {
	return &MetaForgeClient{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: rate.NewLimiter(rate.Limit(2), 4),
		baseURL:     defaultBaseURL,
		pageSize:    defaultPageSize,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
		clock:       shared.NewRealClock(),
	}
}

// NewMetaForgeClientWithConfig creates a client from configuration.
// If clock is nil, uses RealClock for production.
func NewMetaForgeClientWithConfig(cfg *config.APIConfig, clock shared.Clock) *MetaForgeClient {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &MetaForgeClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst),
		baseURL:     cfg.BaseURL,
		pageSize:    cfg.PageSize,
		maxRetries:  cfg.Retry.MaxAttempts,
		backoffBase: cfg.Retry.BackoffBase,
		clock:       clock,
	}
}

// GetQuests retrieves the full quest catalog, following pagination.
// Records missing an id or name are skipped. Returned quests carry
// NOT_STARTED status; local progress is layered on by the sync service.
func (c *MetaForgeClient) GetQuests(ctx context.Context) ([]*quest.Quest, error) {
	var all []*quest.Quest
	page := 1

	for {
		path := fmt.Sprintf("/quests?page=%d&limit=%d", page, c.pageSize)

		var response struct {
			Data []struct {
				ID          string `json:"id"`
				Name        string `json:"name"`
				Description string `json:"description"`
				Objectives  []struct {
					ID          string `json:"id"`
					Description string `json:"description"`
					Order       int    `json:"order"`
				} `json:"objectives"`
				RequiredItems []struct {
					ItemID   string `json:"item_id"`
					ItemName string `json:"item_name"`
					Quantity int    `json:"quantity"`
					ImageURL string `json:"image_url"`
				} `json:"required_items"`
				Rewards []struct {
					ItemID   string `json:"item_id"`
					ItemName string `json:"item_name"`
					Quantity int    `json:"quantity"`
					ImageURL string `json:"image_url"`
					Type     string `json:"type"`
				} `json:"rewards"`
				XP            *int     `json:"xp"`
				Map           string   `json:"map"`
				QuestChain    string   `json:"quest_chain"`
				Prerequisites []string `json:"prerequisites"`
				ImageURL      string   `json:"image_url"`
			} `json:"data"`
			Pagination struct {
				Page       int  `json:"page"`
				Limit      int  `json:"limit"`
				Total      int  `json:"total"`
				TotalPages int  `json:"totalPages"`
				HasNext    bool `json:"hasNextPage"`
			} `json:"pagination"`
		}

		if err := c.request(ctx, "GET", path, &response); err != nil {
			return nil, fmt.Errorf("failed to list quests (page %d): %w", page, err)
		}

		if len(response.Data) == 0 {
			break
		}

		for _, dto := range response.Data {
			if dto.ID == "" || dto.Name == "" {
				continue
			}

			objectives := make([]quest.Objective, 0, len(dto.Objectives))
			for _, o := range dto.Objectives {
				if o.ID == "" || o.Description == "" {
					continue
				}
				objectives = append(objectives, quest.Objective{
					ID:          o.ID,
					Description: o.Description,
					OrderIndex:  o.Order,
				})
			}

			required := make([]shared.RequiredItem, 0, len(dto.RequiredItems))
			for _, r := range dto.RequiredItems {
				if r.ItemID == "" || r.ItemName == "" || r.Quantity == 0 {
					continue
				}
				required = append(required, shared.RequiredItem{
					ItemID:   r.ItemID,
					ItemName: r.ItemName,
					Quantity: r.Quantity,
					ImageURL: r.ImageURL,
				})
			}

			rewards := make([]shared.Reward, 0, len(dto.Rewards))
			for _, r := range dto.Rewards {
				if r.ItemName == "" {
					continue
				}
				qty := r.Quantity
				if qty == 0 {
					qty = 1
				}
				rewards = append(rewards, shared.Reward{
					ItemID:   r.ItemID,
					ItemName: r.ItemName,
					Quantity: qty,
					ImageURL: r.ImageURL,
					Type:     shared.ParseRewardType(r.Type),
				})
			}

			all = append(all, &quest.Quest{
				ID:                  dto.ID,
				Name:                dto.Name,
				Description:         dto.Description,
				Objectives:          objectives,
				RequiredItems:       required,
				Rewards:             rewards,
				XPReward:            dto.XP,
				Status:              quest.StatusNotStarted,
				CompletedObjectives: map[string]bool{},
				MapLocation:         dto.Map,
				QuestChain:          dto.QuestChain,
				Prerequisites:       dto.Prerequisites,
				ImageURL:            dto.ImageURL,
			})
		}

		if response.Pagination.TotalPages > 0 && page >= response.Pagination.TotalPages {
			break
		}
		page++
	}

	return all, nil
}

// GetItems retrieves the full item catalog, following pagination.
// itemType filters server-side when non-empty. Records missing an id or
// name are skipped.
func (c *MetaForgeClient) GetItems(ctx context.Context, itemType string) ([]*item.Item, error) {
	var all []*item.Item
	page := 1

	for {
		path := fmt.Sprintf("/items?page=%d&limit=%d", page, c.pageSize)
		if itemType != "" {
			path += "&item_type=" + itemType
		}

		var response struct {
			Data []struct {
				ID          string `json:"id"`
				Name        string `json:"name"`
				Description string `json:"description"`
				ItemType    string `json:"item_type"`
				Icon        string `json:"icon"`
				Rarity      string `json:"rarity"`
				Value       *int     `json:"value"`
				IsQuestItem bool     `json:"is_quest_item"`
				NeededFor   []string `json:"needed_for_quests"`
				Recycling   []struct {
					MaterialName string `json:"material_name"`
					Quantity     int    `json:"quantity"`
				} `json:"recycling_materials"`
			} `json:"data"`
			Pagination struct {
				Page       int `json:"page"`
				TotalPages int `json:"totalPages"`
			} `json:"pagination"`
		}

		if err := c.request(ctx, "GET", path, &response); err != nil {
			return nil, fmt.Errorf("failed to list items (page %d): %w", page, err)
		}

		if len(response.Data) == 0 {
			break
		}

		for _, dto := range response.Data {
			if dto.ID == "" || dto.Name == "" {
				continue
			}

			recycling := make([]item.RecyclingMaterial, 0, len(dto.Recycling))
			for _, r := range dto.Recycling {
				if r.MaterialName == "" || r.Quantity == 0 {
					continue
				}
				recycling = append(recycling, item.RecyclingMaterial{
					MaterialName: r.MaterialName,
					Quantity:     r.Quantity,
				})
			}

			all = append(all, &item.Item{
				ID:                 dto.ID,
				Name:               dto.Name,
				Description:        dto.Description,
				ImageURL:           dto.Icon,
				Category:           item.ParseCategory(dto.ItemType),
				Rarity:             item.ParseRarity(dto.Rarity),
				IsQuestItem:        dto.IsQuestItem,
				NeededForQuests:    dto.NeededFor,
				SellValue:          dto.Value,
				RecyclingMaterials: recycling,
			})
		}

		if response.Pagination.TotalPages > 0 && page >= response.Pagination.TotalPages {
			break
		}
		page++
	}

	return all, nil
}

// GetEventTimers retrieves the map event schedule. The endpoint carries no
// record ids; a stable id is derived from map and event name. Records missing
// a name or map are skipped, as are time windows missing either bound.
func (c *MetaForgeClient) GetEventTimers(ctx context.Context) ([]*event.MapEvent, error) {
	var response struct {
		Data []struct {
			Name        string `json:"name"`
			Map         string `json:"map"`
			Icon        string `json:"icon"`
			Description string `json:"description"`
			Times       []struct {
				Start string `json:"start"`
				End   string `json:"end"`
			} `json:"times"`
		} `json:"data"`
	}

	if err := c.request(ctx, "GET", "/event-timers", &response); err != nil {
		return nil, fmt.Errorf("failed to list event timers: %w", err)
	}

	events := make([]*event.MapEvent, 0, len(response.Data))
	for _, dto := range response.Data {
		if dto.Name == "" || dto.Map == "" {
			continue
		}

		times := make([]event.Window, 0, len(dto.Times))
		for _, t := range dto.Times {
			if t.Start == "" || t.End == "" {
				continue
			}
			times = append(times, event.Window{Start: t.Start, End: t.End})
		}

		events = append(events, &event.MapEvent{
			ID:          event.NewEventID(dto.Map, dto.Name),
			Name:        dto.Name,
			Map:         dto.Map,
			IconURL:     dto.Icon,
			Description: dto.Description,
			Times:       times,
		})
	}

	return events, nil
}

// addJitter adds random jitter to a duration to avoid thundering herd.
// Returns a duration between 50% and 150% of the original value.
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}

// request makes an HTTP request with rate limiting and exponential backoff retries
func (c *MetaForgeClient) request(ctx context.Context, method, path string, result interface{}) error {
	url := c.baseURL + path

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return shared.NewTransportError("rate limiter error", err)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Network error - retryable
			lastErr = fmt.Errorf("network error: %w", err)

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return shared.NewTransportError("context cancelled", ctx.Err())
			}

			c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return shared.NewTransportError("failed to read response", err)
		}

		// 429 is retryable and may carry a Retry-After hint
		if resp.StatusCode == http.StatusTooManyRequests {
			var retryAfter time.Duration
			if header := resp.Header.Get("Retry-After"); header != "" {
				if seconds, err := strconv.Atoi(header); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			}

			lastErr = fmt.Errorf("rate limited (429)")

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return shared.NewTransportError("context cancelled", ctx.Err())
			}

			delay := addJitter(c.backoffBase * time.Duration(1<<attempt))
			if retryAfter > 0 {
				// Use the server-provided value without jitter
				delay = retryAfter
			}
			c.clock.Sleep(delay)
			continue
		}

		// 5xx server errors are retryable
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error (%d)", resp.StatusCode)

			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return shared.NewTransportError("context cancelled", ctx.Err())
			}

			c.clock.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}

		// Remaining 4xx client errors are terminal
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return shared.NewTransportError(fmt.Sprintf("API error (status %d): %s", resp.StatusCode, string(respBody)), nil)
		}

		if result != nil {
			if err := json.Unmarshal(respBody, result); err != nil {
				return shared.NewTransportError("failed to unmarshal response", err)
			}
		}

		return nil
	}

	if lastErr != nil {
		return shared.NewTransportError("max retries exceeded", lastErr)
	}
	return shared.NewTransportError("max retries exceeded", nil)
}
