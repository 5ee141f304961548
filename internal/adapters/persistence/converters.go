package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// JSON shapes for list-valued columns

type requiredItemJSON struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"image_url,omitempty"`
}

type rewardJSON struct {
	ItemID   string `json:"item_id,omitempty"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"image_url,omitempty"`
	Type     string `json:"type"`
}

func marshalRequiredItems(items []shared.RequiredItem) (string, error) {
	out := make([]requiredItemJSON, 0, len(items))
	for _, ri := range items {
		out = append(out, requiredItemJSON{
			ItemID:   ri.ItemID,
			ItemName: ri.ItemName,
			Quantity: ri.Quantity,
			ImageURL: ri.ImageURL,
		})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to marshal required items: %w", err)
	}
	return string(raw), nil
}

func unmarshalRequiredItems(raw string) ([]shared.RequiredItem, error) {
	var parsed []requiredItemJSON
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal required items: %w", err)
	}
	out := make([]shared.RequiredItem, 0, len(parsed))
	for _, ri := range parsed {
		out = append(out, shared.RequiredItem{
			ItemID:   ri.ItemID,
			ItemName: ri.ItemName,
			Quantity: ri.Quantity,
			ImageURL: ri.ImageURL,
		})
	}
	return out, nil
}

func marshalRewards(rewards []shared.Reward) (string, error) {
	out := make([]rewardJSON, 0, len(rewards))
	for _, rw := range rewards {
		out = append(out, rewardJSON{
			ItemID:   rw.ItemID,
			ItemName: rw.ItemName,
			Quantity: rw.Quantity,
			ImageURL: rw.ImageURL,
			Type:     string(rw.Type),
		})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to marshal rewards: %w", err)
	}
	return string(raw), nil
}

func unmarshalRewards(raw string) ([]shared.Reward, error) {
	var parsed []rewardJSON
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rewards: %w", err)
	}
	out := make([]shared.Reward, 0, len(parsed))
	for _, rw := range parsed {
		out = append(out, shared.Reward{
			ItemID:   rw.ItemID,
			ItemName: rw.ItemName,
			Quantity: rw.Quantity,
			ImageURL: rw.ImageURL,
			Type:     shared.RewardType(rw.Type),
		})
	}
	return out, nil
}

func marshalStringSlice(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(raw), nil
}

func unmarshalStringSlice(raw string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal string list: %w", err)
	}
	return out, nil
}

// String sets persist as sorted-insensitive JSON arrays

func marshalStringSet(set map[string]bool) (string, error) {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	return marshalStringSlice(values)
}

func unmarshalStringSet(raw string) (map[string]bool, error) {
	values, err := unmarshalStringSlice(raw)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set, nil
}
