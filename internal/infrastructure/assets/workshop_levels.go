package assets

import (
	"encoding/json"
	"sync"

	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/workshop"
)

// workshopLevelsFile mirrors the bundled workshop_levels.json layout
type workshopLevelsFile struct {
	WorkshopStations []struct {
		StationID   string `json:"station_id"`
		StationName string `json:"station_name"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
		Levels      []struct {
			LevelID       string `json:"level_id"`
			LevelNumber   int    `json:"level_number"`
			Name          string `json:"name"`
			Description   string `json:"description"`
			Unlocks       string `json:"unlocks"`
			ImageURL      string `json:"image_url"`
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
		} `json:"levels"`
	} `json:"workshop_stations"`
}

// WorkshopLevelsProvider serves the station and level definitions bundled
// with the binary. Data is parsed once on first access and cached; a corrupt
// bundle degrades to empty lookups rather than failing callers.
type WorkshopLevelsProvider struct {
	once     sync.Once
	upgrades []*workshop.Upgrade
	metadata map[string]*workshop.StationMetadata
}

// Compile-time interface check
var _ workshop.LevelProvider = (*WorkshopLevelsProvider)(nil)

// NewWorkshopLevelsProvider creates a provider over the embedded definitions
func NewWorkshopLevelsProvider() *WorkshopLevelsProvider {
	return &WorkshopLevelsProvider{}
}

// AllUpgrades returns every level of every station, status LOCKED; the
// progression engine assigns real statuses during initialization
func (p *WorkshopLevelsProvider) AllUpgrades() []*workshop.Upgrade {
	p.load()
	return p.upgrades
}

// StationMetadata returns the display metadata for a station
func (p *WorkshopLevelsProvider) StationMetadata(stationID string) (*workshop.StationMetadata, bool) {
	p.load()
	meta, ok := p.metadata[stationID]
	return meta, ok
}

// AllStationMetadata returns metadata for every bundled station
func (p *WorkshopLevelsProvider) AllStationMetadata() []*workshop.StationMetadata {
	p.load()
	out := make([]*workshop.StationMetadata, 0, len(p.metadata))
	for _, meta := range p.metadata {
		out = append(out, meta)
	}
	return out
}

func (p *WorkshopLevelsProvider) load() {
	p.once.Do(func() {
		p.metadata = make(map[string]*workshop.StationMetadata)

		raw, err := files.ReadFile("workshop_levels.json")
		if err != nil {
			return
		}
		var data workshopLevelsFile
		if err := json.Unmarshal(raw, &data); err != nil {
			return
		}

		for _, station := range data.WorkshopStations {
			p.metadata[station.StationID] = &workshop.StationMetadata{
				StationID:   station.StationID,
				StationName: station.StationName,
				Description: station.Description,
				ImageURL:    station.ImageURL,
			}

			for _, level := range station.Levels {
				required := make([]shared.RequiredItem, 0, len(level.RequiredItems))
				for _, ri := range level.RequiredItems {
					required = append(required, shared.RequiredItem{
						ItemID:   ri.ItemID,
						ItemName: ri.ItemName,
						Quantity: ri.Quantity,
						ImageURL: ri.ImageURL,
					})
				}
				rewards := make([]shared.Reward, 0, len(level.Rewards))
				for _, rw := range level.Rewards {
					quantity := rw.Quantity
					if quantity == 0 {
						quantity = 1
					}
					rewards = append(rewards, shared.Reward{
						ItemID:   rw.ItemID,
						ItemName: rw.ItemName,
						Quantity: quantity,
						ImageURL: rw.ImageURL,
						Type:     shared.ParseRewardType(rw.Type),
					})
				}

				p.upgrades = append(p.upgrades, &workshop.Upgrade{
					LevelID:       level.LevelID,
					StationID:     station.StationID,
					LevelNumber:   level.LevelNumber,
					Name:          level.Name,
					Description:   level.Description,
					RequiredItems: required,
					Rewards:       rewards,
					Unlocks:       level.Unlocks,
					Status:        workshop.StatusLocked,
					ImageURL:      level.ImageURL,
				})
			}
		}
	})
}
