package persistence

import (
	"time"
)

// QuestModel represents the quests table. Catalog fields come from the API;
// status and completed_objectives are local progress and survive re-syncs.
type QuestModel struct {
	ID                      string `gorm:"column:id;primaryKey"`
	Name                    string `gorm:"column:name;not null"`
	Description             string `gorm:"column:description;type:text"`
	ObjectivesJSON          string `gorm:"column:objectives_json;type:text;not null"`
	RequiredItemsJSON       string `gorm:"column:required_items_json;type:text;not null"`
	RewardsJSON             string `gorm:"column:rewards_json;type:text;not null"`
	XPReward                *int   `gorm:"column:xp_reward"`
	Status                  string `gorm:"column:status;not null;index"`
	CompletedObjectivesJSON string `gorm:"column:completed_objectives_json;type:text;not null"`
	MapLocation             string `gorm:"column:map_location"`
	QuestChain              string `gorm:"column:quest_chain;index"`
	PrerequisitesJSON       string `gorm:"column:prerequisites_json;type:text;not null"`
	ImageURL                string `gorm:"column:image_url"`
}

func (QuestModel) TableName() string {
	return "quests"
}

// ItemModel represents the items table
type ItemModel struct {
	ID                  string `gorm:"column:id;primaryKey"`
	Name                string `gorm:"column:name;not null"`
	Description         string `gorm:"column:description;type:text"`
	ImageURL            string `gorm:"column:image_url"`
	Category            string `gorm:"column:category;not null;index"`
	Rarity              string `gorm:"column:rarity;not null;index"`
	IsQuestItem         bool   `gorm:"column:is_quest_item;not null"`
	NeededForQuestsJSON string `gorm:"column:needed_for_quests_json;type:text;not null"`
	SellValue           *int   `gorm:"column:sell_value"`
	RecyclingJSON       string `gorm:"column:recycling_json;type:text;not null"`
}

func (ItemModel) TableName() string {
	return "items"
}

// InventoryModel represents the inventory table
type InventoryModel struct {
	ItemID   string `gorm:"column:item_id;primaryKey"`
	ItemName string `gorm:"column:item_name;not null"`
	Quantity int    `gorm:"column:quantity;not null;default:0"`
	ImageURL string `gorm:"column:image_url"`
}

func (InventoryModel) TableName() string {
	return "inventory"
}

// WishlistModel represents the wishlist table. SourcesJSON holds the set of
// quest/upgrade ids currently demanding the item.
type WishlistModel struct {
	ItemID         string    `gorm:"column:item_id;primaryKey"`
	ItemName       string    `gorm:"column:item_name;not null"`
	QuantityNeeded int       `gorm:"column:quantity_needed;not null"`
	ImageURL       string    `gorm:"column:image_url"`
	IsManual       bool      `gorm:"column:is_manual;not null"`
	SourcesJSON    string    `gorm:"column:sources_json;type:text;not null"`
	DateAdded      time.Time `gorm:"column:date_added;not null"`
	LastUpdated    time.Time `gorm:"column:last_updated;not null"`
}

func (WishlistModel) TableName() string {
	return "wishlist"
}

// MapEventModel represents the map_events table
type MapEventModel struct {
	ID          string `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name;not null"`
	Map         string `gorm:"column:map;not null;index"`
	IconURL     string `gorm:"column:icon_url"`
	Description string `gorm:"column:description;type:text"`
	TimesJSON   string `gorm:"column:times_json;type:text;not null"`
}

func (MapEventModel) TableName() string {
	return "map_events"
}

// WorkshopUpgradeModel represents the workshop_upgrades table
type WorkshopUpgradeModel struct {
	LevelID           string `gorm:"column:level_id;primaryKey"`
	StationID         string `gorm:"column:station_id;not null;index"`
	LevelNumber       int    `gorm:"column:level_number;not null"`
	Name              string `gorm:"column:name;not null"`
	Description       string `gorm:"column:description;type:text"`
	RequiredItemsJSON string `gorm:"column:required_items_json;type:text;not null"`
	RewardsJSON       string `gorm:"column:rewards_json;type:text;not null"`
	Unlocks           string `gorm:"column:unlocks"`
	Status            string `gorm:"column:status;not null;index"`
	ImageURL          string `gorm:"column:image_url"`
}

func (WorkshopUpgradeModel) TableName() string {
	return "workshop_upgrades"
}

// SyncStateModel records the last successful sync per data kind
type SyncStateModel struct {
	DataKind     string    `gorm:"column:data_kind;primaryKey"`
	LastSyncedAt time.Time `gorm:"column:last_synced_at;not null"`
}

func (SyncStateModel) TableName() string {
	return "sync_state"
}
