package item

import "strings"

// Category groups catalog items for filtering
type Category string

const (
	CategoryWeapon     Category = "WEAPON"
	CategoryArmor      Category = "ARMOR"
	CategoryConsumable Category = "CONSUMABLE"
	CategoryMaterial   Category = "MATERIAL"
	CategoryQuestItem  Category = "QUEST_ITEM"
	CategoryMod        Category = "MOD"
	CategoryAmmo       Category = "AMMO"
	CategoryEquipment  Category = "EQUIPMENT"
	CategoryKey        Category = "KEY"
	CategoryOther      Category = "OTHER"
)

// ParseCategory maps an API item_type string to a Category.
// Unknown values fall back to OTHER.
func ParseCategory(s string) Category {
	switch strings.ReplaceAll(strings.ToLower(s), " ", "_") {
	case "weapon":
		return CategoryWeapon
	case "armor":
		return CategoryArmor
	case "consumable":
		return CategoryConsumable
	case "material":
		return CategoryMaterial
	case "quest_item":
		return CategoryQuestItem
	case "mod":
		return CategoryMod
	case "ammo":
		return CategoryAmmo
	case "equipment":
		return CategoryEquipment
	case "key":
		return CategoryKey
	default:
		return CategoryOther
	}
}

// Rarity is the catalog rarity tier of an item
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// ParseRarity maps an API rarity string to a Rarity.
// Unknown values fall back to COMMON.
func ParseRarity(s string) Rarity {
	switch strings.ToLower(s) {
	case "uncommon":
		return RarityUncommon
	case "rare":
		return RarityRare
	case "epic":
		return RarityEpic
	case "legendary":
		return RarityLegendary
	default:
		return RarityCommon
	}
}

// RecyclingMaterial is what an item breaks down into
type RecyclingMaterial struct {
	MaterialName string
	Quantity     int
}

// Item is a catalog item definition synced from the remote API
type Item struct {
	ID                 string
	Name               string
	Description        string
	ImageURL           string
	Category           Category
	Rarity             Rarity
	IsQuestItem        bool
	NeededForQuests    []string
	SellValue          *int
	RecyclingMaterials []RecyclingMaterial
}
