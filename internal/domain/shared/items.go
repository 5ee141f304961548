package shared

// RequiredItem is a demand for a quantity of a catalog item, attached to a
// quest or a workshop upgrade level.
type RequiredItem struct {
	ItemID   string
	ItemName string
	Quantity int
	ImageURL string
}

// RewardType classifies what a reward grants
type RewardType string

const (
	RewardTypeItem     RewardType = "ITEM"
	RewardTypeCurrency RewardType = "CURRENCY"
	RewardTypeXP       RewardType = "XP"
	RewardTypeUnlock   RewardType = "UNLOCK"
)

// ParseRewardType maps an API reward type string to a RewardType.
// Unknown values default to ITEM.
func ParseRewardType(s string) RewardType {
	switch s {
	case "currency":
		return RewardTypeCurrency
	case "xp":
		return RewardTypeXP
	case "unlock":
		return RewardTypeUnlock
	default:
		return RewardTypeItem
	}
}

// Reward is granted on completion of a quest or upgrade level
type Reward struct {
	ItemID   string
	ItemName string
	Quantity int
	ImageURL string
	Type     RewardType
}

// RequiredItemWithInventory joins a demand against the owned quantity
type RequiredItemWithInventory struct {
	ItemID         string
	ItemName       string
	QuantityNeeded int
	QuantityOwned  int
	ImageURL       string
}

// IsComplete reports whether the owned quantity covers the demand
func (r RequiredItemWithInventory) IsComplete() bool {
	return r.QuantityOwned >= r.QuantityNeeded
}

// PercentComplete returns collection progress clamped to [0, 1]
func (r RequiredItemWithInventory) PercentComplete() float64 {
	if r.QuantityNeeded <= 0 {
		return 1
	}
	p := float64(r.QuantityOwned) / float64(r.QuantityNeeded)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}
