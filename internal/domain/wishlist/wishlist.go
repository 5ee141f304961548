package wishlist

import "time"

// Entry is the aggregated demand for one catalog item. Sources records which
// quests and workshop levels currently demand the item; IsManual marks an
// entry the user added directly, which survives with zero sources.
type Entry struct {
	ItemID         string
	ItemName       string
	QuantityNeeded int
	ImageURL       string
	IsManual       bool
	Sources        map[string]bool
	DateAdded      time.Time
	LastUpdated    time.Time
}

// HasSource reports whether the given source ref already demands this item
func (e *Entry) HasSource(ref string) bool {
	return e.Sources[ref]
}

// AddSource records a source ref, reporting whether it was newly added
func (e *Entry) AddSource(ref string) bool {
	if ref == "" || e.Sources[ref] {
		return false
	}
	if e.Sources == nil {
		e.Sources = make(map[string]bool)
	}
	e.Sources[ref] = true
	return true
}

// RemoveSource drops a source ref, reporting whether it was present
func (e *Entry) RemoveSource(ref string) bool {
	if !e.Sources[ref] {
		return false
	}
	delete(e.Sources, ref)
	return true
}

// Orphaned reports whether the entry should be deleted: no remaining sources
// and not manually added
func (e *Entry) Orphaned() bool {
	return len(e.Sources) == 0 && !e.IsManual
}

// EntryWithInventory joins an entry against the owned quantity
type EntryWithInventory struct {
	Entry
	QuantityOwned int
}

// IsComplete reports whether the owned quantity covers the demand
func (e EntryWithInventory) IsComplete() bool {
	return e.QuantityOwned >= e.QuantityNeeded
}

// PercentComplete returns collection progress clamped to [0, 1]
func (e EntryWithInventory) PercentComplete() float64 {
	if e.QuantityNeeded <= 0 {
		return 1
	}
	p := float64(e.QuantityOwned) / float64(e.QuantityNeeded)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// RemainingNeeded returns how many are still missing, never negative
func (e EntryWithInventory) RemainingNeeded() int {
	if n := e.QuantityNeeded - e.QuantityOwned; n > 0 {
		return n
	}
	return 0
}
