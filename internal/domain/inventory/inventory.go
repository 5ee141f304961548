package inventory

// Entry is an owned-quantity record for a single catalog item.
// Quantity never goes below zero.
type Entry struct {
	ItemID   string
	ItemName string
	Quantity int
	ImageURL string
}

// Clamp forces the quantity to be non-negative
func (e *Entry) Clamp() {
	if e.Quantity < 0 {
		e.Quantity = 0
	}
}
