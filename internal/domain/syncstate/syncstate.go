package syncstate

import (
	"context"
	"time"
)

// DataKind identifies a synced reference data set
type DataKind string

const (
	KindQuests DataKind = "quests"
	KindItems  DataKind = "items"
	KindEvents DataKind = "events"
)

// Kinds lists every syncable data kind
func Kinds() []DataKind {
	return []DataKind{KindQuests, KindItems, KindEvents}
}

// Repository tracks the last successful sync per data kind
type Repository interface {
	LastSync(ctx context.Context, kind DataKind) (time.Time, bool, error)
	RecordSync(ctx context.Context, kind DataKind, at time.Time) error
}
