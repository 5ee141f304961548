package workshop

import "context"

// Repository defines persistence operations for workshop upgrade levels
type Repository interface {
	FindByID(ctx context.Context, levelID string) (*Upgrade, error)
	FindAll(ctx context.Context) ([]*Upgrade, error)
	FindByStation(ctx context.Context, stationID string) ([]*Upgrade, error)
	FindByStatus(ctx context.Context, status Status) ([]*Upgrade, error)
	StationIDs(ctx context.Context) ([]string, error)
	Save(ctx context.Context, u *Upgrade) error
	SaveAll(ctx context.Context, upgrades []*Upgrade) error
	UpdateStatus(ctx context.Context, levelID string, status Status) error
}

// LevelProvider supplies the bundled station and level definitions
type LevelProvider interface {
	AllUpgrades() []*Upgrade
	StationMetadata(stationID string) (*StationMetadata, bool)
	AllStationMetadata() []*StationMetadata
}
