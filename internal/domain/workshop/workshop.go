package workshop

import (
	"sort"

	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// Status is the lifecycle state of a single upgrade level
type Status string

const (
	StatusLocked     Status = "LOCKED"
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus maps a status string to a Status, rejecting unknown values
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusLocked, StatusNotStarted, StatusInProgress, StatusCompleted:
		return Status(s), nil
	default:
		return "", shared.NewInvalidStatusError(s)
	}
}

// Upgrade is a single upgrade level of a workshop station. Within a station,
// level N may only leave LOCKED once level N-1 is COMPLETED (or N == 1).
type Upgrade struct {
	LevelID       string
	StationID     string
	LevelNumber   int
	Name          string
	Description   string
	RequiredItems []shared.RequiredItem
	Rewards       []shared.Reward
	Unlocks       string
	Status        Status
	ImageURL      string
}

// IsUnlocked reports whether the level is available to work on
func (u *Upgrade) IsUnlocked() bool {
	return u.Status != StatusLocked
}

// IsCompleted reports whether the level is done
func (u *Upgrade) IsCompleted() bool {
	return u.Status == StatusCompleted
}

// InitialStatus derives the status a freshly loaded level should get when no
// progress has been persisted for it: level 1 starts available, the level
// right after the highest completed one is unlocked, everything else locked.
func InitialStatus(levelNumber, highestCompleted int) Status {
	switch {
	case levelNumber == 1:
		return StatusNotStarted
	case highestCompleted > 0 && levelNumber == highestCompleted+1:
		return StatusNotStarted
	default:
		return StatusLocked
	}
}

// StationMetadata is the display data for a station, loaded from the bundled
// level definitions rather than the network
type StationMetadata struct {
	StationID   string
	StationName string
	Description string
	ImageURL    string
}

// Station groups a station's levels with its metadata
type Station struct {
	StationID   string
	StationName string
	Description string
	ImageURL    string
	Levels      []*Upgrade
}

// SortLevels orders the station's levels by level number
func (s *Station) SortLevels() {
	sort.Slice(s.Levels, func(i, j int) bool {
		return s.Levels[i].LevelNumber < s.Levels[j].LevelNumber
	})
}

// CurrentLevel is the count of completed levels
func (s *Station) CurrentLevel() int {
	n := 0
	for _, l := range s.Levels {
		if l.IsCompleted() {
			n++
		}
	}
	return n
}

// MaxLevel is the number of levels the station has
func (s *Station) MaxLevel() int {
	return len(s.Levels)
}

// Progress returns completion as a fraction in [0, 1]
func (s *Station) Progress() float64 {
	if len(s.Levels) == 0 {
		return 0
	}
	return float64(s.CurrentLevel()) / float64(s.MaxLevel())
}

// NextUpgrade returns the first level that is available but not completed,
// or nil when the station is maxed or fully locked
func (s *Station) NextUpgrade() *Upgrade {
	for _, l := range s.Levels {
		if l.Status == StatusNotStarted || l.Status == StatusInProgress {
			return l
		}
	}
	return nil
}
