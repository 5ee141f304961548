package workshop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrisonog/arcraiders-go/internal/domain/workshop"
)

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		name             string
		levelNumber      int
		highestCompleted int
		want             workshop.Status
	}{
		{"level 1 always available", 1, 0, workshop.StatusNotStarted},
		{"level 1 with progress", 1, 2, workshop.StatusNotStarted},
		{"level after highest completed", 3, 2, workshop.StatusNotStarted},
		{"level far beyond progress", 4, 2, workshop.StatusLocked},
		{"level 2 with no progress", 2, 0, workshop.StatusLocked},
		{"level behind progress stays locked by rule", 2, 3, workshop.StatusLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workshop.InitialStatus(tt.levelNumber, tt.highestCompleted))
		})
	}
}

func newTestStation() *workshop.Station {
	return &workshop.Station{
		StationID:   "workbench",
		StationName: "Workbench",
		Levels: []*workshop.Upgrade{
			{LevelID: "workbench_3", StationID: "workbench", LevelNumber: 3, Status: workshop.StatusLocked},
			{LevelID: "workbench_1", StationID: "workbench", LevelNumber: 1, Status: workshop.StatusCompleted},
			{LevelID: "workbench_2", StationID: "workbench", LevelNumber: 2, Status: workshop.StatusInProgress},
		},
	}
}

func TestStation_SortLevels(t *testing.T) {
	station := newTestStation()

	station.SortLevels()

	assert.Equal(t, "workbench_1", station.Levels[0].LevelID)
	assert.Equal(t, "workbench_2", station.Levels[1].LevelID)
	assert.Equal(t, "workbench_3", station.Levels[2].LevelID)
}

func TestStation_DerivedProgress(t *testing.T) {
	station := newTestStation()
	station.SortLevels()

	assert.Equal(t, 1, station.CurrentLevel())
	assert.Equal(t, 3, station.MaxLevel())
	assert.InDelta(t, 1.0/3.0, station.Progress(), 1e-9)
}

func TestStation_NextUpgrade(t *testing.T) {
	station := newTestStation()
	station.SortLevels()

	next := station.NextUpgrade()

	assert.NotNil(t, next)
	assert.Equal(t, "workbench_2", next.LevelID)
}

func TestStation_NextUpgrade_AllCompleted(t *testing.T) {
	station := &workshop.Station{
		Levels: []*workshop.Upgrade{
			{LevelID: "l1", LevelNumber: 1, Status: workshop.StatusCompleted},
			{LevelID: "l2", LevelNumber: 2, Status: workshop.StatusCompleted},
		},
	}

	assert.Nil(t, station.NextUpgrade())
	assert.Equal(t, 1.0, station.Progress())
}

func TestStation_EmptyProgress(t *testing.T) {
	station := &workshop.Station{}

	assert.Equal(t, 0.0, station.Progress())
}

func TestParseStatus(t *testing.T) {
	status, err := workshop.ParseStatus("LOCKED")
	assert.NoError(t, err)
	assert.Equal(t, workshop.StatusLocked, status)

	_, err = workshop.ParseStatus("OPEN")
	assert.Error(t, err)
}
