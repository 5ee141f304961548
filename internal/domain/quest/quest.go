package quest

import (
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
)

// Status is the lifecycle state of a quest
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus maps a status string to a Status, rejecting unknown values
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return Status(s), nil
	default:
		return "", shared.NewInvalidStatusError(s)
	}
}

// Objective is a single step of a quest. Completion is tracked on the quest
// itself via the completed-objective set, not on the objective.
type Objective struct {
	ID          string
	Description string
	OrderIndex  int
}

// Quest tracks a catalog quest definition together with local progress
type Quest struct {
	ID                  string
	Name                string
	Description         string
	Objectives          []Objective
	RequiredItems       []shared.RequiredItem
	Rewards             []shared.Reward
	XPReward            *int
	Status              Status
	CompletedObjectives map[string]bool
	MapLocation         string
	QuestChain          string
	Prerequisites       []string
	ImageURL            string
}

// ObjectiveComplete reports whether the given objective has been completed
func (q *Quest) ObjectiveComplete(objectiveID string) bool {
	return q.CompletedObjectives[objectiveID]
}

// AllObjectivesComplete reports whether every objective is in the completed
// set. Vacuously true for quests without objectives; callers that derive
// status transitions must guard against that case themselves.
func (q *Quest) AllObjectivesComplete() bool {
	for _, obj := range q.Objectives {
		if !q.CompletedObjectives[obj.ID] {
			return false
		}
	}
	return true
}

// CompletedCount returns how many objectives are done
func (q *Quest) CompletedCount() int {
	n := 0
	for _, obj := range q.Objectives {
		if q.CompletedObjectives[obj.ID] {
			n++
		}
	}
	return n
}

// Progress returns objective completion as a fraction in [0, 1]
func (q *Quest) Progress() float64 {
	if len(q.Objectives) == 0 {
		return 0
	}
	return float64(q.CompletedCount()) / float64(len(q.Objectives))
}

// HasObjective reports whether the quest defines the given objective
func (q *Quest) HasObjective(objectiveID string) bool {
	for _, obj := range q.Objectives {
		if obj.ID == objectiveID {
			return true
		}
	}
	return false
}

// ToggleObjective flips the completion state of an objective and returns the
// status the quest should transition to as a consequence:
//   - all objectives complete and quest not yet COMPLETED -> COMPLETED
//   - otherwise, any objective complete while NOT_STARTED -> IN_PROGRESS
//
// At most one of the two fires per toggle. Quests without objectives never
// transition through this path. The returned bool is false when no implicit
// transition applies.
func (q *Quest) ToggleObjective(objectiveID string) (Status, bool, error) {
	if !q.HasObjective(objectiveID) {
		return "", false, shared.NewNotFoundError("objective", objectiveID)
	}

	if q.CompletedObjectives == nil {
		q.CompletedObjectives = make(map[string]bool)
	}
	if q.CompletedObjectives[objectiveID] {
		delete(q.CompletedObjectives, objectiveID)
	} else {
		q.CompletedObjectives[objectiveID] = true
	}

	if len(q.Objectives) > 0 && q.AllObjectivesComplete() && q.Status != StatusCompleted {
		return StatusCompleted, true, nil
	}
	if len(q.CompletedObjectives) > 0 && q.Status == StatusNotStarted {
		return StatusInProgress, true, nil
	}
	return "", false, nil
}
