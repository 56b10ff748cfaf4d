package quest

import "slices"

// Status is a quest's lifecycle state. Transitions are one-directional:
// a completed quest never re-locks.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusAvailable Status = "available"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// PlayerView is the minimal player surface needed to evaluate quest
// unlock prerequisites. Avoids an import cycle with the world package.
type PlayerView interface {
	HasClue(clueID string) bool
	HasCompletedQuest(questID string) bool
	CurrentLocation() string
}

// Rewards are granted when a quest completes.
type Rewards struct {
	Reputation        int      `json:"reputation,omitempty"`
	Items             []string `json:"items,omitempty"`
	UnlocksLocations  []string `json:"unlocks_locations,omitempty"`
	UnlocksCharacters []string `json:"unlocks_characters,omitempty"`
}

// Quest is an investigation thread: a set of objectives with
// prerequisite edges forming a DAG.
type Quest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"` // main, side, tutorial

	Status Status `json:"status"`

	Objectives          map[string]*Objective `json:"objectives"`
	CompletedObjectives []string              `json:"completed_objectives,omitempty"`

	RequiresQuests   []string `json:"requires_quests,omitempty"`
	RequiresClues    []string `json:"requires_clues,omitempty"`
	RequiresLocation string   `json:"requires_location,omitempty"`

	Rewards Rewards `json:"rewards,omitempty"`
	GivenBy string  `json:"given_by,omitempty"`
}

// AddObjective registers an objective on the quest.
func (q *Quest) AddObjective(o *Objective) {
	if q.Objectives == nil {
		q.Objectives = make(map[string]*Objective)
	}
	q.Objectives[o.ID] = o
}

// AvailableObjectives returns the current frontier: objectives not yet
// completed whose prerequisites are all in the completed set. Computed
// on demand so it always reflects the latest completions. Ordered by id.
func (q *Quest) AvailableObjectives() []*Objective {
	var out []*Objective
	for _, id := range sortedObjectiveIDs(q.Objectives) {
		o := q.Objectives[id]
		if !o.Completed && o.IsAvailable(q.CompletedObjectives) {
			out = append(out, o)
		}
	}
	return out
}

// CompleteObjective marks the objective completed and, if it was the
// last one outstanding, transitions the quest to completed. Returns
// true only on the call that completes the whole quest.
func (q *Quest) CompleteObjective(objectiveID string) bool {
	o, ok := q.Objectives[objectiveID]
	if !ok || o.Completed {
		return false
	}
	o.Completed = true
	if o.Progress < o.Quantity {
		o.Progress = o.Quantity
	}
	if !slices.Contains(q.CompletedObjectives, objectiveID) {
		q.CompletedObjectives = append(q.CompletedObjectives, objectiveID)
	}

	for _, obj := range q.Objectives {
		if !obj.Completed {
			return false
		}
	}
	q.Status = StatusCompleted
	return true
}

// IsUnlocked reports whether the player satisfies all of the quest's
// unlock prerequisites.
func (q *Quest) IsUnlocked(p PlayerView) bool {
	for _, questID := range q.RequiresQuests {
		if !p.HasCompletedQuest(questID) {
			return false
		}
	}
	for _, clueID := range q.RequiresClues {
		if !p.HasClue(clueID) {
			return false
		}
	}
	if q.RequiresLocation != "" && p.CurrentLocation() != q.RequiresLocation {
		return false
	}
	return true
}

// Start activates an available quest.
func (q *Quest) Start() {
	if q.Status == StatusAvailable {
		q.Status = StatusActive
	}
}

// Fail marks the quest failed. Completed quests cannot fail.
func (q *Quest) Fail() {
	if q.Status != StatusCompleted {
		q.Status = StatusFailed
	}
}

// Progress returns the completion percentage across all objectives.
func (q *Quest) Progress() float64 {
	if len(q.Objectives) == 0 {
		return 0
	}
	return float64(len(q.CompletedObjectives)) / float64(len(q.Objectives)) * 100
}

func sortedObjectiveIDs(m map[string]*Objective) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
