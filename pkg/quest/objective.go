package quest

import "slices"

// ObjectiveType is the kind of condition that completes an objective.
type ObjectiveType string

const (
	ObjectiveFindClue          ObjectiveType = "find_clue"
	ObjectiveTalkToCharacter   ObjectiveType = "talk_to_character"
	ObjectiveGoToLocation      ObjectiveType = "go_to_location"
	ObjectiveCollectItem       ObjectiveType = "collect_item"
	ObjectiveConfrontCharacter ObjectiveType = "confront_character"
	ObjectiveSolvePuzzle       ObjectiveType = "solve_puzzle"
	ObjectiveMakeDeduction     ObjectiveType = "make_deduction"
)

// Objective is a single node in a quest's dependency graph.
type Objective struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Type        ObjectiveType `json:"type"`

	TargetID string `json:"target_id,omitempty"` // clue, character, location or item id
	Quantity int    `json:"quantity"`

	Completed bool `json:"completed"`
	Progress  int  `json:"progress"`

	// Requires are edges of the objective DAG: ids of objectives that
	// must be completed first. Cycles are an authoring error caught by
	// casefile validation.
	Requires []string `json:"requires,omitempty"`
}

// IsAvailable reports whether every prerequisite is in the completed set.
func (o *Objective) IsAvailable(completed []string) bool {
	for _, req := range o.Requires {
		if !slices.Contains(completed, req) {
			return false
		}
	}
	return true
}

// AdvanceProgress moves progress toward quantity, reporting whether the
// objective completed on this call.
func (o *Objective) AdvanceProgress(amount int) bool {
	o.Progress = min(o.Quantity, o.Progress+amount)
	if o.Progress >= o.Quantity {
		o.Completed = true
		return true
	}
	return false
}
