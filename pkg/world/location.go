package world

import (
	"fmt"
	"slices"
)

// LocationState is the lifecycle state of a location.
type LocationState string

const (
	LocationAvailable LocationState = "available" // can be visited
	LocationActive    LocationState = "active"    // has been visited
	LocationSearched  LocationState = "searched"  // nothing left to find
)

// SearchLimit caps how many items and how many clues a single search
// yields. This is a pacing rule: discoveries come in list order, never
// randomized.
const SearchLimit = 2

// TravelRequirement gates an edge in the location graph. All fields that
// are set must hold for travel to be allowed.
type TravelRequirement struct {
	RequiresItem  string            `json:"requires_item,omitempty"`
	RequiresClue  string            `json:"requires_clue,omitempty"`
	RequiresQuest string            `json:"requires_quest,omitempty"`
	RequiresTrust *TrustRequirement `json:"requires_trust,omitempty"`
}

// TrustRequirement requires a minimum trust level with a character.
type TrustRequirement struct {
	CharacterID string `json:"character_id"`
	MinTrust    int    `json:"min_trust"`
}

// IsMet evaluates the requirement against the player and world state.
// On failure it returns the first unmet condition.
func (tr *TravelRequirement) IsMet(p *Player, w *WorldState) (bool, string) {
	if tr.RequiresItem != "" && !p.HasItem(tr.RequiresItem) {
		return false, fmt.Sprintf("missing item %q", tr.RequiresItem)
	}
	if tr.RequiresClue != "" && !p.HasClue(tr.RequiresClue) {
		return false, fmt.Sprintf("missing clue %q", tr.RequiresClue)
	}
	if tr.RequiresQuest != "" && !slices.Contains(p.CompletedQuests, tr.RequiresQuest) {
		return false, fmt.Sprintf("quest %q not completed", tr.RequiresQuest)
	}
	if tr.RequiresTrust != nil {
		c := w.Character(tr.RequiresTrust.CharacterID)
		if c == nil || c.Trust < tr.RequiresTrust.MinTrust {
			return false, fmt.Sprintf("insufficient trust with %q", tr.RequiresTrust.CharacterID)
		}
	}
	return true, ""
}

// Location is a node in the travel graph.
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"` // e.g. "crime_scene", "public", "official"

	Connections  []string                     `json:"connections,omitempty"`
	Requirements map[string]TravelRequirement `json:"requirements,omitempty"` // neighbor id -> gate

	ItemsAvailable []string `json:"items_available,omitempty"`
	CluesAvailable []string `json:"clues_available,omitempty"`
	ItemsTaken     []string `json:"items_taken,omitempty"`
	CluesFound     []string `json:"clues_found,omitempty"`

	State       LocationState `json:"state"`
	VisitCount  int           `json:"visit_count"`
	SearchCount int           `json:"search_count"`
}

// AddConnection links this location to another, optionally gated.
func (l *Location) AddConnection(locationID string, req *TravelRequirement) {
	if !slices.Contains(l.Connections, locationID) {
		l.Connections = append(l.Connections, locationID)
	}
	if req != nil {
		if l.Requirements == nil {
			l.Requirements = make(map[string]TravelRequirement)
		}
		l.Requirements[locationID] = *req
	}
}

// CanTravelTo reports whether the player may travel from this location
// to the named neighbor. Non-neighbors are always refused; gated edges
// are refused with the unmet condition.
func (l *Location) CanTravelTo(locationID string, p *Player, w *WorldState) (bool, string) {
	if !slices.Contains(l.Connections, locationID) {
		return false, "not connected"
	}
	if req, ok := l.Requirements[locationID]; ok {
		if met, reason := req.IsMet(p, w); !met {
			return false, reason
		}
	}
	return true, ""
}

// AvailableItems returns item ids present and not yet taken, in list order.
func (l *Location) AvailableItems() []string {
	var out []string
	for _, id := range l.ItemsAvailable {
		if !slices.Contains(l.ItemsTaken, id) {
			out = append(out, id)
		}
	}
	return out
}

// AvailableClues returns clue ids present and not yet found, in list order.
func (l *Location) AvailableClues() []string {
	var out []string
	for _, id := range l.CluesAvailable {
		if !slices.Contains(l.CluesFound, id) {
			out = append(out, id)
		}
	}
	return out
}

// TakeItem marks an item as taken. Idempotent; returns false if the item
// is not available here or was already taken.
func (l *Location) TakeItem(itemID string) bool {
	if !slices.Contains(l.ItemsAvailable, itemID) || slices.Contains(l.ItemsTaken, itemID) {
		return false
	}
	l.ItemsTaken = append(l.ItemsTaken, itemID)
	return true
}

// FindClue marks a clue as found. Idempotent; returns false if the clue
// is not available here or was already found.
func (l *Location) FindClue(clueID string) bool {
	if !slices.Contains(l.CluesAvailable, clueID) || slices.Contains(l.CluesFound, clueID) {
		return false
	}
	l.CluesFound = append(l.CluesFound, clueID)
	return true
}

// Visit records the player entering this location.
func (l *Location) Visit() {
	l.VisitCount++
	if l.State == LocationAvailable {
		l.State = LocationActive
	}
}

// RecordSearch increments the search counter and marks the location
// searched once nothing discoverable remains.
func (l *Location) RecordSearch() {
	l.SearchCount++
	if len(l.AvailableItems()) == 0 && len(l.AvailableClues()) == 0 {
		l.State = LocationSearched
	}
}
