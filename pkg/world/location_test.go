package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorld() *WorldState {
	p := &Player{Name: "Detective", Location: "scene"}
	w := NewWorldState(p)
	w.Locations["scene"] = &Location{
		ID:          "scene",
		Name:        "Crime Scene",
		State:       LocationAvailable,
		Connections: []string{"station", "lab"},
		Requirements: map[string]TravelRequirement{
			"lab": {RequiresClue: "residue"},
		},
	}
	w.Locations["station"] = &Location{ID: "station", Name: "Station", State: LocationAvailable}
	w.Locations["lab"] = &Location{ID: "lab", Name: "Lab", State: LocationAvailable}
	return w
}

func TestLocation_CanTravelTo(t *testing.T) {
	w := testWorld()
	scene := w.Location("scene")

	ok, reason := scene.CanTravelTo("station", w.Player, w)
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = scene.CanTravelTo("nowhere", w.Player, w)
	assert.False(t, ok)
	assert.Equal(t, "not connected", reason)

	// Gated edge stays closed until the clue is collected.
	ok, reason = scene.CanTravelTo("lab", w.Player, w)
	assert.False(t, ok)
	assert.Contains(t, reason, "residue")

	w.Player.AddClue("residue")
	ok, _ = scene.CanTravelTo("lab", w.Player, w)
	assert.True(t, ok)
}

func TestTravelRequirement_IsMet(t *testing.T) {
	w := testWorld()
	w.Characters["chen"] = &Character{ID: "chen", Trust: 40}

	tests := []struct {
		name     string
		req      TravelRequirement
		setup    func()
		expected bool
	}{
		{
			name:     "empty requirement passes",
			req:      TravelRequirement{},
			expected: true,
		},
		{
			name:     "missing item fails",
			req:      TravelRequirement{RequiresItem: "badge"},
			expected: false,
		},
		{
			name:     "held item passes",
			req:      TravelRequirement{RequiresItem: "badge"},
			setup:    func() { w.Player.AddItem("badge") },
			expected: true,
		},
		{
			name:     "quest not completed fails",
			req:      TravelRequirement{RequiresQuest: "warrant"},
			expected: false,
		},
		{
			name:     "insufficient trust fails",
			req:      TravelRequirement{RequiresTrust: &TrustRequirement{CharacterID: "chen", MinTrust: 50}},
			expected: false,
		},
		{
			name:     "sufficient trust passes",
			req:      TravelRequirement{RequiresTrust: &TrustRequirement{CharacterID: "chen", MinTrust: 40}},
			expected: true,
		},
		{
			name:     "unknown character fails",
			req:      TravelRequirement{RequiresTrust: &TrustRequirement{CharacterID: "ghost", MinTrust: 1}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			met, reason := tt.req.IsMet(w.Player, w)
			assert.Equal(t, tt.expected, met)
			if !tt.expected {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestLocation_TakeItemAndFindClue(t *testing.T) {
	loc := &Location{
		ID:             "scene",
		ItemsAvailable: []string{"glass", "phone"},
		CluesAvailable: []string{"window"},
	}

	assert.True(t, loc.TakeItem("glass"))
	assert.False(t, loc.TakeItem("glass"), "taking twice must fail")
	assert.False(t, loc.TakeItem("knife"), "unknown item must fail")
	assert.Equal(t, []string{"phone"}, loc.AvailableItems())

	assert.True(t, loc.FindClue("window"))
	assert.False(t, loc.FindClue("window"))
	assert.Empty(t, loc.AvailableClues())
}

func TestLocation_AvailableItemsPreservesOrder(t *testing.T) {
	loc := &Location{ItemsAvailable: []string{"a", "b", "c", "d"}}
	loc.TakeItem("b")
	assert.Equal(t, []string{"a", "c", "d"}, loc.AvailableItems())
}

func TestLocation_VisitAndSearchStates(t *testing.T) {
	loc := &Location{
		ID:             "scene",
		State:          LocationAvailable,
		ItemsAvailable: []string{"glass"},
	}

	loc.Visit()
	assert.Equal(t, LocationActive, loc.State)
	assert.Equal(t, 1, loc.VisitCount)

	// Searching with items remaining does not exhaust the location.
	loc.RecordSearch()
	assert.Equal(t, LocationActive, loc.State)

	require.True(t, loc.TakeItem("glass"))
	loc.RecordSearch()
	assert.Equal(t, LocationSearched, loc.State)
	assert.Equal(t, 2, loc.SearchCount)
}

func TestLocation_AddConnection(t *testing.T) {
	loc := &Location{ID: "station"}
	loc.AddConnection("lab", &TravelRequirement{RequiresClue: "residue"})
	loc.AddConnection("lab", nil) // no duplicate edge

	assert.Equal(t, []string{"lab"}, loc.Connections)
	assert.Equal(t, "residue", loc.Requirements["lab"].RequiresClue)
}
