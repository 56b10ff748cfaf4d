package handlers

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jwebster45206/case-engine/internal/storage"
	"github.com/jwebster45206/case-engine/pkg/casefile"
	"github.com/jwebster45206/case-engine/pkg/quest"
	"github.com/jwebster45206/case-engine/pkg/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testCasefile is a small but valid case: two connected locations, one
// witness, one clue, and a single-objective quest.
func testCasefile() *casefile.Casefile {
	return &casefile.Casefile{
		Title: "The Penthouse Murder",
		Story: "A body in the penthouse.",
		Player: casefile.PlayerSpec{
			Name:     "Detective",
			Location: "crime_scene",
			Skills:   world.Skills{Investigation: 5, Persuasion: 5, Perception: 5, Intuition: 5, Physical: 5},
		},
		Locations: map[string]*world.Location{
			"crime_scene": {
				Name:           "Luxury Penthouse",
				Connections:    []string{"police_station"},
				CluesAvailable: []string{"broken_window"},
			},
			"police_station": {
				Name:        "Police Headquarters",
				Connections: []string{"crime_scene"},
			},
		},
		Characters: map[string]*world.Character{
			"officer_chen": {
				Name:     "Officer Chen",
				Role:     world.RoleAlly,
				Location: "crime_scene",
				Trust:    60,
			},
		},
		Clues: map[string]*world.Clue{
			"broken_window": {Title: "Broken Balcony Window", Importance: 4},
		},
		Quests: map[string]*quest.Quest{
			"solve_murder": {
				Title:  "Solve the Murder",
				Status: quest.StatusActive,
				Objectives: map[string]*quest.Objective{
					"find_window": {Type: quest.ObjectiveFindClue, TargetID: "broken_window", Quantity: 1},
				},
			},
		},
		Endings: []casefile.EndingRule{
			{ID: "solved", Type: world.EndingGood, RequiresQuest: "solve_murder"},
		},
	}
}

// seedStorage returns a mock store preloaded with the test casefile.
func seedStorage(t *testing.T) *storage.MockStorage {
	t.Helper()
	store := storage.NewMockStorage()
	store.AddCasefile("penthouse_murder.json", testCasefile())
	return store
}
