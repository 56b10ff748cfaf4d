package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/case-engine/pkg/casefile"
	"github.com/jwebster45206/case-engine/pkg/narrative"
	"github.com/jwebster45206/case-engine/pkg/quest"
	"github.com/jwebster45206/case-engine/pkg/world"
)

// stubNarrator returns a canned response or error.
type stubNarrator struct {
	text  string
	err   error
	calls int
}

func (s *stubNarrator) GenerateNarration(ctx context.Context, nc *narrative.Context) (string, error) {
	s.calls++
	return s.text, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// murderWorld builds a small investigation: a crime scene with gated
// evidence, a station with a locked lab behind a clue gate, and a
// three-step quest.
func murderWorld(t *testing.T) (*world.WorldState, []casefile.EndingRule) {
	t.Helper()

	p := &world.Player{
		Name:       "Detective",
		Skills:     world.Skills{Investigation: 7, Persuasion: 6, Perception: 6, Intuition: 5, Physical: 5},
		Reputation: 50,
	}
	w := world.NewWorldState(p)

	w.Locations["crime_scene"] = &world.Location{
		ID:             "crime_scene",
		Name:           "Luxury Penthouse",
		Description:    "A lavish penthouse apartment.",
		State:          world.LocationAvailable,
		Connections:    []string{"police_station"},
		ItemsAvailable: []string{"wine_glass", "phone"},
		CluesAvailable: []string{"broken_window", "wine_residue", "phone_messages"},
	}
	w.Locations["police_station"] = &world.Location{
		ID:          "police_station",
		Name:        "Police Headquarters",
		State:       world.LocationAvailable,
		Connections: []string{"crime_scene", "forensics_lab"},
		Requirements: map[string]world.TravelRequirement{
			"forensics_lab": {RequiresClue: "wine_residue"},
		},
	}
	w.Locations["forensics_lab"] = &world.Location{
		ID:             "forensics_lab",
		Name:           "Forensics Laboratory",
		State:          world.LocationAvailable,
		Connections:    []string{"police_station"},
		CluesAvailable: []string{"toxicology_report"},
	}

	w.Characters["officer_chen"] = &world.Character{
		ID:             "officer_chen",
		Name:           "Officer Chen",
		Role:           world.RoleAlly,
		Location:       "crime_scene",
		Trust:          60,
		KnowsClues:     []string{"broken_window", "initial_timeline"},
		WillShareClues: []string{"initial_timeline"},
	}
	w.Characters["officer_chen"].ModifyTrust(0)

	w.Items["wine_glass"] = &world.Item{ID: "wine_glass", Name: "Wine Glass", Type: world.ItemEvidence, IsClue: true}
	w.Items["phone"] = &world.Item{ID: "phone", Name: "Victim's Phone", Type: world.ItemEvidence, IsClue: true}

	w.Clues["broken_window"] = &world.Clue{ID: "broken_window", Title: "Broken Balcony Window", Importance: 4}
	w.Clues["wine_residue"] = &world.Clue{
		ID: "wine_residue", Title: "Wine Residue Analysis", Importance: 5,
		RequiresSkill: "investigation", RequiresLevel: 5,
	}
	w.Clues["phone_messages"] = &world.Clue{ID: "phone_messages", Title: "Threatening Messages", Importance: 3}
	w.Clues["initial_timeline"] = &world.Clue{ID: "initial_timeline", Title: "Initial Timeline", Importance: 3}
	w.Clues["toxicology_report"] = &world.Clue{ID: "toxicology_report", Title: "Toxicology Report", Importance: 5}

	q := &quest.Quest{ID: "solve_murder", Title: "Solve the Murder", Status: quest.StatusActive,
		Rewards: quest.Rewards{Reputation: 50}}
	q.AddObjective(&quest.Objective{ID: "visit_scene", Type: quest.ObjectiveGoToLocation, TargetID: "crime_scene", Quantity: 1})
	q.AddObjective(&quest.Objective{ID: "talk_chen", Type: quest.ObjectiveTalkToCharacter, TargetID: "officer_chen", Quantity: 1, Requires: []string{"visit_scene"}})
	q.AddObjective(&quest.Objective{ID: "get_report", Type: quest.ObjectiveFindClue, TargetID: "toxicology_report", Quantity: 1, Requires: []string{"talk_chen"}})
	w.Quests["solve_murder"] = q

	w.Player.VisitLocation("crime_scene")
	w.Location("crime_scene").Visit()

	endings := []casefile.EndingRule{
		{ID: "full_solve", Type: world.EndingGood, RequiresQuest: "solve_murder", RequiresClues: []string{"toxicology_report", "wine_residue"}},
		{ID: "partial", Type: world.EndingNeutral, RequiresQuest: "solve_murder"},
	}
	return w, endings
}

func TestEngine_SearchCapsAndSkillGates(t *testing.T) {
	w, endings := murderWorld(t)
	e := New(w, endings, nil, testLogger())

	result := e.Perform(context.Background(), "search")
	require.NotNil(t, result)

	// Two items and two clues at most per search, in list order. The
	// investigation gate on wine_residue passes at skill 7.
	assert.ElementsMatch(t,
		[]string{"Wine Glass", "Victim's Phone", "Broken Balcony Window", "Wine Residue Analysis"},
		result.Discoveries)

	assert.True(t, w.Player.HasItem("wine_glass"))
	assert.True(t, w.Player.HasItem("phone"))
	assert.True(t, w.Player.HasClue("wine_glass"), "clue-bearing items record a clue")
	assert.True(t, w.Player.HasClue("broken_window"))
	assert.True(t, w.Player.HasClue("wine_residue"))
	assert.False(t, w.Player.HasClue("phone_messages"), "third clue waits for the next search")

	// Second search picks up the remainder and exhausts the scene.
	result = e.Perform(context.Background(), "search")
	assert.Equal(t, []string{"Threatening Messages"}, result.Discoveries)
	assert.Equal(t, world.LocationSearched, w.Location("crime_scene").State)
}

func TestEngine_SearchSkillGateLeavesClueAvailable(t *testing.T) {
	w, endings := murderWorld(t)
	w.Player.Skills.Investigation = 3 // below the wine_residue gate
	e := New(w, endings, nil, testLogger())

	result := e.Perform(context.Background(), "search")
	assert.NotContains(t, result.Discoveries, "Wine Residue Analysis")
	assert.False(t, w.Player.HasClue("wine_residue"))
	assert.Contains(t, w.Location("crime_scene").AvailableClues(), "wine_residue",
		"a failed gate must not consume the clue")

	// After training up, the same clue can still be found.
	w.Player.Skills.ModifySkill("investigation", 4)
	e.Perform(context.Background(), "search")
	assert.True(t, w.Player.HasClue("wine_residue"))
}

func TestEngine_TalkSharesCluesOnce(t *testing.T) {
	w, endings := murderWorld(t)
	e := New(w, endings, nil, testLogger())

	// Trust 60 is above the disclosure threshold, so the shareable
	// clue moves to the player on the first conversation.
	result := e.Perform(context.Background(), "talk_officer_chen")
	assert.Equal(t, []string{"Initial Timeline"}, result.Discoveries)
	assert.True(t, w.Player.HasClue("initial_timeline"))
	assert.True(t, w.Player.HasMet("officer_chen"))
	assert.Equal(t, 1, w.Character("officer_chen").Memory.TimesTalked)

	// Nothing is left to disclose on the second conversation.
	result = e.Perform(context.Background(), "talk_officer_chen")
	assert.Empty(t, result.Discoveries)
	assert.Equal(t, 2, w.Character("officer_chen").Memory.TimesTalked)
}

func TestEngine_TalkBelowTrustThresholdSharesNothing(t *testing.T) {
	w, endings := murderWorld(t)
	w.Character("officer_chen").Trust = 20
	e := New(w, endings, nil, testLogger())

	result := e.Perform(context.Background(), "talk_officer_chen")
	assert.Empty(t, result.Discoveries)
	assert.False(t, w.Player.HasClue("initial_timeline"))
	assert.Contains(t, w.Character("officer_chen").WillShareClues, "initial_timeline",
		"the clue stays shareable for when trust improves")
}

func TestEngine_TalkToAbsentCharacter(t *testing.T) {
	w, endings := murderWorld(t)
	e := New(w, endings, nil, testLogger())

	result := e.Perform(context.Background(), "talk_ghost")
	assert.Equal(t, "That person is not here.", result.Narrative)
	assert.Empty(t, w.Player.CharactersMet)
}

func TestEngine_GatedTravelOpensWithClue(t *testing.T) {
	w, endings := murderWorld(t)
	e := New(w, endings, nil, testLogger())

	// Move to the station first.
	e.Perform(context.Background(), "travel_police_station")
	require.Equal(t, "police_station", w.Player.Location)

	// The lab edge is gated on wine_residue: not listed, and a direct
	// attempt is declined without mutation.
	for _, a := range e.ListActions() {
		assert.NotEqual(t, "travel_forensics_lab", a.ID)
	}
	before := w.CurrentTime
	result := e.Perform(context.Background(), "travel_forensics_lab")
	assert.Contains(t, result.Narrative, "can't go there")
	assert.Equal(t, "police_station", w.Player.Location)
	assert.Equal(t, before, w.CurrentTime, "declined travel must not advance the clock")

	// Collecting the clue opens the edge.
	w.Player.AddClue("wine_residue")
	var ids []string
	for _, a := range e.ListActions() {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "travel_forensics_lab")

	result = e.Perform(context.Background(), "travel_forensics_lab")
	assert.NotContains(t, result.Narrative, "can't go there")
	assert.Equal(t, "forensics_lab", w.Player.Location)
	assert.Equal(t, before+world.TravelMinutes, w.CurrentTime)
}

func TestEngine_ObjectiveChainAndEnding(t *testing.T) {
	w, endings := murderWorld(t)
	e := New(w, endings, nil, testLogger())
	q := w.Quest("solve_murder")

	// visit_scene completes on the first action evaluation; the player
	// already stands at the crime scene.
	e.Perform(context.Background(), "examine_location")
	assert.Contains(t, q.CompletedObjectives, "visit_scene")
	assert.Equal(t, quest.StatusActive, q.Status)

	// talk_chen only completes after its prerequisite did.
	e.Perform(context.Background(), "talk_officer_chen")
	assert.Contains(t, q.CompletedObjectives, "talk_chen")
	assert.Equal(t, quest.StatusActive, q.Status)

	// Collect the gate clue, travel to the lab, and find the report.
	e.Perform(context.Background(), "search")
	e.Perform(context.Background(), "travel_police_station")
	e.Perform(context.Background(), "travel_forensics_lab")
	require.Equal(t, "forensics_lab", w.Player.Location)

	result := e.Perform(context.Background(), "search")
	assert.Contains(t, result.Discoveries, "Toxicology Report")

	// The final objective completes the quest, grants rewards, and the
	// first matching ending rule fires.
	assert.Equal(t, quest.StatusCompleted, q.Status)
	assert.True(t, w.Player.HasCompletedQuest("solve_murder"))
	assert.Equal(t, 100, w.Player.Reputation)
	assert.True(t, w.GameOver)
	assert.Equal(t, world.EndingGood, w.Ending)
}

func TestEngine_EndingRulesFirstMatchWins(t *testing.T) {
	w, endings := murderWorld(t)
	// Without wine_residue only the neutral rule matches.
	w.Location("crime_scene").CluesAvailable = []string{"broken_window"}
	e := New(w, endings, nil, testLogger())

	e.Perform(context.Background(), "examine_location")
	e.Perform(context.Background(), "talk_officer_chen")
	w.Player.AddClue("toxicology_report")
	e.Perform(context.Background(), "search")

	assert.True(t, w.GameOver)
	assert.Equal(t, world.EndingNeutral, w.Ending)
}

func TestEngine_PrerequisiteOrderingBlocksEarlyCompletion(t *testing.T) {
	w, endings := murderWorld(t)
	// Hand the player the final clue before the chain has started.
	w.Player.AddClue("toxicology_report")
	e := New(w, endings, nil, testLogger())
	q := w.Quest("solve_murder")

	// First action completes visit_scene but get_report is not on the
	// frontier yet, so it stays incomplete despite its condition holding.
	e.Perform(context.Background(), "examine_location")
	assert.Contains(t, q.CompletedObjectives, "visit_scene")
	assert.NotContains(t, q.CompletedObjectives, "get_report")

	// Completing talk_chen releases get_report on the same evaluation
	// pass cadence: the next action completes it.
	e.Perform(context.Background(), "talk_officer_chen")
	assert.Contains(t, q.CompletedObjectives, "talk_chen")

	e.Perform(context.Background(), "examine_location")
	assert.Contains(t, q.CompletedObjectives, "get_report")
	assert.Equal(t, quest.StatusCompleted, q.Status)
}

func TestEngine_UnknownActionMutatesNothing(t *testing.T) {
	w, endings := murderWorld(t)
	e := New(w, endings, nil, testLogger())

	before := w.CurrentTime
	result := e.Perform(context.Background(), "dance")
	assert.Equal(t, "Unknown action.", result.Narrative)
	assert.Equal(t, before, w.CurrentTime)
	assert.Empty(t, w.Player.Inventory)
	assert.Empty(t, w.Player.CluesFound)
}

func TestEngine_GameOverBlocksActions(t *testing.T) {
	w, endings := murderWorld(t)
	w.GameOver = true
	e := New(w, endings, nil, testLogger())

	result := e.Perform(context.Background(), "search")
	assert.Equal(t, "The case is closed.", result.Narrative)
	assert.Empty(t, w.Player.Inventory)
}

func TestEngine_NarratorFailureFallsBack(t *testing.T) {
	w, endings := murderWorld(t)
	narrator := &stubNarrator{err: errors.New("provider down")}
	e := New(w, endings, narrator, testLogger())

	result := e.Perform(context.Background(), "examine_location")
	assert.Equal(t, 1, narrator.calls)
	assert.Contains(t, result.Narrative, "Luxury Penthouse",
		"fallback narration still describes the scene")

	// World mutation survives the narration failure.
	assert.Contains(t, w.Player.LocationsVisited, "crime_scene")
}

func TestEngine_NarratorSuccessIsUsed(t *testing.T) {
	w, endings := murderWorld(t)
	narrator := &stubNarrator{text: "The penthouse is silent."}
	e := New(w, endings, narrator, testLogger())

	result := e.Perform(context.Background(), "examine_location")
	assert.Equal(t, "The penthouse is silent.", result.Narrative)
}

func TestEngine_EmptyNarrationFallsBack(t *testing.T) {
	w, endings := murderWorld(t)
	narrator := &stubNarrator{text: ""}
	e := New(w, endings, narrator, testLogger())

	result := e.Perform(context.Background(), "examine_location")
	assert.NotEmpty(t, result.Narrative)
	assert.Contains(t, result.Narrative, "Luxury Penthouse")
}

func TestEngine_RatedCaseFiltersNarration(t *testing.T) {
	w, endings := murderWorld(t)
	w.Rating = "PG13"
	narrator := &stubNarrator{text: "The whole damn room smells of wine."}
	e := New(w, endings, narrator, testLogger())

	result := e.Perform(context.Background(), "examine_location")
	assert.Equal(t, "The whole dang room smells of wine.", result.Narrative)
}

func TestEngine_UnratedCaseLeavesNarrationAlone(t *testing.T) {
	w, endings := murderWorld(t)
	narrator := &stubNarrator{text: "The whole damn room smells of wine."}
	e := New(w, endings, narrator, testLogger())

	result := e.Perform(context.Background(), "examine_location")
	assert.Equal(t, "The whole damn room smells of wine.", result.Narrative)
}

func TestEngine_Stats(t *testing.T) {
	w, endings := murderWorld(t)
	e := New(w, endings, nil, testLogger())

	e.Perform(context.Background(), "search")
	e.Perform(context.Background(), "talk_officer_chen")

	stats := e.Stats()
	assert.Equal(t, "Luxury Penthouse", stats.Location)
	assert.Equal(t, 1, stats.Day)
	assert.Equal(t, 2, stats.ItemsCollected)
	assert.Equal(t, 1, stats.CharactersMet)
	assert.GreaterOrEqual(t, stats.CluesFound, 4)
	assert.False(t, stats.GameOver)
}
