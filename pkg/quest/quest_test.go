package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlayer implements PlayerView for unlock tests.
type fakePlayer struct {
	clues     []string
	completed []string
	location  string
}

func (f *fakePlayer) HasClue(id string) bool {
	for _, c := range f.clues {
		if c == id {
			return true
		}
	}
	return false
}

func (f *fakePlayer) HasCompletedQuest(id string) bool {
	for _, q := range f.completed {
		if q == id {
			return true
		}
	}
	return false
}

func (f *fakePlayer) CurrentLocation() string { return f.location }

func chainQuest() *Quest {
	q := &Quest{ID: "chain", Title: "Chain", Status: StatusActive}
	q.AddObjective(&Objective{ID: "a", Type: ObjectiveGoToLocation, TargetID: "scene", Quantity: 1})
	q.AddObjective(&Objective{ID: "b", Type: ObjectiveFindClue, TargetID: "residue", Quantity: 1, Requires: []string{"a"}})
	q.AddObjective(&Objective{ID: "c", Type: ObjectiveTalkToCharacter, TargetID: "sarah", Quantity: 1, Requires: []string{"b"}})
	return q
}

func TestQuest_AvailableObjectives_Frontier(t *testing.T) {
	q := chainQuest()

	// Only the root is available before anything completes.
	frontier := q.AvailableObjectives()
	require.Len(t, frontier, 1)
	assert.Equal(t, "a", frontier[0].ID)

	q.CompleteObjective("a")
	frontier = q.AvailableObjectives()
	require.Len(t, frontier, 1)
	assert.Equal(t, "b", frontier[0].ID)

	q.CompleteObjective("b")
	frontier = q.AvailableObjectives()
	require.Len(t, frontier, 1)
	assert.Equal(t, "c", frontier[0].ID)
}

func TestQuest_CompleteObjective_CompletesQuestExactlyOnce(t *testing.T) {
	q := chainQuest()

	assert.False(t, q.CompleteObjective("a"))
	assert.False(t, q.CompleteObjective("b"))
	assert.Equal(t, StatusActive, q.Status)

	// Only the final completion flips the quest.
	assert.True(t, q.CompleteObjective("c"))
	assert.Equal(t, StatusCompleted, q.Status)

	// Completing again reports nothing.
	assert.False(t, q.CompleteObjective("c"))
}

func TestQuest_CompleteObjective_Unknown(t *testing.T) {
	q := chainQuest()
	assert.False(t, q.CompleteObjective("nope"))
	assert.Empty(t, q.CompletedObjectives)
}

func TestQuest_DiamondDependency(t *testing.T) {
	q := &Quest{ID: "diamond", Status: StatusActive}
	q.AddObjective(&Objective{ID: "start", Quantity: 1})
	q.AddObjective(&Objective{ID: "left", Quantity: 1, Requires: []string{"start"}})
	q.AddObjective(&Objective{ID: "right", Quantity: 1, Requires: []string{"start"}})
	q.AddObjective(&Objective{ID: "end", Quantity: 1, Requires: []string{"left", "right"}})

	q.CompleteObjective("start")
	frontier := q.AvailableObjectives()
	require.Len(t, frontier, 2)
	assert.Equal(t, "left", frontier[0].ID, "frontier is ordered by id")
	assert.Equal(t, "right", frontier[1].ID)

	q.CompleteObjective("left")
	// end is still blocked on right.
	for _, o := range q.AvailableObjectives() {
		assert.NotEqual(t, "end", o.ID)
	}

	q.CompleteObjective("right")
	frontier = q.AvailableObjectives()
	require.Len(t, frontier, 1)
	assert.Equal(t, "end", frontier[0].ID)
}

func TestQuest_IsUnlocked(t *testing.T) {
	q := &Quest{
		ID:               "gated",
		RequiresQuests:   []string{"intro"},
		RequiresClues:    []string{"residue"},
		RequiresLocation: "lab",
	}

	p := &fakePlayer{}
	assert.False(t, q.IsUnlocked(p))

	p.completed = []string{"intro"}
	assert.False(t, q.IsUnlocked(p))

	p.clues = []string{"residue"}
	assert.False(t, q.IsUnlocked(p))

	p.location = "lab"
	assert.True(t, q.IsUnlocked(p))
}

func TestQuest_Lifecycle(t *testing.T) {
	q := &Quest{Status: StatusAvailable}
	q.Start()
	assert.Equal(t, StatusActive, q.Status)

	q.Fail()
	assert.Equal(t, StatusFailed, q.Status)

	done := &Quest{Status: StatusCompleted}
	done.Fail()
	assert.Equal(t, StatusCompleted, done.Status, "completed quests cannot fail")

	locked := &Quest{Status: StatusLocked}
	locked.Start()
	assert.Equal(t, StatusLocked, locked.Status, "locked quests cannot start")
}

func TestQuest_Progress(t *testing.T) {
	q := chainQuest()
	assert.Equal(t, 0.0, q.Progress())
	q.CompleteObjective("a")
	assert.InDelta(t, 33.3, q.Progress(), 0.1)
	q.CompleteObjective("b")
	q.CompleteObjective("c")
	assert.Equal(t, 100.0, q.Progress())

	empty := &Quest{}
	assert.Equal(t, 0.0, empty.Progress())
}

func TestObjective_AdvanceProgress(t *testing.T) {
	o := &Objective{ID: "collect", Type: ObjectiveCollectItem, Quantity: 3}

	assert.False(t, o.AdvanceProgress(1))
	assert.False(t, o.AdvanceProgress(1))
	assert.Equal(t, 2, o.Progress)

	assert.True(t, o.AdvanceProgress(5), "progress caps at quantity")
	assert.Equal(t, 3, o.Progress)
	assert.True(t, o.Completed)
}
