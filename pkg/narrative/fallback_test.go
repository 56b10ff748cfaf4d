package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallback_Examine(t *testing.T) {
	ctx := &Context{
		Action:              ActionExamine,
		LocationName:        "Luxury Penthouse",
		LocationDescription: "A lavish apartment.",
		CharactersPresent:   []string{"Officer Chen", "Dr. Martinez"},
		HasMoreToFind:       true,
	}

	out := Fallback(ctx)
	assert.Contains(t, out, "Luxury Penthouse")
	assert.Contains(t, out, "Officer Chen, Dr. Martinez")
	assert.Contains(t, out, "hasn't been fully searched")

	ctx.HasMoreToFind = false
	assert.Contains(t, Fallback(ctx), "all there is to see")
}

func TestFallback_Talk(t *testing.T) {
	ctx := &Context{
		Action:      ActionTalk,
		Character:   &CharacterSnapshot{Name: "Sarah Chen", Mood: "suspicious"},
		SharedClues: []string{"Sarah's Alibi"},
	}

	out := Fallback(ctx)
	assert.Contains(t, out, "Sarah Chen")
	assert.Contains(t, out, "suspicious")
	assert.Contains(t, out, "Sarah's Alibi")

	ctx.SharedClues = nil
	assert.Contains(t, Fallback(ctx), "nothing new to tell you")
}

func TestFallback_Search(t *testing.T) {
	ctx := &Context{
		Action: ActionSearch,
		Discoveries: []Discovery{
			{Kind: "item", Name: "Wine Glass", Description: "Crystal, with residue."},
			{Kind: "clue", Name: "Broken Window"},
		},
		SkillsTooLow: []string{"investigation"},
	}

	out := Fallback(ctx)
	assert.Contains(t, out, "Wine Glass")
	assert.Contains(t, out, "Broken Window")
	assert.Contains(t, out, "sharper investigation")

	empty := Fallback(&Context{Action: ActionSearch})
	assert.Contains(t, empty, "nothing new")
}

func TestFallback_Travel(t *testing.T) {
	ctx := &Context{
		Action:       ActionTravel,
		LocationName: "Forensics Laboratory",
		TimeString:   "8:15 AM",
		Day:          1,
	}

	out := Fallback(ctx)
	assert.Contains(t, out, "Forensics Laboratory")
	assert.Contains(t, out, "8:15 AM")
	assert.Contains(t, out, "day 1")
}

func TestFallback_UnknownAction(t *testing.T) {
	out := Fallback(&Context{Action: ActionKind("meditate")})
	assert.Equal(t, "You meditate.", out)
}

func TestBuildMessages(t *testing.T) {
	msgs, err := BuildMessages(&Context{Action: ActionExamine, LocationName: "Station"})
	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, SystemPrompt, msgs[0].Content)
	assert.Contains(t, msgs[1].Content, `"location_name":"Station"`)
}
