package engine

import (
	"context"
	"strings"

	"github.com/jwebster45206/case-engine/pkg/narrative"
	"github.com/jwebster45206/case-engine/pkg/world"
)

// Action id prefixes. Action ids are stable across calls so a caller
// can list, display, and invoke them.
const (
	actionExamine      = "examine_location"
	actionSearch       = "search"
	actionTalkPrefix   = "talk_"
	actionTravelPrefix = "travel_"
)

// Action is one legal player move at the current location.
type Action struct {
	ID     string               `json:"id"`
	Label  string               `json:"label"`
	Kind   narrative.ActionKind `json:"kind"`
	Target string               `json:"target,omitempty"`
}

// ActionResult is the outcome of performing an action.
type ActionResult struct {
	Narrative   string   `json:"narrative"`
	Discoveries []string `json:"discoveries,omitempty"`
}

// ListActions enumerates the legal actions at the player's current
// location: one examine, one talk per character present, one search if
// anything undiscovered remains, and one travel per neighbor whose gate
// currently allows passage.
func (e *Engine) ListActions() []Action {
	loc := e.world.CurrentLocation()
	if loc == nil {
		return nil
	}

	actions := []Action{{
		ID:    actionExamine,
		Label: "Examine " + loc.Name,
		Kind:  narrative.ActionExamine,
	}}

	for _, c := range e.world.CharactersAt(loc.ID) {
		actions = append(actions, Action{
			ID:     actionTalkPrefix + c.ID,
			Label:  "Talk to " + c.Name,
			Kind:   narrative.ActionTalk,
			Target: c.ID,
		})
	}

	if len(loc.AvailableItems()) > 0 || len(loc.AvailableClues()) > 0 {
		actions = append(actions, Action{
			ID:    actionSearch,
			Label: "Search for evidence",
			Kind:  narrative.ActionSearch,
		})
	}

	for _, connID := range loc.Connections {
		conn := e.world.Location(connID)
		if conn == nil {
			continue // dangling reference, tolerated
		}
		if ok, _ := loc.CanTravelTo(connID, e.world.Player, e.world); ok {
			actions = append(actions, Action{
				ID:     actionTravelPrefix + connID,
				Label:  "Travel to " + conn.Name,
				Kind:   narrative.ActionTravel,
				Target: connID,
			})
		}
	}

	return actions
}

// Perform applies one action. State mutation happens first and is never
// rolled back; narration is generated afterward and falls back to
// static templates on failure. Unknown action ids mutate nothing.
func (e *Engine) Perform(ctx context.Context, actionID string) *ActionResult {
	if e.world.GameOver {
		return &ActionResult{Narrative: "The case is closed."}
	}

	loc := e.world.CurrentLocation()
	if loc == nil {
		return &ActionResult{Narrative: "You are nowhere recognizable."}
	}

	var (
		nc          *narrative.Context
		discoveries []string
	)

	switch {
	case actionID == actionExamine:
		nc = e.examineLocation()

	case strings.HasPrefix(actionID, actionTalkPrefix):
		characterID := strings.TrimPrefix(actionID, actionTalkPrefix)
		var declined string
		nc, declined = e.talkTo(characterID)
		if declined != "" {
			return &ActionResult{Narrative: declined}
		}
		discoveries = nc.SharedClues

	case actionID == actionSearch:
		nc = e.searchLocation()
		for _, d := range nc.Discoveries {
			discoveries = append(discoveries, d.Name)
		}

	case strings.HasPrefix(actionID, actionTravelPrefix):
		targetID := strings.TrimPrefix(actionID, actionTravelPrefix)
		var declined string
		nc, declined = e.travelTo(targetID)
		if declined != "" {
			return &ActionResult{Narrative: declined}
		}

	default:
		return &ActionResult{Narrative: "Unknown action."}
	}

	e.activateQuests()
	e.updateQuestProgress()
	e.checkEndings()

	return &ActionResult{
		Narrative:   e.narrate(ctx, nc),
		Discoveries: discoveries,
	}
}

// examineLocation records a visit and snapshots the scene.
func (e *Engine) examineLocation() *narrative.Context {
	loc := e.world.CurrentLocation()
	loc.Visit()
	e.world.Player.VisitLocation(loc.ID)
	return e.baseContext(narrative.ActionExamine, loc.ID)
}

// talkTo converses with a character at the current location. Every clue
// the character is currently willing to share moves into the player's
// collected clues. Returns a declined message for invalid targets.
func (e *Engine) talkTo(characterID string) (*narrative.Context, string) {
	loc := e.world.CurrentLocation()
	c := e.world.Character(characterID)
	if c == nil || c.Location != loc.ID {
		return nil, "That person is not here."
	}

	e.world.Player.MeetCharacter(characterID)
	c.RecordTalk("")

	var shared []string
	for _, clueID := range append([]string{}, c.WillShareClues...) {
		if !c.ShareClue(clueID) {
			continue
		}
		e.world.Player.AddClue(clueID)
		if clue := e.world.Clue(clueID); clue != nil {
			shared = append(shared, clue.Title)
		} else {
			shared = append(shared, clueID)
		}
	}

	nc := e.baseContext(narrative.ActionTalk, loc.ID)
	nc.Character = &narrative.CharacterSnapshot{
		Name:        c.Name,
		Description: c.Description,
		Role:        string(c.Role),
		Mood:        string(c.Mood),
		Traits:      c.Traits,
	}
	nc.SharedClues = shared
	return nc, ""
}

// searchLocation turns up at most SearchLimit untaken items and
// SearchLimit unfound clues, in list order. Clues are individually
// gated by the player's skills; a failed gate leaves the clue in place
// for a future search.
func (e *Engine) searchLocation() *narrative.Context {
	loc := e.world.CurrentLocation()
	p := e.world.Player

	nc := e.baseContext(narrative.ActionSearch, loc.ID)

	items := loc.AvailableItems()
	if len(items) > world.SearchLimit {
		items = items[:world.SearchLimit]
	}
	for _, itemID := range items {
		item := e.world.Item(itemID)
		if item == nil {
			continue
		}
		loc.TakeItem(itemID)
		p.AddItem(itemID)
		if item.IsClue {
			p.AddClue(itemID)
		}
		nc.Discoveries = append(nc.Discoveries, narrative.Discovery{
			Kind:        "item",
			Name:        item.Name,
			Description: item.Description,
		})
	}

	clues := loc.AvailableClues()
	if len(clues) > world.SearchLimit {
		clues = clues[:world.SearchLimit]
	}
	for _, clueID := range clues {
		clue := e.world.Clue(clueID)
		if clue == nil {
			continue
		}
		if clue.RequiresSkill != "" && p.Skills.Skill(clue.RequiresSkill) < clue.RequiresLevel {
			nc.SkillsTooLow = append(nc.SkillsTooLow, clue.RequiresSkill)
			continue
		}
		loc.FindClue(clueID)
		p.AddClue(clueID)
		nc.Discoveries = append(nc.Discoveries, narrative.Discovery{
			Kind:        "clue",
			Name:        clue.Title,
			Description: clue.Description,
		})
	}

	loc.RecordSearch()
	nc.HasMoreToFind = len(loc.AvailableItems()) > 0 || len(loc.AvailableClues()) > 0
	return nc
}

// travelTo moves the player along an open edge and advances the clock.
// Returns a declined message when the edge does not exist or its gate
// is closed; nothing is mutated in that case.
func (e *Engine) travelTo(targetID string) (*narrative.Context, string) {
	loc := e.world.CurrentLocation()
	target := e.world.Location(targetID)
	if target == nil {
		return nil, "That location doesn't exist."
	}

	if ok, reason := loc.CanTravelTo(targetID, e.world.Player, e.world); !ok {
		return nil, "You can't go there: " + reason + "."
	}

	fromName := loc.Name
	e.world.Player.VisitLocation(targetID)
	target.Visit()
	e.world.AdvanceTime(world.TravelMinutes)

	nc := e.baseContext(narrative.ActionTravel, targetID)
	nc.TravelFromName = fromName
	return nc, ""
}

// baseContext snapshots the shared narration fields for a location.
func (e *Engine) baseContext(kind narrative.ActionKind, locationID string) *narrative.Context {
	loc := e.world.Location(locationID)
	var names []string
	for _, c := range e.world.CharactersAt(locationID) {
		names = append(names, c.Name)
	}
	return &narrative.Context{
		Action:              kind,
		LocationName:        loc.Name,
		LocationDescription: loc.Description,
		CharactersPresent:   names,
		HasMoreToFind:       len(loc.AvailableItems()) > 0 || len(loc.AvailableClues()) > 0,
		TimeString:          e.world.TimeString(),
		Day:                 e.world.Day,
		Weather:             e.world.Weather,
		Reputation:          e.world.Player.Reputation,
	}
}
