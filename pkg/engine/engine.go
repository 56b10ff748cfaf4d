package engine

import (
	"context"
	"log/slog"

	"github.com/jwebster45206/case-engine/pkg/casefile"
	"github.com/jwebster45206/case-engine/pkg/narrative"
	"github.com/jwebster45206/case-engine/pkg/quest"
	"github.com/jwebster45206/case-engine/pkg/textfilter"
	"github.com/jwebster45206/case-engine/pkg/world"
)

// Narrator turns a narration context into prose. Implementations may
// call external services and may fail; the engine treats narration as
// cosmetic and never lets a narrator error affect world state.
type Narrator interface {
	GenerateNarration(ctx context.Context, nc *narrative.Context) (string, error)
}

// Engine applies player actions to a single world state. It is not safe
// for concurrent use: one action is fully applied before the next is
// accepted, and the engine assumes exclusive ownership of the world for
// the duration of each call.
type Engine struct {
	world    *world.WorldState
	endings  []casefile.EndingRule
	narrator Narrator // nil means template narration only
	filter   *textfilter.Filter
	logger   *slog.Logger
}

// New creates an engine over a built world state. The ending rules come
// from the casefile the world was built from. A nil narrator disables
// LLM narration entirely.
func New(w *world.WorldState, endings []casefile.EndingRule, narrator Narrator, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		world:    w,
		endings:  endings,
		narrator: narrator,
		logger:   logger,
	}
	if narrator != nil && textfilter.ShouldFilter(w.Rating) {
		e.filter = textfilter.NewFilter()
	}
	return e
}

// World exposes the engine's world state for persistence and display.
func (e *Engine) World() *world.WorldState {
	return e.world
}

// GameStats is a summary of session progress.
type GameStats struct {
	Location         string `json:"location"`
	Time             string `json:"time"`
	Day              int    `json:"day"`
	Reputation       int    `json:"reputation"`
	CluesFound       int    `json:"clues_found"`
	ItemsCollected   int    `json:"items_collected"`
	LocationsVisited int    `json:"locations_visited"`
	CharactersMet    int    `json:"characters_met"`
	GameOver         bool   `json:"game_over"`
	Ending           string `json:"ending,omitempty"`
}

// Stats returns the current session summary.
func (e *Engine) Stats() GameStats {
	locName := "unknown"
	if loc := e.world.CurrentLocation(); loc != nil {
		locName = loc.Name
	}
	return GameStats{
		Location:         locName,
		Time:             e.world.TimeString(),
		Day:              e.world.Day,
		Reputation:       e.world.Player.Reputation,
		CluesFound:       len(e.world.Player.CluesFound),
		ItemsCollected:   len(e.world.Player.Inventory),
		LocationsVisited: len(e.world.Player.LocationsVisited),
		CharactersMet:    len(e.world.Player.CharactersMet),
		GameOver:         e.world.GameOver,
		Ending:           string(e.world.Ending),
	}
}

// updateQuestProgress re-evaluates objective completion triggers for
// every active quest. Each trigger checks an orthogonal condition, so
// evaluation order does not matter. Called after every action.
func (e *Engine) updateQuestProgress() {
	p := e.world.Player
	for _, q := range e.world.ActiveQuests() {
		for _, o := range q.AvailableObjectives() {
			completed := false
			switch o.Type {
			case quest.ObjectiveGoToLocation:
				completed = p.Location == o.TargetID
			case quest.ObjectiveCollectItem:
				if o.TargetID != "" {
					completed = p.HasItem(o.TargetID)
				} else {
					// No target: any items count toward quantity. Kept
					// as a separate branch from the targeted form.
					completed = len(p.Inventory) >= o.Quantity
				}
			case quest.ObjectiveFindClue:
				completed = p.HasClue(o.TargetID)
			case quest.ObjectiveTalkToCharacter:
				completed = p.HasMet(o.TargetID)
			}
			if completed && q.CompleteObjective(o.ID) {
				e.onQuestCompleted(q)
			}
		}
	}
}

// activateQuests starts any available quest whose unlock prerequisites
// the player now satisfies.
func (e *Engine) activateQuests() {
	for _, q := range e.world.AvailableQuests() {
		q.Start()
		e.logger.Info("Quest activated", "quest", q.ID)
	}
}

// onQuestCompleted records the completion and grants rewards.
func (e *Engine) onQuestCompleted(q *quest.Quest) {
	p := e.world.Player
	p.CompleteQuest(q.ID)
	p.ModifyReputation(q.Rewards.Reputation)
	for _, itemID := range q.Rewards.Items {
		p.AddItem(itemID)
	}
	// Unlocking a location drops every gate on edges leading to it.
	for _, locID := range q.Rewards.UnlocksLocations {
		for _, loc := range e.world.Locations {
			delete(loc.Requirements, locID)
		}
	}
	e.logger.Info("Quest completed", "quest", q.ID, "reputation", p.Reputation)
}

// checkEndings evaluates the casefile's ending rules in order and ends
// the session on the first match. Ending is one-directional.
func (e *Engine) checkEndings() {
	if e.world.GameOver {
		return
	}
	p := e.world.Player
	for _, rule := range e.endings {
		q := e.world.Quest(rule.RequiresQuest)
		if q == nil || q.Status != quest.StatusCompleted {
			continue
		}
		met := true
		for _, clueID := range rule.RequiresClues {
			if !p.HasClue(clueID) {
				met = false
				break
			}
		}
		if met {
			e.world.GameOver = true
			e.world.Ending = rule.Type
			e.logger.Info("Session ended", "ending", rule.Type, "rule", rule.ID)
			return
		}
	}
}

// narrate produces prose for an already-applied action. Narrator
// failures fall back to the static templates and are logged only; the
// world state is committed either way.
func (e *Engine) narrate(ctx context.Context, nc *narrative.Context) string {
	if e.narrator == nil {
		return narrative.Fallback(nc)
	}
	text, err := e.narrator.GenerateNarration(ctx, nc)
	if err != nil || text == "" {
		e.logger.Warn("Narration failed, using fallback", "action", nc.Action, "error", err)
		return narrative.Fallback(nc)
	}
	// Template fallbacks are clean by construction; only generated prose
	// needs the rating filter.
	if e.filter != nil {
		text = e.filter.Sanitize(text)
	}
	return text
}
