package casefile

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/case-engine/pkg/quest"
	"github.com/jwebster45206/case-engine/pkg/world"
)

const (
	defaultOpeningTime = 480 // 8:00 AM
	defaultReputation  = 50
	defaultSkill       = 5
)

// Build constructs a fresh WorldState from the casefile. The casefile
// itself is never mutated; every session gets its own deep copy, so one
// loaded casefile can seed any number of sessions.
func (cf *Casefile) Build() (*world.WorldState, error) {
	// Deep-copy the authored registries through their JSON form. The
	// casefile is JSON-shaped by definition, so this round trip is
	// lossless.
	data, err := json.Marshal(cf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal casefile: %w", err)
	}
	var copied Casefile
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, fmt.Errorf("failed to copy casefile: %w", err)
	}

	p := &world.Player{
		Name:       copied.Player.Name,
		Skills:     copied.Player.Skills,
		Reputation: copied.Player.Reputation,
		Inventory:  copied.Player.Inventory,
	}
	if p.Reputation == 0 {
		p.Reputation = defaultReputation
	}
	if p.Skills == (world.Skills{}) {
		p.Skills = world.Skills{
			Investigation: defaultSkill,
			Persuasion:    defaultSkill,
			Perception:    defaultSkill,
			Intuition:     defaultSkill,
			Physical:      defaultSkill,
		}
	}

	w := world.NewWorldState(p)
	w.CasefileName = cf.FileName
	if w.CasefileName == "" {
		w.CasefileName = cf.Title
	}
	w.Weather = copied.Weather
	if w.Weather == "" {
		w.Weather = "clear"
	}
	w.Rating = copied.Rating
	if copied.OpeningTime != nil {
		w.CurrentTime = *copied.OpeningTime
	} else {
		w.CurrentTime = defaultOpeningTime
	}

	for id, loc := range copied.Locations {
		loc.ID = id
		if loc.State == "" {
			loc.State = world.LocationAvailable
		}
		w.Locations[id] = loc
	}
	for id, c := range copied.Characters {
		c.ID = id
		// Mood and tier are derived state; recompute rather than trust
		// whatever the author wrote.
		c.ModifyTrust(0)
		w.Characters[id] = c
	}
	for id, item := range copied.Items {
		item.ID = id
		w.Items[id] = item
	}
	for id, clue := range copied.Clues {
		clue.ID = id
		w.Clues[id] = clue
	}
	for id, q := range copied.Quests {
		q.ID = id
		if q.Status == "" {
			q.Status = quest.StatusLocked
		}
		for oid, o := range q.Objectives {
			o.ID = oid
			if o.Quantity <= 0 {
				o.Quantity = 1
			}
		}
		w.Quests[id] = q
	}

	p.VisitLocation(copied.Player.Location)
	if start := w.CurrentLocation(); start != nil {
		start.Visit()
	}

	return w, nil
}
