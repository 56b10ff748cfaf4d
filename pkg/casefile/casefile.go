package casefile

import (
	"github.com/jwebster45206/case-engine/pkg/quest"
	"github.com/jwebster45206/case-engine/pkg/world"
)

// PlayerSpec is the authored starting state of the investigator.
type PlayerSpec struct {
	Name       string       `json:"name"`
	Skills     world.Skills `json:"skills,omitempty"`
	Reputation int          `json:"reputation,omitempty"` // 0 means the default of 50
	Location   string       `json:"location"`
	Inventory  []string     `json:"inventory,omitempty"`
}

// EndingRule classifies how a session ends. Rules are evaluated in
// order after every action; the first rule whose quest is completed and
// whose clues are all collected wins.
type EndingRule struct {
	ID            string       `json:"id"`
	Type          world.Ending `json:"type"`
	RequiresQuest string       `json:"requires_quest"`
	RequiresClues []string     `json:"requires_clues,omitempty"`
}

// Casefile is the authored template for an investigation session. It is
// stored as a JSON document and built into a fresh WorldState per
// session.
type Casefile struct {
	Title       string `json:"title"`
	FileName    string `json:"file_name,omitempty"` // set by storage when loaded
	Story       string `json:"story,omitempty"`
	OpeningTime *int   `json:"opening_time,omitempty"` // minutes since midnight; nil means 8:00 AM
	Weather     string `json:"weather,omitempty"`
	Rating      string `json:"rating,omitempty"` // content rating; G/PG/PG13 narration is profanity-filtered

	Player     PlayerSpec                  `json:"player"`
	Locations  map[string]*world.Location  `json:"locations"`
	Characters map[string]*world.Character `json:"characters"`
	Items      map[string]*world.Item      `json:"items,omitempty"`
	Clues      map[string]*world.Clue      `json:"clues,omitempty"`
	Quests     map[string]*quest.Quest     `json:"quests,omitempty"`

	Endings []EndingRule `json:"endings,omitempty"`
}
