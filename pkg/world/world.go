package world

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/case-engine/pkg/quest"
)

// MinutesPerDay is the length of one in-world day.
const MinutesPerDay = 1440

// TravelMinutes is how much in-world time one travel action consumes.
const TravelMinutes = 15

// Ending classifies how a session concluded.
type Ending string

const (
	EndingGood    Ending = "good"
	EndingNeutral Ending = "neutral"
	EndingBad     Ending = "bad"
)

// WorldState is the complete state of one investigation session. It is
// the single unit of mutation: action handlers receive exclusive access
// to it, and it is what storage persists.
type WorldState struct {
	ID           uuid.UUID `json:"id"`
	CasefileName string    `json:"casefile_name,omitempty"`

	Player     *Player                 `json:"player"`
	Locations  map[string]*Location    `json:"locations"`
	Characters map[string]*Character   `json:"characters"`
	Items      map[string]*Item        `json:"items"`
	Clues      map[string]*Clue        `json:"clues"`
	Quests     map[string]*quest.Quest `json:"quests"`

	CurrentTime int    `json:"current_time"` // minutes since midnight
	Day         int    `json:"day"`
	Weather     string `json:"weather,omitempty"`
	Rating      string `json:"rating,omitempty"`

	GameOver bool   `json:"game_over"`
	Ending   Ending `json:"ending,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWorldState returns an empty world owned by the given player.
func NewWorldState(p *Player) *WorldState {
	return &WorldState{
		ID:          uuid.New(),
		Player:      p,
		Locations:   make(map[string]*Location),
		Characters:  make(map[string]*Character),
		Items:       make(map[string]*Item),
		Clues:       make(map[string]*Clue),
		Quests:      make(map[string]*quest.Quest),
		CurrentTime: 480, // 8:00 AM
		Day:         1,
		Weather:     "clear",
		CreatedAt:   time.Now().UTC(),
	}
}

// Location returns the location by id, or nil if unknown.
func (w *WorldState) Location(id string) *Location {
	return w.Locations[id]
}

// CurrentLocation returns the player's location, or nil if the player
// is somewhere unregistered.
func (w *WorldState) CurrentLocation() *Location {
	if w.Player == nil {
		return nil
	}
	return w.Locations[w.Player.Location]
}

// Character returns the character by id, or nil if unknown.
func (w *WorldState) Character(id string) *Character {
	return w.Characters[id]
}

// Item returns the item by id, or nil if unknown.
func (w *WorldState) Item(id string) *Item {
	return w.Items[id]
}

// Clue returns the clue by id, or nil if unknown.
func (w *WorldState) Clue(id string) *Clue {
	return w.Clues[id]
}

// Quest returns the quest by id, or nil if unknown.
func (w *WorldState) Quest(id string) *quest.Quest {
	return w.Quests[id]
}

// CharactersAt returns all characters currently at a location, in
// stable order by id.
func (w *WorldState) CharactersAt(locationID string) []*Character {
	var out []*Character
	for _, id := range sortedKeys(w.Characters) {
		if c := w.Characters[id]; c.Location == locationID {
			out = append(out, c)
		}
	}
	return out
}

// ActiveQuests returns all quests in the active state, ordered by id.
func (w *WorldState) ActiveQuests() []*quest.Quest {
	var out []*quest.Quest
	for _, id := range sortedKeys(w.Quests) {
		if q := w.Quests[id]; q.Status == quest.StatusActive {
			out = append(out, q)
		}
	}
	return out
}

// AvailableQuests returns quests that are available and whose unlock
// prerequisites the player currently satisfies, ordered by id.
func (w *WorldState) AvailableQuests() []*quest.Quest {
	var out []*quest.Quest
	for _, id := range sortedKeys(w.Quests) {
		if q := w.Quests[id]; q.Status == quest.StatusAvailable && q.IsUnlocked(w.Player) {
			out = append(out, q)
		}
	}
	return out
}

// AdvanceTime moves the clock forward. Rolling past midnight increments
// the day; callers never advance more than one day at a time.
func (w *WorldState) AdvanceTime(minutes int) {
	w.CurrentTime += minutes
	if w.CurrentTime >= MinutesPerDay {
		w.CurrentTime -= MinutesPerDay
		w.Day++
	}
	if w.Player != nil {
		w.Player.GameMinutes += minutes
	}
}

// TimeString formats the current time on a 12-hour clock. Midnight and
// noon both render as 12.
func (w *WorldState) TimeString() string {
	hours := w.CurrentTime / 60
	minutes := w.CurrentTime % 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
