package world

import (
	"slices"
	"strings"
)

// Skill bounds; all skills saturate within this range.
const (
	MinSkill = 0
	MaxSkill = 10
)

// Reputation bounds.
const (
	MinReputation = 0
	MaxReputation = 100
)

// Skills are the detective's attributes.
type Skills struct {
	Investigation int `json:"investigation"`
	Persuasion    int `json:"persuasion"`
	Perception    int `json:"perception"`
	Intuition     int `json:"intuition"`
	Physical      int `json:"physical"`
}

// Skill returns a skill value by name. Unknown names return 0.
func (s *Skills) Skill(name string) int {
	switch strings.ToLower(name) {
	case "investigation":
		return s.Investigation
	case "persuasion":
		return s.Persuasion
	case "perception":
		return s.Perception
	case "intuition":
		return s.Intuition
	case "physical":
		return s.Physical
	default:
		return 0
	}
}

// ModifySkill changes a skill by delta, saturating at [0,10].
func (s *Skills) ModifySkill(name string, delta int) {
	v := clamp(s.Skill(name)+delta, MinSkill, MaxSkill)
	switch strings.ToLower(name) {
	case "investigation":
		s.Investigation = v
	case "persuasion":
		s.Persuasion = v
	case "perception":
		s.Perception = v
	case "intuition":
		s.Intuition = v
	case "physical":
		s.Physical = v
	}
}

// Player is the investigator controlled by the caller.
type Player struct {
	Name       string `json:"name"`
	Skills     Skills `json:"skills"`
	Reputation int    `json:"reputation"`

	Location  string   `json:"location"`
	Inventory []string `json:"inventory,omitempty"`

	CluesFound       []string `json:"clues_found,omitempty"`
	LocationsVisited []string `json:"locations_visited,omitempty"`
	CharactersMet    []string `json:"characters_met,omitempty"`
	CompletedQuests  []string `json:"completed_quests,omitempty"`

	GameMinutes int `json:"game_minutes"` // elapsed in-world minutes
}

// AddItem adds an item to the inventory once.
func (p *Player) AddItem(itemID string) {
	if !slices.Contains(p.Inventory, itemID) {
		p.Inventory = append(p.Inventory, itemID)
	}
}

// RemoveItem removes an item from the inventory, reporting success.
func (p *Player) RemoveItem(itemID string) bool {
	idx := slices.Index(p.Inventory, itemID)
	if idx < 0 {
		return false
	}
	p.Inventory = slices.Delete(p.Inventory, idx, idx+1)
	return true
}

// HasItem reports whether the item is in the inventory.
func (p *Player) HasItem(itemID string) bool {
	return slices.Contains(p.Inventory, itemID)
}

// AddClue records a collected clue once.
func (p *Player) AddClue(clueID string) {
	if !slices.Contains(p.CluesFound, clueID) {
		p.CluesFound = append(p.CluesFound, clueID)
	}
}

// HasClue reports whether the clue has been collected.
func (p *Player) HasClue(clueID string) bool {
	return slices.Contains(p.CluesFound, clueID)
}

// VisitLocation moves the player and records the visit.
func (p *Player) VisitLocation(locationID string) {
	p.Location = locationID
	if !slices.Contains(p.LocationsVisited, locationID) {
		p.LocationsVisited = append(p.LocationsVisited, locationID)
	}
}

// MeetCharacter records the character as met once.
func (p *Player) MeetCharacter(characterID string) {
	if !slices.Contains(p.CharactersMet, characterID) {
		p.CharactersMet = append(p.CharactersMet, characterID)
	}
}

// HasMet reports whether the player has met the character.
func (p *Player) HasMet(characterID string) bool {
	return slices.Contains(p.CharactersMet, characterID)
}

// HasCompletedQuest reports whether the quest has been completed.
func (p *Player) HasCompletedQuest(questID string) bool {
	return slices.Contains(p.CompletedQuests, questID)
}

// CurrentLocation returns the player's location id.
func (p *Player) CurrentLocation() string {
	return p.Location
}

// CompleteQuest records the quest as completed once.
func (p *Player) CompleteQuest(questID string) {
	if !slices.Contains(p.CompletedQuests, questID) {
		p.CompletedQuests = append(p.CompletedQuests, questID)
	}
}

// ModifyReputation changes reputation by delta, saturating at [0,100].
func (p *Player) ModifyReputation(delta int) {
	p.Reputation = clamp(p.Reputation+delta, MinReputation, MaxReputation)
}
