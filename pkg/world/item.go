package world

// ItemType categorizes items.
type ItemType string

const (
	ItemEvidence   ItemType = "evidence"
	ItemTool       ItemType = "tool"
	ItemDocument   ItemType = "document"
	ItemKeyItem    ItemType = "key_item"
	ItemConsumable ItemType = "consumable"
)

// Item is a physical object the player can collect. Items are immutable
// once created; whether one has been taken is tracked by its Location.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Type        ItemType `json:"type"`
	IsClue      bool     `json:"is_clue,omitempty"` // collecting it also records a clue
	FoundAt     string   `json:"found_at,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Clue is a piece of case knowledge. Clues are immutable.
type Clue struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"` // e.g. "physical", "testimony", "forensic"
	FoundAt     string `json:"found_at,omitempty"`

	// Discovery gate: player.Skill(RequiresSkill) must be >= RequiresLevel.
	RequiresSkill string `json:"requires_skill,omitempty"`
	RequiresLevel int    `json:"requires_level,omitempty"`

	RelatedCharacters []string `json:"related_characters,omitempty"`
	RelatedClues      []string `json:"related_clues,omitempty"`
	ContradictsClues  []string `json:"contradicts_clues,omitempty"`

	Importance      int      `json:"importance"` // 1-5
	UnlocksDialogue []string `json:"unlocks_dialogue,omitempty"`
}
