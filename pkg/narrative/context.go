package narrative

// ActionKind identifies which player action is being narrated.
type ActionKind string

const (
	ActionExamine ActionKind = "examine"
	ActionTalk    ActionKind = "talk"
	ActionSearch  ActionKind = "search"
	ActionTravel  ActionKind = "travel"
)

// CharacterSnapshot is the slice of character state the narrator may see.
type CharacterSnapshot struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Role        string   `json:"role"`
	Mood        string   `json:"mood"`
	Traits      []string `json:"traits,omitempty"`
}

// Discovery is an item or clue surfaced by the action.
type Discovery struct {
	Kind        string `json:"kind"` // "item" or "clue"
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Context is the structured record handed to the narrative collaborator.
// It is assembled after all state mutation has been applied; nothing the
// narrator does can change the world.
type Context struct {
	Action ActionKind `json:"action"`

	LocationName        string   `json:"location_name"`
	LocationDescription string   `json:"location_description,omitempty"`
	CharactersPresent   []string `json:"characters_present,omitempty"`
	HasMoreToFind       bool     `json:"has_more_to_find"`

	Character      *CharacterSnapshot `json:"character,omitempty"` // talk actions only
	SharedClues    []string           `json:"shared_clues,omitempty"`
	Discoveries    []Discovery        `json:"discoveries,omitempty"`
	SkillsTooLow   []string           `json:"skills_too_low,omitempty"` // skill names that blocked a clue
	TimeString     string             `json:"time"`
	Day            int                `json:"day"`
	Weather        string             `json:"weather,omitempty"`
	Reputation     int                `json:"reputation"`
	TravelFromName string             `json:"travel_from,omitempty"`
}
