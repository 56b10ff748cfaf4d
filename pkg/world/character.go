package world

import "slices"

// Role is a character's function in the case.
type Role string

const (
	RoleSuspect   Role = "suspect"
	RoleWitness   Role = "witness"
	RoleAlly      Role = "ally"
	RoleVictim    Role = "victim"
	RoleInformant Role = "informant"
	RoleAuthority Role = "authority"
	RoleNeutral   Role = "neutral"
)

// Mood is a character's current emotional state. It is derived from
// trust and never set directly.
type Mood string

const (
	MoodFriendly   Mood = "friendly"
	MoodNeutral    Mood = "neutral"
	MoodSuspicious Mood = "suspicious"
	MoodHostile    Mood = "hostile"
	MoodScared     Mood = "scared"
	MoodGuilty     Mood = "guilty"
	MoodHelpful    Mood = "helpful"
)

// Tier is the relationship standing between the player and a character.
type Tier string

const (
	TierFriend       Tier = "friend"
	TierAcquaintance Tier = "acquaintance"
	TierStranger     Tier = "stranger"
	TierEnemy        Tier = "enemy"
)

// Trust thresholds for disclosure and derived state.
const (
	MinTrust       = 0
	MaxTrust       = 100
	ShareThreshold = 30
)

// Memory is what a character remembers about interactions with the player.
type Memory struct {
	TimesTalked     int      `json:"times_talked"`
	TopicsDiscussed []string `json:"topics_discussed,omitempty"`
	CluesShown      []string `json:"clues_shown,omitempty"`
	LastTopic       string   `json:"last_topic,omitempty"`
}

// Character is a non-player character in the case world.
type Character struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Role        Role     `json:"role"`
	Traits      []string `json:"traits,omitempty"`
	Secrets     []string `json:"secrets,omitempty"`

	Location string            `json:"location"`
	Schedule map[string]string `json:"schedule,omitempty"` // time period -> location id

	Trust int  `json:"trust"`
	Mood  Mood `json:"mood"`
	Tier  Tier `json:"tier"`

	Memory         Memory   `json:"memory"`
	KnowsClues     []string `json:"knows_clues,omitempty"`
	WillShareClues []string `json:"will_share_clues,omitempty"`
	GivesQuests    []string `json:"gives_quests,omitempty"`
}

// ModifyTrust changes trust by delta, saturating at [0,100]. Mood and
// tier are recomputed immediately; this is the only path that changes them.
func (c *Character) ModifyTrust(delta int) {
	c.Trust = clamp(c.Trust+delta, MinTrust, MaxTrust)
	c.Mood = MoodForTrust(c.Trust)
	c.Tier = TierForTrust(c.Trust)
}

// MoodForTrust maps a trust level to a mood.
func MoodForTrust(trust int) Mood {
	switch {
	case trust >= 70:
		return MoodFriendly
	case trust >= 40:
		return MoodNeutral
	case trust >= 20:
		return MoodSuspicious
	default:
		return MoodHostile
	}
}

// TierForTrust maps a trust level to a relationship tier.
func TierForTrust(trust int) Tier {
	switch {
	case trust >= 80:
		return TierFriend
	case trust >= 50:
		return TierAcquaintance
	case trust >= 20:
		return TierStranger
	default:
		return TierEnemy
	}
}

// RecordTalk notes a conversation, optionally about a topic.
func (c *Character) RecordTalk(topic string) {
	c.Memory.TimesTalked++
	if topic != "" {
		if !slices.Contains(c.Memory.TopicsDiscussed, topic) {
			c.Memory.TopicsDiscussed = append(c.Memory.TopicsDiscussed, topic)
		}
		c.Memory.LastTopic = topic
	}
}

// ShowClue records that the player presented a clue to this character.
func (c *Character) ShowClue(clueID string) {
	if !slices.Contains(c.Memory.CluesShown, clueID) {
		c.Memory.CluesShown = append(c.Memory.CluesShown, clueID)
	}
}

// CanShareClue reports whether the character is currently willing to
// reveal the clue. Requires the clue in the shareable set and trust at
// or above the share threshold.
func (c *Character) CanShareClue(clueID string) bool {
	return slices.Contains(c.WillShareClues, clueID) && c.Trust >= ShareThreshold
}

// ShareClue reveals a clue to the player. The clue is removed from the
// shareable set so it can only be revealed once. Returns false without
// mutating if the character will not share it.
func (c *Character) ShareClue(clueID string) bool {
	if !c.CanShareClue(clueID) {
		return false
	}
	idx := slices.Index(c.WillShareClues, clueID)
	c.WillShareClues = slices.Delete(c.WillShareClues, idx, idx+1)
	return true
}

// MoveTo relocates the character.
func (c *Character) MoveTo(locationID string) {
	c.Location = locationID
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
