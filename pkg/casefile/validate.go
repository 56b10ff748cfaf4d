package casefile

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"

	"github.com/jwebster45206/case-engine/pkg/quest"
	"github.com/jwebster45206/case-engine/pkg/world"
)

var validRoles = []world.Role{
	world.RoleSuspect, world.RoleWitness, world.RoleAlly, world.RoleVictim,
	world.RoleInformant, world.RoleAuthority, world.RoleNeutral,
}

var validItemTypes = []world.ItemType{
	world.ItemEvidence, world.ItemTool, world.ItemDocument,
	world.ItemKeyItem, world.ItemConsumable,
}

var validObjectiveTypes = []quest.ObjectiveType{
	quest.ObjectiveFindClue, quest.ObjectiveTalkToCharacter,
	quest.ObjectiveGoToLocation, quest.ObjectiveCollectItem,
	quest.ObjectiveConfrontCharacter, quest.ObjectiveSolvePuzzle,
	quest.ObjectiveMakeDeduction,
}

var validQuestStatuses = []quest.Status{
	quest.StatusLocked, quest.StatusAvailable, quest.StatusActive,
	quest.StatusCompleted, quest.StatusFailed,
}

var validEndings = []world.Ending{
	world.EndingGood, world.EndingNeutral, world.EndingBad,
}

var validRatings = []string{"G", "PG", "PG13", "PG-13", "R"}

var validSkillNames = []string{
	"investigation", "persuasion", "perception", "intuition", "physical",
}

// Validate checks the casefile for authoring errors: dangling
// references, out-of-range values, and objective dependency cycles.
// These are construction bugs that must fail loudly before play, never
// mid-session.
func (cf *Casefile) Validate() error {
	el := errors.NewErrorList()

	if cf.Title == "" {
		el.Add(fmt.Errorf("title is required"))
	}
	if len(cf.Locations) == 0 {
		el.Add(fmt.Errorf("at least one location is required"))
	}
	if cf.OpeningTime != nil && (*cf.OpeningTime < 0 || *cf.OpeningTime >= 1440) {
		el.Add(fmt.Errorf("opening_time must be in [0,1440)"))
	}
	if cf.Rating != "" && !slices.Contains(validRatings, cf.Rating) {
		el.Add(fmt.Errorf("unknown rating %q", cf.Rating))
	}

	el.Add(cf.validatePlayer())
	for id, loc := range cf.Locations {
		el.Add(cf.validateLocation(id, loc))
	}
	for id, c := range cf.Characters {
		el.Add(cf.validateCharacter(id, c))
	}
	for id, item := range cf.Items {
		el.Add(cf.validateItem(id, item))
	}
	for id, clue := range cf.Clues {
		el.Add(cf.validateClue(id, clue))
	}
	for id, q := range cf.Quests {
		el.Add(cf.validateQuest(id, q))
	}
	for _, rule := range cf.Endings {
		el.Add(cf.validateEnding(rule))
	}

	return el.Err()
}

func (cf *Casefile) validatePlayer() error {
	el := errors.NewErrorList()

	if cf.Player.Name == "" {
		el.Add(fmt.Errorf("player: name is required"))
	}
	if _, ok := cf.Locations[cf.Player.Location]; !ok {
		el.Add(fmt.Errorf("player: opening location %q does not exist", cf.Player.Location))
	}
	if cf.Player.Reputation < 0 || cf.Player.Reputation > world.MaxReputation {
		el.Add(fmt.Errorf("player: reputation must be in [0,%d]", world.MaxReputation))
	}
	for _, name := range validSkillNames {
		v := cf.Player.Skills.Skill(name)
		if v < world.MinSkill || v > world.MaxSkill {
			el.Add(fmt.Errorf("player: skill %s must be in [%d,%d]", name, world.MinSkill, world.MaxSkill))
		}
	}
	for _, itemID := range cf.Player.Inventory {
		if _, ok := cf.Items[itemID]; !ok {
			el.Add(fmt.Errorf("player: inventory item %q does not exist", itemID))
		}
	}

	return el.Err()
}

func (cf *Casefile) validateLocation(id string, loc *world.Location) error {
	el := errors.NewErrorList()

	if loc.Name == "" {
		el.Add(fmt.Errorf("location %q: name is required", id))
	}
	for _, conn := range loc.Connections {
		if _, ok := cf.Locations[conn]; !ok {
			el.Add(fmt.Errorf("location %q: connection to unknown location %q", id, conn))
		}
	}
	for neighbor, req := range loc.Requirements {
		if !slices.Contains(loc.Connections, neighbor) {
			el.Add(fmt.Errorf("location %q: requirement for %q which is not a connection", id, neighbor))
		}
		el.Add(cf.validateRequirement(id, neighbor, req))
	}
	for _, itemID := range loc.ItemsAvailable {
		if _, ok := cf.Items[itemID]; !ok {
			el.Add(fmt.Errorf("location %q: unknown item %q", id, itemID))
		}
	}
	for _, clueID := range loc.CluesAvailable {
		if _, ok := cf.Clues[clueID]; !ok {
			el.Add(fmt.Errorf("location %q: unknown clue %q", id, clueID))
		}
	}
	for _, itemID := range loc.ItemsTaken {
		if !slices.Contains(loc.ItemsAvailable, itemID) {
			el.Add(fmt.Errorf("location %q: taken item %q was never available", id, itemID))
		}
	}
	for _, clueID := range loc.CluesFound {
		if !slices.Contains(loc.CluesAvailable, clueID) {
			el.Add(fmt.Errorf("location %q: found clue %q was never available", id, clueID))
		}
	}

	return el.Err()
}

func (cf *Casefile) validateRequirement(locID, neighbor string, req world.TravelRequirement) error {
	el := errors.NewErrorList()

	if req.RequiresItem != "" {
		if _, ok := cf.Items[req.RequiresItem]; !ok {
			el.Add(fmt.Errorf("location %q: edge to %q requires unknown item %q", locID, neighbor, req.RequiresItem))
		}
	}
	if req.RequiresClue != "" {
		if _, ok := cf.Clues[req.RequiresClue]; !ok {
			el.Add(fmt.Errorf("location %q: edge to %q requires unknown clue %q", locID, neighbor, req.RequiresClue))
		}
	}
	if req.RequiresQuest != "" {
		if _, ok := cf.Quests[req.RequiresQuest]; !ok {
			el.Add(fmt.Errorf("location %q: edge to %q requires unknown quest %q", locID, neighbor, req.RequiresQuest))
		}
	}
	if req.RequiresTrust != nil {
		if _, ok := cf.Characters[req.RequiresTrust.CharacterID]; !ok {
			el.Add(fmt.Errorf("location %q: edge to %q requires trust with unknown character %q", locID, neighbor, req.RequiresTrust.CharacterID))
		}
		if req.RequiresTrust.MinTrust < world.MinTrust || req.RequiresTrust.MinTrust > world.MaxTrust {
			el.Add(fmt.Errorf("location %q: edge to %q trust threshold out of range", locID, neighbor))
		}
	}

	return el.Err()
}

func (cf *Casefile) validateCharacter(id string, c *world.Character) error {
	el := errors.NewErrorList()

	if c.Name == "" {
		el.Add(fmt.Errorf("character %q: name is required", id))
	}
	if !slices.Contains(validRoles, c.Role) {
		el.Add(fmt.Errorf("character %q: unknown role %q", id, c.Role))
	}
	if c.Trust < world.MinTrust || c.Trust > world.MaxTrust {
		el.Add(fmt.Errorf("character %q: trust must be in [%d,%d]", id, world.MinTrust, world.MaxTrust))
	}
	if _, ok := cf.Locations[c.Location]; !ok {
		el.Add(fmt.Errorf("character %q: unknown location %q", id, c.Location))
	}
	for _, clueID := range c.KnowsClues {
		if _, ok := cf.Clues[clueID]; !ok {
			el.Add(fmt.Errorf("character %q: knows unknown clue %q", id, clueID))
		}
	}
	for _, clueID := range c.WillShareClues {
		if !slices.Contains(c.KnowsClues, clueID) {
			el.Add(fmt.Errorf("character %q: will share clue %q they do not know", id, clueID))
		}
	}
	for _, questID := range c.GivesQuests {
		if _, ok := cf.Quests[questID]; !ok {
			el.Add(fmt.Errorf("character %q: gives unknown quest %q", id, questID))
		}
	}

	return el.Err()
}

func (cf *Casefile) validateItem(id string, item *world.Item) error {
	el := errors.NewErrorList()

	if item.Name == "" {
		el.Add(fmt.Errorf("item %q: name is required", id))
	}
	if !slices.Contains(validItemTypes, item.Type) {
		el.Add(fmt.Errorf("item %q: unknown type %q", id, item.Type))
	}
	if item.FoundAt != "" {
		if _, ok := cf.Locations[item.FoundAt]; !ok {
			el.Add(fmt.Errorf("item %q: unknown location %q", id, item.FoundAt))
		}
	}

	return el.Err()
}

func (cf *Casefile) validateClue(id string, clue *world.Clue) error {
	el := errors.NewErrorList()

	if clue.Title == "" {
		el.Add(fmt.Errorf("clue %q: title is required", id))
	}
	if clue.Importance < 1 || clue.Importance > 5 {
		el.Add(fmt.Errorf("clue %q: importance must be in [1,5]", id))
	}
	if clue.RequiresSkill != "" && !slices.Contains(validSkillNames, clue.RequiresSkill) {
		el.Add(fmt.Errorf("clue %q: unknown skill %q", id, clue.RequiresSkill))
	}
	if clue.RequiresLevel < world.MinSkill || clue.RequiresLevel > world.MaxSkill {
		el.Add(fmt.Errorf("clue %q: required skill level must be in [%d,%d]", id, world.MinSkill, world.MaxSkill))
	}
	if clue.FoundAt != "" {
		if _, ok := cf.Locations[clue.FoundAt]; !ok {
			el.Add(fmt.Errorf("clue %q: unknown location %q", id, clue.FoundAt))
		}
	}
	for _, charID := range clue.RelatedCharacters {
		if _, ok := cf.Characters[charID]; !ok {
			el.Add(fmt.Errorf("clue %q: unknown related character %q", id, charID))
		}
	}
	for _, clueID := range append(append([]string{}, clue.RelatedClues...), clue.ContradictsClues...) {
		if _, ok := cf.Clues[clueID]; !ok {
			el.Add(fmt.Errorf("clue %q: unknown related clue %q", id, clueID))
		}
	}

	return el.Err()
}

func (cf *Casefile) validateQuest(id string, q *quest.Quest) error {
	el := errors.NewErrorList()

	if q.Title == "" {
		el.Add(fmt.Errorf("quest %q: title is required", id))
	}
	if q.Status != "" && !slices.Contains(validQuestStatuses, q.Status) {
		el.Add(fmt.Errorf("quest %q: unknown status %q", id, q.Status))
	}
	if len(q.Objectives) == 0 {
		el.Add(fmt.Errorf("quest %q: at least one objective is required", id))
	}
	for oid, o := range q.Objectives {
		if !slices.Contains(validObjectiveTypes, o.Type) {
			el.Add(fmt.Errorf("quest %q: objective %q has unknown type %q", id, oid, o.Type))
		}
		if o.Quantity < 0 {
			el.Add(fmt.Errorf("quest %q: objective %q has negative quantity", id, oid))
		}
	}
	if err := q.ValidateGraph(); err != nil {
		el.Add(fmt.Errorf("quest %q: %w", id, err))
	}
	for _, questID := range q.RequiresQuests {
		if _, ok := cf.Quests[questID]; !ok {
			el.Add(fmt.Errorf("quest %q: requires unknown quest %q", id, questID))
		}
	}
	for _, clueID := range q.RequiresClues {
		if _, ok := cf.Clues[clueID]; !ok {
			el.Add(fmt.Errorf("quest %q: requires unknown clue %q", id, clueID))
		}
	}
	if q.RequiresLocation != "" {
		if _, ok := cf.Locations[q.RequiresLocation]; !ok {
			el.Add(fmt.Errorf("quest %q: requires unknown location %q", id, q.RequiresLocation))
		}
	}
	if q.GivenBy != "" {
		if _, ok := cf.Characters[q.GivenBy]; !ok {
			el.Add(fmt.Errorf("quest %q: given by unknown character %q", id, q.GivenBy))
		}
	}

	return el.Err()
}

func (cf *Casefile) validateEnding(rule EndingRule) error {
	el := errors.NewErrorList()

	if !slices.Contains(validEndings, rule.Type) {
		el.Add(fmt.Errorf("ending %q: unknown type %q", rule.ID, rule.Type))
	}
	if _, ok := cf.Quests[rule.RequiresQuest]; !ok {
		el.Add(fmt.Errorf("ending %q: requires unknown quest %q", rule.ID, rule.RequiresQuest))
	}
	for _, clueID := range rule.RequiresClues {
		if _, ok := cf.Clues[clueID]; !ok {
			el.Add(fmt.Errorf("ending %q: requires unknown clue %q", rule.ID, clueID))
		}
	}

	return el.Err()
}
