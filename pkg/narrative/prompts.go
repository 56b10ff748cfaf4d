package narrative

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/case-engine/pkg/chat"
)

// SystemPrompt frames the narrator's task. The narrator is cosmetic:
// every fact it may mention is already committed to the world state.
const SystemPrompt = `You are the narrator of a detective investigation. ` +
	`You will receive a JSON record describing the player's most recent action ` +
	`and its outcome. Write a short, atmospheric second-person narration of that ` +
	`outcome in 2-4 sentences. Mention every discovery and shared clue by name. ` +
	`Never invent discoveries, characters, or locations that are not in the record. ` +
	`Never address the player out of character.`

// BuildMessages converts a narration context into the chat messages sent
// to an LLM provider.
func BuildMessages(ctx *Context) ([]chat.Message, error) {
	data, err := json.Marshal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal narration context: %w", err)
	}
	return []chat.Message{
		{Role: chat.RoleSystem, Content: SystemPrompt},
		{Role: chat.RoleUser, Content: string(data)},
	}, nil
}
