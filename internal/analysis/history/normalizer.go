// Package history repairs raw conversation histories into the strict
// alternating-role, user-terminated shape the inference provider requires.
package history

import "github.com/gabble-labs/gabble/backend/internal/model/chat"

// Normalize walks the input once and keeps a strictly alternating
// subsequence: a user message is retained only when the previous retained
// message was not from the user, and an assistant message only when it
// directly follows a retained user message. The first message of a
// same-role run wins; replies to dropped messages are dropped with them.
//
// If the walk does not end on a user message, the last user message of the
// original input is appended, unless the result already ends with identical
// content. An empty result means there is no user content to answer;
// callers must treat that as an error rather than forwarding it upstream.
func Normalize(in []chat.ChatMessage) []chat.ChatMessage {
	out := make([]chat.ChatMessage, 0, len(in))
	lastRole := chat.Role("") // sentinel distinct from both roles
	prevRetained := false

	for i, msg := range in {
		keep := false
		switch msg.Role {
		case chat.RoleUser:
			keep = lastRole != chat.RoleUser
		case chat.RoleAssistant:
			keep = lastRole == chat.RoleUser && i > 0 && prevRetained
		}
		if keep {
			out = append(out, msg)
			lastRole = msg.Role
		}
		prevRetained = keep
	}

	if len(out) == 0 || out[len(out)-1].Role != chat.RoleUser {
		for i := len(in) - 1; i >= 0; i-- {
			if in[i].Role != chat.RoleUser {
				continue
			}
			if len(out) == 0 || out[len(out)-1].Content != in[i].Content {
				out = append(out, chat.ChatMessage{Role: chat.RoleUser, Content: in[i].Content})
			}
			break
		}
	}

	return out
}
