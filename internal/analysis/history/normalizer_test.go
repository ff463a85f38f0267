package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabble-labs/gabble/backend/internal/model/chat"
)

func user(content string) chat.ChatMessage {
	return chat.ChatMessage{Role: chat.RoleUser, Content: content}
}

func assistant(content string) chat.ChatMessage {
	return chat.ChatMessage{Role: chat.RoleAssistant, Content: content}
}

func TestNormalizeKeepsWellFormedHistory(t *testing.T) {
	in := []chat.ChatMessage{user("hi"), assistant("hello"), user("how are you")}
	out := Normalize(in)
	require.Equal(t, in, out)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	in := []chat.ChatMessage{
		user("hi"), user("there"), assistant("hey"), assistant("again"), user("ok"),
	}
	once := Normalize(in)
	twice := Normalize(once)
	require.Equal(t, once, twice)
}

func TestNormalizeDropsConsecutiveUserRun(t *testing.T) {
	in := []chat.ChatMessage{user("hi"), user("there"), assistant("hey")}
	out := Normalize(in)
	require.Equal(t, []chat.ChatMessage{user("hi")}, out)
}

func TestNormalizeAppendsTrailingUserMessage(t *testing.T) {
	in := []chat.ChatMessage{user("question"), assistant("answer")}
	out := Normalize(in)

	require.Len(t, out, 3)
	require.Equal(t, chat.RoleUser, out[len(out)-1].Role)
	require.Equal(t, "question", out[len(out)-1].Content)
}

func TestNormalizeEmptyInput(t *testing.T) {
	require.Empty(t, Normalize(nil))
	require.Empty(t, Normalize([]chat.ChatMessage{}))
}

func TestNormalizeAllAssistantInput(t *testing.T) {
	in := []chat.ChatMessage{assistant("welcome"), assistant("anyone there?")}
	require.Empty(t, Normalize(in))
}

func TestNormalizeDropsLeadingAssistant(t *testing.T) {
	in := []chat.ChatMessage{assistant("welcome"), user("hi")}
	out := Normalize(in)
	require.Equal(t, []chat.ChatMessage{user("hi")}, out)
}

func TestNormalizeIgnoresUnknownRoles(t *testing.T) {
	in := []chat.ChatMessage{
		{Role: "system", Content: "be nice"},
		user("hi"),
		assistant("hello"),
		user("bye"),
	}
	out := Normalize(in)
	require.Equal(t, []chat.ChatMessage{user("hi"), assistant("hello"), user("bye")}, out)
}

func TestNormalizeInvariantsOnMessyInput(t *testing.T) {
	inputs := [][]chat.ChatMessage{
		{assistant("a"), assistant("b"), user("c"), user("d"), assistant("e"), user("f")},
		{user("a"), user("b"), user("c")},
		{user("a"), assistant("b"), assistant("c"), user("d"), assistant("e")},
		{assistant("a"), user("b"), assistant("c"), user("d")},
	}

	for _, in := range inputs {
		out := Normalize(in)
		for i := 1; i < len(out); i++ {
			require.NotEqual(t, out[i-1].Role, out[i].Role, "consecutive same-role entries in %v", out)
		}
		if len(out) > 0 {
			require.Equal(t, chat.RoleUser, out[len(out)-1].Role)
		}
	}
}
