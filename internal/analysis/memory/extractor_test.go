package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gabble-labs/gabble/backend/internal/analysis/emotion"
	"github.com/gabble-labs/gabble/backend/internal/model/chat"
)

func user(content string) chat.ChatMessage {
	return chat.ChatMessage{Role: chat.RoleUser, Content: content}
}

func assistant(content string) chat.ChatMessage {
	return chat.ChatMessage{Role: chat.RoleAssistant, Content: content}
}

func TestExtractNameFromIntroduction(t *testing.T) {
	facts := Extract([]chat.ChatMessage{user("Hi, I'm Sam and I need advice")})
	require.Equal(t, "Sam", facts.UserName)
}

func TestExtractNamePatternVariants(t *testing.T) {
	cases := map[string]string{
		"my name is Priya":        "Priya",
		"please call me Alex":     "Alex",
		"hello, this is Jordan":   "Jordan",
		"mera naam Ravi hai na":   "Ravi",
		"I am Lena, nice to chat": "Lena",
	}
	for text, want := range cases {
		facts := Extract([]chat.ChatMessage{user(text)})
		require.Equal(t, want, facts.UserName, "text: %s", text)
	}
}

func TestExtractNameIgnoresAssistantMessages(t *testing.T) {
	facts := Extract([]chat.ChatMessage{assistant("my name is Gabble")})
	require.Empty(t, facts.UserName)
}

func TestExtractNameLengthBounds(t *testing.T) {
	// Single-letter capture is rejected and scanning continues with
	// later messages.
	facts := Extract([]chat.ChatMessage{
		user("I'm X"),
		user("call me Alexander"),
	})
	require.Equal(t, "Alexander", facts.UserName)

	facts = Extract([]chat.ChatMessage{user("my name is Abcdefghijklmnopqrstuvw")})
	require.Empty(t, facts.UserName)
}

func TestExtractNameFirstMatchWins(t *testing.T) {
	facts := Extract([]chat.ChatMessage{
		user("my name is Priya"),
		user("call me Ravi"),
	})
	require.Equal(t, "Priya", facts.UserName)
}

func TestMoodTrendMajority(t *testing.T) {
	facts := Extract([]chat.ChatMessage{
		user("feeling sad today"),
		user("what an awesome day"),
		user("still feeling sad tonight"),
	})
	require.Equal(t, emotion.Sad, facts.MoodTrend)
}

func TestMoodTrendTieBreaksOnFirstEncounter(t *testing.T) {
	facts := Extract([]chat.ChatMessage{
		user("feeling sad today"),
		user("what an awesome day"),
	})
	require.Equal(t, emotion.Sad, facts.MoodTrend)

	facts = Extract([]chat.ChatMessage{
		user("what an awesome day"),
		user("feeling sad today"),
	})
	require.Equal(t, emotion.Happy, facts.MoodTrend)
}

func TestMoodTrendEmptyHistoryIsNeutral(t *testing.T) {
	require.Equal(t, emotion.Neutral, Extract(nil).MoodTrend)
	require.Equal(t, emotion.Neutral, Extract([]chat.ChatMessage{assistant("hello")}).MoodTrend)
}
