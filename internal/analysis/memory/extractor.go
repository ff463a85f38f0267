// Package memory derives lightweight long-term context from the full
// conversation history. Nothing is persisted: facts are recomputed on every
// turn from the history the client resends, which keeps the server
// stateless.
package memory

import (
	"regexp"

	"github.com/gabble-labs/gabble/backend/internal/analysis/emotion"
	"github.com/gabble-labs/gabble/backend/internal/model/chat"
)

// Facts holds what the assistant "remembers" about the user.
type Facts struct {
	UserName  string
	MoodTrend emotion.Label
}

// namePatterns are tried in order against each user message. The capture is
// an ASCII word, matching the behavior of the client this grew out of, so
// names written in Devanagari after "मेरा नाम" do not match.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)my name is (\w+)`),
	regexp.MustCompile(`(?i)i'm (\w+)`),
	regexp.MustCompile(`(?i)i am (\w+)`),
	regexp.MustCompile(`(?i)call me (\w+)`),
	regexp.MustCompile(`(?i)this is (\w+)`),
	regexp.MustCompile(`मेरा नाम (\w+)`),
	regexp.MustCompile(`(?i)mera naam (\w+)`),
}

const (
	minNameLen = 2
	maxNameLen = 19
)

// Extract scans the whole history and returns the user's name (if ever
// stated) and the dominant mood across their messages.
func Extract(messages []chat.ChatMessage) Facts {
	return Facts{
		UserName:  extractName(messages),
		MoodTrend: moodTrend(messages),
	}
}

// extractName returns the first acceptable capture, scanning messages
// oldest-first and patterns in fixed order per message. Candidates outside
// the length bound are rejected and scanning continues.
func extractName(messages []chat.ChatMessage) string {
	for _, msg := range messages {
		if msg.Role != chat.RoleUser {
			continue
		}
		for _, pattern := range namePatterns {
			match := pattern.FindStringSubmatch(msg.Content)
			if match == nil {
				continue
			}
			if name := match[1]; len(name) >= minNameLen && len(name) <= maxNameLen {
				return name
			}
		}
	}
	return ""
}

// moodTrend classifies every user message and returns the most frequent
// label. Ties break toward the label encountered first, so a short history
// yields a stable answer.
func moodTrend(messages []chat.ChatMessage) emotion.Label {
	counts := make(map[emotion.Label]int)
	var order []emotion.Label

	for _, msg := range messages {
		if msg.Role != chat.RoleUser {
			continue
		}
		label := emotion.Detect(msg.Content)
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	trend := emotion.Neutral
	best := 0
	for _, label := range order {
		if counts[label] > best {
			trend = label
			best = counts[label]
		}
	}
	return trend
}
