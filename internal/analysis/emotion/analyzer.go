// Package emotion classifies free text into a small closed set of user
// emotions using keyword heuristics. The classifier is deliberately simple
// and total: any input maps to exactly one label, defaulting to Neutral.
package emotion

import "strings"

// Label is one of the fixed emotion categories.
type Label string

const (
	Sad      Label = "sad"
	Stressed Label = "stressed"
	Angry    Label = "angry"
	Happy    Label = "happy"
	Confused Label = "confused"
	Neutral  Label = "neutral"
)

// keywordTable is scanned in declaration order; when text matches keywords
// from multiple categories, the earlier entry wins. The order is a fixed
// tie-break policy, not incidental.
var keywordTable = []struct {
	label    Label
	keywords []string
}{
	{Sad, []string{"sad", "lonely", "depressed", "down", "unhappy", "crying", "hurt", "pain", "alone", "empty", "hopeless"}},
	{Stressed, []string{"stressed", "anxious", "overwhelmed", "worried", "nervous", "panic", "pressure", "tension", "frustrated"}},
	{Angry, []string{"angry", "mad", "furious", "annoyed", "irritated", "upset", "hate", "frustrated"}},
	{Happy, []string{"happy", "excited", "great", "amazing", "wonderful", "fantastic", "good", "awesome", "love", "grateful"}},
	{Confused, []string{"confused", "lost", "unsure", "don't know", "help me", "what should", "advice"}},
}

// Detect returns the first label whose keyword set has a case-insensitive
// substring match in text, or Neutral when none match.
func Detect(text string) Label {
	lower := strings.ToLower(text)
	for _, entry := range keywordTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.label
			}
		}
	}
	return Neutral
}
