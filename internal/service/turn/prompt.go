package turn

import (
	"fmt"
	"strings"
	"time"

	"github.com/gabble-labs/gabble/backend/internal/analysis/emotion"
	"github.com/gabble-labs/gabble/backend/internal/analysis/language"
	"github.com/gabble-labs/gabble/backend/internal/analysis/memory"
	"github.com/gabble-labs/gabble/backend/internal/model/personality"
)

// emotionGuidance steers response tone for the detected user emotion.
var emotionGuidance = map[emotion.Label]string{
	emotion.Sad:      "The user seems sad or lonely. Respond with extra warmth, empathy, and compassion. Validate their feelings and offer gentle support.",
	emotion.Stressed: "The user appears stressed or anxious. Help them feel calm. Suggest taking a deep breath. Be soothing and reassuring.",
	emotion.Angry:    "The user seems frustrated or angry. Acknowledge their feelings without judgment. Be patient and understanding.",
	emotion.Happy:    "The user is in a good mood! Match their energy with enthusiasm and positivity. Celebrate with them.",
	emotion.Confused: "The user needs guidance. Be patient, break things down simply, and offer clear, helpful advice.",
	emotion.Neutral:  "Maintain a friendly, supportive tone.",
}

const behavioralGuidelines = `IMPORTANT GUIDELINES:
- Keep responses concise and conversational (2-4 sentences unless more detail is truly needed)
- Show genuine interest by asking follow-up questions
- Reference earlier parts of the conversation when relevant
- Never provide medical or mental health diagnoses - you're a supportive friend, not a therapist
- If someone expresses serious distress, gently encourage them to reach out to a professional or trusted person`

// moodTrendMinHistory gates the mood-trend reminder: trends computed from
// very short histories are low-confidence and omitted.
const moodTrendMinHistory = 3

// buildSystemPrompt composes the system instruction in fixed order:
// personality voice, memory block, emotional context, behavioral
// guidelines, conversation-length note, language directive.
func (s *Service) buildSystemPrompt(profile personality.Profile, mood emotion.Label, tag language.Tag, facts memory.Facts, historyLen int) string {
	var b strings.Builder
	b.WriteString(profile.Voice)
	b.WriteString("\n")

	if facts.UserName != "" {
		fmt.Fprintf(&b, "\nUSER NAME: The user's name is %s. Use their name occasionally (not every message) to make the conversation personal.", facts.UserName)
	}
	if facts.MoodTrend != emotion.Neutral && historyLen >= moodTrendMinHistory {
		fmt.Fprintf(&b, "\nMOOD TREND: Throughout this conversation, the user has mostly been feeling %s. Keep this in mind.", facts.MoodTrend)
	}
	fmt.Fprintf(&b, "\nTIME CONTEXT: It's %s for the user. You can reference this naturally if appropriate.", timeOfDay(s.now()))

	guidance, ok := emotionGuidance[mood]
	if !ok {
		guidance = emotionGuidance[emotion.Neutral]
	}
	fmt.Fprintf(&b, "\n\nEMOTIONAL CONTEXT: %s", guidance)

	b.WriteString("\n\n")
	b.WriteString(behavioralGuidelines)

	if historyLen > 2 {
		fmt.Fprintf(&b, "\n\nConversation context: This is message %d in the conversation. Reference earlier topics naturally when relevant.", historyLen)
	}

	b.WriteString("\n\n")
	b.WriteString(language.Directive(tag))

	return b.String()
}

// timeOfDay buckets the current UTC hour: morning 05-11, afternoon 12-16,
// evening 17-20, night otherwise.
func timeOfDay(now time.Time) string {
	switch hour := now.UTC().Hour(); {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}
