package chat

import "time"

// Session captures a transient anonymous conversation.
type Session struct {
	ID          string    `json:"id"`
	Personality string    `json:"personality"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Preferences mirrors the settings row the client keeps per session:
// speech synthesis tuning plus the requested personality and language.
type Preferences struct {
	VoiceName   string  `json:"voiceName"`
	VoicePitch  float64 `json:"voicePitch"`
	VoiceRate   float64 `json:"voiceRate"`
	Language    string  `json:"language"`
	Personality string  `json:"personality"`
}

// DefaultPreferences returns the values a fresh session starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		VoiceName:   "default",
		VoicePitch:  1.0,
		VoiceRate:   1.0,
		Language:    "en-US",
		Personality: "helpful",
	}
}
