// Package language infers the response language for a turn. Detection is a
// best-effort heuristic switch: script ranges first, then small function-word
// lexicons for romanized Hindi, Spanish, French and German. False negatives
// fall back to the caller's preference; false positives are an accepted
// limitation of the word-list approach.
package language

import "regexp"

// Tag is an IETF-like language tag from the supported set.
type Tag string

// Default is both the fallback tag and the "no strong signal" marker:
// detection only overrides a preference when it yields something else.
const Default Tag = "en-US"

// supported lists every tag the assistant can be directed to answer in,
// in catalog order.
var supported = []Tag{
	"en-US", "en-GB", "hi-IN", "hi-EN", "es-ES", "fr-FR", "de-DE", "pt-BR",
	"ta-IN", "te-IN", "bn-IN", "mr-IN", "gu-IN", "kn-IN", "ml-IN", "pa-IN", "ur-IN",
}

var directives = map[Tag]string{
	"en-US": "Respond in American English.",
	"en-GB": "Respond in British English.",
	"hi-IN": "हिंदी में जवाब दें। Use Devanagari script for Hindi responses.",
	"hi-EN": "Respond in Hinglish - a natural mix of Hindi and English as spoken in India. Use Roman script.",
	"es-ES": "Respond in Spanish.",
	"fr-FR": "Respond in French.",
	"de-DE": "Respond in German.",
	"pt-BR": "Respond in Brazilian Portuguese.",
	"ta-IN": "Respond in Tamil.",
	"te-IN": "Respond in Telugu.",
	"bn-IN": "Respond in Bengali.",
	"mr-IN": "Respond in Marathi.",
	"gu-IN": "Respond in Gujarati.",
	"kn-IN": "Respond in Kannada.",
	"ml-IN": "Respond in Malayalam.",
	"pa-IN": "Respond in Punjabi.",
	"ur-IN": "Respond in Urdu.",
}

// scriptRanges maps Unicode blocks to tags. Order matters: Devanagari is
// tested first and also covers Marathi, which therefore resolves to hi-IN.
var scriptRanges = []struct {
	lo, hi rune
	tag    Tag
}{
	{0x0900, 0x097F, "hi-IN"}, // Devanagari
	{0x0B80, 0x0BFF, "ta-IN"}, // Tamil
	{0x0C00, 0x0C7F, "te-IN"}, // Telugu
	{0x0980, 0x09FF, "bn-IN"}, // Bengali
	{0x0A80, 0x0AFF, "gu-IN"}, // Gujarati
	{0x0C80, 0x0CFF, "kn-IN"}, // Kannada
	{0x0D00, 0x0D7F, "ml-IN"}, // Malayalam
	{0x0A00, 0x0A7F, "pa-IN"}, // Gurmukhi
	{0x0600, 0x06FF, "ur-IN"}, // Arabic
}

// Lexicons of common function words, tested as whole words. The Hinglish
// list intentionally includes short words that collide with English
// ("main", "par"); see package comment.
var (
	hinglishWords = regexp.MustCompile(`(?i)\b(kya|kaise|kahan|kab|kaun|kyun|haan|nahi|acha|theek|mujhe|tumhe|aapka|mera|tera|humara|bahut|bohot|accha|bhai|yaar|bolo|batao|samajh|samjho|dekho|suno|jao|aao|karo|karna|raha|rahi|rahe|wala|wali|wale|hai|hain|tha|thi|the|hoga|hogi|honge|lekin|aur|ya|par|se|ko|ka|ki|ke|ne|ho|main|hum|tum|aap|wo|woh|ye|yeh|kuch|sab|ab|abhi)\b`)
	spanishWords  = regexp.MustCompile(`(?i)\b(hola|gracias|por favor|como|estas|bueno|bien|malo|que|donde|cuando|porque|pero|muy|si|no|yo|tu|el|ella|nosotros|ellos|tengo|tienes|tiene|quiero|puedo|necesito)\b`)
	frenchWords   = regexp.MustCompile(`(?i)\b(bonjour|merci|s'il vous plait|comment|allez|bien|mal|oui|non|je|tu|il|elle|nous|vous|ils|elles|suis|es|est|sommes|etes|sont|avoir|etre|faire|aller|vouloir|pouvoir)\b`)
	germanWords   = regexp.MustCompile(`(?i)\b(hallo|danke|bitte|wie|geht|gut|schlecht|ja|nein|ich|du|er|sie|wir|ihr|bin|bist|ist|sind|seid|haben|sein|machen|gehen|wollen|konnen)\b`)
)

// Detect classifies text, returning the inferred tag and whether a strong
// signal was found. Script detection wins over lexicons; lexicons are
// tested Hinglish, Spanish, French, German, first match wins.
func Detect(text string) (Tag, bool) {
	for _, r := range text {
		for _, block := range scriptRanges {
			if r >= block.lo && r <= block.hi {
				return block.tag, true
			}
		}
	}

	switch {
	case hinglishWords.MatchString(text):
		return "hi-EN", true
	case spanishWords.MatchString(text):
		return "es-ES", true
	case frenchWords.MatchString(text):
		return "fr-FR", true
	case germanWords.MatchString(text):
		return "de-DE", true
	}

	return Default, false
}

// Resolve combines detection with the caller's explicit preference:
// a detected non-default tag always wins, otherwise the preference is used
// when it names a supported tag, otherwise Default.
func Resolve(text, preference string) Tag {
	if tag, ok := Detect(text); ok && tag != Default {
		return tag
	}
	if tag, ok := Parse(preference); ok {
		return tag
	}
	return Default
}

// Parse validates a raw tag against the supported set.
func Parse(raw string) (Tag, bool) {
	if _, ok := directives[Tag(raw)]; ok {
		return Tag(raw), true
	}
	return "", false
}

// Directive returns the prompt instruction for tag, with a generic English
// fallback so prompt assembly never emits an empty directive.
func Directive(tag Tag) string {
	if d, ok := directives[tag]; ok {
		return d
	}
	return "Respond in English."
}

// Supported returns the catalog of selectable tags in a stable order.
func Supported() []Tag {
	return append([]Tag(nil), supported...)
}
