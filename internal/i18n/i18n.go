package i18n

import "math/rand"

// Language is the active display language.
type Language string

const (
	English   Language = "en"
	Kiswahili Language = "sw"
)

// Normalize maps unknown codes to English.
func Normalize(code string) Language {
	if Language(code) == Kiswahili {
		return Kiswahili
	}
	return English
}

// Toggle flips between the two supported languages.
func (l Language) Toggle() Language {
	if l == Kiswahili {
		return English
	}
	return Kiswahili
}

var greetings = map[Language]string{
	English:   "👋 Hello, I'm Vee. I'm here to provide a safe, confidential space for you to share your concerns. You can speak with me anonymously about any incident, and I'll guide you through support options and resources.",
	Kiswahili: "👋 Habari, mimi ni Vee. Niko hapa kukupa nafasi salama na ya siri ya kushiriki wasiwasi wako. Unaweza kuzungumza nami bila kujitambulisha kuhusu tukio lolote, na nitakuongoza kupitia chaguo za usaidizi na rasilimali.",
}

// Greeting returns the assistant greeting that opens every new chat.
func Greeting(lang Language) string {
	return greetings[Normalize(string(lang))]
}

var reassurance = map[Language]string{
	English:   "Thank you for sharing. I'm here to support you.",
	Kiswahili: "Asante kwa kushiriki. Nipo hapa kukusaidia.",
}

// Reassurance is the default reply used when the backend answers
// without a text field.
func Reassurance(lang Language) string {
	return reassurance[Normalize(string(lang))]
}

var fallbacks = map[Language][]string{
	English: {
		"I understand this might be difficult to talk about. Take your time.",
		"Thank you for sharing that with me. How are you feeling right now?",
		"I'm here to listen. Your safety and well-being are important.",
		"Would you like me to help you explore some support options?",
		"I understand this must be challenging. Remember you're not alone.",
	},
	Kiswahili: {
		"Naelewa huenda ni vigumu kuzungumzia hili. Chukua muda wako.",
		"Asante kwa kunishirikisha hilo. Unajisikiaje sasa hivi?",
		"Nipo hapa kusikiliza. Usalama na ustawi wako ni muhimu.",
		"Ungependa nikusaidie kuchunguza chaguo za usaidizi?",
		"Naelewa hili ni gumu. Kumbuka hauko peke yako.",
	},
}

// Fallback picks a supportive reply at random so repeated failures
// do not read as the same canned response.
func Fallback(lang Language) string {
	set := fallbacks[Normalize(string(lang))]
	return set[rand.Intn(len(set))]
}

// Fallbacks returns the full fallback set for a language.
func Fallbacks(lang Language) []string {
	return fallbacks[Normalize(string(lang))]
}

var sessionTitles = map[Language]string{
	English:   "Chat %d",
	Kiswahili: "Mazungumzo %d",
}

// SessionTitleFormat returns the printf format for a default session title.
func SessionTitleFormat(lang Language) string {
	return sessionTitles[Normalize(string(lang))]
}

var newChatPreviews = map[Language]string{
	English:   "New conversation started...",
	Kiswahili: "Mazungumzo mapya yameanza...",
}

// NewChatPreview is the preview shown before any message exchange.
func NewChatPreview(lang Language) string {
	return newChatPreviews[Normalize(string(lang))]
}

var emptyPreviews = map[Language]string{
	English:   "New messages...",
	Kiswahili: "Ujumbe mpya...",
}

// EmptyPreview is the placeholder used when a message sequence is
// unexpectedly empty.
func EmptyPreview(lang Language) string {
	return emptyPreviews[Normalize(string(lang))]
}
