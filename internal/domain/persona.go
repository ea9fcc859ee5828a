package domain

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxCustomPersonaLength is the maximum length, in characters, of a custom persona.
const MaxCustomPersonaLength = 200

// DefaultPersonaKey is used when a guild has not chosen a persona.
const DefaultPersonaKey = "helpful_assistant"

// Persona is a named set of instructions that shapes the bot's replies.
type Persona struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
	Custom       bool   `json:"custom"`
}

var presetPersonas = map[string]Persona{
	"discord_user": {
		Key:  "discord_user",
		Name: "A discord user",
		Instructions: "You are a discord user. You are a member of the discord server and you are " +
			"talking to the user. You write in brief messages suitable for a chat conversation.",
	},
	"cat": {
		Key:          "cat",
		Name:         "Cat",
		Instructions: "You are a literal cat. You respond in cat gestures, meows, purrs, and other expressions limited to a cat.",
	},
	"helpful_assistant": {
		Key:          "helpful_assistant",
		Name:         "Helpful Assistant",
		Instructions: "You are a helpful assistant.",
	},
	"sarcastic_jerk": {
		Key:          "sarcastic_jerk",
		Name:         "Sarcastic Jerk",
		Instructions: "You are a sarcastic jerk. You respond in a sarcastic and rude manner.",
	},
	"homer_simpson": {
		Key:  "homer_simpson",
		Name: "Homer Simpson",
		Instructions: "You are a method actor playing the role of Homer Simpson. You must only say " +
			"what Homer Simpson might say and never break character.",
	},
}

// PresetPersonas returns the built-in personas sorted by key.
func PresetPersonas() []Persona {
	out := make([]Persona, 0, len(presetPersonas))
	for _, p := range presetPersonas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// LookupPersona returns the preset persona for key.
func LookupPersona(key string) (Persona, bool) {
	p, ok := presetPersonas[key]
	return p, ok
}

// DefaultPersona returns the persona used when none is configured.
func DefaultPersona() Persona {
	return presetPersonas[DefaultPersonaKey]
}

// NewCustomPersona validates free-form persona text. Surrounding whitespace
// and quotes are trimmed before the length check.
func NewCustomPersona(text string) (Persona, error) {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)
	text = strings.TrimSpace(text)

	if text == "" {
		return Persona{}, NewValidationError("text", "custom persona cannot be empty")
	}
	if utf8.RuneCountInString(text) > MaxCustomPersonaLength {
		return Persona{}, NewValidationError("text", "custom persona must be 200 characters or fewer")
	}

	return Persona{
		Key:          "custom",
		Name:         "Custom",
		Instructions: text,
		Custom:       true,
	}, nil
}
