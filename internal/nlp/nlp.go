// Package nlp defines the language services the command interpreter leans
// on: translation into English and intent extraction from free text.
package nlp

import (
	"context"
	"fmt"
	"strings"
)

type Kind string

const (
	KindAdd     Kind = "add"
	KindRemove  Kind = "remove"
	KindSearch  Kind = "search"
	KindUnknown Kind = "unknown"
)

// ParseKind maps a verb label to a Kind, defaulting to KindUnknown.
func ParseKind(s string) Kind {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAdd, KindRemove, KindSearch:
		return k
	default:
		return KindUnknown
	}
}

// Intent is a parsed shopping command. Quantity is kept as text because
// upstream models do not always return a number.
type Intent struct {
	Kind     Kind   `json:"intent"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Actionable reports whether the intent names both a verb and an item.
func (i Intent) Actionable() bool {
	return i.Kind != KindUnknown && strings.TrimSpace(i.Name) != ""
}

// Unknown is the intent returned when nothing could be understood.
var Unknown = Intent{Kind: KindUnknown, Quantity: "1"}

type Translator interface {
	// Translate renders text in English. sourceLang is a language code such
	// as "hi", or "auto" to let the backend detect it.
	Translate(ctx context.Context, text, sourceLang string) (string, error)
}

type IntentExtractor interface {
	Extract(ctx context.Context, text string) (Intent, error)
}

// ExtractPrompt is the shared instruction used by model-backed extractors.
const ExtractPrompt = `You read short shopping-list commands in any language.
Reply with exactly one line in the format: intent | item | quantity
intent is one of add, remove, search or unknown. item is the English name of
the grocery item. quantity is a whole number, 1 if none is given.
Command: `

// TranslatePrompt builds the instruction used by model-backed translators.
func TranslatePrompt(text, sourceLang string) string {
	from := "the source language"
	if sourceLang != "" && sourceLang != "auto" {
		from = fmt.Sprintf("language code %q", sourceLang)
	}
	return fmt.Sprintf("Translate this shopping command from %s into English. "+
		"Reply with the English text only, no quotes or commentary.\n\n%s", from, text)
}

// PrimaryLang reduces a language tag such as "hi-IN" to its primary subtag.
// An empty tag means English.
func PrimaryLang(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return "en"
	}
	return tag
}
