package nlp

import (
	"regexp"
	"strings"
)

var (
	fillers = []struct {
		pattern *regexp.Regexp
		repl    string
	}{
		{regexp.MustCompile(`^i (?:need|want|would like|require)\s+`), ""},
		{regexp.MustCompile(`^please\s+`), ""},
		{regexp.MustCompile(`^help me\s+`), ""},
		{regexp.MustCompile(`^(?:can|could|would) you\s+`), ""},
		{regexp.MustCompile(`^(?:i want|i need) to\s+`), ""},
		{regexp.MustCompile(`^search for\s+`), "search "},
		{regexp.MustCompile(`^find me\s+`), "find "},
		{regexp.MustCompile(`^show me\s+`), "show "},
	}

	addPattern    = regexp.MustCompile(`(?:add|joins|join|adding)\s+(\d+)?\s*([\w\s]+)`)
	removePattern = regexp.MustCompile(`remove\s+(\d+)?\s*([\w\s]+)`)
	searchPattern = regexp.MustCompile(`(?:search|find|display|show)\s+([\w\s]+)`)

	numberPattern = regexp.MustCompile(`\d+`)
	verbPattern   = regexp.MustCompile(`\b(?:adding|removing|add|remove|search|find|show|please|i need|i want|can you|could you|would you)\b|\d+`)
)

// ParseEnglish reads an English command. Text with no recognised verb is
// treated as an add of whatever is left once verbs and numbers are removed.
func ParseEnglish(text string) Intent {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, f := range fillers {
		text = f.pattern.ReplaceAllString(text, f.repl)
	}

	if m := addPattern.FindStringSubmatch(text); m != nil {
		return Intent{Kind: KindAdd, Quantity: orOne(m[1]), Name: strings.TrimSpace(m[2])}
	}
	if m := removePattern.FindStringSubmatch(text); m != nil {
		return Intent{Kind: KindRemove, Quantity: orOne(m[1]), Name: strings.TrimSpace(m[2])}
	}
	if m := searchPattern.FindStringSubmatch(text); m != nil {
		return Intent{Kind: KindSearch, Quantity: "1", Name: strings.TrimSpace(m[1])}
	}

	quantity := orOne(numberPattern.FindString(text))
	name := strings.Join(strings.Fields(verbPattern.ReplaceAllString(text, " ")), " ")
	if name == "" {
		return Intent{Kind: KindUnknown, Quantity: quantity}
	}
	return Intent{Kind: KindAdd, Quantity: quantity, Name: name}
}

func orOne(s string) string {
	if s == "" {
		return "1"
	}
	return s
}
