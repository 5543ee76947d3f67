package nlp

import (
	"strings"
)

// ParseIntentLine reads a model reply in the format: intent | item | quantity.
// The first line carrying a separator wins; preamble lines are skipped.
func ParseIntentLine(raw string) Intent {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "`")
		if line == "" || !strings.Contains(line, "|") {
			continue
		}

		parts := strings.Split(line, "|")
		intent := Intent{
			Kind:     ParseKind(parts[0]),
			Name:     strings.ToLower(strings.TrimSpace(parts[1])),
			Quantity: "1",
		}
		if len(parts) >= 3 {
			if q := strings.TrimSpace(parts[2]); q != "" {
				intent.Quantity = q
			}
		}
		if intent.Name == "unknown" || intent.Name == "none" {
			intent.Name = ""
		}
		return intent
	}
	return Unknown
}

// CleanTranslation strips the quoting and labels models like to wrap a
// translation in.
func CleanTranslation(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	for _, prefix := range []string{"Translation:", "English:"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	return strings.Trim(s, "\"'“” ")
}
