package resolver

import (
	"strings"
	"unicode/utf8"
)

// Mention is one parsed "Name|Type" line from the generator
type Mention struct {
	Name string
	// Hint is the lowercased type suggestion, empty when absent
	Hint string
}

// ParseMention splits a line on its first '|'. It returns false when the
// line or the name is shorter than minLen runes after trimming.
func ParseMention(line string, minLen int) (Mention, bool) {
	line = strings.TrimSpace(line)
	if utf8.RuneCountInString(line) < minLen {
		return Mention{}, false
	}

	var m Mention
	if name, hint, found := strings.Cut(line, "|"); found {
		m.Name = strings.TrimSpace(name)
		m.Hint = strings.ToLower(strings.TrimSpace(hint))
	} else {
		m.Name = line
	}

	if m.Name == "" || utf8.RuneCountInString(m.Name) < minLen {
		return Mention{}, false
	}
	return m, true
}
