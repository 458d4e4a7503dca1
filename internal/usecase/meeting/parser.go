package meeting

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]+|\d+[.)])\s*`)
	assigneeLead = regexp.MustCompile(`^([A-Z][\p{L}'-]*(?:\s+[A-Z][\p{L}'-]*)?)\s+(?:will|to|should)\b`)
	notAssignees = map[string]struct{}{
		"We": {}, "They": {}, "I": {}, "You": {}, "Everyone": {}, "Someone": {}, "Team": {}, "All": {},
	}
)

// ParsedActionItem is one action item line split into its parts
type ParsedActionItem struct {
	Description string
	Assignee    *string
	DueDate     *time.Time
}

// ActionItemParser turns generator output lines into action items
type ActionItemParser struct {
	dates *when.Parser
}

// NewActionItemParser creates a parser with English and numeric date rules
func NewActionItemParser() *ActionItemParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &ActionItemParser{dates: w}
}

// SplitLines returns the trimmed, non-empty lines of generator output
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Parse extracts description, assignee and due date from one line.
// Due dates are resolved relative to base. ok is false for blank lines.
func (p *ActionItemParser) Parse(line string, base time.Time) (ParsedActionItem, bool) {
	desc := bulletPrefix.ReplaceAllString(strings.TrimSpace(line), "")
	desc = strings.TrimSpace(strings.Trim(desc, `"`))
	if desc == "" {
		return ParsedActionItem{}, false
	}

	item := ParsedActionItem{Description: desc}

	if m := assigneeLead.FindStringSubmatch(desc); m != nil {
		if _, skip := notAssignees[m[1]]; !skip {
			name := m[1]
			item.Assignee = &name
		}
	}

	if r, err := p.dates.Parse(desc, base); err == nil && r != nil {
		due := r.Time
		item.DueDate = &due
	}

	return item, true
}
