package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMention(t *testing.T) {
	cases := []struct {
		line   string
		want   Mention
		wantOK bool
	}{
		{"Acme Corp|Company", Mention{Name: "Acme Corp", Hint: "company"}, true},
		{"  Jane Doe | PERSON  ", Mention{Name: "Jane Doe", Hint: "person"}, true},
		{"Phoenix", Mention{Name: "Phoenix"}, true},
		{"Phoenix|", Mention{Name: "Phoenix"}, true},
		{"Name|Type|Extra", Mention{Name: "Name", Hint: "type|extra"}, true},
		{"", Mention{}, false},
		{"A", Mention{}, false},
		{" |x", Mention{}, false},
		{"J|person", Mention{}, false},
		{"   ", Mention{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, ok := ParseMention(tc.line, 2)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
