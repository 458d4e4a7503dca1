package resolver

import (
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Similarity scores two names in [0, 1] using the default containment length
func Similarity(a, b string) float64 {
	return similarity(a, b, DefaultConfig().MinContainmentLength)
}

func similarity(a, b string, minContainment int) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		shorter, longer := la, lb
		if lb < la {
			shorter, longer = lb, la
		}
		if shorter >= minContainment {
			return float64(shorter) / float64(longer)
		}
	}

	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// runes splits s into one element per code point for difflib
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// FindBestMatch returns the known entity with the strictly highest score
// at or above the threshold. Earlier entities win ties.
func (c Config) FindBestMatch(name string, known []*entities.Entity) (*entities.Entity, float64) {
	var (
		best      *entities.Entity
		bestScore float64
	)
	for _, e := range known {
		score := similarity(name, e.Name, c.MinContainmentLength)
		if score > bestScore && score >= c.Threshold {
			best, bestScore = e, score
		}
	}
	return best, bestScore
}
