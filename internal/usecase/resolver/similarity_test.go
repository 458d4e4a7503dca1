package resolver

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

func TestSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical ignoring case", "Acme Corp", "ACME CORP", 1.0},
		{"containment scores by length", "John", "John Smith", 0.4},
		{"containment below minimum length falls back to ratio", "Al", "Al Gore", 4.0 / 9.0},
		{"fuzzy", "Jon Smith", "John Smith", 18.0 / 19.0},
		{"disjoint alphabets", "abcdefghijklm", "nopqrstuvwxyz", 0},
		{"both empty", "", "", 1.0},
		{"one empty", "", "Acme", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Similarity(tc.a, tc.b), 1e-9)
			assert.InDelta(t, tc.want, Similarity(tc.b, tc.a), 1e-9, "similarity must be symmetric")
		})
	}

	t.Run("multibyte names count runes", func(t *testing.T) {
		assert.InDelta(t, 3.0/10.0, Similarity("Zoë", "Zoë Tanaka"), 1e-9)
	})
}

func TestFindBestMatch(t *testing.T) {
	cfg := DefaultConfig()
	acme := &entities.Entity{Name: "Acme Corp"}
	acmeLower := &entities.Entity{Name: "acme corp"}
	john := &entities.Entity{Name: "John Smith"}

	t.Run("exact match", func(t *testing.T) {
		got, score := cfg.FindBestMatch("ACME CORP", []*entities.Entity{john, acme})
		require.NotNil(t, got)
		assert.Same(t, acme, got)
		assert.Equal(t, 1.0, score)
	})

	t.Run("first seen wins ties", func(t *testing.T) {
		got, _ := cfg.FindBestMatch("Acme Corp", []*entities.Entity{acme, acmeLower})
		assert.Same(t, acme, got)

		got, _ = cfg.FindBestMatch("Acme Corp", []*entities.Entity{acmeLower, acme})
		assert.Same(t, acmeLower, got)
	})

	t.Run("below threshold is no match", func(t *testing.T) {
		got, score := cfg.FindBestMatch("John", []*entities.Entity{john})
		assert.Nil(t, got)
		assert.Zero(t, score)
	})

	t.Run("fuzzy match above threshold", func(t *testing.T) {
		got, score := cfg.FindBestMatch("Jon Smith", []*entities.Entity{acme, john})
		assert.Same(t, john, got)
		assert.GreaterOrEqual(t, score, cfg.Threshold)
	})

	t.Run("empty known set", func(t *testing.T) {
		got, _ := cfg.FindBestMatch("Anything", nil)
		assert.Nil(t, got)
	})
}

func randomName(r *rand.Rand, n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}

func TestSimilarityProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	t.Run("case changes never lower the score", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			name := randomName(r, 2+r.Intn(15))
			assert.Equal(t, 1.0, Similarity(name, strings.ToUpper(name)))
		}
	})

	t.Run("unrelated random names stay below the threshold", func(t *testing.T) {
		threshold := DefaultConfig().Threshold
		for i := 0; i < 1000; i++ {
			a := randomName(r, 5+r.Intn(10))
			b := randomName(r, 5+r.Intn(10))
			if a == b {
				continue
			}
			require.Less(t, Similarity(a, b), threshold, "%q vs %q", a, b)
		}
	})
}
