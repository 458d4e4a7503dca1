package resolver

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/metrics"
)

// Classification tiers, used as metric labels
const (
	TierHint      = "hint"
	TierHeuristic = "heuristic"
	TierFallback  = "fallback"
)

// CategoryRegistry looks up entity categories by slug. Returns nil, nil when absent.
type CategoryRegistry interface {
	GetBySlug(ctx context.Context, slug string) (*entities.EntityType, error)
}

// wordPattern matches runs of letters, digits and underscores
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Classifier assigns a registry category to a new entity name
type Classifier struct {
	cfg      Config
	registry CategoryRegistry
	logger   *zap.Logger
	metrics  *metrics.Metrics

	firstNames map[string]struct{}
}

// NewClassifier creates a classifier over the given registry
func NewClassifier(cfg Config, registry CategoryRegistry, logger *zap.Logger, m *metrics.Metrics) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	names := make(map[string]struct{}, len(cfg.FirstNames))
	for _, n := range cfg.FirstNames {
		names[n] = struct{}{}
	}
	return &Classifier{
		cfg:        cfg,
		registry:   registry,
		logger:     logger,
		metrics:    m,
		firstNames: names,
	}
}

// Classify returns a slug that exists in the registry. It never fails:
// registry errors are treated as a missing category.
func (c *Classifier) Classify(ctx context.Context, name, hint string) string {
	if hint != "" {
		if mapped, ok := c.cfg.HintMap[strings.ToLower(hint)]; ok && c.exists(ctx, mapped) {
			c.logger.Debug("🏷️ Using suggested type",
				zap.String("name", name),
				zap.String("hint", hint),
				zap.String("slug", mapped),
			)
			c.metrics.RecordClassification(TierHint, mapped)
			return mapped
		}
	}

	slug := c.ClassifyName(name)
	if c.exists(ctx, slug) {
		c.metrics.RecordClassification(TierHeuristic, slug)
		return slug
	}

	c.logger.Debug("🏷️ Classified type not registered, using default",
		zap.String("name", name),
		zap.String("slug", slug),
		zap.String("default", c.cfg.DefaultSlug),
	)
	c.metrics.RecordClassification(TierFallback, c.cfg.DefaultSlug)
	return c.cfg.DefaultSlug
}

func (c *Classifier) exists(ctx context.Context, slug string) bool {
	if c.registry == nil {
		return false
	}
	t, err := c.registry.GetBySlug(ctx, slug)
	if err != nil {
		c.logger.Warn("⚠️ Category lookup failed",
			zap.String("slug", slug),
			zap.Error(err),
		)
		return false
	}
	return t != nil
}

// ClassifyName applies the name heuristics only. Rules are checked in order
// and the first hit wins.
func (c *Classifier) ClassifyName(name string) string {
	lower := strings.ToLower(name)
	words := wordPattern.FindAllString(lower, -1)

	if len(words) == 1 && c.isFirstName(words[0]) {
		return entities.EntityTypePerson
	}
	if len(words) == 2 && (c.isFirstName(words[0]) || c.isFirstName(words[1])) {
		return entities.EntityTypePerson
	}
	if containsAny(lower, c.cfg.CompanyIndicators) {
		return entities.EntityTypeCompany
	}
	if containsAny(lower, c.cfg.ProjectIndicators) {
		return entities.EntityTypeProject
	}
	if hasPersonNamePattern(name) {
		return entities.EntityTypePerson
	}
	if isUpper(name) || containsAny(name, []string{"Inc", "LLC", "Corp"}) {
		return entities.EntityTypeCompany
	}
	return entities.EntityTypeOther
}

func (c *Classifier) isFirstName(w string) bool {
	_, ok := c.firstNames[w]
	return ok
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// hasPersonNamePattern reports "First Last" or "First M Last" capitalization.
// Single-letter words are skipped in the three word form.
func hasPersonNamePattern(name string) bool {
	words := strings.Fields(name)
	switch len(words) {
	case 2:
		for _, w := range words {
			if !isCapitalized(w) {
				return false
			}
		}
		return true
	case 3:
		for _, w := range words {
			if utf8.RuneCountInString(w) > 1 && !isCapitalized(w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// isCapitalized is an upper-case letter followed by a lower-cased remainder
func isCapitalized(w string) bool {
	first, size := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(first) && isLower(w[size:])
}

// isUpper reports whether s has at least one cased rune and no lower or title case runes
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// isLower reports whether s has at least one cased rune and no upper or title case runes
func isLower(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}
