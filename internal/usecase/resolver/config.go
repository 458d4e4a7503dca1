package resolver

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Config tunes matching and classification. Treat it as immutable once a
// Service has been built from it.
type Config struct {
	// Threshold is the minimum similarity for a mention to reuse an existing entity
	Threshold float64
	// SuggestionFloor is the lower bound for merge suggestions (upper bound is Threshold)
	SuggestionFloor float64
	// SuggestionLimit caps the number of merge suggestions returned
	SuggestionLimit int
	// MinContainmentLength is the shortest name that can score by containment
	MinContainmentLength int
	// MinNameLength drops shorter lines and names
	MinNameLength int
	// KnownEntityWindow is how many stored entities are loaded for matching
	KnownEntityWindow int

	FirstNames        []string
	CompanyIndicators []string
	ProjectIndicators []string
	// HintMap maps generator type hints to category slugs
	HintMap map[string]string

	// DefaultSlug is used when a classified slug is not in the registry
	DefaultSlug string
	// Description is attached to entities created during resolution
	Description string
}

var defaultFirstNames = []string{
	"john", "jane", "mike", "sarah", "david", "lisa", "chris", "amy",
	"robert", "jennifer", "michael", "jessica", "william", "ashley",
	"james", "emily", "alex", "maria", "daniel", "anna", "paul", "emma",
	"mark", "stephanie", "kevin", "michelle", "brian", "laura", "steve",
	"nicole", "tom", "elizabeth", "joe", "helen", "tim", "rachel",
}

var defaultCompanyIndicators = []string{
	"inc", "llc", "corp", "corporation", "company", "ltd", "limited",
	"group", "enterprises", "solutions", "services", "systems", "tech",
	"technologies", "software", "consulting", "partners", "associates",
}

var defaultProjectIndicators = []string{
	"project", "initiative", "program", "campaign", "launch", "rollout",
	"implementation", "migration", "upgrade", "deployment", "phase",
	"sprint", "release", "version", "beta", "alpha",
}

// DefaultConfig returns the built-in thresholds and lexicons
func DefaultConfig() Config {
	return Config{
		Threshold:            0.8,
		SuggestionFloor:      0.6,
		SuggestionLimit:      10,
		MinContainmentLength: 3,
		MinNameLength:        2,
		KnownEntityWindow:    1000,
		FirstNames:           append([]string(nil), defaultFirstNames...),
		CompanyIndicators:    append([]string(nil), defaultCompanyIndicators...),
		ProjectIndicators:    append([]string(nil), defaultProjectIndicators...),
		HintMap: map[string]string{
			"person":  entities.EntityTypePerson,
			"company": entities.EntityTypeCompany,
			"project": entities.EntityTypeProject,
			"product": entities.EntityTypeProject,
			"tool":    entities.EntityTypeOther,
			"other":   entities.EntityTypeOther,
		},
		DefaultSlug: entities.EntityTypeOther,
		Description: entities.DefaultEntityDescription,
	}
}

// ConfigFromSettings layers environment settings and an optional file over the defaults.
// File values win over environment values; zero values are ignored.
func ConfigFromSettings(env config.ResolverConfig, file *config.ResolverSettings) Config {
	cfg := DefaultConfig()

	if env.Threshold > 0 {
		cfg.Threshold = env.Threshold
	}
	if env.SuggestionFloor > 0 {
		cfg.SuggestionFloor = env.SuggestionFloor
	}
	if env.SuggestionLimit > 0 {
		cfg.SuggestionLimit = env.SuggestionLimit
	}
	if env.KnownEntityWindow > 0 {
		cfg.KnownEntityWindow = env.KnownEntityWindow
	}

	if file == nil {
		return cfg
	}
	if file.Threshold > 0 {
		cfg.Threshold = file.Threshold
	}
	if file.SuggestionFloor > 0 {
		cfg.SuggestionFloor = file.SuggestionFloor
	}
	if file.SuggestionLimit > 0 {
		cfg.SuggestionLimit = file.SuggestionLimit
	}
	if file.KnownEntityWindow > 0 {
		cfg.KnownEntityWindow = file.KnownEntityWindow
	}
	if file.MinContainmentLength > 0 {
		cfg.MinContainmentLength = file.MinContainmentLength
	}
	if file.MinNameLength > 0 {
		cfg.MinNameLength = file.MinNameLength
	}
	if len(file.FirstNames) > 0 {
		cfg.FirstNames = lowerAll(file.FirstNames)
	}
	if len(file.CompanyIndicators) > 0 {
		cfg.CompanyIndicators = lowerAll(file.CompanyIndicators)
	}
	if len(file.ProjectIndicators) > 0 {
		cfg.ProjectIndicators = lowerAll(file.ProjectIndicators)
	}
	for hint, slug := range file.HintMap {
		cfg.HintMap[strings.ToLower(hint)] = slug
	}
	return cfg
}

// Validate reports settings that would make matching meaningless
func (c Config) Validate() error {
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1], got %v", c.Threshold)
	}
	if c.SuggestionFloor < 0 || c.SuggestionFloor >= c.Threshold {
		return fmt.Errorf("suggestion floor must be in [0, %v), got %v", c.Threshold, c.SuggestionFloor)
	}
	if c.SuggestionLimit <= 0 {
		return fmt.Errorf("suggestion limit must be positive")
	}
	if c.KnownEntityWindow <= 0 {
		return fmt.Errorf("known entity window must be positive")
	}
	if c.DefaultSlug == "" {
		return fmt.Errorf("default slug is required")
	}
	return nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
