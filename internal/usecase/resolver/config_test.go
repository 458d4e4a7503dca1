package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func TestConfigFromSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := ConfigFromSettings(config.ResolverConfig{}, nil)
		assert.Equal(t, DefaultConfig(), cfg)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("file overrides environment", func(t *testing.T) {
		env := config.ResolverConfig{Threshold: 0.9, SuggestionLimit: 5}
		file := &config.ResolverSettings{
			Threshold:         0.85,
			FirstNames:        []string{"Ada", " Grace "},
			CompanyIndicators: []string{"GmbH"},
			HintMap:           map[string]string{"Vendor": "company"},
		}

		cfg := ConfigFromSettings(env, file)
		assert.InDelta(t, 0.85, cfg.Threshold, 1e-9)
		assert.Equal(t, 5, cfg.SuggestionLimit)
		assert.Equal(t, []string{"ada", "grace"}, cfg.FirstNames)
		assert.Equal(t, []string{"gmbh"}, cfg.CompanyIndicators)
		assert.Equal(t, "company", cfg.HintMap["vendor"])
		assert.Equal(t, "project", cfg.HintMap["product"], "built-in hints are kept")

		c := NewClassifier(cfg, nil, nil, nil)
		assert.Equal(t, "person", c.ClassifyName("Ada"))
		assert.Equal(t, "company", c.ClassifyName("Siemens GmbH"))
	})

	t.Run("validate", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SuggestionFloor = 0.9
		assert.Error(t, cfg.Validate())

		cfg = DefaultConfig()
		cfg.Threshold = 0
		assert.Error(t, cfg.Validate())
	})
}
