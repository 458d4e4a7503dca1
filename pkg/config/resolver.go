package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ResolverSettings is the optional YAML override for entity resolution.
// Zero values mean "keep the default".
type ResolverSettings struct {
	Threshold            float64           `mapstructure:"threshold"`
	SuggestionFloor      float64           `mapstructure:"suggestion_floor"`
	SuggestionLimit      int               `mapstructure:"suggestion_limit"`
	KnownEntityWindow    int               `mapstructure:"known_entity_window"`
	MinContainmentLength int               `mapstructure:"min_containment_length"`
	MinNameLength        int               `mapstructure:"min_name_length"`
	FirstNames           []string          `mapstructure:"first_names"`
	CompanyIndicators    []string          `mapstructure:"company_indicators"`
	ProjectIndicators    []string          `mapstructure:"project_indicators"`
	HintMap              map[string]string `mapstructure:"hint_map"`
}

// LoadResolverFile reads resolver overrides from a YAML (or any viper-supported) file.
// Only the file is consulted. RESOLVER_* environment variables feed
// ResolverConfig through Load, and non-zero file values win over them.
func LoadResolverFile(path string) (*ResolverSettings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read resolver config %s: %w", path, err)
	}

	var s ResolverSettings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode resolver config %s: %w", path, err)
	}
	return &s, nil
}
