package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type SearchConfig struct {
	Countries           []string `mapstructure:"countries"`
	Languages           []string `mapstructure:"languages"`
	Keywords            []string `mapstructure:"keywords"`
	FetchLimitPerSource int      `mapstructure:"fetch_limit_per_source"`
	MinSalary           float64  `mapstructure:"min_salary"`
}

func (config *SearchConfig) setDefaults() {
	if len(config.Countries) == 0 {
		config.Countries = []string{"Brazil", "Spain", "Argentina", "Chile", "Colombia", "Peru", "Mexico"}
	}
	if len(config.Languages) == 0 {
		config.Languages = []string{"pt", "es", "ca"}
	}
	if len(config.Keywords) == 0 {
		config.Keywords = []string{
			"governança", "gestão de mudanças", "project controls", "PMO",
			"CAPEX", "FEL", "AACE", "escopo", "scope", "PPM", "Orion",
		}
	}
	if config.FetchLimitPerSource == 0 {
		config.FetchLimitPerSource = 30
	}
}

func (config SearchConfig) validate() error {
	var errs []error

	if len(config.Countries) == 0 {
		errs = append(errs, fmt.Errorf("missing variable: countries"))
	}
	if config.FetchLimitPerSource < 0 {
		errs = append(errs, fmt.Errorf("fetch_limit_per_source must be positive"))
	}
	if config.MinSalary < 0 {
		errs = append(errs, fmt.Errorf("min_salary must be non-negative"))
	}

	return errors.Join(errs...)
}

func (config SearchConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, [][2]string{
		{"search.countries", "SEARCH_COUNTRIES"},
		{"search.languages", "SEARCH_LANGUAGES"},
		{"search.keywords", "SEARCH_KEYWORDS"},
		{"search.fetch_limit_per_source", "FETCH_LIMIT_PER_SOURCE"},
		{"search.min_salary", "MIN_SALARY"},
	})
}

type ScoringStrategy string

const (
	SimpleScoring   ScoringStrategy = "simple"
	ExtendedScoring ScoringStrategy = "extended"
)

type ScoringConfig struct {
	Strategy         ScoringStrategy `mapstructure:"strategy"`
	PrimaryCountry   string          `mapstructure:"primary_country"`
	SecondaryCountry string          `mapstructure:"secondary_country"`
	SeniorityTerms   []string        `mapstructure:"seniority_terms"`
	Headhunters      []string        `mapstructure:"headhunters"`
	RecencyDecay     bool            `mapstructure:"recency_decay"`
}

func (config *ScoringConfig) setDefaults() {
	if config.Strategy == "" {
		config.Strategy = SimpleScoring
	}
	if config.PrimaryCountry == "" {
		config.PrimaryCountry = "Brazil"
	}
	if config.SecondaryCountry == "" {
		config.SecondaryCountry = "Spain"
	}
	if len(config.SeniorityTerms) == 0 {
		config.SeniorityTerms = []string{"senior", "sênior", "lead", "manager", "gerente", "head", "coord"}
	}
	if len(config.Headhunters) == 0 {
		config.Headhunters = []string{"Michael Page", "Hays", "Robert Half"}
	}
}

func (config ScoringConfig) validate() error {
	switch config.Strategy {
	case SimpleScoring, ExtendedScoring:
		return nil
	default:
		return fmt.Errorf("unknown scoring strategy: %v", config.Strategy)
	}
}

func (config ScoringConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, [][2]string{
		{"scoring.strategy", "SCORING_STRATEGY"},
		{"scoring.primary_country", "PRIMARY_COUNTRY"},
		{"scoring.recency_decay", "SCORING_RECENCY_DECAY"},
	})
}
