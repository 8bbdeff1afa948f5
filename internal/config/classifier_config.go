package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type BucketConfig struct {
	Name     string   `mapstructure:"name"`
	Terms    []string `mapstructure:"terms"`
	CatchAll bool     `mapstructure:"catch_all"`
	MinScore float64  `mapstructure:"min_score"`
}

type ClassifierConfig struct {
	Primary   BucketConfig   `mapstructure:"primary"`
	Secondary []BucketConfig `mapstructure:"secondary"`
}

func (config *ClassifierConfig) setDefaults() {
	if config.Primary.Name == "" {
		config.Primary.Name = "Brasil"
	}
	if len(config.Primary.Terms) == 0 {
		config.Primary.Terms = []string{
			"brazil", "brasil", "são paulo", "rio de janeiro", "belo horizonte",
			"curitiba", "porto alegre", "brasília", "recife", "salvador", "campinas",
		}
	}
	if len(config.Secondary) == 0 {
		config.Secondary = []BucketConfig{
			{Name: "Catalunya", Terms: []string{"catalunya", "cataluña", "catalonia", "barcelona", "girona", "tarragona", "lleida"}},
			{Name: "ES/PT", Terms: []string{"spain", "españa", "espanha", "portugal", "madrid", "lisboa", "lisbon", "porto", "valencia"}},
			{Name: "LATAM", Terms: []string{"latam", "latin america", "américa latina", "latinoamérica",
				"argentina", "chile", "colombia", "peru", "perú", "mexico", "méxico"}},
			{Name: "Outros", CatchAll: true, MinScore: 8},
		}
	}
}

func (config ClassifierConfig) validate() error {
	var errs []error

	if len(config.Primary.Terms) == 0 {
		errs = append(errs, fmt.Errorf("primary bucket has no terms"))
	}

	for i, bucket := range config.Secondary {
		if bucket.Name == "" {
			errs = append(errs, fmt.Errorf("secondary bucket #%d has no name", i))
		}
		if !bucket.CatchAll && len(bucket.Terms) == 0 {
			errs = append(errs, fmt.Errorf("secondary bucket %q has no terms", bucket.Name))
		}
	}

	return errors.Join(errs...)
}

func (config ClassifierConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, [][2]string{
		{"classifier.primary.terms", "PRIMARY_REGION_TERMS"},
	})
}
