package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceAdzuna      = "adzuna"
	SourceHays        = "hays"
	SourceMichaelPage = "michael_page"
	SourceRobertHalf  = "robert_half"
)

type AdzunaConfig struct {
	AppID                string  `mapstructure:"app_id"`
	AppKey               string  `mapstructure:"app_key"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
}

// SourcesConfig URL maps are keyed by country; viper lower-cases map keys.
type SourcesConfig struct {
	Enabled        []string          `mapstructure:"enabled"`
	RequestTimeout time.Duration     `mapstructure:"request_timeout"`
	Adzuna         AdzunaConfig      `mapstructure:"adzuna"`
	Hays           map[string]string `mapstructure:"hays"`
	MichaelPage    map[string]string `mapstructure:"michael_page"`
	RobertHalf     map[string]string `mapstructure:"robert_half"`
}

func (config *SourcesConfig) setDefaults() {
	if len(config.Enabled) == 0 {
		config.Enabled = []string{SourceAdzuna, SourceHays, SourceMichaelPage, SourceRobertHalf}
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 15 * time.Second
	}
	if config.Hays == nil {
		config.Hays = map[string]string{
			"brazil": "https://www.hays.com.br/jobs",
			"spain":  "https://www.hays.es/jobs",
		}
	}
	if config.MichaelPage == nil {
		config.MichaelPage = map[string]string{
			"brazil": "https://www.michaelpage.com.br/jobs",
			"spain":  "https://www.michaelpage.es/jobs",
		}
	}
	if config.RobertHalf == nil {
		config.RobertHalf = map[string]string{
			"brazil": "https://www.roberthalf.com.br/trabalhos",
			"spain":  "https://www.roberthalf.es/trabajos",
		}
	}
}

func (config SourcesConfig) validate() error {
	var errs []error

	for _, name := range config.Enabled {
		switch name {
		case SourceAdzuna, SourceHays, SourceMichaelPage, SourceRobertHalf:
		default:
			errs = append(errs, fmt.Errorf("unknown source: %v", name))
		}
	}
	if config.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request_timeout must be positive"))
	}
	if config.Adzuna.MaxRequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("adzuna.max_requests_per_second must be non-negative"))
	}

	return errors.Join(errs...)
}

func (config SourcesConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, [][2]string{
		{"sources.enabled", "SOURCES_ENABLED"},
		{"sources.adzuna.app_id", "ADZUNA_APP_ID"},
		{"sources.adzuna.app_key", "ADZUNA_APP_KEY"},
	})
}

type ScheduleConfig struct {
	Cron string `mapstructure:"cron"`
}

func (config ScheduleConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("schedule.cron", "SCHEDULE_CRON")
}

type MetricsConfig struct {
	Address  string `mapstructure:"address"`
	Textfile string `mapstructure:"textfile"`
}

func (config MetricsConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, [][2]string{
		{"metrics.address", "METRICS_ADDRESS"},
		{"metrics.textfile", "METRICS_TEXTFILE"},
	})
}
