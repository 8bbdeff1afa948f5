package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger"`
	DB         DBConfig         `mapstructure:"db"`
	Search     SearchConfig     `mapstructure:"search"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Digest     DigestConfig     `mapstructure:"digest"`
	Dispatch   DispatchConfig   `mapstructure:"dispatch"`
	Mail       MailConfig       `mapstructure:"mail"`
	Sources    SourcesConfig    `mapstructure:"sources"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type section interface {
	bindEnvironmentVariables(v *viper.Viper) error
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("can't load .env file: %v", err)
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)

	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	if _, err := os.Stat(file); err == nil {
		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
	} else {
		log.Warnf("config file %s not found, using defaults and environment", file)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.setDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func bindEnvironmentVariables(v *viper.Viper) error {
	sections := map[string]section{
		"LoggerConfig":     LoggerConfig{},
		"DBConfig":         DBConfig{},
		"SearchConfig":     SearchConfig{},
		"ScoringConfig":    ScoringConfig{},
		"DispatchConfig":   DispatchConfig{},
		"MailConfig":       MailConfig{},
		"SourcesConfig":    SourcesConfig{},
		"ScheduleConfig":   ScheduleConfig{},
		"MetricsConfig":    MetricsConfig{},
		"ClassifierConfig": ClassifierConfig{},
	}

	var errs []error
	for name, s := range sections {
		if err := s.bindEnvironmentVariables(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config *Config) setDefaults() {
	config.Logger.setDefaults()
	config.DB.setDefaults()
	config.Search.setDefaults()
	config.Scoring.setDefaults()
	config.Classifier.setDefaults()
	config.Digest.setDefaults()
	config.Dispatch.setDefaults()
	config.Mail.setDefaults()
	config.Sources.setDefaults()
}

func (config Config) validate() error {
	var errs []error

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if err := config.DB.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DBConfig: %w", err))
	}

	if err := config.Search.validate(); err != nil {
		errs = append(errs, fmt.Errorf("SearchConfig: %w", err))
	}

	if err := config.Scoring.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ScoringConfig: %w", err))
	}

	if err := config.Classifier.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ClassifierConfig: %w", err))
	}

	if err := config.Digest.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DigestConfig: %w", err))
	}

	if err := config.Dispatch.validate(); err != nil {
		errs = append(errs, fmt.Errorf("DispatchConfig: %w", err))
	}

	if err := config.Mail.validate(); err != nil {
		errs = append(errs, fmt.Errorf("MailConfig: %w", err))
	}

	if err := config.Sources.validate(); err != nil {
		errs = append(errs, fmt.Errorf("SourcesConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindEnv(v *viper.Viper, bindings [][2]string) error {
	var errs []error
	for _, binding := range bindings {
		if err := v.BindEnv(binding[0], binding[1]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
