package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DigestConfig struct {
	PrimarySubject    string `mapstructure:"primary_subject"`
	SecondarySubject  string `mapstructure:"secondary_subject"`
	PrimaryMaxItems   int    `mapstructure:"primary_max_items"`
	SecondaryMaxItems int    `mapstructure:"secondary_max_items"`
	DetailedItems     int    `mapstructure:"detailed_items"`
}

func (config *DigestConfig) setDefaults() {
	if config.PrimarySubject == "" {
		config.PrimarySubject = "Vagas Brasil"
	}
	if config.SecondarySubject == "" {
		config.SecondarySubject = "Vagas Internacionais (Semanal)"
	}
	if config.PrimaryMaxItems == 0 {
		config.PrimaryMaxItems = 25
	}
	if config.SecondaryMaxItems == 0 {
		config.SecondaryMaxItems = 15
	}
	if config.DetailedItems == 0 {
		config.DetailedItems = 3
	}
}

func (config DigestConfig) validate() error {
	var errs []error
	if config.PrimaryMaxItems < 0 || config.SecondaryMaxItems < 0 || config.DetailedItems < 0 {
		errs = append(errs, fmt.Errorf("item limits must be non-negative"))
	}
	return errors.Join(errs...)
}

type DispatchConfig struct {
	SecondaryWeekday string `mapstructure:"secondary_weekday"`
}

func (config *DispatchConfig) setDefaults() {
	if config.SecondaryWeekday == "" {
		config.SecondaryWeekday = "monday"
	}
}

func (config DispatchConfig) validate() error {
	_, err := config.Weekday()
	return err
}

func (config DispatchConfig) Weekday() (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), strings.TrimSpace(config.SecondaryWeekday)) {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid secondary_weekday: %q", config.SecondaryWeekday)
}

func (config DispatchConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return v.BindEnv("dispatch.secondary_weekday", "SECONDARY_WEEKDAY")
}
