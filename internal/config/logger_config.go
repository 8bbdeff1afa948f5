package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelDebug   LogLevel = "DEBUG"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
	LevelFatal   LogLevel = "FATAL"
)

type LoggerConfig struct {
	LogLevel     LogLevel `mapstructure:"log_level"`
	AppName      string   `mapstructure:"app_name"`
	LokiURL      string   `mapstructure:"loki_url"`
	LokiUser     string   `mapstructure:"loki_user"`
	LokiPassword string   `mapstructure:"loki_password"`
	OutputFile   string   `mapstructure:"output_file"`
}

func (config *LoggerConfig) setDefaults() {
	if config.LogLevel == "" {
		config.LogLevel = LevelInfo
	}
	if config.AppName == "" {
		config.AppName = "job-digest"
	}
	if config.OutputFile == "" {
		config.OutputFile = "./logs/app.log"
	}
}

func (config LoggerConfig) validate() error {
	switch config.LogLevel {
	case LevelInfo, LevelDebug, LevelWarning, LevelError, LevelFatal:
		return nil
	default:
		return fmt.Errorf("unknown log_level: %v", config.LogLevel)
	}
}

func (config LoggerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, [][2]string{
		{"logger.loki_url", "LOKI_URL"},
		{"logger.loki_user", "LOKI_USER"},
		{"logger.loki_password", "LOKI_PASSWORD"},
		{"logger.app_name", "APP_NAME"},
		{"logger.log_level", "LOG_LEVEL"},
		{"logger.output_file", "LOG_OUTPUT_FILE"},
	})
}
