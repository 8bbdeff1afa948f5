package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type DBDriver string

const (
	DriverSqlite   DBDriver = "sqlite"
	DriverPostgres DBDriver = "postgres"
	DriverRedis    DBDriver = "redis"
)

type DBConfig struct {
	Driver           DBDriver `mapstructure:"driver"`
	ConnectionString string   `mapstructure:"connection_string"`
}

func (config *DBConfig) setDefaults() {
	if config.Driver == "" {
		config.Driver = DriverSqlite
		if isPostgresDSN(config.ConnectionString) {
			config.Driver = DriverPostgres
		}
	}
	if config.ConnectionString == "" && config.Driver == DriverSqlite {
		config.ConnectionString = "jobs.db"
	}
}

func (config DBConfig) validate() error {
	var errs []error

	switch config.Driver {
	case DriverSqlite, DriverPostgres, DriverRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown driver: %v", config.Driver))
	}

	if config.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("missing variable: db connection string"))
	}

	return errors.Join(errs...)
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindEnv(v, [][2]string{
		{"db.driver", "DB_DRIVER"},
		{"db.connection_string", "DB_CONNECTION_STRING"},
	})
}

func isPostgresDSN(dsn string) bool {
	for _, prefix := range []string{"postgres://", "postgresql://", "host="} {
		if strings.HasPrefix(dsn, prefix) {
			return true
		}
	}
	return false
}
