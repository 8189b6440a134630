// Package config collects the environment configuration of the backend.
package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	// Port the HTTP server listens on
	Port string

	// DataDir holds the SQLite database when DB_HOST is not set
	DataDir string

	// AMQPURL is the broker URL. When empty, events are not published.
	AMQPURL string

	// AMQPExchange is the exchange objective events are published to.
	AMQPExchange string
}

// Load reads the configuration from the environment, applying defaults
// for everything that is not set.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		DataDir:      getEnv("DATA_DIR", "data"),
		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "objective.events"),
	}
}

// DatabaseDSN returns the SQLite DSN inside the data directory.
//
// The DSN is only used when DB_HOST is not set, see models.Connect.
func (c Config) DatabaseDSN() string {
	return filepath.Join(c.DataDir, "gorm.db") + "?_pragma=foreign_keys(1)"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}
