package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from environment variables. Values loaded
// from a .env file by the entry point are visible here too. An unset
// variable leaves the field untouched; an unparsable duration panics.
//
// Recognized variables:
//
//	ADDRESS           HTTP bind address
//	DATABASE_DSN      PostgreSQL DSN
//	READ_TIMEOUT      HTTP read timeout (Go duration, e.g. "15s")
//	WRITE_TIMEOUT     HTTP write timeout
//	SHUTDOWN_TIMEOUT  graceful shutdown timeout
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	config.ReadTimeout = envDuration("READ_TIMEOUT", config.ReadTimeout)
	config.WriteTimeout = envDuration("WRITE_TIMEOUT", config.WriteTimeout)
	config.ShutdownTimeout = envDuration("SHUTDOWN_TIMEOUT", config.ShutdownTimeout)
}

func envDuration(name string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
