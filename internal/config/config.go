package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort         = 8080
	DefaultDatabaseType = "sqlite"
	DefaultDatabaseURL  = "file:survey.db?_pragma=busy_timeout(5000)"
)

type Config struct {
	Port               int
	DatabaseType       string
	DatabaseURL        string
	DatasetPath        string
	PipelineConcurrent bool
	DBConnectTimeout   time.Duration
}

// ReadOnly reports whether responses come from an xlsx export instead of the
// database.
func (c Config) ReadOnly() bool {
	return c.DatasetPath != ""
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load() // loads .env
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	envOr := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		DatabaseType: envOr("DATABASE_TYPE", DefaultDatabaseType),
		DatabaseURL:  envOr("DATABASE_URL", DefaultDatabaseURL),
		DatasetPath:  getenv("DATASET_PATH"),
	}

	port, err := strconv.Atoi(envOr("PORT", strconv.Itoa(DefaultPort)))
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("invalid PORT %q", getenv("PORT"))
	}
	cfg.Port = port

	cfg.PipelineConcurrent, err = strconv.ParseBool(envOr("PIPELINE_CONCURRENT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PIPELINE_CONCURRENT: %w", err)
	}

	timeoutSec, err := strconv.Atoi(envOr("DB_CONNECT_TIMEOUT_SEC", "20"))
	if err != nil || timeoutSec < 0 {
		return Config{}, fmt.Errorf("invalid DB_CONNECT_TIMEOUT_SEC %q", getenv("DB_CONNECT_TIMEOUT_SEC"))
	}
	cfg.DBConnectTimeout = time.Duration(timeoutSec) * time.Second

	return cfg, nil
}
