package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
)

type Config struct {
	Env              string
	ListenAddr       string
	DatabaseURL      string
	WorkflowWorkers  int
	GeneratorURL     string
	GeneratorTimeout time.Duration
	PassTimeout      time.Duration
	RulesPath        string
	MinQualityScore  float64
	LogLevel         string
}

// ErrNoDatabase is returned alongside a usable Config when DATABASE_URL is
// unset; callers fall back to in-memory storage.
var ErrNoDatabase = eris.New("DATABASE_URL not set")

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the environment, after applying a .env file if one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, eris.Wrap(err, "config: load .env")
	}
	cfg := Config{
		Env:              getenv("APP_ENV", "development"),
		ListenAddr:       getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		WorkflowWorkers:  getenvInt("WORKFLOW_WORKERS", 2),
		GeneratorURL:     getenv("GENERATOR_URL", "http://localhost:9090"),
		GeneratorTimeout: getenvDuration("GENERATOR_TIMEOUT", 5*time.Minute),
		PassTimeout:      getenvDuration("PASS_TIMEOUT", 6*time.Minute),
		RulesPath:        os.Getenv("RULES_PATH"),
		MinQualityScore:  getenvFloat("MIN_QUALITY_SCORE", 0),
		LogLevel:         getenv("LOG_LEVEL", "info"),
	}
	if cfg.DatabaseURL == "" {
		return cfg, ErrNoDatabase
	}
	return cfg, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.Atoi(v); err == nil {
			return out
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if out, err := strconv.ParseFloat(v, 64); err == nil {
			return out
		}
	}
	return def
}

// getenvDuration accepts Go durations ("90s") or bare seconds ("90").
func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
