package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultBackendURL = "http://localhost:8000"

type Config struct {
	BackendURL string `yaml:"backend_url"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"` // TUI only; empty discards logs

	Stub StubConfig `yaml:"stub"`
}

// StubConfig configures the development backend served by `nuance stub`.
type StubConfig struct {
	Addr        string        `yaml:"addr"`
	Delay       time.Duration `yaml:"delay"`
	RateLimit   float64       `yaml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst   int           `yaml:"rate_burst"`
	CORSOrigins []string      `yaml:"cors_origins"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BackendURL: DefaultBackendURL,
		LogLevel:   "info",
		Stub: StubConfig{
			Addr:        ":8000",
			RateLimit:   20.0 / 60.0,
			RateBurst:   5,
			CORSOrigins: []string{"*"},
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getIntEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDurationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getListEnv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load builds the config from defaults, the optional YAML file named by
// NUANCE_CONFIG, a .env file in the working directory and the environment,
// in that order of precedence (last wins).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("NUANCE_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.BackendURL = getEnv("NUANCE_BACKEND_URL", c.BackendURL)
	c.LogLevel = getEnv("NUANCE_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("NUANCE_LOG_FILE", c.LogFile)

	c.Stub.Addr = getEnv("NUANCE_STUB_ADDR", c.Stub.Addr)
	c.Stub.CORSOrigins = getListEnv("NUANCE_CORS_ORIGINS", c.Stub.CORSOrigins)

	var err error
	if c.Stub.Delay, err = getDurationEnv("NUANCE_STUB_DELAY", c.Stub.Delay); err != nil {
		return err
	}
	if c.Stub.RateLimit, err = getFloatEnv("NUANCE_STUB_RATE_LIMIT", c.Stub.RateLimit); err != nil {
		return err
	}
	if c.Stub.RateBurst, err = getIntEnv("NUANCE_STUB_RATE_BURST", c.Stub.RateBurst); err != nil {
		return err
	}
	return nil
}

// Validate checks the fields that would otherwise fail late.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("backend url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend url must be an absolute http(s) URL, got %q", c.BackendURL)
	}
	if c.Stub.RateLimit < 0 || c.Stub.RateBurst < 0 {
		return errors.New("stub rate limit and burst must not be negative")
	}
	if c.Stub.Delay < 0 {
		return errors.New("stub delay must not be negative")
	}
	return nil
}
