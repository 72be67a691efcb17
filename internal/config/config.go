package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Helm/internal/fuzzy"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Hermes  HermesConfig  `yaml:"hermes"`
	Engine  EngineConfig  `yaml:"engine"`
	Stats   StatsConfig   `yaml:"stats"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
	// RateLimit is the number of steer requests per second allowed for one
	// vehicle. Zero disables limiting.
	RateLimit int `yaml:"rate_limit"`
}

// HermesConfig points at the NATS server. An empty URL disables events.
type HermesConfig struct {
	URL string `yaml:"url"`
}

type EngineConfig struct {
	Resolution  int    `yaml:"resolution"`
	Conjunction string `yaml:"conjunction"`
	Disjunction string `yaml:"disjunction"`
	Activation  string `yaml:"activation"`
	Aggregation string `yaml:"aggregation"`
	Defuzzifier string `yaml:"defuzzifier"`
}

type StatsConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Stats.IntervalMs) * time.Millisecond
}

// Operators resolves the configured operator names.
func (c *Config) Operators() (fuzzy.Operators, error) {
	e := c.Engine
	return fuzzy.ParseOperators(e.Conjunction, e.Disjunction, e.Activation, e.Aggregation, e.Defuzzifier, e.Resolution)
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
			RateLimit:   120,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Engine: EngineConfig{
			Resolution:  fuzzy.DefaultResolution,
			Conjunction: "Minimum",
			Disjunction: "Maximum",
			Activation:  "Minimum",
			Aggregation: "Maximum",
			Defuzzifier: "Centroid",
		},
		Stats: StatsConfig{
			IntervalMs: 10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Engine.Resolution <= 0 {
		return fmt.Errorf("engine.resolution must be positive, got %d", c.Engine.Resolution)
	}
	if _, err := c.Operators(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	envInt("HELM_PORT", &cfg.Server.Port)
	envInt("HELM_METRICS_PORT", &cfg.Server.MetricsPort)
	envInt("HELM_RATE_LIMIT", &cfg.Server.RateLimit)
	if v, ok := os.LookupEnv("HELM_HERMES_URL"); ok {
		cfg.Hermes.URL = v
	}
	envInt("HELM_RESOLUTION", &cfg.Engine.Resolution)
	envString("HELM_CONJUNCTION", &cfg.Engine.Conjunction)
	envString("HELM_DISJUNCTION", &cfg.Engine.Disjunction)
	envString("HELM_ACTIVATION", &cfg.Engine.Activation)
	envString("HELM_AGGREGATION", &cfg.Engine.Aggregation)
	envString("HELM_DEFUZZIFIER", &cfg.Engine.Defuzzifier)
	envInt("HELM_STATS_INTERVAL_MS", &cfg.Stats.IntervalMs)
	envString("HELM_LOG_LEVEL", &cfg.Logging.Level)
	envString("HELM_LOG_FORMAT", &cfg.Logging.Format)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
