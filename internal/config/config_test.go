package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/Helm/internal/fuzzy"
)

var envVars = []string{
	"HELM_PORT", "HELM_METRICS_PORT", "HELM_RATE_LIMIT", "HELM_HERMES_URL",
	"HELM_RESOLUTION", "HELM_CONJUNCTION", "HELM_DISJUNCTION", "HELM_ACTIVATION",
	"HELM_AGGREGATION", "HELM_DEFUZZIFIER", "HELM_STATS_INTERVAL_MS",
	"HELM_LOG_LEVEL", "HELM_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimit != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimit)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.Engine.Resolution != 200 {
		t.Errorf("expected resolution 200, got %d", cfg.Engine.Resolution)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
	if cfg.StatsInterval() != 10*time.Second {
		t.Errorf("expected StatsInterval 10s, got %v", cfg.StatsInterval())
	}

	ops, err := cfg.Operators()
	if err != nil {
		t.Fatalf("Operators failed: %v", err)
	}
	want := fuzzy.DefaultOperators()
	if ops.Conjunction != want.Conjunction || ops.Disjunction != want.Disjunction ||
		ops.Activation != want.Activation || ops.Aggregation != want.Aggregation {
		t.Errorf("expected default operators, got %+v", ops)
	}
	if ops.Defuzzifier.Name() != "Centroid" || ops.Defuzzifier.Resolution() != 200 {
		t.Errorf("expected Centroid 200, got %s %d", ops.Defuzzifier.Name(), ops.Defuzzifier.Resolution())
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELM_PORT", "9000")
	t.Setenv("HELM_METRICS_PORT", "9001")
	t.Setenv("HELM_RATE_LIMIT", "0")
	t.Setenv("HELM_HERMES_URL", "nats://nats:4222")
	t.Setenv("HELM_RESOLUTION", "500")
	t.Setenv("HELM_ACTIVATION", "AlgebraicProduct")
	t.Setenv("HELM_DEFUZZIFIER", "Bisector")
	t.Setenv("HELM_STATS_INTERVAL_MS", "2000")
	t.Setenv("HELM_LOG_LEVEL", "debug")
	t.Setenv("HELM_LOG_FORMAT", "text")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimit != 0 {
		t.Errorf("expected rate limit 0, got %d", cfg.Server.RateLimit)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.StatsInterval() != 2*time.Second {
		t.Errorf("expected StatsInterval 2s, got %v", cfg.StatsInterval())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format 'text', got '%s'", cfg.Logging.Format)
	}

	ops, err := cfg.Operators()
	if err != nil {
		t.Fatalf("Operators failed: %v", err)
	}
	if ops.Activation != fuzzy.AlgebraicProduct {
		t.Errorf("expected AlgebraicProduct activation, got %s", ops.Activation)
	}
	if ops.Defuzzifier.Name() != "Bisector" || ops.Defuzzifier.Resolution() != 500 {
		t.Errorf("expected Bisector 500, got %s %d", ops.Defuzzifier.Name(), ops.Defuzzifier.Resolution())
	}
}

func TestEmptyHermesURLDisablesEvents(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELM_HERMES_URL", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Hermes.URL != "" {
		t.Errorf("expected empty hermes URL, got '%s'", cfg.Hermes.URL)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "helm.yaml")
	data := []byte(`
server:
  port: 7000
engine:
  resolution: 400
  defuzzifier: MeanOfMaximum
stats:
  interval_ms: 500
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port 7000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Engine.Conjunction != "Minimum" {
		t.Errorf("expected default conjunction to survive, got %s", cfg.Engine.Conjunction)
	}
	if cfg.Engine.Resolution != 400 || cfg.Engine.Defuzzifier != "MeanOfMaximum" {
		t.Errorf("expected MeanOfMaximum 400, got %s %d", cfg.Engine.Defuzzifier, cfg.Engine.Resolution)
	}
	if cfg.StatsInterval() != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", cfg.StatsInterval())
	}
}

func TestLoadRejectsBadEngine(t *testing.T) {
	tests := map[string]string{
		"HELM_CONJUNCTION": "Maximum",
		"HELM_DEFUZZIFIER": "WeightedAverage",
		"HELM_RESOLUTION":  "-5",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(""); err == nil {
				t.Errorf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
