package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := &Config{
		Monitor: MonitorConfig{Profile: "balanced"},
		Output:  OutputConfig{Format: "text", TimeFormat: "15:04:05", Buffer: 64},
		Logging: LoggingConfig{Level: "warn", Format: "json"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	content := `
monitor:
  profile: workday
  capacity: 50
  seed: 42
  duration: 90s

output:
  format: json
  quiet: true

logging:
  level: debug
  format: text
`
	path := filepath.Join(t.TempDir(), "lifelog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LIFELOG_MONITOR_PROFILE", "restless-night")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Monitor.Profile != "restless-night" {
		t.Errorf("environment did not override profile: %s", cfg.Monitor.Profile)
	}
	if cfg.Monitor.Capacity != 50 || cfg.Monitor.Seed != 42 {
		t.Errorf("unexpected monitor config: %+v", cfg.Monitor)
	}
	if cfg.Monitor.Duration != 90*time.Second {
		t.Errorf("expected duration 90s, got %v", cfg.Monitor.Duration)
	}
	if cfg.Output.Format != "json" || !cfg.Output.Quiet || cfg.Output.Buffer != 64 {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty profile", func(c *Config) { c.Monitor.Profile = "" }},
		{"negative capacity", func(c *Config) { c.Monitor.Capacity = -1 }},
		{"negative duration", func(c *Config) { c.Monitor.Duration = -time.Second }},
		{"bad output format", func(c *Config) { c.Output.Format = "msgpack" }},
		{"zero output buffer", func(c *Config) { c.Output.Buffer = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, test := range tests {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		test.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", test.name)
		}
	}
}
