package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JOBSCOUT_CONFIG", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("INPUT_FILE", "")
	t.Setenv("OUTPUT_FILE", "")

	cfg := LoadConfig()
	if cfg.Input.Path != "job_links.txt" {
		t.Errorf("input path = %q", cfg.Input.Path)
	}
	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.Fetch.Timeout != 15*time.Second {
		t.Errorf("fetch timeout = %v", cfg.Fetch.Timeout)
	}
	if len(cfg.Reviews.Sources) == 0 {
		t.Error("expected default review sources")
	}
}

func TestLoadConfigYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
input:
  path: from_yaml.txt
llm:
  model: from-yaml-model
reviews:
  sources:
    - name: Glassdoor
      scaleMax: 5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JOBSCOUT_CONFIG", path)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINI_MODEL", "env-model")
	t.Setenv("INPUT_FILE", "")
	t.Setenv("OUTPUT_FILE", "")

	cfg := LoadConfig()
	if cfg.Input.Path != "from_yaml.txt" {
		t.Errorf("input path = %q", cfg.Input.Path)
	}
	// env beats YAML
	if cfg.LLM.Model != "env-model" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("api key = %q", cfg.LLM.APIKey)
	}
	if len(cfg.Reviews.Sources) != 1 || cfg.Reviews.Sources[0].Name != "Glassdoor" {
		t.Errorf("sources = %+v", cfg.Reviews.Sources)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Input.Path = "links.txt"
	cfg.LLM.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cfg.LLM.APIKey = ""
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
