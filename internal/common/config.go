package common

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "JOBSCOUT_CONFIG"
	geminiKeyEnv   = "GEMINI_API_KEY"
	geminiModelEnv = "GEMINI_MODEL"
	inputFileEnv   = "INPUT_FILE"
	outputFileEnv  = "OUTPUT_FILE"
)

// Config holds all application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Fetch   FetchConfig   `yaml:"fetch"`
	LLM     LLMConfig     `yaml:"llm"`
	Reviews ReviewsConfig `yaml:"reviews"`
	Match   MatchConfig   `yaml:"match"`
}

// InputConfig locates the URL list (line-delimited text or XLSX).
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig locates the report. Empty Path means a timestamped
// default filename next to the working directory.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// FetchConfig bounds the content fetcher.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"userAgent"`
	MaxInFlight  int           `yaml:"maxInFlight"`
	HostRPS      float64       `yaml:"hostRps"`
	HostBurst    int           `yaml:"hostBurst"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
}

// LLMConfig describes the text-generation model endpoint.
type LLMConfig struct {
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"apiKey"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ReviewsConfig lists the review sources and their native scales.
type ReviewsConfig struct {
	Sources     []ReviewSourceConfig `yaml:"sources"`
	MaxInFlight int                  `yaml:"maxInFlight"`
	TopComments int                  `yaml:"topComments"`
}

// ReviewSourceConfig fixes the linear scale mapping for one source:
// normalized = rating / scaleMax * 5, clamped to [0,5].
type ReviewSourceConfig struct {
	Name     string  `yaml:"name"`
	ScaleMax float64 `yaml:"scaleMax"`
}

// MatchConfig carries the candidate preferences the extraction prompt
// scores postings against.
type MatchConfig struct {
	PreferredLocations  []string `yaml:"preferredLocations"`
	PreferredExperience string   `yaml:"preferredExperience"`
	PreferredSkills     []string `yaml:"preferredSkills"`
	JobType             string   `yaml:"jobType"`
}

// LoadConfig reads YAML configuration (if present) and applies
// environment overrides on top of the defaults.
func LoadConfig() *Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, cfg); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			cfg = defaultConfig()
		}
	}

	cfg.applyEnvOverrides()
	if len(cfg.Reviews.Sources) == 0 {
		cfg.Reviews.Sources = defaultConfig().Reviews.Sources
	}
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(geminiKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(geminiModelEnv); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(inputFileEnv); v != "" {
		c.Input.Path = v
	}
	if v := os.Getenv(outputFileEnv); v != "" {
		c.Output.Path = v
	}
}

// Validate checks whole-batch preconditions; per-item concerns are not
// validated here.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return NewAppError("CONFIG_ERROR", "input path is required", ErrInvalidConfig)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", geminiKeyEnv+" is required", ErrInvalidConfig)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Path: getEnv(inputFileEnv, "job_links.txt")},
		Output: OutputConfig{Path: ""},
		Fetch: FetchConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "jobscout/1.0 (+local)",
			MaxInFlight:  4,
			HostRPS:      2,
			HostBurst:    4,
			MaxBodyBytes: 2 << 20,
		},
		LLM: LLMConfig{
			BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
			Model:       getEnv(geminiModelEnv, "gemini-2.0-flash"),
			APIKey:      getEnv(geminiKeyEnv, ""),
			Temperature: 0.0,
			Timeout:     60 * time.Second,
		},
		Reviews: ReviewsConfig{
			Sources: []ReviewSourceConfig{
				{Name: "Glassdoor", ScaleMax: 5},
				{Name: "AmbitionBox", ScaleMax: 5},
				{Name: "Indeed", ScaleMax: 5},
				{Name: "Comparably", ScaleMax: 100},
			},
			MaxInFlight: 4,
			TopComments: 5,
		},
		Match: MatchConfig{
			PreferredLocations:  []string{"Remote", "Hybrid"},
			PreferredExperience: "2-5 years",
			PreferredSkills:     []string{"Go", "Backend"},
			JobType:             "Full-time",
		},
	}
}

// Helper functions for environment variable parsing.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
