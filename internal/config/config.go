package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported generator backends.
const (
	ProviderVertex = "vertex"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config is the full service configuration. Values come from an optional YAML
// file, then the environment, then defaults.
type Config struct {
	Server struct {
		Port            string        `yaml:"port"`
		MaxRequestBytes int64         `yaml:"max_request_bytes"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Fetch struct {
		TempDir          string        `yaml:"temp_dir"`
		Timeout          time.Duration `yaml:"timeout"`
		MaxDocumentBytes int64         `yaml:"max_document_bytes"`
	} `yaml:"fetch"`

	LLM LLMConfig `yaml:"llm"`

	LogLevel string `yaml:"log_level"`
}

// LLMConfig selects and configures the generative model backend.
type LLMConfig struct {
	Provider        string  `yaml:"provider"`
	Model           string  `yaml:"model"`
	Temperature     float64 `yaml:"temperature"`
	ProjectID       string  `yaml:"project_id"`
	Region          string  `yaml:"region"`
	CredentialsFile string  `yaml:"credentials_file"`
	APIKey          string  `yaml:"api_key"`
	BaseURL         string  `yaml:"base_url"`
}

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Load reads the YAML file at path (if any) and applies environment overrides
// and defaults. An empty path falls back to ./config.yaml when it exists.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, loc := range []string{"config.yaml", "config.yml"} {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := mergeWithEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "5001"
	}
	if cfg.Server.MaxRequestBytes == 0 {
		cfg.Server.MaxRequestBytes = 1 << 20
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}

	if cfg.Fetch.TempDir == "" {
		cfg.Fetch.TempDir = os.TempDir()
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderVertex
	}
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case ProviderOpenAI:
			cfg.LLM.Model = "gpt-4o-mini"
		case ProviderOllama:
			cfg.LLM.Model = "mistral"
		default:
			cfg.LLM.Model = "gemini-2.5-flash-lite"
		}
	}
	if cfg.LLM.Region == "" {
		cfg.LLM.Region = "us-central1"
	}
	if cfg.LLM.BaseURL == "" && cfg.LLM.Provider == ProviderOllama {
		cfg.LLM.BaseURL = "http://localhost:11434"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func mergeWithEnv(cfg *Config) error {
	cfg.Server.Port = GetEnv("PORT", cfg.Server.Port)
	cfg.Fetch.TempDir = GetEnv("TEMP_DIR", cfg.Fetch.TempDir)
	cfg.LLM.Provider = strings.ToLower(GetEnv("LLM_PROVIDER", cfg.LLM.Provider))
	cfg.LLM.Model = GetEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.ProjectID = GetEnv("PROJECT_ID", cfg.LLM.ProjectID)
	cfg.LLM.Region = GetEnv("VERTEX_AI_REGION", cfg.LLM.Region)
	cfg.LLM.CredentialsFile = GetEnv("GOOGLE_APPLICATION_CREDENTIALS", cfg.LLM.CredentialsFile)
	cfg.LLM.APIKey = GetEnv("OPENAI_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = GetEnv("LLM_BASE_URL", GetEnv("OLLAMA_BASE_URL", cfg.LLM.BaseURL))
	cfg.LogLevel = GetEnv("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LLM_TEMPERATURE: %w", err)
		}
		cfg.LLM.Temperature = t
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FETCH_TIMEOUT: %w", err)
		}
		cfg.Fetch.Timeout = d
	}
	return nil
}

// ModelConfigured reports whether the selected backend has the credential it
// needs. Without one the service starts but rejects every run request.
func (l LLMConfig) ModelConfigured() bool {
	switch l.Provider {
	case ProviderOpenAI:
		return l.APIKey != ""
	case ProviderOllama:
		return l.BaseURL != ""
	default:
		return l.ProjectID != ""
	}
}

// SlogLevel maps LogLevel onto a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
