// Package models defines data structures for configuration, agent exchanges and history.
package models

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAgentID identifies the extraction agent on the agent platform.
const DefaultAgentID = "69725146d6d0dcaec111c478"

// Agent providers.
const (
	ProviderREST   = "rest"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds runtime configuration. Values come from an optional YAML file,
// then from the environment (.env is loaded first), then from CLI flags.
type Config struct {
	Agent   AgentConfig   `yaml:"agent"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Local   LocalConfig   `yaml:"local"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

type AgentConfig struct {
	Provider string `yaml:"provider"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	AgentID  string `yaml:"agent_id"`
	UserID   string `yaml:"user_id"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// LocalConfig drives the offline agent that fetches and distils pages itself.
type LocalConfig struct {
	CacheDir  string        `yaml:"cache_dir"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	UserAgent string        `yaml:"user_agent"`
	MaxChars  int           `yaml:"max_chars"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	// Path is the SQLite file (sqlite) or directory (file). Empty means next to the binary.
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Provider: ProviderREST,
			Endpoint: "https://agent-prod.studio.lyzr.ai/v3/inference/chat/",
			AgentID:  DefaultAgentID,
			UserID:   "web-content-extractor",
		},
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Local: LocalConfig{
			CacheDir:  "wce-cache",
			CacheTTL:  time.Hour,
			UserAgent: "web-content-extractor/1.0",
			MaxChars:  1200,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// LoadConfig reads path (a missing file is not an error), then applies
// environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()
	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from WCE_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Agent.Provider, "WCE_AGENT_PROVIDER")
	set(&c.Agent.Endpoint, "WCE_AGENT_ENDPOINT")
	set(&c.Agent.APIKey, "WCE_AGENT_API_KEY")
	set(&c.Agent.AgentID, "WCE_AGENT_ID")
	set(&c.Agent.UserID, "WCE_AGENT_USER_ID")
	set(&c.OpenAI.APIKey, "WCE_OPENAI_API_KEY")
	set(&c.OpenAI.BaseURL, "WCE_OPENAI_BASE_URL")
	set(&c.OpenAI.Model, "WCE_OPENAI_MODEL")
	set(&c.Storage.Backend, "WCE_STORAGE_BACKEND")
	set(&c.Storage.Path, "WCE_STORAGE_PATH")
	set(&c.Server.Addr, "WCE_SERVER_ADDR")
}

// Validate rejects unknown provider and backend names.
func (c *Config) Validate() error {
	switch c.Agent.Provider {
	case ProviderREST, ProviderOpenAI, ProviderLocal:
	default:
		return fmt.Errorf("unknown agent provider %q (want rest, openai or local)", c.Agent.Provider)
	}
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want sqlite, file or memory)", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Agent.AgentID) == "" {
		return fmt.Errorf("agent id must not be empty")
	}
	return nil
}
