// Package config loads application settings from an optional YAML file
// plus KORU_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the application configuration.
type Settings struct {
	AppName  string         `mapstructure:"app_name"`
	LogLevel string         `mapstructure:"log_level"`
	DataDir  string         `mapstructure:"data_dir"`
	LLM      LLMSettings    `mapstructure:"llm"`
	Memory   MemorySettings `mapstructure:"memory"`
}

// LLMSettings configures the active language model.
type LLMSettings struct {
	Provider    string  `mapstructure:"provider"` // openai | anthropic
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	Temperature float64 `mapstructure:"temperature"`
}

// MemorySettings configures retrieval memory.
type MemorySettings struct {
	Enabled    bool `mapstructure:"enabled"`
	Dimensions int  `mapstructure:"dimensions"`
	TopK       int  `mapstructure:"top_k"`
}

// Load reads settings from the given config file (optional; a missing
// path is fine) and the environment. Environment variables use the KORU_
// prefix with underscores, e.g. KORU_LLM_API_KEY.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("app_name", "koru")
	v.SetDefault("log_level", "info")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("memory.enabled", false)
	v.SetDefault("memory.dimensions", 1536)
	v.SetDefault("memory.top_k", 3)

	v.SetEnvPrefix("KORU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &s, nil
}

// EnsureDirs creates the data directory when missing.
func (s *Settings) EnsureDirs() error {
	return os.MkdirAll(s.DataDir, 0o755)
}
