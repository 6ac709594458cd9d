package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/zyexro/kernelbot/core/config"
	"github.com/zyexro/kernelbot/internal/build"
	"github.com/zyexro/kernelbot/internal/ghactions"
)

// NotifyConfig controls where the workflow sends its own notifications.
type NotifyConfig struct {
	// Recipient is forwarded to the workflow as the TG_RECIPIENT input.
	Recipient string `yaml:"recipient" envconfig:"TELEGRAM_CHAT_ID"`
}

// Config is the full bot configuration: core transport plus the
// GitHub and build-default sections.
type Config struct {
	Core     coreconfig.Config `yaml:",inline"`
	GitHub   ghactions.Config  `yaml:"github"`
	Defaults build.Config      `yaml:"build_defaults"`
	Notify   NotifyConfig      `yaml:"notify"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// Load reads the YAML config file, applies environment overrides and
// validates all sections. Missing tokens fail startup.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := cfg.GitHub.Normalize(); err != nil {
		return nil, err
	}
	cfg.Defaults.Normalize()
	return &cfg, nil
}
