package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/relfetch/github"
)

// EnvPrefix is prepended to every environment override, e.g. RELFETCH_GITHUB_URL
const EnvPrefix = "RELFETCH"

// Load loads the configuration from file and environment.
// Without an explicit path a missing config file is not an error and the
// defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".relfetch"))
		}

		// Check /etc
		v.AddConfigPath("/etc/relfetch/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// GitHub defaults
	v.SetDefault("github.url", github.DotComServer.Endpoint())
	v.SetDefault("github.token", "")
	v.SetDefault("github.username", "")
	v.SetDefault("github.password", "")
	v.SetDefault("github.user_agent", "")
	v.SetDefault("github.timeout", github.DefaultTimeout)
	v.SetDefault("github.concurrency", github.DefaultConcurrency)

	// Output defaults
	v.SetDefault("output.format", "table")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv maps RELFETCH_SECTION_KEY variables onto keys. GITHUB_TOKEN is
// honoured as a fallback for github.token.
func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")
}

// Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.GitHub.URL == "" {
		return fmt.Errorf("github.url is required")
	}
	if _, err := github.NewServer(cfg.GitHub.URL); err != nil {
		return fmt.Errorf("github.url: %w", err)
	}

	if cfg.GitHub.Token != "" && (cfg.GitHub.Username != "" || cfg.GitHub.Password != "") {
		return fmt.Errorf("github.token and github.username/password are mutually exclusive")
	}
	if cfg.GitHub.Password != "" && cfg.GitHub.Username == "" {
		return fmt.Errorf("github.password requires github.username")
	}

	if cfg.GitHub.Timeout <= 0 {
		return fmt.Errorf("github.timeout must be positive, got %s", cfg.GitHub.Timeout)
	}
	if cfg.GitHub.Concurrency < 1 {
		return fmt.Errorf("github.concurrency must be at least 1, got %d", cfg.GitHub.Concurrency)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.presets.%s: empty expression", name)
		}
	}

	// Validate output format
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
		"yaml":  true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s (must be 'table', 'json' or 'yaml')", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Server returns the configured API server
func (c GitHubConfig) Server() (github.Server, error) {
	return github.NewServer(c.URL)
}

// Credentials returns the configured authentication mode, nil for anonymous
func (c GitHubConfig) Credentials() github.Credentials {
	switch {
	case c.Token != "":
		return github.TokenCredentials{Token: c.Token}
	case c.Username != "":
		return github.BasicCredentials{Username: c.Username, Password: c.Password}
	default:
		return nil
	}
}
