package config

import (
	"time"
)

// Config represents the complete configuration structure
type Config struct {
	GitHub  GitHubConfig  `mapstructure:"github"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GitHubConfig holds GitHub API connection details
type GitHubConfig struct {
	URL         string        `mapstructure:"url"`
	Token       string        `mapstructure:"token"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	UserAgent   string        `mapstructure:"user_agent"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
}

// FilterConfig contains named asset filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
