package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/relfetch/github"
)

func validConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			URL:         "https://api.github.com",
			Timeout:     30 * time.Second,
			Concurrency: 5,
		},
		Output:  OutputConfig{Format: "table"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(cfg *Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "defaults",
			modify: func(cfg *Config) {},
		},
		{
			name:   "token",
			modify: func(cfg *Config) { cfg.GitHub.Token = "ghp_x" },
		},
		{
			name: "basic",
			modify: func(cfg *Config) {
				cfg.GitHub.Username = "octocat"
				cfg.GitHub.Password = "hunter2"
			},
		},
		{
			name:        "missing url",
			modify:      func(cfg *Config) { cfg.GitHub.URL = "" },
			wantErr:     true,
			errContains: "github.url is required",
		},
		{
			name:        "unparsable url",
			modify:      func(cfg *Config) { cfg.GitHub.URL = "ftp://example.com" },
			wantErr:     true,
			errContains: "github.url",
		},
		{
			name: "token and basic",
			modify: func(cfg *Config) {
				cfg.GitHub.Token = "ghp_x"
				cfg.GitHub.Username = "octocat"
			},
			wantErr:     true,
			errContains: "mutually exclusive",
		},
		{
			name:        "password without username",
			modify:      func(cfg *Config) { cfg.GitHub.Password = "hunter2" },
			wantErr:     true,
			errContains: "requires github.username",
		},
		{
			name:        "zero timeout",
			modify:      func(cfg *Config) { cfg.GitHub.Timeout = 0 },
			wantErr:     true,
			errContains: "github.timeout",
		},
		{
			name:        "zero concurrency",
			modify:      func(cfg *Config) { cfg.GitHub.Concurrency = 0 },
			wantErr:     true,
			errContains: "github.concurrency",
		},
		{
			name:        "empty preset",
			modify:      func(cfg *Config) { cfg.Filter.Presets = map[string]string{"linux": " "} },
			wantErr:     true,
			errContains: "filter.presets.linux",
		},
		{
			name:        "invalid output",
			modify:      func(cfg *Config) { cfg.Output.Format = "xml" },
			wantErr:     true,
			errContains: "invalid output format: xml",
		},
		{
			name:        "invalid level",
			modify:      func(cfg *Config) { cfg.Logging.Level = "trace" },
			wantErr:     true,
			errContains: "invalid logging level",
		},
		{
			name:        "invalid log format",
			modify:      func(cfg *Config) { cfg.Logging.Format = "logfmt" },
			wantErr:     true,
			errContains: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// isolate keeps Load from picking up config files or variables from the
// machine running the tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{
		"GITHUB_TOKEN",
		"RELFETCH_GITHUB_TOKEN",
		"RELFETCH_GITHUB_URL",
		"RELFETCH_LOGGING_LEVEL",
		"RELFETCH_OUTPUT_FORMAT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.github.com", cfg.GitHub.URL)
	assert.Equal(t, github.DefaultTimeout, cfg.GitHub.Timeout)
	assert.Equal(t, github.DefaultConcurrency, cfg.GitHub.Concurrency)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
	assert.Nil(t, cfg.GitHub.Credentials())
}

func TestLoad_File(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "relfetch.yaml")
	content := `
github:
  url: https://ghe.example.com/api/v3
  username: octocat
  password: hunter2
  user_agent: relfetch-test/1.0
  timeout: 10s
  concurrency: 2
filter:
  presets:
    linux: contains(Name, "linux")
output:
  format: json
logging:
  level: debug
  format: json
  color: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://ghe.example.com/api/v3", cfg.GitHub.URL)
	assert.Equal(t, "relfetch-test/1.0", cfg.GitHub.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, 2, cfg.GitHub.Concurrency)
	assert.Equal(t, map[string]string{"linux": `contains(Name, "linux")`}, cfg.Filter.Presets)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Color)

	assert.Equal(t, github.BasicCredentials{Username: "octocat", Password: "hunter2"}, cfg.GitHub.Credentials())

	server, err := cfg.GitHub.Server()
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3", server.Endpoint())
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: xml\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)

	t.Setenv("GITHUB_TOKEN", "ghp_from_env")
	t.Setenv("RELFETCH_LOGGING_LEVEL", "warn")
	t.Setenv("RELFETCH_OUTPUT_FORMAT", "yaml")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ghp_from_env", cfg.GitHub.Token)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, github.TokenCredentials{Token: "ghp_from_env"}, cfg.GitHub.Credentials())
}

func TestLoad_PrefixedTokenWins(t *testing.T) {
	isolate(t)

	t.Setenv("GITHUB_TOKEN", "generic")
	t.Setenv("RELFETCH_GITHUB_TOKEN", "specific")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "specific", cfg.GitHub.Token)
}
