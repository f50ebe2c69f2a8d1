package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/relfetch/config"
	"github.com/s0up4200/relfetch/filter"
	"github.com/s0up4200/relfetch/github"
)

var (
	cfgFile      string
	serverURL    string
	logLevel     string
	cfg          *config.Config
	logger       zerolog.Logger
	githubClient github.API
	filters      *filter.Manager

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "relfetch",
	Short: "Fetch GitHub releases by tag",
	Long: `relfetch looks up GitHub releases by tag name on github.com or a GitHub
Enterprise server and prints the release and its assets.

Assets can be narrowed with filter expressions such as
  endsWith(Name, ".tar.gz") and contains(Name, "linux")`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion records build information for the version command and the User-Agent
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "GitHub API base URL (overrides github.url)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides logging.level)")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command line overrides
	if serverURL != "" {
		cfg.GitHub.URL = serverURL
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	if err := github.SetDefaultUserAgent("relfetch/" + version); err != nil && !errors.Is(err, github.ErrUserAgentAlreadySet) {
		return err
	}

	githubClient, err = newGitHubClient(cfg.GitHub, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Str("server", cfg.GitHub.URL).
		Bool("authenticated", cfg.GitHub.Credentials() != nil).
		Strs("presets", filters.ListFilters()).
		Msg("Initialized")

	return nil
}

// newGitHubClient builds a client for the configured server and credentials
func newGitHubClient(c config.GitHubConfig, logger zerolog.Logger) (*github.Client, error) {
	server, err := c.Server()
	if err != nil {
		return nil, err
	}

	opts := []github.Option{
		github.WithTimeout(c.Timeout),
		github.WithConcurrency(c.Concurrency),
	}
	if c.UserAgent != "" {
		opts = append(opts, github.WithUserAgent(c.UserAgent))
	}

	switch creds := c.Credentials().(type) {
	case github.TokenCredentials:
		return github.NewTokenClient(server, creds.Token, logger, opts...), nil
	case github.BasicCredentials:
		return github.NewBasicClient(server, creds.Username, creds.Password, logger, opts...), nil
	default:
		return github.NewClient(server, logger, opts...), nil
	}
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, coloured only on a terminal
	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// parseRepository resolves an owner/name argument against the client's server
func parseRepository(arg string) (github.Repository, error) {
	return github.ParseRepository(githubClient.Server(), arg)
}

// resolveAssetFilter returns nil when no filter was requested
func resolveAssetFilter(expression string) (*filter.AssetFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}

	f, err := filters.Resolve(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid asset filter: %w", err)
	}
	return f, nil
}

// describeFetchError adds context to errors a user can act on
func describeFetchError(err error, repository github.Repository, tag string) error {
	switch {
	case github.IsDoesNotExist(err):
		return fmt.Errorf("no release found for tag %q in %s: the tag does not exist or has no release: %w",
			tag, repository.FullName(), err)
	case github.IsUnauthorized(err):
		return fmt.Errorf("access to %s was denied, check github.token or github.username/password: %w",
			repository.FullName(), err)
	case errors.Is(err, github.ErrCanceled):
		return fmt.Errorf("interrupted: %w", err)
	default:
		return fmt.Errorf("failed to fetch release %q from %s: %w", tag, repository.FullName(), err)
	}
}
