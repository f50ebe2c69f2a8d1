package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const updateRepository = "s0up4200/relfetch"

var checkOnly bool

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update relfetch to the latest release",
	Long: `Check github.com for a newer relfetch release and replace the running
binary with it. Downloads are verified against the release's checksums.txt.`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
	})
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}

	latest, found, err := updater.DetectLatest(cmd.Context(), selfupdate.ParseSlug(updateRepository))
	if err != nil {
		return fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", updateRepository)
	}

	logger.Debug().Str("current", current.String()).Str("latest", latest.Version()).Msg("Checked for update")

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(cmd.OutOrStdout(), "relfetch %s is up to date\n", current)
		return nil
	}

	if checkOnly {
		fmt.Fprintf(cmd.OutOrStdout(), "relfetch %s is available (current %s)\n", latest.Version(), current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := updater.UpdateTo(cmd.Context(), latest, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	logger.Info().Str("version", latest.Version()).Msg("Updated relfetch")
	fmt.Fprintf(cmd.OutOrStdout(), "Updated to relfetch %s\n", latest.Version())

	return nil
}
