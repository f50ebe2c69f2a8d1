package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/relfetch/github"
)

var keepOrder bool

// releasesCmd represents the releases command
var releasesCmd = &cobra.Command{
	Use:   "releases <owner/repo> <tag>...",
	Short: "Fetch releases for several tags at once",
	Long: `Fetch the release for every tag concurrently (github.concurrency at a time).

Results are sorted newest semantic version first; tags that are not versions
follow, and failed tags come last. Use --keep-order to print them as given.`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: initializeApp,
	RunE:    runReleases,
}

func init() {
	rootCmd.AddCommand(releasesCmd)

	releasesCmd.Flags().StringVarP(&outputFormat, "output", "o", OutputFormatTable, "output format: table, json, yaml")
	releasesCmd.Flags().BoolVar(&keepOrder, "keep-order", false, "print tags in the order given instead of by version")
}

func runReleases(cmd *cobra.Command, args []string) error {
	repository, err := parseRepository(args[0])
	if err != nil {
		return err
	}
	tags := args[1:]

	logger.Info().Str("repository", repository.FullName()).Int("tags", len(tags)).Msg("Fetching releases")

	results := githubClient.ReleasesForTags(cmd.Context(), repository, tags)
	if !keepOrder {
		github.SortByVersion(results)
	}

	if err := renderTagResults(cmd.OutOrStdout(), cfg.Output.Format, results); err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Debug().Err(r.Err).Str("tag", r.Tag).Msg("Tag failed")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tags could not be fetched", failed, len(results))
	}

	return nil
}
