package cmd

import (
	"github.com/spf13/cobra"
)

var assetsExpr string

// releaseCmd represents the release command
var releaseCmd = &cobra.Command{
	Use:   "release <owner/repo> <tag>",
	Short: "Show the release published for a tag",
	Long: `Fetch the release for a single tag and print it with its assets.

--assets takes a filter expression or the name of a preset from
filter.presets, for example:
  relfetch release cli/cli v2.40.0 --assets 'contains(Name, "linux") and endsWith(Name, ".tar.gz")'

GitHub answers "not found" both for a missing tag and for a tag without a
release; relfetch cannot tell the two apart.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE:    runRelease,
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().StringVarP(&assetsExpr, "assets", "a", "", "asset filter expression or preset name")
	releaseCmd.Flags().StringVarP(&outputFormat, "output", "o", OutputFormatTable, "output format: table, json, yaml")
}

func runRelease(cmd *cobra.Command, args []string) error {
	repository, err := parseRepository(args[0])
	if err != nil {
		return err
	}
	tag := args[1]

	assetFilter, err := resolveAssetFilter(assetsExpr)
	if err != nil {
		return err
	}

	logger.Info().Str("repository", repository.FullName()).Str("tag", tag).Msg("Fetching release")

	release, envelope, err := githubClient.ReleaseForTag(cmd.Context(), tag, repository)
	if err != nil {
		return describeFetchError(err, repository, tag)
	}

	if rate, ok := envelope.RateLimit(); ok {
		logger.Debug().
			Int("limit", rate.Limit).
			Int("remaining", rate.Remaining).
			Time("reset", rate.Reset).
			Msg("Rate limit")
	}

	assets := release.Assets
	if assetFilter != nil {
		assets = assetFilter.Select(assets)
		logger.Debug().
			Str("filter", assetFilter.Expression()).
			Int("matched", len(assets)).
			Int("total", len(release.Assets)).
			Msg("Filtered assets")
	}

	return renderRelease(cmd.OutOrStdout(), cfg.Output.Format, release, assets)
}
