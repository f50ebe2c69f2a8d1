package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/relfetch/github"
)

// Output formats
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

const dateFormat = "2006-01-02 15:04:05"

var outputFormat string

// tagOutput is the serialized form of one ReleasesForTags result
type tagOutput struct {
	Tag     string          `json:"tag"               yaml:"tag"`
	Release *github.Release `json:"release,omitempty" yaml:"release,omitempty"`
	Error   string          `json:"error,omitempty"   yaml:"error,omitempty"`
}

func encode(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode as JSON: %w", err)
		}
		return true, nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()

		if err := encoder.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode as YAML: %w", err)
		}
		return true, nil
	default:
		return false, nil
	}
}

// renderRelease prints a release with the given assets
func renderRelease(w io.Writer, format string, release *github.Release, assets []github.Asset) error {
	view := *release
	view.Assets = assets

	if handled, err := encode(w, format, &view); handled {
		return err
	}

	return renderReleaseTable(w, &view)
}

func renderReleaseTable(w io.Writer, release *github.Release) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (%s)\n", release.DisplayName(), release.TagName)
	if release.Draft {
		sb.WriteString("  Draft\n")
	}
	if release.Prerelease {
		sb.WriteString("  Pre-release\n")
	}
	if release.PublishedAt != nil {
		fmt.Fprintf(&sb, "  Published: %s\n", release.PublishedAt.Format(dateFormat))
	}
	if release.Author != nil {
		fmt.Fprintf(&sb, "  Author: %s\n", release.Author.Login)
	}
	if release.HTMLURL != "" {
		fmt.Fprintf(&sb, "  URL: %s\n", release.HTMLURL)
	}
	sb.WriteString("\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	if len(release.Assets) == 0 {
		_, err := io.WriteString(w, "No assets found\n")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Size", "Downloads", "Content Type", "Updated")

	for _, asset := range release.Assets {
		_ = table.Append([]string{
			asset.Name,
			formatSize(asset.Size),
			strconv.FormatInt(asset.DownloadCount, 10),
			asset.ContentType,
			asset.UpdatedAt.Format(dateFormat),
		})
	}

	return table.Render()
}

// renderTagResults prints the outcome of a multi-tag fetch
func renderTagResults(w io.Writer, format string, results []github.TagResult) error {
	out := make([]tagOutput, 0, len(results))
	for _, r := range results {
		item := tagOutput{Tag: r.Tag, Release: r.Release}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		out = append(out, item)
	}

	if handled, err := encode(w, format, out); handled {
		return err
	}

	if len(out) == 0 {
		_, err := io.WriteString(w, "No tags given\n")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Tag", "Name", "Published", "Assets", "Status")

	for _, r := range results {
		if r.Err != nil {
			_ = table.Append([]string{r.Tag, "", "", "", resultStatus(r.Err)})
			continue
		}

		published := ""
		if r.Release.PublishedAt != nil {
			published = r.Release.PublishedAt.Format(dateFormat)
		}
		status := "ok"
		switch {
		case r.Release.Draft:
			status = "draft"
		case r.Release.Prerelease:
			status = "pre-release"
		}

		_ = table.Append([]string{
			r.Tag,
			r.Release.DisplayName(),
			published,
			strconv.Itoa(len(r.Release.Assets)),
			status,
		})
	}

	return table.Render()
}

func resultStatus(err error) string {
	if github.IsDoesNotExist(err) {
		return "not found"
	}
	return "error: " + err.Error()
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
