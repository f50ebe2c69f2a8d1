package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelease_Validate(t *testing.T) {
	tests := []struct {
		name    string
		release Release
		field   string
	}{
		{name: "valid", release: Release{ID: 1, TagName: "v1", URL: "u"}},
		{name: "missing id", release: Release{TagName: "v1", URL: "u"}, field: "id"},
		{name: "missing tag", release: Release{ID: 1, URL: "u"}, field: "tag_name"},
		{name: "missing url", release: Release{ID: 1, TagName: "v1"}, field: "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.release.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestGitHubError_Validate(t *testing.T) {
	assert.NoError(t, (&GitHubError{Message: "Not Found"}).Validate())
	assert.ErrorIs(t, (&GitHubError{DocumentationURL: "https://docs.github.com"}).Validate(), ErrMissingField)
}

func TestRelease_Helpers(t *testing.T) {
	release := &Release{
		TagName: "v2.3.4",
		Assets: []Asset{
			{Name: "app_linux_amd64.tar.gz", Size: 10},
			{Name: "checksums.txt", Size: 1},
		},
	}

	assert.Equal(t, "v2.3.4", release.DisplayName())
	release.Name = "Spring release"
	assert.Equal(t, "Spring release", release.DisplayName())

	v, err := release.Version()
	require.NoError(t, err)
	assert.Equal(t, "2.3.4", v.String())

	asset, ok := release.FindAsset("checksums.txt")
	require.True(t, ok)
	assert.Equal(t, int64(1), asset.Size)
	assert.Same(t, &release.Assets[1], asset)

	_, ok = release.FindAsset("missing")
	assert.False(t, ok)

	_, err = (&Release{TagName: "nightly"}).Version()
	assert.Error(t, err)
}
