package github

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blang/semver"
)

// Decodable is the constraint for payloads the fetch pipeline can produce.
// The JSON document is unmarshaled into a T, then Validate rejects values
// that are well-formed JSON but not the expected schema.
type Decodable[T any] interface {
	*T
	Validate() error
}

// ErrMissingField is wrapped by Validate when a required field is absent
var ErrMissingField = errors.New("missing required field")

// User represents a GitHub account as embedded in other payloads
type User struct {
	Login     string `json:"login"      yaml:"login"`
	ID        int64  `json:"id"         yaml:"id"`
	NodeID    string `json:"node_id"    yaml:"node_id,omitempty"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url"   yaml:"html_url,omitempty"`
	Type      string `json:"type"       yaml:"type,omitempty"`
	SiteAdmin bool   `json:"site_admin" yaml:"site_admin,omitempty"`
}

// Asset represents a file attached to a release
type Asset struct {
	URL                string    `json:"url"                  yaml:"url"`
	ID                 int64     `json:"id"                   yaml:"id"`
	NodeID             string    `json:"node_id"              yaml:"node_id,omitempty"`
	Name               string    `json:"name"                 yaml:"name"`
	Label              string    `json:"label"                yaml:"label,omitempty"`
	Uploader           *User     `json:"uploader"             yaml:"uploader,omitempty"`
	ContentType        string    `json:"content_type"         yaml:"content_type"`
	State              string    `json:"state"                yaml:"state"`
	Size               int64     `json:"size"                 yaml:"size"`
	DownloadCount      int64     `json:"download_count"       yaml:"download_count"`
	CreatedAt          time.Time `json:"created_at"           yaml:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"           yaml:"updated_at"`
	BrowserDownloadURL string    `json:"browser_download_url" yaml:"browser_download_url"`
}

// Release represents a GitHub release
type Release struct {
	URL             string     `json:"url"              yaml:"url"`
	HTMLURL         string     `json:"html_url"         yaml:"html_url"`
	AssetsURL       string     `json:"assets_url"       yaml:"assets_url,omitempty"`
	UploadURL       string     `json:"upload_url"       yaml:"upload_url,omitempty"`
	TarballURL      string     `json:"tarball_url"      yaml:"tarball_url,omitempty"`
	ZipballURL      string     `json:"zipball_url"      yaml:"zipball_url,omitempty"`
	ID              int64      `json:"id"               yaml:"id"`
	NodeID          string     `json:"node_id"          yaml:"node_id,omitempty"`
	TagName         string     `json:"tag_name"         yaml:"tag_name"`
	TargetCommitish string     `json:"target_commitish" yaml:"target_commitish,omitempty"`
	Name            string     `json:"name"             yaml:"name"`
	Body            string     `json:"body"             yaml:"body,omitempty"`
	Draft           bool       `json:"draft"            yaml:"draft"`
	Prerelease      bool       `json:"prerelease"       yaml:"prerelease"`
	CreatedAt       time.Time  `json:"created_at"       yaml:"created_at"`
	PublishedAt     *time.Time `json:"published_at"     yaml:"published_at,omitempty"`
	Author          *User      `json:"author"           yaml:"author,omitempty"`
	Assets          []Asset    `json:"assets"           yaml:"assets"`
}

// Validate checks the fields every release payload carries
func (r *Release) Validate() error {
	switch {
	case r.ID == 0:
		return fmt.Errorf("release: %w: id", ErrMissingField)
	case r.TagName == "":
		return fmt.Errorf("release: %w: tag_name", ErrMissingField)
	case r.URL == "":
		return fmt.Errorf("release: %w: url", ErrMissingField)
	}
	return nil
}

// DisplayName returns the release name, falling back to the tag
func (r *Release) DisplayName() string {
	if strings.TrimSpace(r.Name) != "" {
		return r.Name
	}
	return r.TagName
}

// Version parses the tag as a semantic version. A leading "v" is accepted.
func (r *Release) Version() (semver.Version, error) {
	v, err := semver.ParseTolerant(r.TagName)
	if err != nil {
		return semver.Version{}, fmt.Errorf("parse tag %q as version: %w", r.TagName, err)
	}
	return v, nil
}

// FindAsset returns the asset with the given file name
func (r *Release) FindAsset(name string) (*Asset, bool) {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i], true
		}
	}
	return nil, false
}

// FieldError is one entry of the errors array in an error payload
type FieldError struct {
	Resource string `json:"resource" yaml:"resource,omitempty"`
	Field    string `json:"field"    yaml:"field,omitempty"`
	Code     string `json:"code"     yaml:"code"`
	Message  string `json:"message"  yaml:"message,omitempty"`
}

// GitHubError is the payload GitHub sends with 4xx and 5xx responses
type GitHubError struct {
	Message          string       `json:"message"           yaml:"message"`
	DocumentationURL string       `json:"documentation_url" yaml:"documentation_url,omitempty"`
	Errors           []FieldError `json:"errors"            yaml:"errors,omitempty"`
}

// Validate checks the fields every error payload carries
func (e *GitHubError) Validate() error {
	if e.Message == "" {
		return fmt.Errorf("error payload: %w: message", ErrMissingField)
	}
	return nil
}
