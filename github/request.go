package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const mediaTypeV3 = "application/vnd.github.v3+json"

// newRequest builds the GET request for endpoint on server.
// The endpoint path is appended to the server's base path with exactly one
// slash between them; escaping happens when the URL is serialized.
func newRequest(ctx context.Context, server Server, endpoint Endpoint, credentials Credentials, userAgent string) (*http.Request, error) {
	u, err := url.Parse(server.endpoint)
	if err != nil {
		return nil, err
	}
	u.Path = strings.TrimRight(u.Path, "/") + endpoint.Path()
	u.RawPath = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", mediaTypeV3)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	if credentials != nil {
		req.Header.Set("Authorization", credentials.AuthorizationHeaderValue())
	}

	return req, nil
}
