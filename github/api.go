package github

import (
	"context"
)

// API defines the interface for GitHub release operations
type API interface {
	// Server returns the server the client is bound to
	Server() Server

	// ReleaseForTag fetches the release published for a tag
	ReleaseForTag(ctx context.Context, tag string, repository Repository) (*Release, *Envelope, error)

	// ReleasesForTags fetches releases for several tags concurrently
	ReleasesForTags(ctx context.Context, repository Repository, tags []string) []TagResult
}

var _ API = (*Client)(nil)
