package github

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Client represents a GitHub API client bound to one Server.
// A Client is immutable and safe for concurrent use.
type Client struct {
	server      Server
	credentials Credentials
	httpClient  Doer
	userAgent   string
	concurrency int
	logger      zerolog.Logger
}

// NewClient creates an anonymous client
func NewClient(server Server, logger zerolog.Logger, opts ...Option) *Client {
	return newClient(server, nil, logger, opts)
}

// NewTokenClient creates a client that authenticates with a token
func NewTokenClient(server Server, token string, logger zerolog.Logger, opts ...Option) *Client {
	return newClient(server, TokenCredentials{Token: token}, logger, opts)
}

// NewBasicClient creates a client that authenticates with username and password
func NewBasicClient(server Server, username, password string, logger zerolog.Logger, opts ...Option) *Client {
	return newClient(server, BasicCredentials{Username: username, Password: password}, logger, opts)
}

func newClient(server Server, credentials Credentials, logger zerolog.Logger, opts []Option) *Client {
	o := newClientOptions(opts)

	return &Client{
		server:      server,
		credentials: credentials,
		httpClient:  o.httpClient,
		userAgent:   o.userAgent,
		concurrency: o.concurrency,
		logger:      logger.With().Str("server", server.endpoint).Logger(),
	}
}

// Server returns the server the client talks to
func (c *Client) Server() Server {
	return c.server
}

// ReleaseForTag fetches the release for tag in repository.
//
// A *Error of KindDoesNotExist is returned both when the tag does not exist
// and when it exists without a release; GitHub answers 404 in both cases.
//
// repository.Server must equal c.Server(). Passing a repository from another
// server is a programming error and panics.
func (c *Client) ReleaseForTag(ctx context.Context, tag string, repository Repository) (*Release, *Envelope, error) {
	c.mustOwn(repository)

	endpoint := ReleaseByTagName{
		Owner:      repository.Owner,
		Repository: repository.Name,
		Tag:        tag,
	}
	return fetchOne[Release](ctx, c, endpoint)
}

func (c *Client) mustOwn(repository Repository) {
	if repository.Server != c.server {
		panic(fmt.Sprintf("github: repository %s is on server %q but client is for %q",
			repository.FullName(), repository.Server.endpoint, c.server.endpoint))
	}
}
