package github

import (
	"fmt"
	"net/url"
	"strings"
)

// DotComServer is the public GitHub API.
var DotComServer = Server{endpoint: "https://api.github.com"}

// Server identifies an API base address. Values are immutable and compared with ==.
type Server struct {
	endpoint string
}

// NewServer validates rawURL and returns the Server it names.
// Only http and https addresses with a host are accepted.
func NewServer(rawURL string) (Server, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Server{}, fmt.Errorf("%w: empty server URL", ErrInvalidServer)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Server{}, fmt.Errorf("%w: %w", ErrInvalidServer, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Server{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidServer, u.Scheme)
	}
	if u.Host == "" {
		return Server{}, fmt.Errorf("%w: missing host in %q", ErrInvalidServer, rawURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return Server{}, fmt.Errorf("%w: query and fragment are not allowed in %q", ErrInvalidServer, rawURL)
	}

	return Server{endpoint: rawURL}, nil
}

// Endpoint returns the base address as given to NewServer.
func (s Server) Endpoint() string {
	return s.endpoint
}

// String implements fmt.Stringer
func (s Server) String() string {
	return s.endpoint
}

// Repository names a repository on a Server
type Repository struct {
	Server Server
	Owner  string
	Name   string
}

// ParseRepository parses "owner/name" into a Repository on server.
func ParseRepository(server Server, fullName string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(fullName), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("%w: %q (want owner/name)", ErrInvalidRepository, fullName)
	}

	return Repository{Server: server, Owner: owner, Name: name}, nil
}

// FullName returns "owner/name".
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}
