package github

import (
	"net/http"
	"sync/atomic"
	"time"
)

const (
	// DefaultTimeout bounds a whole exchange when no HTTP client is supplied
	DefaultTimeout = 30 * time.Second
	// DefaultConcurrency limits ReleasesForTags fan-out
	DefaultConcurrency = 5
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	httpClient  Doer
	timeout     time.Duration
	userAgent   string
	concurrency int
}

// WithHTTPClient replaces the transport. WithTimeout is ignored when this is set.
func WithHTTPClient(client Doer) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithConcurrency sets how many tags ReleasesForTags fetches at once.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

var defaultUserAgent atomic.Pointer[string]

// SetDefaultUserAgent sets the process-wide User-Agent used by clients
// created without WithUserAgent. It succeeds once; later calls return
// ErrUserAgentAlreadySet. Call it during start-up, before creating clients.
func SetDefaultUserAgent(userAgent string) error {
	if !defaultUserAgent.CompareAndSwap(nil, &userAgent) {
		return ErrUserAgentAlreadySet
	}
	return nil
}

// DefaultUserAgent returns the process-wide User-Agent, or "" if unset.
func DefaultUserAgent() string {
	if ua := defaultUserAgent.Load(); ua != nil {
		return *ua
	}
	return ""
}

func newClientOptions(opts []Option) clientOptions {
	o := clientOptions{
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}
	return o
}
