package github

import (
	"net/http"
	"strconv"
	"time"
)

// Envelope holds the response metadata of a completed exchange, separate from
// its payload. Header lookups are case-insensitive.
type Envelope struct {
	header http.Header
}

// NewEnvelope copies header so later changes to it are not observed.
func NewEnvelope(header http.Header) *Envelope {
	if header == nil {
		header = http.Header{}
	}
	return &Envelope{header: header.Clone()}
}

// Get returns the first value for name, or "" if absent.
func (e *Envelope) Get(name string) string {
	return e.header.Get(name)
}

// Values returns all values for name.
func (e *Envelope) Values(name string) []string {
	return append([]string(nil), e.header.Values(name)...)
}

// Header returns a copy of all header fields.
func (e *Envelope) Header() http.Header {
	return e.header.Clone()
}

// RequestID returns the X-GitHub-Request-Id header.
func (e *Envelope) RequestID() string {
	return e.header.Get("X-GitHub-Request-Id")
}

// Rate is the rate limit state reported by the X-RateLimit-* headers.
type Rate struct {
	Limit     int
	Remaining int
	Used      int
	Reset     time.Time
	Resource  string
}

// RateLimit reads the X-RateLimit-* headers. ok is false when the server
// did not send a limit.
func (e *Envelope) RateLimit() (rate Rate, ok bool) {
	limit, err := strconv.Atoi(e.header.Get("X-RateLimit-Limit"))
	if err != nil {
		return Rate{}, false
	}

	rate.Limit = limit
	rate.Remaining, _ = strconv.Atoi(e.header.Get("X-RateLimit-Remaining"))
	rate.Used, _ = strconv.Atoi(e.header.Get("X-RateLimit-Used"))
	rate.Resource = e.header.Get("X-RateLimit-Resource")
	if reset, err := strconv.ParseInt(e.header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		rate.Reset = time.Unix(reset, 0)
	}

	return rate, true
}
