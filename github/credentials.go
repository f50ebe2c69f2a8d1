package github

import (
	"encoding/base64"
)

// Credentials renders an authentication mode into an Authorization header value.
// A nil Credentials means anonymous access and no header is sent.
type Credentials interface {
	AuthorizationHeaderValue() string

	credentials()
}

// TokenCredentials authenticates with a personal access or OAuth token.
type TokenCredentials struct {
	Token string
}

// AuthorizationHeaderValue returns "token <t>".
func (c TokenCredentials) AuthorizationHeaderValue() string {
	return "token " + c.Token
}

func (TokenCredentials) credentials() {}

// String keeps the token out of logs and %v output
func (c TokenCredentials) String() string {
	return "token(REDACTED)"
}

// GoString keeps the token out of %#v output
func (c TokenCredentials) GoString() string {
	return "github.TokenCredentials{Token:REDACTED}"
}

// BasicCredentials authenticates with a username and password.
type BasicCredentials struct {
	Username string
	Password string
}

// AuthorizationHeaderValue returns "Basic " followed by base64(username:password).
// Go strings are UTF-8 byte sequences, so any text encodes.
func (c BasicCredentials) AuthorizationHeaderValue() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password))
}

func (BasicCredentials) credentials() {}

// String keeps the password out of logs and %v output
func (c BasicCredentials) String() string {
	return "basic(" + c.Username + ", REDACTED)"
}

// GoString keeps the password out of %#v output
func (c BasicCredentials) GoString() string {
	return "github.BasicCredentials{Username:" + c.Username + ", Password:REDACTED}"
}
