package github

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// fetchOne runs the request pipeline for endpoint and decodes a T.
//
// The stages run in order and stop at the first failure: transport, 404
// check, JSON parse, then a status-dependent typed decode. Exactly one of
// the resource or an *Error is returned.
func fetchOne[T any, PT Decodable[T]](ctx context.Context, c *Client, endpoint Endpoint) (*T, *Envelope, error) {
	req, err := newRequest(ctx, c.server, endpoint, c.credentials, c.userAgent)
	if err != nil {
		return nil, nil, networkError(err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Bool("authenticated", c.credentials != nil).
		Msg("Making GitHub API request")

	statusCode, header, body, err := c.roundTrip(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	envelope := NewEnvelope(header)

	c.logger.Debug().
		Int("status", statusCode).
		Int("bytes", len(body)).
		Str("request_id", envelope.RequestID()).
		Msg("Received GitHub API response")

	// A 404 body is never inspected.
	if statusCode == http.StatusNotFound {
		return nil, nil, &Error{Kind: KindDoesNotExist}
	}

	var document json.RawMessage
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, nil, deserializationError(err)
	}

	if statusCode >= 400 && statusCode < 600 {
		payload, err := decode[GitHubError](document)
		if err != nil {
			return nil, nil, decodingError(err)
		}
		return nil, nil, apiError(statusCode, envelope, payload)
	}

	resource, err := decode[T, PT](document)
	if err != nil {
		return nil, nil, decodingError(err)
	}

	return resource, envelope, nil
}

// errNoResponse is the cause when a Doer returns neither a response nor an error
var errNoResponse = errors.New("transport returned no response")

// roundTrip sends req and reads the whole body. A failure after the caller
// canceled ctx is reported as KindCanceled, any other as KindNetwork.
func (c *Client) roundTrip(ctx context.Context, req *http.Request) (int, http.Header, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, transportError(ctx, err)
	}
	if resp == nil {
		return 0, nil, nil, networkError(errNoResponse)
	}
	if resp.Body == nil {
		return resp.StatusCode, resp.Header, nil, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, transportError(ctx, err)
	}

	return resp.StatusCode, resp.Header, body, nil
}

// transportError keeps an expired deadline as a network timeout
func transportError(ctx context.Context, err error) *Error {
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
		return canceledError(ctxErr)
	}
	return networkError(err)
}

// decode unmarshals document into a new T and validates it.
func decode[T any, PT Decodable[T]](document json.RawMessage) (*T, error) {
	value := new(T)
	if err := json.Unmarshal(document, value); err != nil {
		return nil, err
	}
	if err := PT(value).Validate(); err != nil {
		return nil, err
	}
	return value, nil
}
