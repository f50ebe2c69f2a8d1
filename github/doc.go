// Package github provides a typed client for fetching GitHub releases by tag.
//
// # Architecture
//
// A request passes through a fixed pipeline:
//
//   - Endpoint: a comparable value naming the API operation (ReleaseByTagName)
//   - Request builder: base URL + endpoint path, Accept, User-Agent and Authorization headers
//   - Transport: any Doer, *http.Client by default
//   - Envelope: the response headers, kept separate from the payload
//   - Decode: 404 short-circuits, the body is parsed as JSON, then decoded as
//     a GitHubError for 4xx/5xx or as the requested resource otherwise
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client := github.NewTokenClient(github.DotComServer, token, logger,
//		github.WithUserAgent("relfetch/1.0"),
//	)
//
//	repo := github.Repository{Server: github.DotComServer, Owner: "golang", Name: "go"}
//	release, envelope, err := client.ReleaseForTag(ctx, "go1.22.0", repo)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Error Handling
//
// Every failure is a *Error with exactly one Kind:
//
//   - KindNetwork: the request could not be sent, timed out (including an
//     expired context deadline) or the body could not be read
//   - KindCanceled: the context was canceled before the response arrived
//   - KindJSONDeserialization: the body is not JSON
//   - KindJSONDecoding: the JSON does not match the expected schema
//   - KindAPI: GitHub returned an error payload with a 4xx/5xx status
//   - KindDoesNotExist: GitHub returned 404
//
// Kinds can be matched with errors.Is against the Err* sentinels:
//
//	if errors.Is(err, github.ErrDoesNotExist) {
//		// no such tag, or the tag has no release
//	}
//
// Any other *Error target matches only an Equal error, so an API error with
// status 500 is not errors.Is an API error with status 404. Error.Key gives a
// comparable identity for deduplication.
//
// A 404 for a release-by-tag request is ambiguous: GitHub sends it both for a
// missing tag and for a tag without a release. The client does not try to
// tell them apart.
package github
