package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseFor(tag string, id int) string {
	return fmt.Sprintf(`{"id": %d, "tag_name": %q, "url": "https://api.github.com/releases/%d", "name": %q}`, id, tag, id, tag)
}

func TestClient_ReleasesForTags(t *testing.T) {
	var inFlight, peak atomic.Int32

	_, repo := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)

		tag := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		switch tag {
		case "missing":
			w.WriteHeader(http.StatusNotFound)
		case "broken":
			_, _ = w.Write([]byte("not json"))
		default:
			_, _ = w.Write([]byte(releaseFor(tag, len(tag))))
		}
	})

	client := NewClient(repo.Server, zerolog.Nop(), WithConcurrency(2))
	tags := []string{"v1.0.0", "missing", "v2.0.0", "broken", "v1.10.0", "nightly"}

	results := client.ReleasesForTags(context.Background(), repo, tags)
	require.Len(t, results, len(tags))

	for i, tag := range tags {
		assert.Equal(t, tag, results[i].Tag)
	}

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "v1.0.0", results[0].Release.TagName)
	assert.NotNil(t, results[0].Envelope)

	assert.True(t, IsDoesNotExist(results[1].Err))
	assert.Nil(t, results[1].Release)

	assert.ErrorIs(t, results[3].Err, ErrJSONDeserialization)
	assert.Nil(t, results[3].Release)

	assert.NoError(t, results[5].Err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestClient_ReleasesForTags_Empty(t *testing.T) {
	client := NewClient(DotComServer, zerolog.Nop(), WithHTTPClient(&stubDoer{}))
	results := client.ReleasesForTags(context.Background(), Repository{Server: DotComServer, Owner: "o", Name: "r"}, nil)

	assert.Empty(t, results)
}

func TestClient_ReleasesForTags_Canceled(t *testing.T) {
	_, repo := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(releaseFor("v1.0.0", 1)))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(repo.Server, zerolog.Nop())
	results := client.ReleasesForTags(ctx, repo, []string{"v1", "v2", "v3"})

	require.Len(t, results, 3)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, ErrCanceled, r.Tag)
	}
}

func TestSortByVersion(t *testing.T) {
	release := func(tag string) *Release {
		return &Release{ID: 1, TagName: tag, URL: "u"}
	}
	failed := errors.New("failed")

	results := []TagResult{
		{Tag: "nightly", Release: release("nightly")},
		{Tag: "v1.0.0", Release: release("v1.0.0")},
		{Tag: "gone", Err: failed},
		{Tag: "v1.10.0", Release: release("v1.10.0")},
		{Tag: "latest", Release: release("latest")},
		{Tag: "v1.2.0-rc.1", Release: release("v1.2.0-rc.1")},
		{Tag: "v1.2.0", Release: release("v1.2.0")},
		{Tag: "also-gone", Err: failed},
	}

	SortByVersion(results)

	var order []string
	for _, r := range results {
		order = append(order, r.Tag)
	}

	assert.Equal(t, []string{
		"v1.10.0",
		"v1.2.0",
		"v1.2.0-rc.1",
		"v1.0.0",
		"nightly",
		"latest",
		"gone",
		"also-gone",
	}, order)
}
