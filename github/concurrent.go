package github

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
)

// TagResult is the outcome of fetching one tag in ReleasesForTags
type TagResult struct {
	Tag      string
	Release  *Release
	Envelope *Envelope
	Err      error
}

// ReleasesForTags fetches the release of every tag concurrently.
// Each tag gets an independent result; one failure does not stop the
// others. Results are in the same order as tags.
func (c *Client) ReleasesForTags(ctx context.Context, repository Repository, tags []string) []TagResult {
	c.mustOwn(repository)

	results := make([]TagResult, len(tags))
	if len(tags) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, tag := range tags {
		g.Go(func() error {
			release, envelope, err := c.ReleaseForTag(ctx, tag, repository)
			results[i] = TagResult{
				Tag:      tag,
				Release:  release,
				Envelope: envelope,
				Err:      err,
			}
			if err != nil {
				c.logger.Debug().Err(err).Str("tag", tag).Msg("Failed to fetch release for tag")
			}
			return nil
		})
	}

	_ = g.Wait()

	return results
}

// SortByVersion orders results newest version first. Releases whose tag is
// not a semantic version follow in their original order, failures come last.
func SortByVersion(results []TagResult) {
	rank := func(r TagResult) int {
		switch {
		case r.Err != nil || r.Release == nil:
			return 2
		default:
			if _, err := r.Release.Version(); err != nil {
				return 1
			}
			return 0
		}
	}

	slices.SortStableFunc(results, func(a, b TagResult) int {
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra - rb
		}
		if ra != 0 {
			return 0
		}
		va, _ := a.Release.Version()
		vb, _ := b.Release.Version()
		return vb.Compare(va)
	})
}
