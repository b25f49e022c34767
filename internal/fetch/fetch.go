// Package fetch implements the per-category retrieval strategies against the
// upstream place-search provider. Each fetcher returns ordered batches —
// proximity results first, then keyword batches in issued order — for the
// deduplicator to merge. Keyword fan-out runs concurrently under a bounded
// errgroup; an individual keyword failure degrades to an empty contribution,
// while a failed primary proximity call propagates.
package fetch

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eneda8/nearby/internal/rules"
	"github.com/eneda8/nearby/pkg/places"
)

const defaultConcurrency = 8

// Query carries the request-time selection every fetcher needs.
type Query struct {
	Lat           float64
	Lng           float64
	RadiusMeters  float64
	IncludedTypes []string
}

// Fetcher issues retrieval calls for all categories.
type Fetcher struct {
	client      places.Client
	rules       *rules.Rules
	concurrency int
}

// New creates a fetcher. concurrency bounds the keyword fan-out; values < 1
// fall back to the default.
func New(client places.Client, r *rules.Rules, concurrency int) *Fetcher {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Fetcher{client: client, rules: r, concurrency: concurrency}
}

// nearby runs the primary proximity search. Its failure is a request-level
// error.
func (f *Fetcher) nearby(ctx context.Context, q Query, includedTypes []string) ([]places.Place, error) {
	out, err := f.client.NearbySearch(ctx, places.NearbyRequest{
		IncludedTypes: includedTypes,
		MaxResults:    places.MaxNearbyResults,
		Lat:           q.Lat,
		Lng:           q.Lng,
		RadiusMeters:  q.RadiusMeters,
	})
	if err != nil {
		return nil, eris.Wrap(err, "fetch: proximity search")
	}
	return out, nil
}

// fanOut issues one keyword search per query concurrently. Results come back
// as one batch per query in issued order regardless of completion order; a
// failed query logs a warning and contributes an empty batch.
func (f *Fetcher) fanOut(ctx context.Context, q Query, queries []string, maxResults int) [][]places.Place {
	batches := make([][]places.Place, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			out, err := f.client.TextSearch(gctx, places.TextRequest{
				Query:        query,
				MaxResults:   maxResults,
				Lat:          q.Lat,
				Lng:          q.Lng,
				RadiusMeters: q.RadiusMeters,
			})
			if err != nil {
				zap.L().Warn("keyword search failed",
					zap.String("query", query),
					zap.Error(err),
				)
				return nil
			}
			batches[i] = out
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; Wait is a join

	return batches
}

// nearLocation suffixes a brand query with the origin coordinate, matching
// how the brand searches are phrased upstream.
func nearLocation(brand string, q Query) string {
	return fmt.Sprintf("%s near %v,%v", brand, q.Lat, q.Lng)
}

func brandQueries(brands []string, q Query) []string {
	out := make([]string, len(brands))
	for i, b := range brands {
		out[i] = nearLocation(b, q)
	}
	return out
}
