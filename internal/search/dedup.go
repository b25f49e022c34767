package search

import "github.com/eneda8/nearby/pkg/places"

// Dedupe merges ordered result batches into a single list unique by place ID.
// The first occurrence of an ID wins, so batch order and in-batch order both
// carry through. Places without an ID cannot be deduplicated and are dropped.
func Dedupe(batches [][]places.Place) []places.Place {
	seen := make(map[string]struct{})
	var out []places.Place
	for _, batch := range batches {
		for _, p := range batch {
			if p.ID == "" {
				continue
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
