package filter

import (
	"sort"

	"github.com/eneda8/nearby/internal/geo"
	"github.com/eneda8/nearby/pkg/places"
)

// Attractions admits a small allow-list of sightseeing primary types,
// excludes parks/playgrounds/amusement adjacents and sports fields by name,
// and ranks tourist attractions before museums before everything else
// (stable otherwise).
func (e *Engine) Attractions(_ geo.Point, in []places.Place) []places.Place {
	out := keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		pt := primaryType(p)
		if !e.rules.AttractionsAllow.Has(pt) {
			return false
		}
		if e.rules.AttractionsDeny.Has(pt) || e.rules.AttractionsDeny.HasAny(p.Types) {
			return false
		}
		return !e.rules.AttractionFieldDeny.Match(p.Name())
	})

	rank := func(p places.Place) int {
		switch primaryType(p) {
		case "tourist_attraction":
			return 0
		case "museum":
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}

// ArtsAndCulture is allow-list only, ranking museums and galleries before
// theaters and halls.
func (e *Engine) ArtsAndCulture(_ geo.Point, in []places.Place) []places.Place {
	out := keep(in, func(p places.Place) bool {
		return passesQualityGate(p) && e.rules.ArtsAllow.Has(primaryType(p))
	})

	rank := func(p places.Place) int {
		if e.rules.ArtsRankFirst.Has(primaryType(p)) {
			return 0
		}
		return 1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}

// Sports admits fitness and sports primary types, excluding restaurant/bar
// types and entertainment-restaurant chains masquerading as sports venues.
func (e *Engine) Sports(_ geo.Point, in []places.Place) []places.Place {
	return keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		pt := primaryType(p)
		if !e.rules.SportsAllow.Has(pt) {
			return false
		}
		if e.rules.SportsDeny.Has(pt) {
			return false
		}
		return !e.rules.SportsChainDeny.Match(p.Name())
	})
}
