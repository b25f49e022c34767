package filter

import (
	"math"
	"sort"

	"github.com/eneda8/nearby/internal/geo"
	"github.com/eneda8/nearby/pkg/places"
)

// Bar tier buckets: pure bars sort before bar-restaurants, which sort before
// everything else carrying "restaurant" in its type list.
const (
	tierPureBar       = 0
	tierBarRestaurant = 1
	tierRestaurant    = 2
)

func hasType(p places.Place, t string) bool {
	for _, pt := range p.Types {
		if pt == t {
			return true
		}
	}
	return false
}

func (e *Engine) barTier(p places.Place) int {
	primaryIsBar := e.rules.BarFamily.Has(primaryType(p))
	secondaryIsBar := e.rules.BarFamily.HasAny(p.Types)
	isRestaurant := hasType(p, "restaurant")

	switch {
	case primaryIsBar && !isRestaurant:
		return tierPureBar
	case primaryIsBar && isRestaurant:
		return tierBarRestaurant
	case secondaryIsBar && !isRestaurant:
		return tierBarRestaurant
	case isRestaurant:
		return tierRestaurant
	default:
		return tierBarRestaurant
	}
}

// Bar is two-stage: drop venue results (stadiums, arenas) unless the primary
// type is itself bar-family, then order by tier ascending and distance within
// tier. Places with unparseable coordinates sort last.
func (e *Engine) Bar(origin geo.Point, in []places.Place) []places.Place {
	out := keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		if e.rules.VenuePrimary.Has(primaryType(p)) && !e.rules.BarFamily.Has(primaryType(p)) {
			return false
		}
		return true
	})

	dist := func(p places.Place) float64 {
		d, ok := geo.Distance(origin, p.Location)
		if !ok {
			return math.MaxFloat64
		}
		return d
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := e.barTier(out[i]), e.barTier(out[j])
		if ti != tj {
			return ti < tj
		}
		return dist(out[i]) < dist(out[j])
	})
	return out
}
