// Package filter implements the per-category allow/deny policies and the
// universal quality gate. Every filter is a pure function from a candidate
// list to a (possibly reordered) survivor list; none may fail on records with
// missing optional fields.
package filter

import (
	"regexp"
	"strings"

	"github.com/eneda8/nearby/internal/geo"
	"github.com/eneda8/nearby/internal/rules"
	"github.com/eneda8/nearby/pkg/places"
)

// Engine binds the compiled rule tables to the category filters.
type Engine struct {
	rules *rules.Rules
}

// New creates a filter engine over the given rule set.
func New(r *rules.Rules) *Engine {
	return &Engine{rules: r}
}

// Func is a category filter. Filters that rank use origin for distance
// tie-breaks; the rest ignore it.
type Func func(origin geo.Point, in []places.Place) []places.Place

func keep(in []places.Place, pred func(places.Place) bool) []places.Place {
	out := make([]places.Place, 0, len(in))
	for _, p := range in {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func primaryType(p places.Place) string {
	return strings.ToLower(p.PrimaryType)
}

// Groceries admits only true grocery stores and supermarkets, rejecting
// convenience stores and specialty/ethnic/artisan markets by name. The
// compound market/shop/store check is layered on top of the plain cue check
// exactly as the production rules have it.
func (e *Engine) Groceries(_ geo.Point, in []places.Place) []places.Place {
	return keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		if !e.rules.GroceriesPrimary.Has(primaryType(p)) {
			return false
		}
		name := p.Name()
		if e.rules.ConvenienceWords.Match(name) {
			return false
		}
		if e.rules.SpecialtyCues.Match(name) || e.rules.NonASCII.Match(name) {
			return false
		}
		if e.rules.GroceryGeneric.Match(name) &&
			(e.rules.SpecialtyCues.Match(name) || e.rules.NonASCII.Match(name)) {
			return false
		}
		return true
	})
}

// denyByName builds a filter that applies the quality gate and a single
// deny-name vocabulary; the shape shared by pharmacy, gas/EV, bank/ATM and
// print/ship.
func (e *Engine) denyByName(m rules.Matcher) Func {
	return func(_ geo.Point, in []places.Place) []places.Place {
		return keep(in, func(p places.Place) bool {
			return passesQualityGate(p) && !m.Match(p.Name())
		})
	}
}

// Pharmacy rejects restaurant/grocery/automotive vocabulary by name, and
// big-box stores unless the result is the in-house pharmacy counter.
func (e *Engine) Pharmacy(_ geo.Point, in []places.Place) []places.Place {
	return keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		name := p.Name()
		if e.rules.PharmacyDeny.Match(name) {
			return false
		}
		if e.rules.PharmacyBigbox.Match(name) && !strings.Contains(strings.ToLower(name), "pharmacy") {
			return false
		}
		return true
	})
}

// GasEV rejects restaurant/retail vocabulary by name.
func (e *Engine) GasEV(origin geo.Point, in []places.Place) []places.Place {
	return e.denyByName(e.rules.GasEVDeny)(origin, in)
}

// BankATM rejects a long vocabulary including competing fuel brands.
func (e *Engine) BankATM(origin geo.Point, in []places.Place) []places.Place {
	return e.denyByName(e.rules.BankATMDeny)(origin, in)
}

// PrintShip rejects access points, drop boxes and similar non-storefront
// results.
func (e *Engine) PrintShip(origin geo.Point, in []places.Place) []places.Place {
	return e.denyByName(e.rules.PrintShipDeny)(origin, in)
}

var corporateSuffix = regexp.MustCompile(`(?i)\b(llc|inc)\b`)

// Clothing rejects adjacent-retail vocabulary and tailor/alteration types,
// and drops "LLC/Inc" named entities unless they belong to a known apparel
// chain.
func (e *Engine) Clothing(_ geo.Point, in []places.Place) []places.Place {
	return keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		if e.rules.ClothingExcluded.Has(primaryType(p)) {
			return false
		}
		name := p.Name()
		if e.rules.ClothingDeny.Match(name) {
			return false
		}
		if corporateSuffix.MatchString(name) && !e.rules.ClothingChains.Match(name) {
			return false
		}
		return true
	})
}

// Jewelry requires a jewelry primary type and rejects department/discount/
// grocery adjacents plus off-price retailers by name.
func (e *Engine) Jewelry(_ geo.Point, in []places.Place) []places.Place {
	return keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		pt := primaryType(p)
		if !strings.Contains(pt, "jewelry") {
			return false
		}
		if e.rules.JewelryExcluded.Has(pt) {
			return false
		}
		return !e.rules.JewelryDeny.Match(p.Name())
	})
}

// SpecialtyMarkets drops food-service and convenience primary types plus the
// big chains; survivors already carry a specialty signal from the keyword
// fan-out, so no positive check is applied here.
func (e *Engine) SpecialtyMarkets(_ geo.Point, in []places.Place) []places.Place {
	return keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		if e.rules.SpecialtyExcluded.Has(primaryType(p)) {
			return false
		}
		return !e.rules.ChainDeny.Match(p.Name())
	})
}

// WarehouseClubs admits only results confirmed as an actual club storefront:
// brand-name match, not a gas station, not an in-store department.
func (e *Engine) WarehouseClubs(_ geo.Point, in []places.Place) []places.Place {
	return keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		if primaryType(p) == "gas_station" {
			return false
		}
		name := p.Name()
		if e.rules.WarehouseDepartment.Match(name) {
			return false
		}
		for _, club := range e.rules.WarehouseClubs {
			if club.Pattern.Match(name) {
				return true
			}
		}
		return false
	})
}

// DiscountThrift applies the quality gate only; the brand fan-out already
// scopes the candidates.
func (e *Engine) DiscountThrift(_ geo.Point, in []places.Place) []places.Place {
	return keep(in, passesQualityGate)
}

// Default passes candidates through untouched; the generic category has no
// policy beyond the radius test.
func (e *Engine) Default(_ geo.Point, in []places.Place) []places.Place {
	return in
}
