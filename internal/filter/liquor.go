package filter

import (
	"regexp"

	"github.com/eneda8/nearby/internal/geo"
	"github.com/eneda8/nearby/pkg/places"
)

// stateCode captures a two-letter state code from the ", XX 02101" tail of a
// formatted US address.
var stateCode = regexp.MustCompile(`,\s*([A-Z]{2})\s+\d{5}(?:-\d{4})?`)

// addressState extracts the state code from a formatted address, or "" when
// none parses.
func addressState(addr string) string {
	matches := stateCode.FindAllStringSubmatch(addr, -1)
	if len(matches) == 0 {
		return ""
	}
	// Take the last match so trailing country suffixes don't matter.
	return matches[len(matches)-1][1]
}

// Liquor admits places with a liquor-indicating name or a liquor_store
// primary type, rejects licensing consultancies and professional services,
// and drops convenience-store lookalikes in states where convenience stores
// cannot sell liquor. An unparseable state code never excludes.
func (e *Engine) Liquor(_ geo.Point, in []places.Place) []places.Place {
	return keep(in, func(p places.Place) bool {
		if !passesQualityGate(p) {
			return false
		}
		name := p.Name()
		pt := primaryType(p)

		if !e.rules.LiquorNameCues.Match(name) && pt != "liquor_store" {
			return false
		}
		if e.rules.Professional.Has(pt) {
			return false
		}
		if e.rules.LiquorConsulting.Match(name) {
			return false
		}

		looksConvenience := e.rules.ConvenienceSig.Match(name) ||
			e.rules.ConvenienceTypes.Has(pt) ||
			e.rules.ConvenienceTypes.HasAny(p.Types)
		if looksConvenience {
			if st := addressState(p.FormattedAddress); st != "" && e.rules.RestrictedStates[st] {
				return false
			}
		}
		return true
	})
}
