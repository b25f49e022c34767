package fetch

import (
	"context"

	"github.com/eneda8/nearby/pkg/places"
)

// Groceries is strict: one proximity search over the grocery primary types,
// no brand fan-out.
func (f *Fetcher) Groceries(ctx context.Context, q Query) ([][]places.Place, error) {
	batch, err := f.nearby(ctx, q, f.rules.GroceriesPrimary.Values())
	if err != nil {
		return nil, err
	}
	return [][]places.Place{batch}, nil
}

// typeAndBrands is the shared shape for type-only categories that also fan
// out to known brand names to compensate for incomplete type coverage.
func (f *Fetcher) typeAndBrands(ctx context.Context, q Query, includedTypes, brands []string) ([][]places.Place, error) {
	primary, err := f.nearby(ctx, q, includedTypes)
	if err != nil {
		return nil, err
	}
	batches := [][]places.Place{primary}
	if len(brands) > 0 {
		batches = append(batches, f.fanOut(ctx, q, brandQueries(brands, q), places.MaxTextResults)...)
	}
	return batches, nil
}

// Pharmacy covers both pharmacy and drugstore types plus the major chains.
func (f *Fetcher) Pharmacy(ctx context.Context, q Query) ([][]places.Place, error) {
	return f.typeAndBrands(ctx, q, []string{"pharmacy", "drugstore"}, f.rules.PharmacyBrands)
}

// GasEV covers gas stations and EV charging plus fuel/charging brands.
func (f *Fetcher) GasEV(ctx context.Context, q Query) ([][]places.Place, error) {
	return f.typeAndBrands(ctx, q, []string{"gas_station", "ev_charging_station"}, f.rules.GasBrands)
}

// BankATM covers banks and ATMs plus the major bank brands.
func (f *Fetcher) BankATM(ctx context.Context, q Query) ([][]places.Place, error) {
	return f.typeAndBrands(ctx, q, []string{"bank", "atm"}, f.rules.BankBrands)
}

// Clothing is a plain type search; the filter carries the policy.
func (f *Fetcher) Clothing(ctx context.Context, q Query) ([][]places.Place, error) {
	batch, err := f.nearby(ctx, q, []string{"clothing_store"})
	if err != nil {
		return nil, err
	}
	return [][]places.Place{batch}, nil
}

// Jewelry is a plain type search; the filter requires a jewelry primary type.
func (f *Fetcher) Jewelry(ctx context.Context, q Query) ([][]places.Place, error) {
	batch, err := f.nearby(ctx, q, []string{"jewelry_store"})
	if err != nil {
		return nil, err
	}
	return [][]places.Place{batch}, nil
}

// Liquor covers liquor stores plus the big-box beverage brands.
func (f *Fetcher) Liquor(ctx context.Context, q Query) ([][]places.Place, error) {
	return f.typeAndBrands(ctx, q, []string{"liquor_store"}, f.rules.LiquorBrands)
}

// Bar pairs the bar-family type search with one broad keyword search, since
// proximity search under-returns nightlife venues.
func (f *Fetcher) Bar(ctx context.Context, q Query) ([][]places.Place, error) {
	primary, err := f.nearby(ctx, q, f.rules.BarFamily.Values())
	if err != nil {
		return nil, err
	}
	batches := [][]places.Place{primary}
	batches = append(batches, f.fanOut(ctx, q, f.rules.BarQueries, places.MaxNearbyResults)...)
	return batches, nil
}

// SpecialtyMarkets runs the requested type search plus the cuisine/specialty
// keyword fan-out; the type taxonomy has no tokens for most ethnic grocers.
func (f *Fetcher) SpecialtyMarkets(ctx context.Context, q Query) ([][]places.Place, error) {
	primary, err := f.nearby(ctx, q, q.IncludedTypes)
	if err != nil {
		return nil, err
	}
	batches := [][]places.Place{primary}
	batches = append(batches, f.fanOut(ctx, q, brandQueries(f.rules.SpecialtyQuery, q), places.MaxTextResults)...)
	return batches, nil
}

// PrintShip covers post offices plus shipping and office-supply brands.
func (f *Fetcher) PrintShip(ctx context.Context, q Query) ([][]places.Place, error) {
	return f.typeAndBrands(ctx, q, []string{"post_office"}, f.rules.PackShipBrands)
}

// PrintShipHybrid merges the pack-and-ship retrieval with a generic
// proximity search over the remaining requested types.
func (f *Fetcher) PrintShipHybrid(ctx context.Context, q Query, otherTypes []string) ([][]places.Place, error) {
	batches, err := f.PrintShip(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(otherTypes) > 0 {
		other, err := f.nearby(ctx, q, otherTypes)
		if err != nil {
			return nil, err
		}
		batches = append(batches, other)
	}
	return batches, nil
}

// WarehouseClubs issues one keyword search per club brand and keeps only
// results whose name the brand's confirmation pattern accepts, rejecting
// false positives like a gas station near the brand name.
func (f *Fetcher) WarehouseClubs(ctx context.Context, q Query) ([][]places.Place, error) {
	queries := make([]string, len(f.rules.WarehouseClubs))
	for i, club := range f.rules.WarehouseClubs {
		queries[i] = club.Query
	}
	raw := f.fanOut(ctx, q, queries, places.MaxTextResults)

	batches := make([][]places.Place, len(raw))
	for i, batch := range raw {
		pattern := f.rules.WarehouseClubs[i].Pattern
		confirmed := make([]places.Place, 0, len(batch))
		for _, p := range batch {
			if pattern.Match(p.Name()) {
				confirmed = append(confirmed, p)
			}
		}
		batches[i] = confirmed
	}
	return batches, nil
}

// Attractions pairs the sightseeing type search with landmark keywords.
func (f *Fetcher) Attractions(ctx context.Context, q Query) ([][]places.Place, error) {
	primary, err := f.nearby(ctx, q, []string{"tourist_attraction", "museum", "historical_place"})
	if err != nil {
		return nil, err
	}
	batches := [][]places.Place{primary}
	batches = append(batches, f.fanOut(ctx, q, f.rules.AttractionQuery, places.MaxTextResults)...)
	return batches, nil
}

// ArtsCulture pairs the arts type search with venue keywords.
func (f *Fetcher) ArtsCulture(ctx context.Context, q Query) ([][]places.Place, error) {
	primary, err := f.nearby(ctx, q, []string{"art_gallery", "performing_arts_theater", "concert_hall", "cultural_center"})
	if err != nil {
		return nil, err
	}
	batches := [][]places.Place{primary}
	batches = append(batches, f.fanOut(ctx, q, f.rules.ArtsQuery, places.MaxTextResults)...)
	return batches, nil
}

// Sports is a plain type search over fitness and sports venues.
func (f *Fetcher) Sports(ctx context.Context, q Query) ([][]places.Place, error) {
	batch, err := f.nearby(ctx, q, []string{"gym", "fitness_center", "golf_course", "stadium", "sports_complex"})
	if err != nil {
		return nil, err
	}
	return [][]places.Place{batch}, nil
}

// DiscountThrift covers discount stores plus thrift brand keywords.
func (f *Fetcher) DiscountThrift(ctx context.Context, q Query) ([][]places.Place, error) {
	primary, err := f.nearby(ctx, q, []string{"discount_store"})
	if err != nil {
		return nil, err
	}
	batches := [][]places.Place{primary}
	batches = append(batches, f.fanOut(ctx, q, f.rules.DiscountQuery, places.MaxTextResults)...)
	return batches, nil
}

// Default is the generic proximity search over the raw requested types.
func (f *Fetcher) Default(ctx context.Context, q Query) ([][]places.Place, error) {
	batch, err := f.nearby(ctx, q, q.IncludedTypes)
	if err != nil {
		return nil, err
	}
	return [][]places.Place{batch}, nil
}
