// Package search orchestrates a nearby-place lookup: resolve the requested
// type tokens to a category, run that category's retrieval, deduplicate,
// apply the radius cut and the category's filter policy, and shape the
// survivors into the response.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eneda8/nearby/internal/fetch"
	"github.com/eneda8/nearby/internal/filter"
	"github.com/eneda8/nearby/internal/geo"
	"github.com/eneda8/nearby/pkg/places"
)

// DefaultMaxResults caps the shaped response.
const DefaultMaxResults = 20

// Request is the API search request. Coordinate fields are pointers so a
// missing field is distinguishable from zero.
type Request struct {
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	RadiusMeters  *float64 `json:"radiusMeters"`
	IncludedTypes []string `json:"includedTypes"`
}

// ValidationError marks a request the caller can fix.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Msg)
}

// Validate checks required fields and value ranges.
func (r Request) Validate() error {
	if r.Lat == nil {
		return &ValidationError{Field: "lat", Msg: "is required"}
	}
	if *r.Lat < -90 || *r.Lat > 90 {
		return &ValidationError{Field: "lat", Msg: "must be between -90 and 90"}
	}
	if r.Lng == nil {
		return &ValidationError{Field: "lng", Msg: "is required"}
	}
	if *r.Lng < -180 || *r.Lng > 180 {
		return &ValidationError{Field: "lng", Msg: "must be between -180 and 180"}
	}
	if r.RadiusMeters == nil {
		return &ValidationError{Field: "radiusMeters", Msg: "is required"}
	}
	if *r.RadiusMeters <= 0 {
		return &ValidationError{Field: "radiusMeters", Msg: "must be positive"}
	}
	if len(r.IncludedTypes) == 0 {
		return &ValidationError{Field: "includedTypes", Msg: "must be a non-empty list"}
	}
	for _, t := range r.IncludedTypes {
		if t == "" {
			return &ValidationError{Field: "includedTypes", Msg: "must not contain empty tokens"}
		}
	}
	return nil
}

// Response is the API search response.
type Response struct {
	Origin        geo.Point      `json:"origin"`
	RadiusMeters  float64        `json:"radiusMeters"`
	Mode          string         `json:"mode"`
	Category      Category       `json:"category"`
	IncludedTypes []string       `json:"debugIncludedTypes"`
	Places        []ResponseItem `json:"places"`
}

type fetchFunc func(ctx context.Context, q fetch.Query) ([][]places.Place, error)

// strategy pairs a category's retrieval with its filter policy.
type strategy struct {
	fetch         fetchFunc
	filter        filter.Func
	preserveOrder bool
}

// Service runs the search pipeline.
type Service struct {
	fetcher    *fetch.Fetcher
	maxResults int
	strategies map[Category]strategy
}

// NewService wires the pipeline. maxResults < 1 falls back to the default cap.
func NewService(f *fetch.Fetcher, e *filter.Engine, maxResults int) *Service {
	if maxResults < 1 {
		maxResults = DefaultMaxResults
	}
	s := &Service{fetcher: f, maxResults: maxResults}
	s.strategies = map[Category]strategy{
		CategoryPrintShip:      {fetch: f.PrintShip, filter: e.PrintShip},
		CategoryGroceries:      {fetch: f.Groceries, filter: e.Groceries},
		CategorySpecialty:      {fetch: f.SpecialtyMarkets, filter: e.SpecialtyMarkets},
		CategoryPharmacy:       {fetch: f.Pharmacy, filter: e.Pharmacy},
		CategoryGasEV:          {fetch: f.GasEV, filter: e.GasEV},
		CategoryBankATM:        {fetch: f.BankATM, filter: e.BankATM},
		CategoryClothing:       {fetch: f.Clothing, filter: e.Clothing},
		CategoryJewelry:        {fetch: f.Jewelry, filter: e.Jewelry},
		CategoryBar:            {fetch: f.Bar, filter: e.Bar, preserveOrder: true},
		CategoryLiquor:         {fetch: f.Liquor, filter: e.Liquor},
		CategoryWarehouseClubs: {fetch: f.WarehouseClubs, filter: e.WarehouseClubs},
		CategoryAttractions:    {fetch: f.Attractions, filter: e.Attractions},
		CategoryArtsCulture:    {fetch: f.ArtsCulture, filter: e.ArtsAndCulture},
		CategorySports:         {fetch: f.Sports, filter: e.Sports},
		CategoryDiscountThrift: {fetch: f.DiscountThrift, filter: e.DiscountThrift},
		CategoryDefault:        {fetch: f.Default, filter: e.Default},
	}
	return s
}

// Search resolves, fetches, deduplicates, geofilters, filters and shapes.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	origin := geo.Point{Lat: *req.Lat, Lng: *req.Lng}
	radius := *req.RadiusMeters
	category := Resolve(req.IncludedTypes)

	q := fetch.Query{
		Lat:           origin.Lat,
		Lng:           origin.Lng,
		RadiusMeters:  radius,
		IncludedTypes: req.IncludedTypes,
	}

	var (
		batches [][]places.Place
		err     error
	)
	st, ok := s.strategies[category]
	switch {
	case category == CategoryPrintShipHybrid:
		// The hybrid category needs the non-shipping tokens, so it cannot
		// live in the uniform table.
		batches, err = s.fetcher.PrintShipHybrid(ctx, q, WithoutPostOffice(req.IncludedTypes))
		st = s.strategies[CategoryPrintShip]
	case ok:
		batches, err = st.fetch(ctx, q)
	default:
		batches, err = s.fetcher.Default(ctx, q)
		st = s.strategies[CategoryDefault]
	}
	if err != nil {
		return nil, err
	}

	merged := Dedupe(batches)
	within := withinRadius(origin, radius, merged)
	filtered := st.filter(origin, within)
	items := Shape(origin, filtered, s.maxResults, st.preserveOrder)

	zap.L().Debug("search pipeline",
		zap.String("category", string(category)),
		zap.Int("fetched", len(merged)),
		zap.Int("withinRadius", len(within)),
		zap.Int("filtered", len(filtered)),
		zap.Int("returned", len(items)),
	)

	return &Response{
		Origin:        origin,
		RadiusMeters:  radius,
		Mode:          Mode(req.IncludedTypes),
		Category:      category,
		IncludedTypes: req.IncludedTypes,
		Places:        items,
	}, nil
}

// withinRadius drops places farther than radiusMeters from origin, and places
// whose coordinates do not parse.
func withinRadius(origin geo.Point, radiusMeters float64, in []places.Place) []places.Place {
	out := make([]places.Place, 0, len(in))
	for _, p := range in {
		if geo.WithinRadius(origin, p.Location, radiusMeters) {
			out = append(out, p)
		}
	}
	return out
}
