package search

import (
	"math"
	"sort"

	"github.com/eneda8/nearby/internal/geo"
	"github.com/eneda8/nearby/pkg/places"
)

// ResponseItem is one place in the API response.
type ResponseItem struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Address              string     `json:"address"`
	PrimaryType          string     `json:"primaryType,omitempty"`
	Types                []string   `json:"types"`
	GoogleMapsURI        string     `json:"googleMapsUri,omitempty"`
	WebsiteURI           string     `json:"websiteUri,omitempty"`
	Location             *geo.Point `json:"location,omitempty"`
	DirectDistanceMeters *float64   `json:"directDistanceMeters,omitempty"`
	Rating               *float64   `json:"rating,omitempty"`
	UserRatingCount      *int       `json:"userRatingCount,omitempty"`
	OpenNow              *bool      `json:"openNow,omitempty"`
	WeekdayDescriptions  []string   `json:"weekdayDescriptions,omitempty"`
}

const unknownName = "Unknown"

// Shape converts filtered places into response items capped at maxResults.
// Unless preserveOrder is set, items are stably sorted by straight-line
// distance ascending; places without a parseable location sort last.
func Shape(origin geo.Point, in []places.Place, maxResults int, preserveOrder bool) []ResponseItem {
	items := make([]ResponseItem, 0, len(in))
	for _, p := range in {
		items = append(items, toItem(origin, p))
	}

	if !preserveOrder {
		sort.SliceStable(items, func(i, j int) bool {
			return sortDistance(items[i]) < sortDistance(items[j])
		})
	}

	if maxResults > 0 && len(items) > maxResults {
		items = items[:maxResults]
	}
	return items
}

func toItem(origin geo.Point, p places.Place) ResponseItem {
	item := ResponseItem{
		ID:            p.ID,
		Name:          p.Name(),
		Address:       p.FormattedAddress,
		PrimaryType:   p.PrimaryType,
		Types:         p.Types,
		GoogleMapsURI: p.GoogleMapsURI,
		WebsiteURI:    p.WebsiteURI,
		Rating:        p.Rating,
	}
	if item.Name == "" {
		item.Name = unknownName
	}
	if item.Types == nil {
		item.Types = []string{}
	}
	if pt, ok := geo.Position(p.Location); ok {
		item.Location = &pt
		d := geo.Haversine(origin, pt)
		item.DirectDistanceMeters = &d
	}
	if p.UserRatingCount != nil {
		item.UserRatingCount = p.UserRatingCount
	}
	if p.CurrentOpeningHours != nil {
		item.OpenNow = p.CurrentOpeningHours.OpenNow
		item.WeekdayDescriptions = p.CurrentOpeningHours.WeekdayDescriptions
	}
	return item
}

func sortDistance(item ResponseItem) float64 {
	if item.DirectDistanceMeters == nil {
		return math.MaxFloat64
	}
	return *item.DirectDistanceMeters
}
