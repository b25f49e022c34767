package places

import "encoding/json"

// Place is a raw place record returned by the provider. Every field except ID
// is optional; rating and count are pointers so that "absent" and "zero" stay
// distinguishable downstream.
type Place struct {
	ID                  string        `json:"id"`
	DisplayName         DisplayName   `json:"displayName"`
	FormattedAddress    string        `json:"formattedAddress,omitempty"`
	Location            *Location     `json:"location,omitempty"`
	PrimaryType         string        `json:"primaryType,omitempty"`
	Types               []string      `json:"types,omitempty"`
	GoogleMapsURI       string        `json:"googleMapsUri,omitempty"`
	WebsiteURI          string        `json:"websiteUri,omitempty"`
	Rating              *float64      `json:"rating,omitempty"`
	UserRatingCount     *int          `json:"userRatingCount,omitempty"`
	BusinessStatus      string        `json:"businessStatus,omitempty"`
	CurrentOpeningHours *OpeningHours `json:"currentOpeningHours,omitempty"`
}

// Name returns the display name text, tolerating a missing display name.
func (p Place) Name() string {
	return p.DisplayName.Text
}

// DisplayName decodes both the structured {text, languageCode} shape and the
// legacy plain-string shape the provider has returned historically.
type DisplayName struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

func (d *DisplayName) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &d.Text)
	}
	type alias DisplayName
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = DisplayName(a)
	return nil
}

// Location decodes the provider's coordinate variants: flat latitude/longitude,
// a latLng wrapper, or short lat/lng keys. Resolution of which pair wins is the
// geofilter's job; this type only captures what was present.
type Location struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	LatLng    *LatLng  `json:"latLng,omitempty"`
}

// LatLng is the nested coordinate pair used by the wrapped location shape.
type LatLng struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// OpeningHours carries the provider's current opening-hours structure.
type OpeningHours struct {
	OpenNow             *bool    `json:"openNow,omitempty"`
	WeekdayDescriptions []string `json:"weekdayDescriptions,omitempty"`
}

// Business status values returned by the provider.
const (
	StatusOperational       = "OPERATIONAL"
	StatusClosedTemporarily = "CLOSED_TEMPORARILY"
	StatusClosedPermanently = "CLOSED_PERMANENTLY"
)

// NewLocation builds a flat-shape location, mainly for tests and fixtures.
func NewLocation(lat, lng float64) *Location {
	return &Location{Latitude: &lat, Longitude: &lng}
}
