package filter

import (
	"strings"

	"github.com/eneda8/nearby/pkg/places"
)

// Defaults applied when rating metadata is absent, so that places without
// metadata are not penalized by the low-review branch.
const (
	defaultRating      = 5.0
	defaultRatingCount = 100
)

// IsClosed reports whether the place's business status marks it temporarily
// or permanently closed. An absent status counts as open.
func IsClosed(p places.Place) bool {
	switch strings.ToUpper(p.BusinessStatus) {
	case places.StatusClosedTemporarily, places.StatusClosedPermanently:
		return true
	}
	return false
}

// IsLowQuality reports whether the place has no verifiable quality signal:
// a rating count of exactly zero, or a rating below 3.5 backed by fewer than
// five reviews.
func IsLowQuality(p places.Place) bool {
	rating := defaultRating
	if p.Rating != nil {
		rating = *p.Rating
	}
	count := defaultRatingCount
	if p.UserRatingCount != nil {
		count = *p.UserRatingCount
	}
	if count == 0 {
		return true
	}
	return rating < 3.5 && count < 5
}

// passesQualityGate is the universal admission test every category applies.
func passesQualityGate(p places.Place) bool {
	return !IsClosed(p) && !IsLowQuality(p)
}
