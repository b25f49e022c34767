package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eneda8/nearby/pkg/places"
)

func barPlace(name, primaryType string, latOffset float64, types ...string) places.Place {
	p := mkPlace(name, primaryType, types...)
	p.Location = places.NewLocation(origin.Lat+latOffset, origin.Lng)
	return p
}

func TestBarTiersPureBarsFirst(t *testing.T) {
	e := New(testRules(t))

	in := []places.Place{
		barPlace("Steakhouse & Bar", "restaurant", 0.001, "restaurant", "bar"),
		barPlace("The Tap Room", "bar", 0.002, "bar"),
		barPlace("Gastropub", "pub", 0.001, "pub", "restaurant"),
	}

	got := names(e.Bar(origin, in))
	assert.Equal(t, []string{"The Tap Room", "Gastropub", "Steakhouse & Bar"}, got)
}

func TestBarDistanceOrdersWithinTier(t *testing.T) {
	e := New(testRules(t))

	in := []places.Place{
		barPlace("Far Bar", "bar", 0.01, "bar"),
		barPlace("Near Bar", "bar", 0.001, "bar"),
		barPlace("Mid Bar", "wine_bar", 0.005, "wine_bar"),
	}

	got := names(e.Bar(origin, in))
	assert.Equal(t, []string{"Near Bar", "Mid Bar", "Far Bar"}, got)
}

func TestBarDropsVenuesUnlessBarFamily(t *testing.T) {
	e := New(testRules(t))

	in := []places.Place{
		barPlace("City Stadium", "stadium", 0.001, "stadium"),
		barPlace("Concert Hall", "concert_hall", 0.001, "concert_hall"),
		barPlace("Stadium Sports Bar", "sports_bar", 0.002, "sports_bar"),
	}

	got := names(e.Bar(origin, in))
	assert.Equal(t, []string{"Stadium Sports Bar"}, got)
}

func TestBarSecondaryBarWithoutRestaurantMidTier(t *testing.T) {
	e := New(testRules(t))

	in := []places.Place{
		barPlace("Bowling & Bar", "bowling_alley", 0.001, "bowling_alley", "bar"),
		barPlace("Pure Pub", "pub", 0.002, "pub"),
	}

	got := names(e.Bar(origin, in))
	assert.Equal(t, []string{"Pure Pub", "Bowling & Bar"}, got)
}

func TestBarUnparseableCoordinatesSortLast(t *testing.T) {
	e := New(testRules(t))

	nowhere := mkPlace("Mystery Bar", "bar", "bar")
	in := []places.Place{
		nowhere,
		barPlace("Known Bar", "bar", 0.005, "bar"),
	}

	got := names(e.Bar(origin, in))
	assert.Equal(t, []string{"Known Bar", "Mystery Bar"}, got)
}
