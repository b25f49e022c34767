package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eneda8/nearby/internal/geo"
	"github.com/eneda8/nearby/pkg/places"
)

var shapeOrigin = geo.Point{Lat: 42.3601, Lng: -71.0589}

func placeAt(id string, latOffset float64) places.Place {
	return places.Place{
		ID:          id,
		DisplayName: places.DisplayName{Text: id},
		Location:    places.NewLocation(shapeOrigin.Lat+latOffset, shapeOrigin.Lng),
	}
}

func TestShapeSortsByDistance(t *testing.T) {
	in := []places.Place{placeAt("far", 0.01), placeAt("near", 0.001), placeAt("mid", 0.005)}

	out := Shape(shapeOrigin, in, 20, false)
	require.Len(t, out, 3)
	assert.Equal(t, "near", out[0].ID)
	assert.Equal(t, "mid", out[1].ID)
	assert.Equal(t, "far", out[2].ID)
	assert.Less(t, *out[0].DirectDistanceMeters, *out[1].DirectDistanceMeters)
}

func TestShapePreserveOrderSkipsSort(t *testing.T) {
	in := []places.Place{placeAt("far", 0.01), placeAt("near", 0.001)}

	out := Shape(shapeOrigin, in, 20, true)
	require.Len(t, out, 2)
	assert.Equal(t, "far", out[0].ID)
	assert.Equal(t, "near", out[1].ID)
}

func TestShapeCapsResults(t *testing.T) {
	in := make([]places.Place, 30)
	for i := range in {
		in[i] = placeAt(string(rune('a'+i)), float64(i)*0.001)
	}
	out := Shape(shapeOrigin, in, 20, false)
	assert.Len(t, out, 20)
}

func TestShapeMissingLocationSortsLast(t *testing.T) {
	nowhere := places.Place{ID: "nowhere", DisplayName: places.DisplayName{Text: "nowhere"}}
	in := []places.Place{nowhere, placeAt("near", 0.001)}

	out := Shape(shapeOrigin, in, 20, false)
	require.Len(t, out, 2)
	assert.Equal(t, "near", out[0].ID)
	assert.Equal(t, "nowhere", out[1].ID)
	assert.Nil(t, out[1].Location)
	assert.Nil(t, out[1].DirectDistanceMeters)
}

func TestShapeDefaultsNameAndTypes(t *testing.T) {
	out := Shape(shapeOrigin, []places.Place{{ID: "x"}}, 20, false)
	require.Len(t, out, 1)
	assert.Equal(t, "Unknown", out[0].Name)
	assert.NotNil(t, out[0].Types)
	assert.Empty(t, out[0].Types)
}

func TestShapeCarriesOpeningHours(t *testing.T) {
	open := true
	p := placeAt("open-now", 0.001)
	p.CurrentOpeningHours = &places.OpeningHours{
		OpenNow:             &open,
		WeekdayDescriptions: []string{"Monday: 9 AM – 5 PM"},
	}

	out := Shape(shapeOrigin, []places.Place{p}, 20, false)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].OpenNow)
	assert.True(t, *out[0].OpenNow)
	assert.Len(t, out[0].WeekdayDescriptions, 1)
}
