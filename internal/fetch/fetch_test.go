package fetch

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eneda8/nearby/internal/rules"
	"github.com/eneda8/nearby/pkg/places"
	"github.com/eneda8/nearby/pkg/places/mocks"
)

var testQuery = Query{Lat: 42.3601, Lng: -71.0589, RadiusMeters: 1600}

func testRules(t *testing.T) *rules.Rules {
	t.Helper()
	r, err := rules.Load()
	require.NoError(t, err)
	return r
}

func mkPlace(id, name string) places.Place {
	return places.Place{ID: id, DisplayName: places.DisplayName{Text: name}}
}

func textRequestFor(query string) any {
	return mock.MatchedBy(func(req places.TextRequest) bool {
		return req.Query == query
	})
}

func TestGroceriesSingleProximityBatch(t *testing.T) {
	client := &mocks.MockClient{}
	client.On("NearbySearch", mock.Anything, mock.MatchedBy(func(req places.NearbyRequest) bool {
		return len(req.IncludedTypes) == 2 && req.MaxResults == places.MaxNearbyResults
	})).Return([]places.Place{mkPlace("a", "Grocer")}, nil)

	f := New(client, testRules(t), 4)
	batches, err := f.Groceries(context.Background(), testQuery)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "a", batches[0][0].ID)

	client.AssertNotCalled(t, "TextSearch", mock.Anything, mock.Anything)
}

func TestProximityFailurePropagates(t *testing.T) {
	client := &mocks.MockClient{}
	client.On("NearbySearch", mock.Anything, mock.Anything).
		Return(nil, eris.New("upstream down"))

	f := New(client, testRules(t), 4)
	_, err := f.Groceries(context.Background(), testQuery)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "proximity search")
}

func TestPharmacyFansOutToBrands(t *testing.T) {
	r := testRules(t)
	client := &mocks.MockClient{}
	client.On("NearbySearch", mock.Anything, mock.Anything).
		Return([]places.Place{mkPlace("p1", "Local Pharmacy")}, nil)
	for _, brand := range r.PharmacyBrands {
		client.On("TextSearch", mock.Anything, textRequestFor(nearLocation(brand, testQuery))).
			Return([]places.Place{mkPlace(brand, brand)}, nil).Once()
	}

	f := New(client, r, 4)
	batches, err := f.Pharmacy(context.Background(), testQuery)
	require.NoError(t, err)

	// Proximity batch first, then one batch per brand in rule order.
	require.Len(t, batches, 1+len(r.PharmacyBrands))
	assert.Equal(t, "p1", batches[0][0].ID)
	for i, brand := range r.PharmacyBrands {
		require.Len(t, batches[i+1], 1)
		assert.Equal(t, brand, batches[i+1][0].ID)
	}
}

func TestFanOutToleratesKeywordFailures(t *testing.T) {
	r := testRules(t)
	client := &mocks.MockClient{}
	client.On("NearbySearch", mock.Anything, mock.Anything).
		Return([]places.Place{mkPlace("near", "Nearby Bar")}, nil)
	client.On("TextSearch", mock.Anything, mock.Anything).
		Return(nil, eris.New("quota exceeded"))

	f := New(client, r, 4)
	batches, err := f.Bar(context.Background(), testQuery)
	require.NoError(t, err)

	// The failed keyword batches are empty but still occupy their slots.
	require.Len(t, batches, 1+len(r.BarQueries))
	assert.Equal(t, "near", batches[0][0].ID)
	for _, b := range batches[1:] {
		assert.Empty(t, b)
	}
}

func TestPrintShipHybridAppendsGenericLeg(t *testing.T) {
	r := testRules(t)
	client := &mocks.MockClient{}
	client.On("NearbySearch", mock.Anything, mock.MatchedBy(func(req places.NearbyRequest) bool {
		return len(req.IncludedTypes) == 1 && req.IncludedTypes[0] == "post_office"
	})).Return([]places.Place{mkPlace("po", "Post Office")}, nil)
	client.On("NearbySearch", mock.Anything, mock.MatchedBy(func(req places.NearbyRequest) bool {
		return len(req.IncludedTypes) == 1 && req.IncludedTypes[0] == "bank"
	})).Return([]places.Place{mkPlace("b", "Bank")}, nil)
	client.On("TextSearch", mock.Anything, mock.Anything).Return([]places.Place{}, nil)

	f := New(client, r, 4)
	batches, err := f.PrintShipHybrid(context.Background(), testQuery, []string{"bank"})
	require.NoError(t, err)

	require.Len(t, batches, 1+len(r.PackShipBrands)+1)
	assert.Equal(t, "po", batches[0][0].ID)
	last := batches[len(batches)-1]
	require.Len(t, last, 1)
	assert.Equal(t, "b", last[0].ID)
}

func TestWarehouseClubsConfirmsNames(t *testing.T) {
	r := testRules(t)
	client := &mocks.MockClient{}
	client.On("TextSearch", mock.Anything, textRequestFor("Costco Wholesale")).
		Return([]places.Place{
			mkPlace("c1", "Costco Wholesale"),
			mkPlace("c2", "Shell Station"),
		}, nil)
	client.On("TextSearch", mock.Anything, mock.Anything).Return([]places.Place{}, nil)

	f := New(client, r, 4)
	batches, err := f.WarehouseClubs(context.Background(), testQuery)
	require.NoError(t, err)

	require.Len(t, batches, len(r.WarehouseClubs))
	require.Len(t, batches[0], 1)
	assert.Equal(t, "c1", batches[0][0].ID)
}

func TestWarehouseClubQueriesArePlainBrandQueries(t *testing.T) {
	r := testRules(t)
	client := &mocks.MockClient{}
	client.On("TextSearch", mock.Anything, mock.Anything).Return([]places.Place{}, nil)

	f := New(client, r, 4)
	_, err := f.WarehouseClubs(context.Background(), testQuery)
	require.NoError(t, err)

	for _, club := range r.WarehouseClubs {
		client.AssertCalled(t, "TextSearch", mock.Anything, textRequestFor(club.Query))
	}
}

func TestNearLocationFormat(t *testing.T) {
	q := Query{Lat: 42.5, Lng: -71.25}
	assert.Equal(t, "CVS Pharmacy near 42.5,-71.25", nearLocation("CVS Pharmacy", q))
}
