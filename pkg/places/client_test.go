package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearbySearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places:searchNearby", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Contains(t, r.Header.Get("X-Goog-FieldMask"), "places.rating")
		assert.Contains(t, r.Header.Get("X-Goog-FieldMask"), "places.currentOpeningHours")

		var body nearbySearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"grocery_store", "supermarket"}, body.IncludedTypes)
		assert.Equal(t, 20, body.MaxResultCount)
		assert.InDelta(t, 1600, body.LocationRestriction.Circle.Radius, 0.001)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse{
			Places: []Place{{
				ID:          "abc",
				DisplayName: DisplayName{Text: "Neighborhood Grocery"},
			}},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.NearbySearch(context.Background(), NearbyRequest{
		IncludedTypes: []string{"grocery_store", "supermarket"},
		MaxResults:    20,
		Lat:           42.3601,
		Lng:           -71.0589,
		RadiusMeters:  1600,
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].ID)
	assert.Equal(t, "Neighborhood Grocery", got[0].Name())
}

func TestNearbySearch_ClampsMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body nearbySearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, MaxNearbyResults, body.MaxResultCount)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.NearbySearch(context.Background(), NearbyRequest{MaxResults: 100})
	require.NoError(t, err)
}

func TestTextSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places:searchText", r.URL.Path)

		var body textSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asian market near 42.3601,-71.0589", body.TextQuery)
		assert.Equal(t, 10, body.MaxResultCount)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse{
			Places: []Place{{ID: "m1", DisplayName: DisplayName{Text: "Golden Asian Market"}}},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.TextSearch(context.Background(), TextRequest{
		Query:        "asian market near 42.3601,-71.0589",
		MaxResults:   10,
		Lat:          42.3601,
		Lng:          -71.0589,
		RadiusMeters: 1600,
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)
}

func TestSearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "invalid API key"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	got, err := client.NearbySearch(context.Background(), NearbyRequest{})

	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "403")
}

func TestSearch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		// Simulate a slow response so the canceled context wins.
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately.

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.TextSearch(ctx, TextRequest{Query: "test"})

	assert.Error(t, err)
	assert.Nil(t, got)
}
