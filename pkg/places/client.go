package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/eneda8/nearby/internal/retry"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

// fieldMask lists every place field the pipeline consumes.
const fieldMask = "places.id,places.displayName,places.formattedAddress," +
	"places.location,places.primaryType,places.types,places.googleMapsUri," +
	"places.websiteUri,places.rating,places.userRatingCount," +
	"places.businessStatus,places.currentOpeningHours"

const (
	// MaxNearbyResults is the provider's cap on a proximity search page.
	MaxNearbyResults = 20
	// MaxTextResults is the cap we request for a single keyword search.
	MaxTextResults = 10
)

// Client performs place-search operations against the upstream provider.
type Client interface {
	// NearbySearch returns places near a coordinate restricted to the given types.
	NearbySearch(ctx context.Context, req NearbyRequest) ([]Place, error)
	// TextSearch returns places matching a free-text query biased toward a coordinate.
	TextSearch(ctx context.Context, req TextRequest) ([]Place, error)
}

// NearbyRequest describes a type-restricted proximity search.
type NearbyRequest struct {
	IncludedTypes []string
	MaxResults    int
	Lat           float64
	Lng           float64
	RadiusMeters  float64
}

// TextRequest describes a keyword search biased toward a coordinate.
type TextRequest struct {
	Query        string
	MaxResults   int
	Lat          float64
	Lng          float64
	RadiusMeters float64
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit bounds outgoing request rate (queries per second).
func WithRateLimit(qps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(qps), 1)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a place-search client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(20), 5),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type circle struct {
	Center latLngLiteral `json:"center"`
	Radius float64       `json:"radius"`
}

type latLngLiteral struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type circleArea struct {
	Circle circle `json:"circle"`
}

type nearbySearchRequest struct {
	IncludedTypes       []string   `json:"includedTypes"`
	MaxResultCount      int        `json:"maxResultCount"`
	LocationRestriction circleArea `json:"locationRestriction"`
}

type textSearchRequest struct {
	TextQuery      string     `json:"textQuery"`
	MaxResultCount int        `json:"maxResultCount"`
	LocationBias   circleArea `json:"locationBias"`
}

type searchResponse struct {
	Places []Place `json:"places"`
}

func (c *httpClient) NearbySearch(ctx context.Context, req NearbyRequest) ([]Place, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > MaxNearbyResults {
		maxResults = MaxNearbyResults
	}
	body := nearbySearchRequest{
		IncludedTypes:  req.IncludedTypes,
		MaxResultCount: maxResults,
		LocationRestriction: circleArea{
			Circle: circle{
				Center: latLngLiteral{Latitude: req.Lat, Longitude: req.Lng},
				Radius: req.RadiusMeters,
			},
		},
	}
	return c.post(ctx, "/places:searchNearby", body)
}

func (c *httpClient) TextSearch(ctx context.Context, req TextRequest) ([]Place, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > MaxNearbyResults {
		maxResults = MaxTextResults
	}
	body := textSearchRequest{
		TextQuery:      req.Query,
		MaxResultCount: maxResults,
		LocationBias: circleArea{
			Circle: circle{
				Center: latLngLiteral{Latitude: req.Lat, Longitude: req.Lng},
				Radius: req.RadiusMeters,
			},
		},
	}
	return c.post(ctx, "/places:searchText", body)
}

// apiError carries the upstream HTTP status so transient failures (429, 5xx)
// can be retried.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.status, e.body)
}

func (e *apiError) HTTPStatus() int { return e.status }

func (c *httpClient) post(ctx context.Context, path string, reqBody any) ([]Place, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, eris.Wrap(err, "places: marshal request")
	}
	return retry.Do(ctx, retry.Config{}, "places"+path, func(ctx context.Context) ([]Place, error) {
		return c.attempt(ctx, path, body)
	})
}

func (c *httpClient) attempt(ctx context.Context, path string, body []byte) ([]Place, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "places: rate limit")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Wrap(&apiError{status: resp.StatusCode, body: string(respBody)}, "places")
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal response")
	}

	return result.Places, nil
}
