// Package routes wraps the route-matrix endpoint of the routing provider,
// returning travel duration and distance from one origin to many
// destinations.
package routes

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

const defaultBaseURL = "https://routes.googleapis.com"

const fieldMask = "originIndex,destinationIndex,duration,distanceMeters,condition,status"

// TravelMode selects how the matrix is routed.
type TravelMode string

const (
	TravelModeDrive   TravelMode = "DRIVE"
	TravelModeWalk    TravelMode = "WALK"
	TravelModeBicycle TravelMode = "BICYCLE"
)

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MatrixRequest describes one origin routed to a list of destinations.
type MatrixRequest struct {
	Origin       LatLng
	Destinations []LatLng
	TravelMode   TravelMode
}

// MatrixElement is one origin/destination pair of the computed matrix.
type MatrixElement struct {
	OriginIndex      int             `json:"originIndex"`
	DestinationIndex int             `json:"destinationIndex"`
	Duration         string          `json:"duration,omitempty"`
	DistanceMeters   int             `json:"distanceMeters,omitempty"`
	Condition        string          `json:"condition,omitempty"`
	Status           json.RawMessage `json:"status,omitempty"`
}

// Client computes route matrices.
type Client interface {
	ComputeRouteMatrix(ctx context.Context, req MatrixRequest) ([]MatrixElement, error)
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

// NewClient creates a route-matrix client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(10), 2),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type latLngLiteral struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypointLocation struct {
	LatLng latLngLiteral `json:"latLng"`
}

type waypoint struct {
	Location waypointLocation `json:"location"`
}

type matrixEndpoint struct {
	Waypoint waypoint `json:"waypoint"`
}

type matrixRequest struct {
	Origins      []matrixEndpoint `json:"origins"`
	Destinations []matrixEndpoint `json:"destinations"`
	TravelMode   TravelMode       `json:"travelMode"`
}

func endpoint(ll LatLng) matrixEndpoint {
	return matrixEndpoint{
		Waypoint: waypoint{
			Location: waypointLocation{
				LatLng: latLngLiteral{Latitude: ll.Lat, Longitude: ll.Lng},
			},
		},
	}
}

func (c *httpClient) ComputeRouteMatrix(ctx context.Context, req MatrixRequest) ([]MatrixElement, error) {
	mode := req.TravelMode
	if mode == "" {
		mode = TravelModeDrive
	}
	wire := matrixRequest{
		Origins:    []matrixEndpoint{endpoint(req.Origin)},
		TravelMode: mode,
	}
	for _, d := range req.Destinations {
		wire.Destinations = append(wire.Destinations, endpoint(d))
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, eris.Wrap(err, "routes: marshal request")
	}

	return retry.Do(ctx, retry.Config{}, "routes:computeRouteMatrix", func(ctx context.Context) ([]MatrixElement, error) {
		return c.attempt(ctx, body)
	})
}

func (c *httpClient) attempt(ctx context.Context, body []byte) ([]MatrixElement, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "routes: rate limit")
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/distanceMatrix/v2:computeRouteMatrix", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "routes: create request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)
	httpReq.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "routes: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "routes: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Wrap(&apiError{status: resp.StatusCode, body: string(respBody)}, "routes")
	}

	// The endpoint streams either a bare JSON array of elements or an object
	// wrapping one.
	var elements []MatrixElement
	if err := json.Unmarshal(respBody, &elements); err == nil {
		return elements, nil
	}
	var wrapped struct {
		Elements []MatrixElement `json:"elements"`
	}
	if err := json.Unmarshal(respBody, &wrapped); err != nil {
		return nil, eris.Wrap(err, "routes: unmarshal response")
	}
	return wrapped.Elements, nil
}
