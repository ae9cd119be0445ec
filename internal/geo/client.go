package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Place is one geocoding result. Query echoes the text the request was
// issued for: because in-flight calls are not cancelled, a consumer
// compares Query against its current input and discards stale results.
type Place struct {
	Query       string  `json:"query"`
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// LatLng is a bare coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route is a renderable path between waypoints.
type Route struct {
	Geometry string  `json:"geometry"` // encoded polyline
	Distance float64 `json:"distance"` // meters
	Duration float64 `json:"duration"` // seconds
}

// Client talks to the external mapping provider. All methods are plain
// JSON-over-HTTP; no result ranking of our own — first result wins.
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	Readiness *Readiness
}

func NewClient(baseURL string, readiness *Readiness) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		HTTP:      &http.Client{Timeout: 10 * time.Second},
		Readiness: readiness,
	}
}

type providerPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Ready probes the provider once and memoizes the outcome; repeat
// calls return the settled value without touching the network.
func (c *Client) Ready(ctx context.Context) bool {
	if ready, ok := c.Readiness.Settled(); ok {
		return ready
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/status", nil)
	if err != nil {
		c.Readiness.settle(false)
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Readiness.settle(false)
		return false
	}
	defer resp.Body.Close()
	ok := resp.StatusCode < http.StatusInternalServerError
	c.Readiness.settle(ok)
	return ok
}

// Geocode resolves free text to zero-or-one best match. A nil Place
// with nil error means the provider found nothing.
func (c *Client) Geocode(ctx context.Context, query string) (*Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	places, err := c.search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}
	return &places[0], nil
}

// Autocomplete returns up to five suggestions for a typed prefix.
func (c *Client) Autocomplete(ctx context.Context, prefix string) ([]Place, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []Place{}, nil
	}
	return c.search(ctx, prefix, 5)
}

func (c *Client) search(ctx context.Context, query string, limit int) ([]Place, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))

	var raw []providerPlace
	if err := c.getJSON(ctx, "/search?"+q.Encode(), &raw); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(raw))
	for _, p := range raw {
		lat, latErr := strconv.ParseFloat(p.Lat, 64)
		lng, lngErr := strconv.ParseFloat(p.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		places = append(places, Place{
			Query:       query,
			DisplayName: p.DisplayName,
			Lat:         lat,
			Lng:         lng,
		})
	}
	return places, nil
}

// Reverse resolves coordinates to an address. Callers degrade to raw
// coordinate display when this fails.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (*Place, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")

	var raw providerPlace
	if err := c.getJSON(ctx, "/reverse?"+q.Encode(), &raw); err != nil {
		return nil, err
	}
	if raw.DisplayName == "" {
		return nil, nil
	}
	return &Place{
		Query:       fmt.Sprintf("%f,%f", lat, lng),
		DisplayName: raw.DisplayName,
		Lat:         lat,
		Lng:         lng,
	}, nil
}

type providerRoute struct {
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Directions asks for a drivable path through two or three waypoints.
// Failures are non-fatal to callers — the client renders markers only.
func (c *Client) Directions(ctx context.Context, points []LatLng) (*Route, error) {
	if len(points) < 2 || len(points) > 3 {
		return nil, fmt.Errorf("directions need 2 or 3 waypoints, got %d", len(points))
	}

	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lng, p.Lat))
	}

	var raw providerRoute
	path := "/route/v1/driving/" + strings.Join(coords, ";") + "?overview=full"
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return nil, err
	}
	if len(raw.Routes) == 0 {
		return nil, fmt.Errorf("no route found")
	}
	best := raw.Routes[0]
	return &Route{Geometry: best.Geometry, Distance: best.Distance, Duration: best.Duration}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mapping provider returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
