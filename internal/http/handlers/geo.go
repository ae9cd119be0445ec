package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"rideapp/internal/geo"

	"github.com/gin-gonic/gin"
)

// GET /api/geo/status — memoized provider readiness probe.
func (h *Handlers) GeoStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ready": h.Geo.Ready(c.Request.Context())})
}

// GET /api/geo/search?q= — zero-or-one best match, tagged with the
// query so the client can discard a stale response.
func (h *Handlers) Geocode(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		respondError(c, http.StatusBadRequest, "missing_query", "q query parameter is required", nil)
		return
	}

	place, err := h.Geo.Geocode(c.Request.Context(), q)
	if err != nil {
		respondError(c, http.StatusBadGateway, "geocode_error", "geocoding failed", err)
		return
	}
	if place == nil {
		c.JSON(http.StatusOK, gin.H{"query": q, "result": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "result": place})
}

// GET /api/geo/autocomplete?q=
func (h *Handlers) Autocomplete(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"query": q, "results": []geo.Place{}})
		return
	}

	places, err := h.Geo.Autocomplete(c.Request.Context(), q)
	if err != nil {
		respondError(c, http.StatusBadGateway, "autocomplete_error", "autocomplete failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "results": places})
}

// GET /api/geo/reverse?lat=&lng= — degrades to raw coordinates when the
// provider cannot resolve an address.
func (h *Handlers) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondError(c, http.StatusBadRequest, "invalid_coordinates", "lat and lng are required numbers", nil)
		return
	}

	place, err := h.Geo.Reverse(c.Request.Context(), lat, lng)
	if err != nil || place == nil {
		// manual-entry fallback: show the raw coordinates
		c.JSON(http.StatusOK, gin.H{
			"displayName": fmt.Sprintf("%.5f, %.5f", lat, lng),
			"lat":         lat,
			"lng":         lng,
			"resolved":    false,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"displayName": place.DisplayName,
		"lat":         place.Lat,
		"lng":         place.Lng,
		"resolved":    true,
	})
}

// GET /api/geo/directions?points=lat,lng;lat,lng[;lat,lng]
// A route failure is not an error to the client — it renders markers
// without a connecting path.
func (h *Handlers) Directions(c *gin.Context) {
	points, err := parseWaypoints(c.Query("points"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_waypoints", err.Error(), nil)
		return
	}

	route, err := h.Geo.Directions(c.Request.Context(), points)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"route": nil, "degraded": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route, "degraded": false})
}

func parseWaypoints(raw string) ([]geo.LatLng, error) {
	parts := strings.Split(strings.TrimSpace(raw), ";")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("points must contain 2 or 3 waypoints")
	}

	points := make([]geo.LatLng, 0, len(parts))
	for _, p := range parts {
		coords := strings.Split(strings.TrimSpace(p), ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("each waypoint must be lat,lng")
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		lng, lngErr := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if latErr != nil || lngErr != nil {
			return nil, fmt.Errorf("waypoint coordinates must be numbers")
		}
		points = append(points, geo.LatLng{Lat: lat, Lng: lng})
	}
	return points, nil
}
