package handlers

import (
	"net/http"
	"strconv"

	"rideapp/internal/http/middleware"
	"rideapp/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/rides — the signed-in manager's event ride requests.
func (h *Handlers) ListRides(c *gin.Context) {
	rc, ok := middleware.GetAuthUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	if rc.EventID == 0 {
		respondError(c, http.StatusBadRequest, "no_event", "account has no linked event", nil)
		return
	}

	list, err := (repositories.RideRepository{}).ListByEvent(int64(rc.EventID))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "rides_error", "failed to load ride requests", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/rides/:id
func (h *Handlers) GetRide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_ride_id", "invalid ride id", err)
		return
	}

	ride, err := (repositories.RideRepository{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ride)
}

// GET /api/rides/:id/tracking — the tracking screen's polling read.
func (h *Handlers) GetRideTracking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_ride_id", "invalid ride id", err)
		return
	}

	tracking, err := (repositories.RideRepository{}).GetTracking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracking)
}
