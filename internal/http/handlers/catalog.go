package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"rideapp/internal/domain/models"
	"rideapp/internal/http/middleware"
	"rideapp/internal/repositories"
	"rideapp/internal/services"
	"rideapp/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/events
func (h *Handlers) ListEvents(c *gin.Context) {
	list, err := (repositories.CatalogRepository{}).ListEvents()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "catalog_error", "failed to load events", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/events/:id/shifts?date=YYYY-MM-DD — the day's shifts with
// their derived free-vehicle counts.
func (h *Handlers) ListShifts(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || eventID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_event_id", "invalid event id", err)
		return
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		respondError(c, http.StatusBadRequest, "missing_date", "date query parameter is required", nil)
		return
	}
	if _, err := utils.ParseDate(date); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", err)
		return
	}

	svc := services.AvailabilityService{
		Shifts:    repositories.ShiftRepository{},
		Rides:     repositories.RideRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	slots, err := svc.ListDaySlots(eventID, date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "availability_error", "failed to compute shift availability", err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GET /api/events/:id/hubs
func (h *Handlers) ListHubs(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || eventID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_event_id", "invalid event id", err)
		return
	}

	list, err := (repositories.CatalogRepository{}).ListHubs(eventID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "catalog_error", "failed to load hubs", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/car-classes
func (h *Handlers) ListCarClasses(c *gin.Context) {
	c.JSON(http.StatusOK, models.CarTypes)
}

// GET /api/vehicles
func (h *Handlers) ListVehicles(c *gin.Context) {
	list, err := (repositories.CatalogRepository{}).ListVehicles()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "catalog_error", "failed to load vehicles", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/shifts/:id/drivers
func (h *Handlers) ListShiftDrivers(c *gin.Context) {
	shiftID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || shiftID <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_shift_id", "invalid shift id", err)
		return
	}

	list, err := (repositories.CatalogRepository{}).ListDrivers(shiftID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "catalog_error", "failed to load drivers", err)
		return
	}
	c.JSON(http.StatusOK, list)
}
