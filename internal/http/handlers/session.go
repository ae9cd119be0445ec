package handlers

import (
	"net/http"

	"rideapp/internal/domain/models"
	"rideapp/internal/http/middleware"
	"rideapp/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/session
func (h *Handlers) GetSession(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Sessions.Get(userID))
}

// PATCH /api/session — shallow merge; absent keys stay untouched.
func (h *Handlers) PatchSession(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var patch models.SessionPatch
	if !BindJSONOrError(c, &patch) {
		return
	}

	if patch.ServiceType != nil && !models.ValidServiceType(*patch.ServiceType) {
		respondError(c, http.StatusBadRequest, "invalid_service_type", "unknown service type", nil)
		return
	}
	if patch.GuestCategory != nil && !models.ValidGuestCategory(*patch.GuestCategory) {
		respondError(c, http.StatusBadRequest, "invalid_guest_category", "unknown guest category", nil)
		return
	}
	if patch.CarType != nil && *patch.CarType != "" && !models.ValidCarType(*patch.CarType) {
		respondError(c, http.StatusBadRequest, "invalid_car_type", "unknown vehicle class", nil)
		return
	}

	sess, err := h.Sessions.Update(middleware.GetRequestID(c), userID, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// DELETE /api/session — the explicit "start over" action.
func (h *Handlers) ClearSession(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	sess, err := h.Sessions.Clear(middleware.GetRequestID(c), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// POST /api/session/passengers/increment
func (h *Handlers) IncrementPassengers(c *gin.Context) {
	h.stepPassengers(c, +1)
}

// POST /api/session/passengers/decrement
func (h *Handlers) DecrementPassengers(c *gin.Context) {
	h.stepPassengers(c, -1)
}

func (h *Handlers) stepPassengers(c *gin.Context, delta int) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	sess, err := h.Sessions.StepPassengers(middleware.GetRequestID(c), userID, delta)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type selectHubRequest struct {
	HubID int64 `json:"hubId"`
}

// POST /api/session/hub — selecting a hub clears the free-text pickup;
// hubId 0 clears the hub selection.
func (h *Handlers) SelectHub(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	var req selectHubRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.HubID != 0 {
		if _, err := (repositories.CatalogRepository{}).GetHubByID(req.HubID); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	sess, err := h.Sessions.Update(middleware.GetRequestID(c), userID, models.SessionPatch{PickupHubID: &req.HubID})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
