package handlers

import (
	"net/http"

	"rideapp/internal/http/middleware"
	"rideapp/internal/repositories"
	"rideapp/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/session/advance — validates the current step's contract and
// moves forward; Review -> Submitted is the one transition that writes
// the ride row.
func (h *Handlers) Advance(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	svc := services.SequencerService{
		Sessions: h.Sessions,
		Rides:    repositories.RideRepository{},
	}
	sess, err := svc.Advance(middleware.GetRequestID(c), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// POST /api/session/back
func (h *Handlers) Back(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	svc := services.SequencerService{
		Sessions: h.Sessions,
		Rides:    repositories.RideRepository{},
	}
	sess, err := svc.Back(middleware.GetRequestID(c), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
