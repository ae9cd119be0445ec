package handlers

import (
	"net/http"
	"strconv"

	"rideapp/internal/http/middleware"
	"rideapp/internal/repositories"
	"rideapp/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/rides/:id/confirmation — confirmation slip PDF (inline).
func (h *Handlers) GetRideConfirmationPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_ride_id", "invalid ride id", err)
		return
	}

	svc := services.DocsService{
		Rides:     repositories.RideRepository{},
		Catalog:   repositories.CatalogRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateConfirmation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
