package handlers

import (
	"net/http"
	"time"

	"rideapp/internal/http/middleware"
	"rideapp/internal/repositories"
	"rideapp/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{
		Users:     repositories.UserRepository{},
		Catalog:   repositories.CatalogRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	user, err := svc.Authenticate(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"event_id": user.EventID,
		"email":    user.Email,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(h.Env.JWTSecret))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_error", "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

// POST /api/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{
		Users:     repositories.UserRepository{},
		Catalog:   repositories.CatalogRepository{},
		RequestID: middleware.GetRequestID(c),
	}

	user, err := svc.Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user":    user,
	})
}

// POST /api/auth/logout — drops the in-memory session copy; the durable
// snapshot survives so the next sign-in resumes the booking.
func (h *Handlers) Logout(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}
	h.Sessions.Forget(userID)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
