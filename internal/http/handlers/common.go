package handlers

import (
	"net/http"

	intconfig "rideapp/internal/config"
	"rideapp/internal/geo"
	"rideapp/internal/http/middleware"
	"rideapp/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the long-lived pieces the composition root owns:
// config, the shared session store and the mapping client. Everything
// request-scoped is built inside the handler methods.
type Handlers struct {
	Env      intconfig.Env
	Sessions *services.SessionService
	Geo      *geo.Client
}

func New(env intconfig.Env, sessions *services.SessionService, geoClient *geo.Client) *Handlers {
	return &Handlers{Env: env, Sessions: sessions, Geo: geoClient}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid request payload", err)
		return false
	}
	return true
}

// authUserID resolves the signed-in manager or aborts with 401.
func authUserID(c *gin.Context) (int64, bool) {
	rc, ok := middleware.GetAuthUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return 0, false
	}
	return int64(rc.UserID), true
}
