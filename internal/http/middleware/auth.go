package middleware

import (
	"net/http"
	"strings"

	"rideapp/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authUserKey = "auth_user"

// AuthRequired gates every route except sign-in: a valid bearer token
// resolves to the shift-manager identity every handler keys on.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(auth, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		rc := domain.RequestContext{}
		if v, ok := claims["user_id"].(float64); ok {
			rc.UserID = domain.ID(v)
		}
		if v, ok := claims["event_id"].(float64); ok {
			rc.EventID = domain.ID(v)
		}
		if v, ok := claims["email"].(string); ok {
			rc.Email = v
		}
		if rc.UserID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		c.Set(authUserKey, rc)
		c.Next()
	}
}

// GetAuthUser returns the authenticated identity set by AuthRequired.
func GetAuthUser(c *gin.Context) (domain.RequestContext, bool) {
	if v, ok := c.Get(authUserKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc, true
		}
	}
	return domain.RequestContext{}, false
}
