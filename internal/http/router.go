package api

import (
	"log"
	stdhttp "net/http"

	intconfig "rideapp/internal/config"
	"rideapp/internal/geo"
	"rideapp/internal/http/handlers"
	"rideapp/internal/http/middleware"
	"rideapp/internal/repositories"
	"rideapp/internal/services"

	"github.com/gin-gonic/gin"
)

// NewRouter is the composition root: it owns the shared session store,
// the mapping client and its readiness signal, and wires every route.
func NewRouter(env intconfig.Env) *gin.Engine {
	sessions := services.NewSessionService(repositories.SessionRepository{})
	readiness := geo.NewReadiness()
	geoClient := geo.NewClient(env.GeoBaseURL, readiness)
	h := handlers.New(env, sessions, geoClient)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth — the only routes reachable without a token
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		secured := api.Group("")
		secured.Use(middleware.AuthRequired([]byte(env.JWTSecret)))

		secured.POST("/auth/logout", h.Logout)

		// Booking session (wizard state)
		session := secured.Group("/session")
		session.GET("", h.GetSession)
		session.PATCH("", h.PatchSession)
		session.DELETE("", h.ClearSession)
		session.POST("/hub", h.SelectHub)
		session.POST("/passengers/increment", h.IncrementPassengers)
		session.POST("/passengers/decrement", h.DecrementPassengers)
		session.POST("/advance", h.Advance)
		session.POST("/back", h.Back)

		// Catalog
		secured.GET("/events", h.ListEvents)
		secured.GET("/events/:id/shifts", h.ListShifts)
		secured.GET("/events/:id/hubs", h.ListHubs)
		secured.GET("/car-classes", h.ListCarClasses)
		secured.GET("/vehicles", h.ListVehicles)
		secured.GET("/shifts/:id/drivers", h.ListShiftDrivers)

		// Rides
		secured.GET("/rides", h.ListRides)
		secured.GET("/rides/:id", h.GetRide)
		secured.GET("/rides/:id/tracking", h.GetRideTracking)
		secured.GET("/rides/:id/confirmation", h.GetRideConfirmationPDF)

		// Mapping passthrough
		geoGroup := secured.Group("/geo")
		geoGroup.GET("/status", h.GeoStatus)
		geoGroup.GET("/search", h.Geocode)
		geoGroup.GET("/autocomplete", h.Autocomplete)
		geoGroup.GET("/reverse", h.ReverseGeocode)
		geoGroup.GET("/directions", h.Directions)
	}

	return r
}
