package api

import (
	"log"
	stdhttp "net/http"

	"travelmap/internal/cache"
	intconfig "travelmap/internal/config"
	h "travelmap/internal/http/handlers"
	"travelmap/internal/http/middleware"
	"travelmap/internal/repositories"
	"travelmap/internal/services"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the handlers serve.
type Deps struct {
	Trips *services.TripService
	Cache cache.Cache
	Users repositories.UserRepository
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	secret := []byte(env.JWTSecret)
	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		admin := api.Group("/admin", middleware.Auth(secret), middleware.RequireRoles("admin", "owner"))
		admin.GET("/db-check", h.DBCheck)
		admin.GET("/routes", h.Routes)

		// Auth
		authH := h.AuthHandler{Users: deps.Users, Secret: secret}
		auth := api.Group("/auth")
		auth.POST("/login", authH.Login)
		auth.POST("/register", authH.Register)

		// Trips / plans
		trips := h.TripHandler{Trips: deps.Trips, Cache: deps.Cache}
		plan := api.Group("/trips/:tripId/plans/:planId", middleware.Auth(secret))
		trips.Mount(plan)
	}

	h.SetRouter(r)
	return r
}
