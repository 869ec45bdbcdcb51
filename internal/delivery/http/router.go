package http

import (
	"github.com/gin-gonic/gin"
	"github.com/manzafir/manzafir-backend/internal/delivery/http/handler"
	"github.com/manzafir/manzafir-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler           *handler.AuthHandler
	profileHandler        *handler.ProfileHandler
	matchHandler          *handler.MatchHandler
	packageHandler        *handler.PackageHandler
	recommendationHandler *handler.RecommendationHandler
	uploadHandler         *handler.UploadHandler
	authMiddleware        *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	matchHandler *handler.MatchHandler,
	packageHandler *handler.PackageHandler,
	recommendationHandler *handler.RecommendationHandler,
	uploadHandler *handler.UploadHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:           authHandler,
		profileHandler:        profileHandler,
		matchHandler:          matchHandler,
		packageHandler:        packageHandler,
		recommendationHandler: recommendationHandler,
		uploadHandler:         uploadHandler,
		authMiddleware:        authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/api/health", healthHandler)
	router.HEAD("/api/health", healthHandler)

	api := router.Group("/api")
	{
		// Auth routes. Logout is deliberately unauthenticated: it must
		// succeed for callers whose session is already gone.
		auth := api.Group("/auth")
		{
			auth.POST("/session-data", r.authHandler.SessionData)
			auth.POST("/logout", r.authHandler.Logout)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			protected.GET("/profile", r.profileHandler.GetProfile)
			protected.POST("/profile", r.profileHandler.UpdateProfile)

			protected.GET("/matches", r.matchHandler.GetMatches)
			protected.POST("/matches/action", r.matchHandler.MatchAction)
		}

		// Catalog and recommendations (public, collaborator surfaces)
		api.GET("/packages", r.packageHandler.ListPackages)
		api.POST("/packages", r.packageHandler.CreatePackage)
		api.POST("/init-data", r.packageHandler.InitData)
		api.POST("/recommendations", r.recommendationHandler.GetRecommendations)
		api.POST("/upload/image", r.uploadHandler.UploadImage)
	}

	return router
}
