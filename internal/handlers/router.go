package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"osrsgoals/internal/service"
)

// NewRouter builds the gin engine. Goal routes are only registered when a
// goal service is available, which requires a database.
func NewRouter(lookup *service.LookupService, goals *service.GoalService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// Simple health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	NewLookupHandler(lookup).RegisterRoutes(router)
	if goals != nil {
		NewGoalHandler(goals).RegisterRoutes(router)
	}

	return router
}

// WithCORS lets the desktop webview, which runs on its own origin, call the
// API.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(h)
}
