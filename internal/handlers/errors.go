package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"osrsgoals/internal/api"
	"osrsgoals/internal/repository"
	"osrsgoals/internal/service"
)

// respondError maps service and upstream errors to a status code. Upstream
// failures carry their kind so callers do not have to match on the message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidGoal):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, api.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": api.KindFetch})
	case api.Kind(err) != "":
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "kind": api.Kind(err)})
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
