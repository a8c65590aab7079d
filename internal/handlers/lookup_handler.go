package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"osrsgoals/internal/service"
)

type LookupHandler struct {
	svc *service.LookupService
}

func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// RegisterRoutes wires the lookup routes into the given router.
func (h *LookupHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/players/:name/skills", h.GetPlayerSkills)
		api.GET("/items", h.SearchItems)
	}
}

// GetPlayerSkills returns the hiscore skills of a player.
func (h *LookupHandler) GetPlayerSkills(c *gin.Context) {
	ctx := c.Request.Context()

	skills, err := h.svc.LookupPlayer(ctx, c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, skills)
}

// SearchItems returns the catalogue items starting with the letter query.
func (h *LookupHandler) SearchItems(c *gin.Context) {
	ctx := c.Request.Context()
	letter, ok := c.GetQuery("letter")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "letter is required"})
		return
	}

	items, err := h.svc.SearchItems(ctx, letter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
