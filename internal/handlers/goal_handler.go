package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"osrsgoals/internal/repository"
	"osrsgoals/internal/service"
)

type GoalHandler struct {
	svc *service.GoalService
}

func NewGoalHandler(svc *service.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

// RegisterRoutes wires goal routes into the given router.
func (h *GoalHandler) RegisterRoutes(r *gin.Engine) {
	goals := r.Group("/api/goals")
	{
		goals.GET("", h.ListGoals)
		goals.POST("/skill", h.CreateSkillGoal)
		goals.POST("/drop", h.CreateDropGoal)
		goals.POST("/other", h.CreateOtherGoal)
		goals.POST("/sync", h.SyncSkillGoals)
		goals.POST("/:id/increment", h.IncrementDrops)
		goals.POST("/:id/decrement", h.DecrementDrops)
		goals.POST("/:id/toggle", h.ToggleDone)
		goals.DELETE("/:id", h.DeleteGoal)
	}
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	views, err := h.svc.ListGoals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *GoalHandler) CreateSkillGoal(c *gin.Context) {
	var in service.SkillGoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondCreated(c, func() (*repository.Goal, error) {
		return h.svc.AddSkillGoal(c.Request.Context(), in)
	})
}

func (h *GoalHandler) CreateDropGoal(c *gin.Context) {
	var in service.DropGoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondCreated(c, func() (*repository.Goal, error) {
		return h.svc.AddDropGoal(c.Request.Context(), in)
	})
}

func (h *GoalHandler) CreateOtherGoal(c *gin.Context) {
	var in service.OtherGoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondCreated(c, func() (*repository.Goal, error) {
		return h.svc.AddOtherGoal(c.Request.Context(), in)
	})
}

func (h *GoalHandler) respondCreated(c *gin.Context, create func() (*repository.Goal, error)) {
	goal, err := create()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// SyncSkillGoals refreshes skill goals from the hiscores of ?player=.
func (h *GoalHandler) SyncSkillGoals(c *gin.Context) {
	views, err := h.svc.SyncSkillGoals(c.Request.Context(), c.Query("player"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *GoalHandler) IncrementDrops(c *gin.Context) {
	h.respondUpdated(c, h.svc.IncrementDrops)
}

func (h *GoalHandler) DecrementDrops(c *gin.Context) {
	h.respondUpdated(c, h.svc.DecrementDrops)
}

func (h *GoalHandler) ToggleDone(c *gin.Context) {
	h.respondUpdated(c, h.svc.ToggleDone)
}

func (h *GoalHandler) respondUpdated(c *gin.Context, update func(context.Context, string) (*repository.Goal, error)) {
	goal, err := update(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	if err := h.svc.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
