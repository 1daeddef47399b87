package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signalx/internal/models"
	"signalx/internal/service"
)

type StrategyHandler struct {
	Service *service.StrategyService
	Logger  *zap.Logger
}

func (h *StrategyHandler) Register(r *gin.Engine) {
	group := r.Group("/api/strategies")
	group.GET("", h.list)
	group.POST("", h.create)
	group.DELETE("", h.deleteAll)
	group.DELETE("/:id", h.delete)
}

func (h *StrategyHandler) list(c *gin.Context) {
	items, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if items == nil {
		items = []models.Strategy{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *StrategyHandler) create(c *gin.Context) {
	var in service.CreateStrategyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "strategy": item})
}

func (h *StrategyHandler) delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *StrategyHandler) deleteAll(c *gin.Context) {
	if err := h.Service.DeleteAll(c.Request.Context()); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
