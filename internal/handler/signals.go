package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signalx/internal/models"
	"signalx/internal/service"
)

type SignalHandler struct {
	Service *service.SignalService
	Logger  *zap.Logger
}

func (h *SignalHandler) Register(r *gin.Engine) {
	group := r.Group("/api/signals")
	group.GET("", h.list)
	group.POST("", h.create)
	group.GET("/active", h.listActive)
	group.POST("/:id/resolve", h.resolve)
}

func (h *SignalHandler) list(c *gin.Context) {
	items, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if items == nil {
		items = []models.Signal{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *SignalHandler) listActive(c *gin.Context) {
	items, err := h.Service.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if items == nil {
		items = []models.Signal{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *SignalHandler) create(c *gin.Context) {
	var in service.CreateSignalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "signal": item})
}

func (h *SignalHandler) resolve(c *gin.Context) {
	var in struct {
		Result string `json:"result"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := h.Service.Resolve(c.Request.Context(), c.Param("id"), in.Result); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
