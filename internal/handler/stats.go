package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signalx/internal/service"
)

type StatsHandler struct {
	Service *service.StatsService
	Logger  *zap.Logger
}

func (h *StatsHandler) Register(r *gin.Engine) {
	r.GET("/api/stats", h.overview)
}

func (h *StatsHandler) overview(c *gin.Context) {
	stats, err := h.Service.Overview(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
