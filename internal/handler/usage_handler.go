package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sammyduzit/movieweb-app/internal/service"
)

// UsageHandler обрабатывает операторские запросы: состояние квоты
// и диагностика внешних API
type UsageHandler struct {
	triviaService *service.TriviaService
}

// NewUsageHandler создает обработчик операторских запросов
func NewUsageHandler(triviaService *service.TriviaService) *UsageHandler {
	return &UsageHandler{triviaService: triviaService}
}

// UsageStats обрабатывает GET /api/usage
func (h *UsageHandler) UsageStats(c *gin.Context) {
	respondData(c, http.StatusOK, h.triviaService.UsageStats())
}

// ResetUsage обрабатывает POST /api/usage/reset
func (h *UsageHandler) ResetUsage(c *gin.Context) {
	respondData(c, http.StatusOK, h.triviaService.ResetUsage())
}

// TestAPIs обрабатывает GET /api/test-apis. Диагностика основного
// провайдера тратит квоту как обычный вызов.
func (h *UsageHandler) TestAPIs(c *gin.Context) {
	respondData(c, http.StatusOK, h.triviaService.TestAPIs(c.Request.Context()))
}
