package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/dto"
	"github.com/nortis-app/nortis-backend/internal/middleware"
)

// insightFallback is returned when the text generator is unavailable.
const insightFallback = "Não foi possível gerar a análise no momento."

// insightHandler serves the generated financial commentary.
type insightHandler struct {
	insightService portssvc.InsightSvcFacade
}

// registerInsightRoutes registers the insight route.
func registerInsightRoutes(rg *gin.RouterGroup, insightService portssvc.InsightSvcFacade) {
	h := &insightHandler{insightService: insightService}
	rg.GET("/insight", h.getInsight)
}

// getInsight godoc
// @Summary Get financial insight
// @Description Generates a short natural-language comment on the current period's finances.
// @Tags insight
// @Produce json
// @Success 200 {object} dto.InsightResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} dto.InsightResponse "Fallback message when generation fails"
// @Security BearerAuth
// @Router /insight [get]
func (h *insightHandler) getInsight(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	insight, err := h.insightService.GenerateInsight(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to generate insight", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.InsightResponse{Insight: insightFallback})
		return
	}

	c.JSON(http.StatusOK, dto.InsightResponse{Insight: insight})
}
