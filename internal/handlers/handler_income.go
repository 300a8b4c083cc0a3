package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/dto"
	"github.com/nortis-app/nortis-backend/internal/middleware"
)

// incomeHandler handles the per-user income record.
type incomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
}

// registerIncomeRoutes registers the income routes.
func registerIncomeRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade) {
	h := &incomeHandler{incomeService: incomeService}

	income := rg.Group("/income")
	{
		income.GET("", h.getIncome)
		income.PUT("", h.updateIncome)
	}
}

// getIncome godoc
// @Summary Get income
// @Description Returns the user's income record. Users who never saved one get a zero-valued record.
// @Tags income
// @Produce json
// @Success 200 {object} dto.IncomeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /income [get]
func (h *incomeHandler) getIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	income, err := h.incomeService.GetIncome(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get income", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve income"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// updateIncome godoc
// @Summary Update income
// @Description Overwrites salary and stipend. Values are localized currency strings; malformed values coerce to zero.
// @Tags income
// @Accept json
// @Produce json
// @Param income body dto.UpdateIncomeRequest true "Income values"
// @Success 200 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /income [put]
func (h *incomeHandler) updateIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	income, err := h.incomeService.UpdateIncome(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to update income", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update income"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}
