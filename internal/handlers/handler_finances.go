package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/dto"
	"github.com/nortis-app/nortis-backend/internal/middleware"
)

// financesHandler assembles the combined period view: income, projected
// obligations and summary.
type financesHandler struct {
	incomeService portssvc.IncomeSvcFacade
	ledger        portssvc.LedgerSvcFacade
	loc           *time.Location
}

// registerFinancesRoutes registers the finances routes.
func registerFinancesRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade, ledger portssvc.LedgerSvcFacade, loc *time.Location) {
	h := &financesHandler{incomeService: incomeService, ledger: ledger, loc: loc}

	finances := rg.Group("/finances")
	{
		finances.GET("", h.getFinances)
		finances.GET("/history", h.getFinancesHistory)
	}
}

// getFinances godoc
// @Summary Get current finances
// @Description Returns income, projected obligations and summary for the current calendar month.
// @Tags finances
// @Produce json
// @Success 200 {object} dto.FinancesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /finances [get]
func (h *financesHandler) getFinances(c *gin.Context) {
	period := domain.PeriodOf(time.Now().In(h.loc))
	h.respondForPeriod(c, period)
}

// getFinancesHistory godoc
// @Summary Get finances for a past period
// @Description Returns the period view for any calendar month, past or future.
// @Tags finances
// @Produce json
// @Param period query string true "Period in YYYY-MM format" example(2023-11)
// @Success 200 {object} dto.FinancesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /finances/history [get]
func (h *financesHandler) getFinancesHistory(c *gin.Context) {
	var params dto.ListFinancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period: expected YYYY-MM"})
		return
	}

	period, err := domain.ParsePeriod(params.Period)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.respondForPeriod(c, period)
}

func (h *financesHandler) respondForPeriod(c *gin.Context, period domain.Period) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	income, err := h.incomeService.GetIncome(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get income", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve finances"})
		return
	}

	entries, err := h.ledger.ProjectForPeriod(c.Request.Context(), userID, period)
	if err != nil {
		logger.Error("Failed to project obligations", slog.String("error", err.Error()), slog.String("period", period.String()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve finances"})
		return
	}

	summary := domain.Summarize(income, entries)

	c.JSON(http.StatusOK, dto.ToFinancesResponse(period, income, entries, summary))
}
