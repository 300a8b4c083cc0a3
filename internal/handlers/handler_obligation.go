package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nortis-app/nortis-backend/internal/apperrors"
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/dto"
	"github.com/nortis-app/nortis-backend/internal/middleware"
)

// obligationHandler handles CRUD requests on the obligation ledger.
type obligationHandler struct {
	ledger portssvc.LedgerSvcFacade
}

// registerObligationRoutes registers all obligation routes.
func registerObligationRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade) {
	h := &obligationHandler{ledger: ledger}

	obligations := rg.Group("/obligations")
	{
		obligations.POST("", h.createObligation)
		obligations.GET("/:id", h.getObligation)
		obligations.PUT("/:id", h.updateObligation)
		obligations.PUT("/:id/pay", h.payObligation)
		obligations.DELETE("/:id", h.deleteObligation)
	}
}

// createObligation godoc
// @Summary Add an obligation
// @Description Creates a one-off or recurring obligation. The value is a localized currency string; malformed values coerce to zero.
// @Tags obligations
// @Accept json
// @Produce json
// @Param obligation body dto.CreateObligationRequest true "Obligation details"
// @Success 201 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations [post]
func (h *obligationHandler) createObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	obligation, err := h.ledger.AddObligation(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to add obligation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add obligation"})
		return
	}

	logger.Info("Obligation created", slog.String("obligation_id", obligation.ObligationID))
	c.JSON(http.StatusCreated, dto.ToObligationResponse(obligation))
}

// getObligation godoc
// @Summary Get an obligation
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	obligation, err := h.ledger.GetObligation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Obligation not found"})
			return
		}
		logger.Error("Failed to get obligation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve obligation"})
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// updateObligation godoc
// @Summary Edit an obligation
// @Description Overwrites name, amount and anchor date. Recurrence and payment history are untouched.
// @Tags obligations
// @Accept json
// @Produce json
// @Param id path string true "Obligation ID"
// @Param obligation body dto.UpdateObligationRequest true "New details"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id} [put]
func (h *obligationHandler) updateObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	obligation, err := h.ledger.EditObligation(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Obligation not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to edit obligation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to edit obligation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// payObligation godoc
// @Summary Mark an obligation paid
// @Description Settles a one-off obligation, or settles a recurring obligation for the given period (current period when omitted). Idempotent for recurring obligations.
// @Tags obligations
// @Accept json
// @Produce json
// @Param id path string true "Obligation ID"
// @Param payment body dto.PayObligationRequest false "Period being settled (recurring only)"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id}/pay [put]
func (h *obligationHandler) payObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.PayObligationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
			return
		}
	}

	var period *domain.Period
	if req.Period != nil {
		p, err := domain.ParsePeriod(*req.Period)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		period = &p
	}

	obligation, err := h.ledger.MarkObligationPaid(c.Request.Context(), userID, c.Param("id"), period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Obligation not found"})
			return
		}
		logger.Error("Failed to mark obligation paid", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to mark obligation paid"})
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation))
}

// deleteObligation godoc
// @Summary Delete an obligation
// @Description Permanently removes the obligation and its payment history. Irreversible.
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id} [delete]
func (h *obligationHandler) deleteObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.ledger.DeleteObligation(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Obligation not found"})
			return
		}
		logger.Error("Failed to delete obligation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete obligation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Obligation removed permanently"})
}
