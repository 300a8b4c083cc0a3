package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nortis-app/nortis-backend/internal/apperrors"
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/dto"
	"github.com/nortis-app/nortis-backend/internal/middleware"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetObligation(ctx context.Context, userID string, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, userID, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockLedgerService) ProjectForPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.ProjectionEntry, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProjectionEntry), args.Error(1)
}

func (m *MockLedgerService) ComputeSummary(ctx context.Context, userID string, period domain.Period) (domain.Summary, error) {
	args := m.Called(ctx, userID, period)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *MockLedgerService) AddObligation(ctx context.Context, userID string, req dto.CreateObligationRequest) (*domain.Obligation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockLedgerService) EditObligation(ctx context.Context, userID string, obligationID string, req dto.UpdateObligationRequest) (*domain.Obligation, error) {
	args := m.Called(ctx, userID, obligationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockLedgerService) MarkObligationPaid(ctx context.Context, userID string, obligationID string, period *domain.Period) (*domain.Obligation, error) {
	args := m.Called(ctx, userID, obligationID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockLedgerService) DeleteObligation(ctx context.Context, userID string, obligationID string) error {
	args := m.Called(ctx, userID, obligationID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type ObligationHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockLedger *MockLedgerService
	jwtSecret  string
	userID     string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ObligationHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "nortis-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ObligationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerCustomValidators()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.mockLedger = new(MockLedgerService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	registerObligationRoutes(v1, suite.mockLedger)
}

func (suite *ObligationHandlerTestSuite) authedRequest(method, url, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ObligationHandlerTestSuite) TestCreateObligation_Success() {
	created := &domain.Obligation{
		ObligationID: uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Internet",
		Amount:       decimal.NewFromFloat(99.90),
		AnchorDate:   time.Date(2023, time.September, 10, 0, 0, 0, 0, time.UTC),
		IsRecurring:  true,
		PaidPeriods:  []string{},
	}

	suite.mockLedger.On("AddObligation", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.CreateObligationRequest) bool {
		return req.Description == "Internet" && req.Value == "R$ 99,90" && req.IsRecurring
	})).Return(created, nil).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/obligations",
		`{"description":"Internet","value":"R$ 99,90","dueDate":"2023-09-10","isRecurring":true}`)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ObligationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ObligationID, resp.ObligationID)
	suite.Equal("R$ 99,90", resp.Amount)
	suite.Equal("2023-09-10", resp.AnchorDate)
	suite.True(resp.IsRecurring)

	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestCreateObligation_MissingBodyFields() {
	w := suite.authedRequest(http.MethodPost, "/api/v1/obligations", `{"value":"100"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "AddObligation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ObligationHandlerTestSuite) TestCreateObligation_NoToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/obligations",
		strings.NewReader(`{"description":"Internet","value":"100","dueDate":"2023-09-10"}`))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ObligationHandlerTestSuite) TestGetObligation_NotFound() {
	obligationID := uuid.NewString()

	suite.mockLedger.On("GetObligation", mock.Anything, suite.userID, obligationID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/obligations/"+obligationID, "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestPayObligation_WithPeriod() {
	obligationID := uuid.NewString()
	paid := &domain.Obligation{
		ObligationID: obligationID,
		UserID:       suite.userID,
		Name:         "Internet",
		IsRecurring:  true,
		PaidPeriods:  []string{"2023-11"},
	}
	wantPeriod := domain.Period{Year: 2023, Month: time.November}

	suite.mockLedger.On("MarkObligationPaid", mock.Anything, suite.userID, obligationID, &wantPeriod).Return(paid, nil).Once()

	w := suite.authedRequest(http.MethodPut, "/api/v1/obligations/"+obligationID+"/pay", `{"period":"2023-11"}`)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ObligationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.PaidPeriods, "2023-11")
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestPayObligation_BadPeriod() {
	obligationID := uuid.NewString()

	w := suite.authedRequest(http.MethodPut, "/api/v1/obligations/"+obligationID+"/pay", `{"period":"november"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "MarkObligationPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ObligationHandlerTestSuite) TestDeleteObligation_Success() {
	obligationID := uuid.NewString()

	suite.mockLedger.On("DeleteObligation", mock.Anything, suite.userID, obligationID).Return(nil).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/obligations/"+obligationID, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestDeleteObligation_NotFound() {
	obligationID := uuid.NewString()

	suite.mockLedger.On("DeleteObligation", mock.Anything, suite.userID, obligationID).Return(apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/obligations/"+obligationID, "")

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Test Suite ---
func TestObligationHandler(t *testing.T) {
	suite.Run(t, new(ObligationHandlerTestSuite))
}
