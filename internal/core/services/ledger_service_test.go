package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nortis-app/nortis-backend/internal/apperrors"
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/core/services"
	"github.com/nortis-app/nortis-backend/internal/dto"
)

// --- Mock ObligationRepository ---
type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, userID string, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, userID, obligationID)
	var obligation *domain.Obligation
	if args.Get(0) != nil {
		obligation = args.Get(0).(*domain.Obligation)
	}
	return obligation, args.Error(1)
}

func (m *MockObligationRepository) FindObligationsByUser(ctx context.Context, userID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, userID)
	var obligations []domain.Obligation
	if args.Get(0) != nil {
		obligations = args.Get(0).([]domain.Obligation)
	}
	return obligations, args.Error(1)
}

func (m *MockObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) MarkPaid(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) MarkPeriodPaid(ctx context.Context, userID string, obligationID string, period domain.Period) error {
	args := m.Called(ctx, userID, obligationID, period)
	return args.Error(0)
}

func (m *MockObligationRepository) DeleteObligation(ctx context.Context, userID string, obligationID string) error {
	args := m.Called(ctx, userID, obligationID)
	return args.Error(0)
}

// --- Mock IncomeRepository ---
type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) FindIncomeByUser(ctx context.Context, userID string) (*domain.Income, error) {
	args := m.Called(ctx, userID)
	var income *domain.Income
	if args.Get(0) != nil {
		income = args.Get(0).(*domain.Income)
	}
	return income, args.Error(1)
}

func (m *MockIncomeRepository) UpsertIncome(ctx context.Context, income domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockObligationRepo *MockObligationRepository
	mockIncomeRepo     *MockIncomeRepository
	service            portssvc.LedgerSvcFacade
	userID             string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockObligationRepo = new(MockObligationRepository)
	suite.mockIncomeRepo = new(MockIncomeRepository)
	suite.service = services.NewLedgerService(suite.mockObligationRepo, suite.mockIncomeRepo, time.UTC)
	suite.userID = uuid.NewString()
}

// --- AddObligation Tests ---

func (suite *LedgerServiceTestSuite) TestAddObligation_Success() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description: "Internet",
		Value:       "R$ 99,90",
		DueDate:     "2023-09-10",
		IsRecurring: true,
	}

	suite.mockObligationRepo.On("SaveObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.UserID == suite.userID &&
			o.Name == "Internet" &&
			o.Amount.Equal(decimal.NewFromFloat(99.90)) &&
			o.AnchorDate.Equal(time.Date(2023, time.September, 10, 0, 0, 0, 0, time.UTC)) &&
			o.IsRecurring &&
			!o.Paid &&
			len(o.PaidPeriods) == 0
	})).Return(nil).Once()

	obligation, err := suite.service.AddObligation(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(obligation)
	suite.NotEmpty(obligation.ObligationID)
	suite.NotNil(obligation.PaidPeriods)
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAddObligation_MalformedAmountCoercesToZero() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{
		Description: "Misc",
		Value:       "not a number",
		DueDate:     "2023-09-10",
	}

	suite.mockObligationRepo.On("SaveObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Amount.Equal(decimal.Zero)
	})).Return(nil).Once()

	obligation, err := suite.service.AddObligation(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(obligation.Amount.IsZero())
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAddObligation_MissingName() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{Value: "100", DueDate: "2023-09-10"}

	obligation, err := suite.service.AddObligation(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(obligation)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "SaveObligation", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAddObligation_MissingAnchorDate() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{Description: "Internet", Value: "100"}

	obligation, err := suite.service.AddObligation(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(obligation)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAddObligation_BadAnchorDate() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{Description: "Internet", Value: "100", DueDate: "10/09/2023"}

	obligation, err := suite.service.AddObligation(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(obligation)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAddObligation_SaveError() {
	ctx := context.Background()
	req := dto.CreateObligationRequest{Description: "Internet", Value: "100", DueDate: "2023-09-10"}
	expectedErr := assert.AnError

	suite.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).Return(expectedErr).Once()

	obligation, err := suite.service.AddObligation(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(obligation)
	suite.ErrorIs(err, expectedErr)
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

// --- EditObligation Tests ---

func (suite *LedgerServiceTestSuite) TestEditObligation_Success() {
	ctx := context.Background()
	obligationID := uuid.NewString()
	existing := &domain.Obligation{
		ObligationID: obligationID,
		UserID:       suite.userID,
		Name:         "Internet",
		Amount:       decimal.NewFromFloat(99.90),
		AnchorDate:   time.Date(2023, time.September, 10, 0, 0, 0, 0, time.UTC),
		IsRecurring:  true,
		PaidPeriods:  []string{"2023-09"},
	}
	req := dto.UpdateObligationRequest{
		Description: "Internet fibra",
		Value:       "R$ 119,90",
		DueDate:     "2023-09-15",
	}

	suite.mockObligationRepo.On("FindObligationByID", ctx, suite.userID, obligationID).Return(existing, nil).Once()
	suite.mockObligationRepo.On("UpdateObligation", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Name == "Internet fibra" &&
			o.Amount.Equal(decimal.NewFromFloat(119.90)) &&
			o.AnchorDate.Day() == 15
	})).Return(nil).Once()

	obligation, err := suite.service.EditObligation(ctx, suite.userID, obligationID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(obligation)
	// recurrence and settled history survive the edit
	suite.True(obligation.IsRecurring)
	suite.Equal([]string{"2023-09"}, obligation.PaidPeriods)
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestEditObligation_NotFound() {
	ctx := context.Background()
	obligationID := uuid.NewString()
	req := dto.UpdateObligationRequest{Description: "Internet", Value: "100", DueDate: "2023-09-10"}

	suite.mockObligationRepo.On("FindObligationByID", ctx, suite.userID, obligationID).Return(nil, apperrors.ErrNotFound).Once()

	obligation, err := suite.service.EditObligation(ctx, suite.userID, obligationID, req)

	suite.Require().Error(err)
	suite.Nil(obligation)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "UpdateObligation", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestEditObligation_MissingName() {
	ctx := context.Background()
	req := dto.UpdateObligationRequest{Value: "100", DueDate: "2023-09-10"}

	obligation, err := suite.service.EditObligation(ctx, suite.userID, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(obligation)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "FindObligationByID", mock.Anything, mock.Anything, mock.Anything)
}

// --- MarkObligationPaid Tests ---

func (suite *LedgerServiceTestSuite) TestMarkObligationPaid_OneOff() {
	ctx := context.Background()
	obligationID := uuid.NewString()
	existing := &domain.Obligation{
		ObligationID: obligationID,
		UserID:       suite.userID,
		Name:         "Consulta médica",
		AnchorDate:   time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC),
	}

	suite.mockObligationRepo.On("FindObligationByID", ctx, suite.userID, obligationID).Return(existing, nil).Once()
	suite.mockObligationRepo.On("MarkPaid", ctx, mock.MatchedBy(func(o domain.Obligation) bool {
		return o.Paid && o.PaidOn != nil
	})).Return(nil).Once()

	obligation, err := suite.service.MarkObligationPaid(ctx, suite.userID, obligationID, nil)

	suite.Require().NoError(err)
	suite.True(obligation.Paid)
	suite.Require().NotNil(obligation.PaidOn)
	suite.mockObligationRepo.AssertExpectations(suite.T())
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "MarkPeriodPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestMarkObligationPaid_RecurringExplicitPeriod() {
	ctx := context.Background()
	obligationID := uuid.NewString()
	existing := &domain.Obligation{
		ObligationID: obligationID,
		UserID:       suite.userID,
		Name:         "Internet",
		AnchorDate:   time.Date(2023, time.September, 10, 0, 0, 0, 0, time.UTC),
		IsRecurring:  true,
		PaidPeriods:  []string{"2023-09"},
	}
	period := domain.Period{Year: 2023, Month: time.November}

	suite.mockObligationRepo.On("FindObligationByID", ctx, suite.userID, obligationID).Return(existing, nil).Once()
	suite.mockObligationRepo.On("MarkPeriodPaid", ctx, suite.userID, obligationID, period).Return(nil).Once()

	obligation, err := suite.service.MarkObligationPaid(ctx, suite.userID, obligationID, &period)

	suite.Require().NoError(err)
	suite.Contains(obligation.PaidPeriods, "2023-11")
	suite.False(obligation.Paid)
	suite.mockObligationRepo.AssertExpectations(suite.T())
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "MarkPaid", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestMarkObligationPaid_RecurringDefaultsToCurrentPeriod() {
	ctx := context.Background()
	obligationID := uuid.NewString()
	existing := &domain.Obligation{
		ObligationID: obligationID,
		UserID:       suite.userID,
		Name:         "Internet",
		AnchorDate:   time.Date(2023, time.September, 10, 0, 0, 0, 0, time.UTC),
		IsRecurring:  true,
		PaidPeriods:  []string{},
	}
	currentPeriod := domain.PeriodOf(time.Now().UTC())

	suite.mockObligationRepo.On("FindObligationByID", ctx, suite.userID, obligationID).Return(existing, nil).Once()
	suite.mockObligationRepo.On("MarkPeriodPaid", ctx, suite.userID, obligationID, currentPeriod).Return(nil).Once()

	obligation, err := suite.service.MarkObligationPaid(ctx, suite.userID, obligationID, nil)

	suite.Require().NoError(err)
	suite.Contains(obligation.PaidPeriods, currentPeriod.String())
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMarkObligationPaid_NotFound() {
	ctx := context.Background()
	obligationID := uuid.NewString()

	suite.mockObligationRepo.On("FindObligationByID", ctx, suite.userID, obligationID).Return(nil, apperrors.ErrNotFound).Once()

	obligation, err := suite.service.MarkObligationPaid(ctx, suite.userID, obligationID, nil)

	suite.Require().Error(err)
	suite.Nil(obligation)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteObligation Tests ---

func (suite *LedgerServiceTestSuite) TestDeleteObligation_Success() {
	ctx := context.Background()
	obligationID := uuid.NewString()

	suite.mockObligationRepo.On("DeleteObligation", ctx, suite.userID, obligationID).Return(nil).Once()

	err := suite.service.DeleteObligation(ctx, suite.userID, obligationID)

	suite.Require().NoError(err)
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteObligation_NotFound() {
	ctx := context.Background()
	obligationID := uuid.NewString()

	suite.mockObligationRepo.On("DeleteObligation", ctx, suite.userID, obligationID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteObligation(ctx, suite.userID, obligationID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Projection Tests ---

func (suite *LedgerServiceTestSuite) TestProjectForPeriod_Success() {
	ctx := context.Background()
	period := domain.Period{Year: 2023, Month: time.November}
	obligations := []domain.Obligation{
		{
			ObligationID: "ob-1",
			UserID:       suite.userID,
			Name:         "Internet",
			Amount:       decimal.NewFromFloat(99.90),
			AnchorDate:   time.Date(2023, time.September, 10, 0, 0, 0, 0, time.UTC),
			IsRecurring:  true,
			PaidPeriods:  []string{"2023-09", "2023-10"},
		},
		{
			ObligationID: "ob-2",
			UserID:       suite.userID,
			Name:         "Presente",
			Amount:       decimal.NewFromInt(200),
			AnchorDate:   time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	suite.mockObligationRepo.On("FindObligationsByUser", ctx, suite.userID).Return(obligations, nil).Once()

	entries, err := suite.service.ProjectForPeriod(ctx, suite.userID, period)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("ob-1", entries[0].ObligationID)
	suite.Equal(time.Date(2023, time.November, 10, 0, 0, 0, 0, time.UTC), entries[0].DueDate)
	suite.False(entries[0].Paid)
	suite.mockObligationRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestProjectForPeriod_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockObligationRepo.On("FindObligationsByUser", ctx, suite.userID).Return(nil, expectedErr).Once()

	entries, err := suite.service.ProjectForPeriod(ctx, suite.userID, domain.Period{Year: 2023, Month: time.November})

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, expectedErr)
}

// --- ComputeSummary Tests ---

func (suite *LedgerServiceTestSuite) TestComputeSummary_Success() {
	ctx := context.Background()
	period := domain.Period{Year: 2023, Month: time.November}
	income := &domain.Income{
		UserID:  suite.userID,
		Salary:  decimal.NewFromInt(5000),
		Stipend: decimal.NewFromInt(500),
	}
	obligations := []domain.Obligation{
		{
			ObligationID: "rent",
			UserID:       suite.userID,
			Name:         "Aluguel",
			Amount:       decimal.NewFromInt(1500),
			AnchorDate:   time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC),
			IsRecurring:  true,
			PaidPeriods:  []string{"2023-11"},
		},
	}

	suite.mockObligationRepo.On("FindObligationsByUser", ctx, suite.userID).Return(obligations, nil).Once()
	suite.mockIncomeRepo.On("FindIncomeByUser", ctx, suite.userID).Return(income, nil).Once()

	summary, err := suite.service.ComputeSummary(ctx, suite.userID, period)

	suite.Require().NoError(err)
	suite.True(summary.TotalIncome.Equal(decimal.NewFromInt(5500)), "total income %s", summary.TotalIncome)
	suite.True(summary.TotalSettled.Equal(decimal.NewFromInt(1500)), "total settled %s", summary.TotalSettled)
	suite.True(summary.Balance.Equal(decimal.NewFromInt(4000)), "balance %s", summary.Balance)
	suite.mockObligationRepo.AssertExpectations(suite.T())
	suite.mockIncomeRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestComputeSummary_NoIncomeRecord() {
	ctx := context.Background()
	period := domain.Period{Year: 2023, Month: time.November}

	suite.mockObligationRepo.On("FindObligationsByUser", ctx, suite.userID).Return([]domain.Obligation{}, nil).Once()
	suite.mockIncomeRepo.On("FindIncomeByUser", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	summary, err := suite.service.ComputeSummary(ctx, suite.userID, period)

	suite.Require().NoError(err)
	suite.True(summary.TotalIncome.Equal(decimal.Zero))
	suite.True(summary.Balance.Equal(decimal.Zero))
}

// --- Run Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
