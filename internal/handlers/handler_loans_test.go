package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/middleware"
)

// --- Mock CirculationService ---
type MockCirculationService struct {
	mock.Mock
}

func (m *MockCirculationService) IssueLoan(ctx context.Context, req dto.IssueLoanRequest, librarianID string) (*domain.Loan, error) {
	args := m.Called(ctx, req, librarianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockCirculationService) RenewLoan(ctx context.Context, loanID string, req dto.RenewLoanRequest, librarianID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, req, librarianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockCirculationService) ReturnLoan(ctx context.Context, loanID string, req dto.ReturnLoanRequest, librarianID string) (*domain.Loan, *domain.Fine, error) {
	args := m.Called(ctx, loanID, req, librarianID)
	var loan *domain.Loan
	var fine *domain.Fine
	if args.Get(0) != nil {
		loan = args.Get(0).(*domain.Loan)
	}
	if args.Get(1) != nil {
		fine = args.Get(1).(*domain.Fine)
	}
	return loan, fine, args.Error(2)
}

func (m *MockCirculationService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockCirculationService) ListOpenLoansByReader(ctx context.Context, readerID string) ([]domain.Loan, error) {
	args := m.Called(ctx, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockCirculationService) ListBooksToReturn(ctx context.Context, limit int, offset int) ([]domain.Loan, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockCirculationService) ListOverdueLoans(ctx context.Context, limit int, offset int) ([]domain.Loan, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockCirculationService) ListRenewals(ctx context.Context, loanID string) ([]domain.LoanRenewal, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanRenewal), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.CirculationSvcFacade = (*MockCirculationService)(nil)

// --- Test Suite ---
type LoanHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCirculation *MockCirculationService
	jwtSecret       string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LoanHandlerTestSuite) generateTestToken(librarianID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "library-core-test",
		Subject:   librarianID,
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

func (suite *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCirculation = new(MockCirculationService)

	v1 := suite.router.Group("/api/v1")
	registerLoanRoutes(v1, suite.mockCirculation)
}

func (suite *LoanHandlerTestSuite) doJSON(method, url string, body any, librarianID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			suite.FailNow("Failed to encode request body", err.Error())
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(librarianID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LoanHandlerTestSuite) TestIssueLoan_Success() {
	librarianID := uuid.NewString()
	dueDate := time.Now().Add(14 * 24 * time.Hour).UTC().Truncate(time.Second)
	loan := &domain.Loan{
		LoanID:      uuid.NewString(),
		ReaderID:    uuid.NewString(),
		CopyID:      uuid.NewString(),
		IssueDate:   time.Now().UTC().Truncate(time.Second),
		DueDate:     dueDate,
		LibrarianID: librarianID,
	}

	suite.mockCirculation.On("IssueLoan",
		mock.Anything,
		mock.MatchedBy(func(r dto.IssueLoanRequest) bool {
			return r.ReaderID == loan.ReaderID && r.CopyID == loan.CopyID
		}),
		librarianID,
	).Return(loan, nil).Once()

	body := dto.IssueLoanRequest{ReaderID: loan.ReaderID, CopyID: loan.CopyID, DueDate: dueDate}
	w := suite.doJSON(http.MethodPost, "/api/v1/loans", body, librarianID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.LoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(loan.LoanID, resp.LoanID)
	suite.Equal(0, resp.RenewCount)
	suite.mockCirculation.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestIssueLoan_CopyUnavailableMapsToConflict() {
	librarianID := uuid.NewString()

	suite.mockCirculation.On("IssueLoan", mock.Anything, mock.AnythingOfType("dto.IssueLoanRequest"), librarianID).
		Return(nil, apperrors.ErrCopyUnavailable).Once()

	body := dto.IssueLoanRequest{
		ReaderID: uuid.NewString(),
		CopyID:   uuid.NewString(),
		DueDate:  time.Now().Add(14 * 24 * time.Hour),
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/loans", body, librarianID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LoanHandlerTestSuite) TestIssueLoan_MissingCopyReference() {
	librarianID := uuid.NewString()

	body := map[string]any{
		"readerID": uuid.NewString(),
		"dueDate":  time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/loans", body, librarianID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCirculation.AssertNotCalled(suite.T(), "IssueLoan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanHandlerTestSuite) TestIssueLoan_Unauthenticated() {
	body := dto.IssueLoanRequest{
		ReaderID: uuid.NewString(),
		CopyID:   uuid.NewString(),
		DueDate:  time.Now().Add(14 * 24 * time.Hour),
	}
	var buf bytes.Buffer
	suite.NoError(json.NewEncoder(&buf).Encode(body))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/loans", &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCirculation.AssertNotCalled(suite.T(), "IssueLoan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanHandlerTestSuite) TestReturnLoan_WithFine() {
	librarianID := uuid.NewString()
	loanID := uuid.NewString()
	returnDate := time.Now().UTC().Truncate(time.Second)
	loan := &domain.Loan{
		LoanID:     loanID,
		ReaderID:   uuid.NewString(),
		CopyID:     uuid.NewString(),
		DueDate:    returnDate.Add(-6 * 24 * time.Hour),
		ReturnDate: &returnDate,
	}
	fine := &domain.Fine{
		FineID:   uuid.NewString(),
		ReaderID: loan.ReaderID,
		LoanID:   &loanID,
		Amount:   6000,
		Reason:   "returned 6 day(s) late",
		FineDate: returnDate,
	}

	suite.mockCirculation.On("ReturnLoan",
		mock.Anything,
		loanID,
		mock.MatchedBy(func(r dto.ReturnLoanRequest) bool { return r.Condition == domain.ConditionGood }),
		librarianID,
	).Return(loan, fine, nil).Once()

	body := dto.ReturnLoanRequest{Condition: domain.ConditionGood}
	w := suite.doJSON(http.MethodPost, "/api/v1/loans/"+loanID+"/return", body, librarianID)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ReturnLoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(loanID, resp.Loan.LoanID)
	suite.Require().NotNil(resp.Fine)
	suite.Equal(int64(6000), resp.Fine.Amount)
	suite.Equal("60.00", resp.Fine.AmountFormatted)
	suite.mockCirculation.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestReturnLoan_AlreadyReturned() {
	librarianID := uuid.NewString()
	loanID := uuid.NewString()

	suite.mockCirculation.On("ReturnLoan", mock.Anything, loanID, mock.AnythingOfType("dto.ReturnLoanRequest"), librarianID).
		Return(nil, nil, apperrors.ErrAlreadyReturned).Once()

	body := dto.ReturnLoanRequest{Condition: domain.ConditionGood}
	w := suite.doJSON(http.MethodPost, "/api/v1/loans/"+loanID+"/return", body, librarianID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LoanHandlerTestSuite) TestRenewLoan_LimitReached() {
	librarianID := uuid.NewString()
	loanID := uuid.NewString()

	suite.mockCirculation.On("RenewLoan", mock.Anything, loanID, mock.AnythingOfType("dto.RenewLoanRequest"), librarianID).
		Return(nil, apperrors.ErrRenewalLimitReached).Once()

	body := dto.RenewLoanRequest{NewDueDate: time.Now().Add(28 * 24 * time.Hour)}
	w := suite.doJSON(http.MethodPost, "/api/v1/loans/"+loanID+"/renew", body, librarianID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LoanHandlerTestSuite) TestGetLoanByID_NotFound() {
	librarianID := uuid.NewString()
	loanID := uuid.NewString()

	suite.mockCirculation.On("GetLoanByID", mock.Anything, loanID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/loans/"+loanID, nil, librarianID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LoanHandlerTestSuite) TestListOverdueLoans() {
	librarianID := uuid.NewString()
	loans := []domain.Loan{
		{LoanID: uuid.NewString(), DueDate: time.Now().Add(-48 * time.Hour)},
		{LoanID: uuid.NewString(), DueDate: time.Now().Add(-24 * time.Hour)},
	}

	suite.mockCirculation.On("ListOverdueLoans", mock.Anything, 20, 0).Return(loans, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/loans/overdue", nil, librarianID)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.LoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal(loans[0].LoanID, resp[0].LoanID)
	suite.mockCirculation.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestLoanHandler(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}
