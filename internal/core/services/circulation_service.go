package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/platform/config"
)

// circulationService implements the CirculationSvcFacade interface. It
// owns the loan lifecycle and delegates copy status transitions to the
// catalog service, whose compare-and-set is the concurrency gate: when
// two librarians race to issue the same copy, exactly one MarkIssued
// succeeds and the loser gets ErrCopyUnavailable.
type circulationService struct {
	BaseService
	catalog    portssvc.CatalogSvcFacade
	loanRepo   portsrepo.LoanRepositoryFacade
	readerRepo portsrepo.ReaderReader
	fineRepo   portsrepo.FineRepositoryFacade
	policy     config.CirculationPolicy
	now        func() time.Time
}

// CirculationServiceOption configures optional parameters of the
// circulation service.
type CirculationServiceOption func(*circulationService)

// WithCirculationClock overrides the clock. Used by tests.
func WithCirculationClock(now func() time.Time) CirculationServiceOption {
	return func(s *circulationService) {
		s.now = now
	}
}

// NewCirculationService creates a new circulation service.
func NewCirculationService(
	catalog portssvc.CatalogSvcFacade,
	loanRepo portsrepo.LoanRepositoryFacade,
	readerRepo portsrepo.ReaderReader,
	fineRepo portsrepo.FineRepositoryFacade,
	policy config.CirculationPolicy,
	opts ...CirculationServiceOption,
) portssvc.CirculationSvcFacade {
	s := &circulationService{
		catalog:    catalog,
		loanRepo:   loanRepo,
		readerRepo: readerRepo,
		fineRepo:   fineRepo,
		policy:     policy,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure circulationService implements the CirculationSvcFacade interface
var _ portssvc.CirculationSvcFacade = (*circulationService)(nil)

func (s *circulationService) IssueLoan(ctx context.Context, req dto.IssueLoanRequest, librarianID string) (*domain.Loan, error) {
	copy, err := s.resolveCopy(ctx, req)
	if err != nil {
		return nil, err
	}

	reader, err := s.readerRepo.FindReaderByID(ctx, req.ReaderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("reader %s: %w", req.ReaderID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to find reader for loan", slog.String("reader_id", req.ReaderID))
		return nil, err
	}
	if !reader.IsActive {
		return nil, fmt.Errorf("reader %s: %w", reader.ReaderID, apperrors.ErrReaderInactive)
	}

	openCount, err := s.loanRepo.CountOpenLoansByReader(ctx, reader.ReaderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count open loans", slog.String("reader_id", reader.ReaderID))
		return nil, err
	}
	if openCount >= s.policy.MaxOpenLoans {
		return nil, fmt.Errorf("reader %s holds %d open loans: %w", reader.ReaderID, openCount, apperrors.ErrReaderOverLimit)
	}

	// Fast refusal before the fines lookup; MarkIssued below is still the
	// authoritative check under concurrency.
	if copy.Status != domain.CopyAvailable {
		return nil, fmt.Errorf("copy %s is %s: %w", copy.CopyID, copy.Status, apperrors.ErrCopyUnavailable)
	}

	outstanding, err := s.fineRepo.OutstandingTotal(ctx, reader.ReaderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum outstanding fines", slog.String("reader_id", reader.ReaderID))
		return nil, err
	}
	if outstanding > s.policy.UnpaidFinesBlockMinor {
		return nil, fmt.Errorf("reader %s owes %d: %w", reader.ReaderID, outstanding, apperrors.ErrUnpaidFinesBlock)
	}

	issueDate := s.now()
	if !req.DueDate.After(issueDate) {
		return nil, fmt.Errorf("due date must be in the future: %w", apperrors.ErrValidation)
	}

	if err := s.catalog.MarkIssued(ctx, copy.CopyID, librarianID); err != nil {
		return nil, err
	}

	loan := domain.Loan{
		LoanID:      uuid.NewString(),
		ReaderID:    reader.ReaderID,
		CopyID:      copy.CopyID,
		IssueDate:   issueDate,
		DueDate:     req.DueDate,
		RenewCount:  0,
		LibrarianID: librarianID,
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "Failed to save loan", slog.String("loan_id", loan.LoanID))
		// Release the copy we just took; losing this rollback leaves the
		// copy issued without a loan, which the logs must show.
		if relErr := s.catalog.MarkReturned(ctx, copy.CopyID, domain.ConditionGood, librarianID); relErr != nil {
			s.LogError(ctx, relErr, "Failed to release copy after loan save failure", slog.String("copy_id", copy.CopyID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Loan issued",
		slog.String("loan_id", loan.LoanID),
		slog.String("reader_id", loan.ReaderID),
		slog.String("copy_id", loan.CopyID),
		slog.Time("due_date", loan.DueDate))
	return &loan, nil
}

// resolveCopy finds the copy addressed by the request, by id or by the
// physical copy code scanned at the desk.
func (s *circulationService) resolveCopy(ctx context.Context, req dto.IssueLoanRequest) (*domain.BookCopy, error) {
	if req.CopyID != "" {
		return s.catalog.GetCopyByID(ctx, req.CopyID)
	}
	return s.catalog.GetCopyByCode(ctx, req.CopyCode)
}

func (s *circulationService) RenewLoan(ctx context.Context, loanID string, req dto.RenewLoanRequest, librarianID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan for renewal", slog.String("loan_id", loanID))
		}
		return nil, err
	}

	if !loan.IsOpen() {
		return nil, fmt.Errorf("loan %s: %w", loanID, apperrors.ErrLoanNotOpen)
	}
	if loan.IsOverdue(s.now()) {
		return nil, fmt.Errorf("loan %s was due %s: %w", loanID, loan.DueDate.Format(time.RFC3339), apperrors.ErrLoanOverdue)
	}
	if loan.RenewCount >= s.policy.MaxRenewals {
		return nil, fmt.Errorf("loan %s renewed %d times: %w", loanID, loan.RenewCount, apperrors.ErrRenewalLimitReached)
	}
	if !req.NewDueDate.After(loan.DueDate) {
		return nil, fmt.Errorf("new due date must be after the current one: %w", apperrors.ErrValidation)
	}

	renewal := domain.LoanRenewal{
		RenewalID:   uuid.NewString(),
		LoanID:      loanID,
		OldDueDate:  loan.DueDate,
		NewDueDate:  req.NewDueDate,
		RenewedAt:   s.now(),
		LibrarianID: librarianID,
	}

	if err := s.loanRepo.RenewLoan(ctx, renewal); err != nil {
		if !errors.Is(err, apperrors.ErrLoanNotOpen) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to renew loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Loan renewed",
		slog.String("loan_id", loanID),
		slog.Time("new_due_date", req.NewDueDate))
	return s.loanRepo.FindLoanByID(ctx, loanID)
}

func (s *circulationService) ReturnLoan(ctx context.Context, loanID string, req dto.ReturnLoanRequest, librarianID string) (*domain.Loan, *domain.Fine, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan for return", slog.String("loan_id", loanID))
		}
		return nil, nil, err
	}
	if !loan.IsOpen() {
		return nil, nil, fmt.Errorf("loan %s: %w", loanID, apperrors.ErrAlreadyReturned)
	}

	returnTime := s.now()
	if req.ReturnTime != nil {
		returnTime = *req.ReturnTime
	}

	// CloseLoan is the idempotence gate: of two concurrent returns only
	// one passes, so at most one fine is ever assessed per loan.
	if err := s.loanRepo.CloseLoan(ctx, loanID, returnTime); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyReturned) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to close loan", slog.String("loan_id", loanID))
		}
		return nil, nil, err
	}

	// An open loan implies an issued copy, so this transition should not
	// fail. If it does the copy was mutated outside circulation; record it
	// and keep going, the loan is already closed.
	if err := s.catalog.MarkReturned(ctx, loan.CopyID, req.Condition, librarianID); err != nil {
		s.LogError(ctx, err, "Failed to release copy on return", slog.String("copy_id", loan.CopyID))
	}

	loan.ReturnDate = &returnTime

	var fine *domain.Fine
	amount, reason := domain.AssessReturn(loan.DaysLate(returnTime), req.Condition, s.policy.DailyLateFineMinor, s.policy.DamageFineMinor)
	if amount > 0 {
		f := domain.Fine{
			FineID:   uuid.NewString(),
			ReaderID: loan.ReaderID,
			LoanID:   &loan.LoanID,
			Amount:   amount,
			Reason:   reason,
			FineDate: returnTime,
			IsPaid:   false,
		}
		if err := s.fineRepo.SaveFine(ctx, f); err != nil {
			s.LogError(ctx, err, "Failed to save fine at return", slog.String("loan_id", loanID))
			return nil, nil, err
		}
		fine = &f
	}

	s.LogInfo(ctx, "Loan returned",
		slog.String("loan_id", loanID),
		slog.String("copy_id", loan.CopyID),
		slog.String("condition", string(req.Condition)),
		slog.Bool("fine_assessed", fine != nil))
	return loan, fine, nil
}

func (s *circulationService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan by ID", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	return loan, nil
}

func (s *circulationService) ListOpenLoansByReader(ctx context.Context, readerID string) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListOpenLoansByReader(ctx, readerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open loans", slog.String("reader_id", readerID))
		return nil, err
	}
	if loans == nil {
		return []domain.Loan{}, nil
	}
	return loans, nil
}

func (s *circulationService) ListBooksToReturn(ctx context.Context, limit int, offset int) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListOpenLoans(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open loans")
		return nil, fmt.Errorf("failed to list open loans: %w", err)
	}
	if loans == nil {
		return []domain.Loan{}, nil
	}
	return loans, nil
}

func (s *circulationService) ListOverdueLoans(ctx context.Context, limit int, offset int) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListOverdueLoans(ctx, s.now(), limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list overdue loans")
		return nil, fmt.Errorf("failed to list overdue loans: %w", err)
	}
	if loans == nil {
		return []domain.Loan{}, nil
	}
	return loans, nil
}

func (s *circulationService) ListRenewals(ctx context.Context, loanID string) ([]domain.LoanRenewal, error) {
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}
	renewals, err := s.loanRepo.ListRenewalsByLoan(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list renewals", slog.String("loan_id", loanID))
		return nil, err
	}
	if renewals == nil {
		return []domain.LoanRenewal{}, nil
	}
	return renewals, nil
}
