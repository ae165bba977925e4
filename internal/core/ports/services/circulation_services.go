package services

import (
	"context"

	"github.com/hnnsly/library-core/internal/core/domain"
	"github.com/hnnsly/library-core/internal/dto"
)

// CirculationSvcFacade is the loan lifecycle engine: issue, renew, return.
// Every refusal is one of the apperrors sentinels; no operation is retried
// by the engine itself.
type CirculationSvcFacade interface {
	// IssueLoan opens a loan for an active reader against an available
	// copy. Refuses with ErrReaderInactive, ErrReaderOverLimit,
	// ErrUnpaidFinesBlock or ErrCopyUnavailable.
	IssueLoan(ctx context.Context, req dto.IssueLoanRequest, librarianID string) (*domain.Loan, error)

	// RenewLoan extends an open loan's due date. Refuses with
	// ErrLoanNotOpen, ErrLoanOverdue or ErrRenewalLimitReached.
	RenewLoan(ctx context.Context, loanID string, req dto.RenewLoanRequest, librarianID string) (*domain.Loan, error)

	// ReturnLoan closes an open loan, assesses late and damage fees, and
	// releases the copy. The second call on a loan fails with
	// ErrAlreadyReturned and never records a second fine.
	ReturnLoan(ctx context.Context, loanID string, req dto.ReturnLoanRequest, librarianID string) (*domain.Loan, *domain.Fine, error)

	// GetLoanByID retrieves a loan.
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListOpenLoansByReader retrieves a reader's open loans.
	ListOpenLoansByReader(ctx context.Context, readerID string) ([]domain.Loan, error)

	// ListBooksToReturn retrieves open loans ordered by due date.
	ListBooksToReturn(ctx context.Context, limit int, offset int) ([]domain.Loan, error)

	// ListOverdueLoans retrieves open loans already past due.
	ListOverdueLoans(ctx context.Context, limit int, offset int) ([]domain.Loan, error)

	// ListRenewals retrieves the renewal history of one loan.
	ListRenewals(ctx context.Context, loanID string) ([]domain.LoanRenewal, error)
}
