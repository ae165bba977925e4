package repositories

import (
	"context"
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
)

// LoanReader defines read operations for loans.
type LoanReader interface {
	// FindLoanByID retrieves a loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindOpenLoanByCopy retrieves the single open loan for a copy, if any.
	FindOpenLoanByCopy(ctx context.Context, copyID string) (*domain.Loan, error)

	// CountOpenLoansByReader counts the reader's currently open loans.
	CountOpenLoansByReader(ctx context.Context, readerID string) (int, error)

	// ListOpenLoansByReader retrieves the reader's open loans ordered by due date.
	ListOpenLoansByReader(ctx context.Context, readerID string) ([]domain.Loan, error)

	// ListOpenLoans retrieves open loans ordered by due date ascending,
	// i.e. the books-to-return work queue.
	ListOpenLoans(ctx context.Context, limit int, offset int) ([]domain.Loan, error)

	// ListOverdueLoans retrieves open loans whose due date is before asOf.
	ListOverdueLoans(ctx context.Context, asOf time.Time, limit int, offset int) ([]domain.Loan, error)

	// ListRenewalsByLoan retrieves the renewal history of one loan,
	// oldest first.
	ListRenewalsByLoan(ctx context.Context, loanID string) ([]domain.LoanRenewal, error)
}

// LoanWriter defines write operations for loans.
type LoanWriter interface {
	// SaveLoan persists a newly opened loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// RenewLoan extends the due date and increments the renewal count in a
	// single conditional update against the open loan, recording the
	// renewal audit row in the same transaction. Returns
	// apperrors.ErrLoanNotOpen if the loan is already closed and
	// apperrors.ErrNotFound if it does not exist.
	RenewLoan(ctx context.Context, renewal domain.LoanRenewal) error

	// CloseLoan sets the return date in a conditional update against
	// return_date IS NULL. Returns apperrors.ErrAlreadyReturned if the
	// loan is already closed and apperrors.ErrNotFound if it does not
	// exist. Of two concurrent calls, at most one can succeed.
	CloseLoan(ctx context.Context, loanID string, returnDate time.Time) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
