package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
)

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loans.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, reader_id, copy_id, issue_date, due_date, return_date, renew_count, librarian_id`

func scanLoan(row pgx.Row) (domain.Loan, error) {
	var loan domain.Loan
	err := row.Scan(
		&loan.LoanID,
		&loan.ReaderID,
		&loan.CopyID,
		&loan.IssueDate,
		&loan.DueDate,
		&loan.ReturnDate,
		&loan.RenewCount,
		&loan.LibrarianID,
	)
	return loan, err
}

// SaveLoan persists a newly opened loan.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	query := `
		INSERT INTO loans (loan_id, reader_id, copy_id, issue_date, due_date, return_date, renew_count, librarian_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		loan.LoanID,
		loan.ReaderID,
		loan.CopyID,
		loan.IssueDate,
		loan.DueDate,
		loan.ReturnDate,
		loan.RenewCount,
		loan.LibrarianID,
	)

	if err != nil {
		return fmt.Errorf("failed to save loan %s: %w", loan.LoanID, err)
	}
	return nil
}

// FindLoanByID retrieves a loan by its unique identifier.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	loan, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan by id %s: %w", loanID, err)
	}
	return &loan, nil
}

// FindOpenLoanByCopy retrieves the single open loan for a copy, if any.
func (r *PgxLoanRepository) FindOpenLoanByCopy(ctx context.Context, copyID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE copy_id = $1 AND return_date IS NULL;`

	loan, err := scanLoan(r.Pool.QueryRow(ctx, query, copyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open loan for copy %s: %w", copyID, err)
	}
	return &loan, nil
}

// CountOpenLoansByReader counts the reader's currently open loans.
func (r *PgxLoanRepository) CountOpenLoansByReader(ctx context.Context, readerID string) (int, error) {
	query := `SELECT COUNT(*) FROM loans WHERE reader_id = $1 AND return_date IS NULL;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, readerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count open loans for reader %s: %w", readerID, err)
	}
	return count, nil
}

// ListOpenLoansByReader retrieves the reader's open loans ordered by due date.
func (r *PgxLoanRepository) ListOpenLoansByReader(ctx context.Context, readerID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE reader_id = $1 AND return_date IS NULL ORDER BY due_date, loan_id;`

	rows, err := r.Pool.Query(ctx, query, readerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query open loans for reader %s: %w", readerID, err)
	}
	defer rows.Close()

	loans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Loan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan loans: %w", err)
	}

	return loans, nil
}

// ListOpenLoans retrieves open loans ordered by due date ascending.
func (r *PgxLoanRepository) ListOpenLoans(ctx context.Context, limit int, offset int) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE return_date IS NULL ORDER BY due_date, loan_id LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query open loans: %w", err)
	}
	defer rows.Close()

	loans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Loan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan loans: %w", err)
	}

	return loans, nil
}

// ListOverdueLoans retrieves open loans whose due date is before asOf.
func (r *PgxLoanRepository) ListOverdueLoans(ctx context.Context, asOf time.Time, limit int, offset int) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE return_date IS NULL AND due_date < $1 ORDER BY due_date, loan_id LIMIT $2 OFFSET $3;`

	rows, err := r.Pool.Query(ctx, query, asOf, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue loans: %w", err)
	}
	defer rows.Close()

	loans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Loan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan loans: %w", err)
	}

	return loans, nil
}

// ListRenewalsByLoan retrieves the renewal history of one loan, oldest first.
func (r *PgxLoanRepository) ListRenewalsByLoan(ctx context.Context, loanID string) ([]domain.LoanRenewal, error) {
	query := `
		SELECT renewal_id, loan_id, old_due_date, new_due_date, renewed_at, librarian_id
		FROM loan_renewals
		WHERE loan_id = $1
		ORDER BY renewed_at, renewal_id;
	`

	rows, err := r.Pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to query renewals for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	renewals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LoanRenewal, error) {
		var renewal domain.LoanRenewal
		err := row.Scan(
			&renewal.RenewalID,
			&renewal.LoanID,
			&renewal.OldDueDate,
			&renewal.NewDueDate,
			&renewal.RenewedAt,
			&renewal.LibrarianID,
		)
		return renewal, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan renewals: %w", err)
	}

	return renewals, nil
}

// RenewLoan extends the due date and increments the renewal count in a
// single conditional update against the open loan, recording the renewal
// audit row in the same transaction.
func (r *PgxLoanRepository) RenewLoan(ctx context.Context, renewal domain.LoanRenewal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	updateQuery := `
		UPDATE loans
		SET due_date = $2, renew_count = renew_count + 1
		WHERE loan_id = $1 AND return_date IS NULL;
	`
	tag, err := tx.Exec(ctx, updateQuery, renewal.LoanID, renewal.NewDueDate)
	if err != nil {
		return fmt.Errorf("failed to renew loan %s: %w", renewal.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM loans WHERE loan_id = $1);`, renewal.LoanID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check existence of loan %s: %w", renewal.LoanID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrLoanNotOpen
	}

	insertQuery := `
		INSERT INTO loan_renewals (renewal_id, loan_id, old_due_date, new_due_date, renewed_at, librarian_id)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, insertQuery,
		renewal.RenewalID,
		renewal.LoanID,
		renewal.OldDueDate,
		renewal.NewDueDate,
		renewal.RenewedAt,
		renewal.LibrarianID,
	)
	if err != nil {
		return fmt.Errorf("failed to record renewal for loan %s: %w", renewal.LoanID, err)
	}

	return r.Commit(ctx, tx)
}

// CloseLoan sets the return date in a conditional update against
// return_date IS NULL. Of two concurrent calls at most one sees a row
// affected; the loser gets ErrAlreadyReturned.
func (r *PgxLoanRepository) CloseLoan(ctx context.Context, loanID string, returnDate time.Time) error {
	query := `
		UPDATE loans
		SET return_date = $2
		WHERE loan_id = $1 AND return_date IS NULL;
	`

	tag, err := r.Pool.Exec(ctx, query, loanID, returnDate)
	if err != nil {
		return fmt.Errorf("failed to close loan %s: %w", loanID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM loans WHERE loan_id = $1);`, loanID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existence of loan %s: %w", loanID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrAlreadyReturned
}
