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

type PgxFineRepository struct {
	BaseRepository
}

// newPgxFineRepository creates a new repository for the fine ledger.
func newPgxFineRepository(pool *pgxpool.Pool) portsrepo.FineRepositoryFacade {
	return &PgxFineRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FineRepositoryFacade = (*PgxFineRepository)(nil)

const fineColumns = `fine_id, reader_id, loan_id, amount, reason, fine_date, is_paid, paid_date`

func scanFine(row pgx.Row) (domain.Fine, error) {
	var fine domain.Fine
	err := row.Scan(
		&fine.FineID,
		&fine.ReaderID,
		&fine.LoanID,
		&fine.Amount,
		&fine.Reason,
		&fine.FineDate,
		&fine.IsPaid,
		&fine.PaidDate,
	)
	return fine, err
}

// SaveFine persists a newly recorded fine.
func (r *PgxFineRepository) SaveFine(ctx context.Context, fine domain.Fine) error {
	query := `
		INSERT INTO fines (fine_id, reader_id, loan_id, amount, reason, fine_date, is_paid, paid_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		fine.FineID,
		fine.ReaderID,
		fine.LoanID,
		fine.Amount,
		fine.Reason,
		fine.FineDate,
		fine.IsPaid,
		fine.PaidDate,
	)

	if err != nil {
		return fmt.Errorf("failed to save fine %s: %w", fine.FineID, err)
	}
	return nil
}

// FindFineByID retrieves a fine by its unique identifier.
func (r *PgxFineRepository) FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE fine_id = $1;`

	fine, err := scanFine(r.Pool.QueryRow(ctx, query, fineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fine by id %s: %w", fineID, err)
	}
	return &fine, nil
}

// ListUnpaidFines retrieves unpaid fines across all readers, oldest first.
func (r *PgxFineRepository) ListUnpaidFines(ctx context.Context, limit int, offset int) ([]domain.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE is_paid = FALSE ORDER BY fine_date, fine_id LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query unpaid fines: %w", err)
	}
	defer rows.Close()

	fines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Fine, error) {
		return scanFine(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan fines: %w", err)
	}

	return fines, nil
}

// ListFinesByReader retrieves all fines of one reader, newest first.
func (r *PgxFineRepository) ListFinesByReader(ctx context.Context, readerID string) ([]domain.Fine, error) {
	query := `SELECT ` + fineColumns + ` FROM fines WHERE reader_id = $1 ORDER BY fine_date DESC, fine_id;`

	rows, err := r.Pool.Query(ctx, query, readerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fines for reader %s: %w", readerID, err)
	}
	defer rows.Close()

	fines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Fine, error) {
		return scanFine(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan fines: %w", err)
	}

	return fines, nil
}

// OutstandingTotal sums the unpaid fine amounts of one reader in minor
// currency units. The sum stays in integer arithmetic end to end.
func (r *PgxFineRepository) OutstandingTotal(ctx context.Context, readerID string) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM fines WHERE reader_id = $1 AND is_paid = FALSE;`

	var total int64
	if err := r.Pool.QueryRow(ctx, query, readerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum unpaid fines for reader %s: %w", readerID, err)
	}
	return total, nil
}

// MarkFinePaid settles the fine in a conditional update against
// is_paid = FALSE. Of two concurrent payments at most one sees a row
// affected; the loser gets ErrAlreadyPaid.
func (r *PgxFineRepository) MarkFinePaid(ctx context.Context, fineID string, paidAt time.Time) error {
	query := `
		UPDATE fines
		SET is_paid = TRUE, paid_date = $2
		WHERE fine_id = $1 AND is_paid = FALSE;
	`

	tag, err := r.Pool.Exec(ctx, query, fineID, paidAt)
	if err != nil {
		return fmt.Errorf("failed to mark fine %s paid: %w", fineID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fines WHERE fine_id = $1);`, fineID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existence of fine %s: %w", fineID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrAlreadyPaid
}
