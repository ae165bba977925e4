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

type PgxCopyRepository struct {
	BaseRepository
}

// newPgxCopyRepository creates a new repository for physical book copies.
func newPgxCopyRepository(pool *pgxpool.Pool) portsrepo.CopyRepositoryFacade {
	return &PgxCopyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CopyRepositoryFacade = (*PgxCopyRepository)(nil)

const copyColumns = `copy_id, book_id, copy_code, status, COALESCE(hall_id, ''), location_info, created_at, created_by, last_updated_at, last_updated_by`

func scanCopy(row pgx.Row) (domain.BookCopy, error) {
	var copy domain.BookCopy
	err := row.Scan(
		&copy.CopyID,
		&copy.BookID,
		&copy.CopyCode,
		&copy.Status,
		&copy.HallID,
		&copy.LocationInfo,
		&copy.CreatedAt,
		&copy.CreatedBy,
		&copy.LastUpdatedAt,
		&copy.LastUpdatedBy,
	)
	return copy, err
}

// SaveCopy persists a newly cataloged copy.
func (r *PgxCopyRepository) SaveCopy(ctx context.Context, copy domain.BookCopy) error {
	query := `
		INSERT INTO book_copies (copy_id, book_id, copy_code, status, hall_id, location_info, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10);
	`

	_, err := r.Pool.Exec(ctx, query,
		copy.CopyID,
		copy.BookID,
		copy.CopyCode,
		copy.Status,
		copy.HallID,
		copy.LocationInfo,
		copy.CreatedAt,
		copy.CreatedBy,
		copy.LastUpdatedAt,
		copy.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save copy %s: %w", copy.CopyID, err)
	}
	return nil
}

// FindCopyByID retrieves a copy by its unique identifier.
func (r *PgxCopyRepository) FindCopyByID(ctx context.Context, copyID string) (*domain.BookCopy, error) {
	query := `SELECT ` + copyColumns + ` FROM book_copies WHERE copy_id = $1;`

	copy, err := scanCopy(r.Pool.QueryRow(ctx, query, copyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find copy by id %s: %w", copyID, err)
	}
	return &copy, nil
}

// FindCopyByCode retrieves a copy by its unique physical copy code.
func (r *PgxCopyRepository) FindCopyByCode(ctx context.Context, copyCode string) (*domain.BookCopy, error) {
	query := `SELECT ` + copyColumns + ` FROM book_copies WHERE copy_code = $1;`

	copy, err := scanCopy(r.Pool.QueryRow(ctx, query, copyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find copy by code %s: %w", copyCode, err)
	}
	return &copy, nil
}

// ListCopiesByBook retrieves every copy of one book ordered by copy code.
func (r *PgxCopyRepository) ListCopiesByBook(ctx context.Context, bookID string) ([]domain.BookCopy, error) {
	query := `SELECT ` + copyColumns + ` FROM book_copies WHERE book_id = $1 ORDER BY copy_code;`

	rows, err := r.Pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query copies for book %s: %w", bookID, err)
	}
	defer rows.Close()

	copies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BookCopy, error) {
		return scanCopy(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan copies: %w", err)
	}

	return copies, nil
}

// CountAvailableCopies counts copies of the book in the available status.
func (r *PgxCopyRepository) CountAvailableCopies(ctx context.Context, bookID string) (int, error) {
	query := `SELECT COUNT(*) FROM book_copies WHERE book_id = $1 AND status = $2;`

	var count int
	err := r.Pool.QueryRow(ctx, query, bookID, domain.CopyAvailable).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count available copies for book %s: %w", bookID, err)
	}
	return count, nil
}

// CompareAndSetStatus transitions the copy from expected to next in a
// single conditional update. The WHERE clause on the current status is
// what serializes racing transitions: the row is only touched when it is
// still in the expected state, so of two concurrent calls at most one
// sees a row affected.
func (r *PgxCopyRepository) CompareAndSetStatus(ctx context.Context, copyID string, expected, next domain.CopyStatus, updatedBy string) error {
	query := `
		UPDATE book_copies
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE copy_id = $1 AND status = $2;
	`

	tag, err := r.Pool.Exec(ctx, query, copyID, expected, next, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of copy %s: %w", copyID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// No row moved: either the copy is absent or it is not in the
	// expected status. Distinguish the two for the caller.
	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM book_copies WHERE copy_id = $1);`, copyID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existence of copy %s: %w", copyID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("copy %s is not %s: %w", copyID, expected, apperrors.ErrInvalidTransition)
}
