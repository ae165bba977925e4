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

type PgxReaderRepository struct {
	BaseRepository
}

// newPgxReaderRepository creates a new repository for library members.
func newPgxReaderRepository(pool *pgxpool.Pool) portsrepo.ReaderRepositoryFacade {
	return &PgxReaderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReaderRepositoryFacade = (*PgxReaderRepository)(nil)

const readerColumns = `reader_id, ticket_number, full_name, is_active, registration_date, created_at, created_by, last_updated_at, last_updated_by`

func scanReader(row pgx.Row) (domain.Reader, error) {
	var reader domain.Reader
	err := row.Scan(
		&reader.ReaderID,
		&reader.TicketNumber,
		&reader.FullName,
		&reader.IsActive,
		&reader.RegistrationDate,
		&reader.CreatedAt,
		&reader.CreatedBy,
		&reader.LastUpdatedAt,
		&reader.LastUpdatedBy,
	)
	return reader, err
}

// SaveReader persists a newly registered reader.
func (r *PgxReaderRepository) SaveReader(ctx context.Context, reader domain.Reader) error {
	query := `
		INSERT INTO readers (reader_id, ticket_number, full_name, is_active, registration_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		reader.ReaderID,
		reader.TicketNumber,
		reader.FullName,
		reader.IsActive,
		reader.RegistrationDate,
		reader.CreatedAt,
		reader.CreatedBy,
		reader.LastUpdatedAt,
		reader.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save reader %s: %w", reader.ReaderID, err)
	}
	return nil
}

// FindReaderByID retrieves a reader by their unique identifier.
func (r *PgxReaderRepository) FindReaderByID(ctx context.Context, readerID string) (*domain.Reader, error) {
	query := `SELECT ` + readerColumns + ` FROM readers WHERE reader_id = $1;`

	reader, err := scanReader(r.Pool.QueryRow(ctx, query, readerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reader by id %s: %w", readerID, err)
	}
	return &reader, nil
}

// FindReaderByTicket retrieves a reader by their unique ticket number.
func (r *PgxReaderRepository) FindReaderByTicket(ctx context.Context, ticketNumber string) (*domain.Reader, error) {
	query := `SELECT ` + readerColumns + ` FROM readers WHERE ticket_number = $1;`

	reader, err := scanReader(r.Pool.QueryRow(ctx, query, ticketNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reader by ticket %s: %w", ticketNumber, err)
	}
	return &reader, nil
}

// ListReaders retrieves a paginated list of readers ordered by ticket number.
func (r *PgxReaderRepository) ListReaders(ctx context.Context, limit int, offset int) ([]domain.Reader, error) {
	query := `SELECT ` + readerColumns + ` FROM readers ORDER BY ticket_number LIMIT $1 OFFSET $2;`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query readers: %w", err)
	}
	defer rows.Close()

	readers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Reader, error) {
		return scanReader(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan readers: %w", err)
	}

	return readers, nil
}

// SetReaderActive toggles the reader's active flag.
func (r *PgxReaderRepository) SetReaderActive(ctx context.Context, readerID string, active bool, updatedBy string, now time.Time) error {
	query := `
		UPDATE readers
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE reader_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query, readerID, active, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update active flag of reader %s: %w", readerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
