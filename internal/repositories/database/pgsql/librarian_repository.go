package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
)

type PgxLibrarianRepository struct {
	BaseRepository
}

// newPgxLibrarianRepository creates a new repository for staff accounts.
func newPgxLibrarianRepository(pool *pgxpool.Pool) portsrepo.LibrarianRepositoryFacade {
	return &PgxLibrarianRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LibrarianRepositoryFacade = (*PgxLibrarianRepository)(nil)

const librarianColumns = `librarian_id, username, full_name, password_hash, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanLibrarian(row pgx.Row) (domain.Librarian, error) {
	var librarian domain.Librarian
	err := row.Scan(
		&librarian.LibrarianID,
		&librarian.Username,
		&librarian.FullName,
		&librarian.PasswordHash,
		&librarian.IsActive,
		&librarian.CreatedAt,
		&librarian.CreatedBy,
		&librarian.LastUpdatedAt,
		&librarian.LastUpdatedBy,
	)
	return librarian, err
}

// SaveLibrarian persists a new staff account.
func (r *PgxLibrarianRepository) SaveLibrarian(ctx context.Context, librarian domain.Librarian) error {
	query := `
		INSERT INTO librarians (librarian_id, username, full_name, password_hash, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		librarian.LibrarianID,
		librarian.Username,
		librarian.FullName,
		librarian.PasswordHash,
		librarian.IsActive,
		librarian.CreatedAt,
		librarian.CreatedBy,
		librarian.LastUpdatedAt,
		librarian.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save librarian %s: %w", librarian.LibrarianID, err)
	}
	return nil
}

// FindLibrarianByID retrieves a librarian by their unique identifier.
func (r *PgxLibrarianRepository) FindLibrarianByID(ctx context.Context, librarianID string) (*domain.Librarian, error) {
	query := `SELECT ` + librarianColumns + ` FROM librarians WHERE librarian_id = $1;`

	librarian, err := scanLibrarian(r.Pool.QueryRow(ctx, query, librarianID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find librarian by id %s: %w", librarianID, err)
	}
	return &librarian, nil
}

// FindLibrarianByUsername retrieves a librarian by login name.
func (r *PgxLibrarianRepository) FindLibrarianByUsername(ctx context.Context, username string) (*domain.Librarian, error) {
	query := `SELECT ` + librarianColumns + ` FROM librarians WHERE username = $1;`

	librarian, err := scanLibrarian(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find librarian by username: %w", err)
	}
	return &librarian, nil
}
