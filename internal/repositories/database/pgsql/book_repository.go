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

type PgxBookRepository struct {
	BaseRepository
}

// newPgxBookRepository creates a new repository for cataloged titles.
func newPgxBookRepository(pool *pgxpool.Pool) portsrepo.BookRepositoryFacade {
	return &PgxBookRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BookRepositoryFacade = (*PgxBookRepository)(nil)

// SaveBook persists a new book. Author references are stored as an
// ordered array on the row itself.
func (r *PgxBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	query := `
		INSERT INTO books (book_id, title, isbn, publication_year, publisher, author_ids, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	_, err := r.Pool.Exec(ctx, query,
		book.BookID,
		book.Title,
		book.ISBN,
		book.PublicationYear,
		book.Publisher,
		book.AuthorIDs,
		book.CreatedAt,
		book.CreatedBy,
		book.LastUpdatedAt,
		book.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save book %s: %w", book.BookID, err)
	}
	return nil
}

// FindBookByID retrieves a book by its unique identifier.
func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := `
		SELECT book_id, title, isbn, publication_year, publisher, author_ids, created_at, created_by, last_updated_at, last_updated_by
		FROM books
		WHERE book_id = $1;
	`
	var book domain.Book
	err := r.Pool.QueryRow(ctx, query, bookID).Scan(
		&book.BookID,
		&book.Title,
		&book.ISBN,
		&book.PublicationYear,
		&book.Publisher,
		&book.AuthorIDs,
		&book.CreatedAt,
		&book.CreatedBy,
		&book.LastUpdatedAt,
		&book.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by id %s: %w", bookID, err)
	}

	return &book, nil
}

// ListBooks retrieves a paginated list of cataloged books ordered by title.
func (r *PgxBookRepository) ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error) {
	query := `
		SELECT book_id, title, isbn, publication_year, publisher, author_ids, created_at, created_by, last_updated_at, last_updated_by
		FROM books
		ORDER BY title, book_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Book, error) {
		var book domain.Book
		err := row.Scan(
			&book.BookID,
			&book.Title,
			&book.ISBN,
			&book.PublicationYear,
			&book.Publisher,
			&book.AuthorIDs,
			&book.CreatedAt,
			&book.CreatedBy,
			&book.LastUpdatedAt,
			&book.LastUpdatedBy,
		)
		return book, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan books: %w", err)
	}

	return books, nil
}
