package repositories

import (
	"context"

	"github.com/hnnsly/library-core/internal/core/domain"
)

// BookReader defines read operations for cataloged titles.
type BookReader interface {
	// FindBookByID retrieves a book by its unique identifier.
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// ListBooks retrieves a paginated list of cataloged books.
	ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error)
}

// BookWriter defines write operations for cataloged titles.
type BookWriter interface {
	// SaveBook persists a new book together with its author references.
	SaveBook(ctx context.Context, book domain.Book) error
}

// BookRepositoryFacade combines all book-related repository interfaces.
type BookRepositoryFacade interface {
	BookReader
	BookWriter
}

// CopyReader defines read operations for physical book copies.
type CopyReader interface {
	// FindCopyByID retrieves a copy by its unique identifier.
	FindCopyByID(ctx context.Context, copyID string) (*domain.BookCopy, error)

	// FindCopyByCode retrieves a copy by its unique physical copy code.
	FindCopyByCode(ctx context.Context, copyCode string) (*domain.BookCopy, error)

	// ListCopiesByBook retrieves every copy of one book.
	ListCopiesByBook(ctx context.Context, bookID string) ([]domain.BookCopy, error)

	// CountAvailableCopies counts copies of the book currently in the
	// available status. This is the only availability figure the system
	// has; no stored counter shadows it.
	CountAvailableCopies(ctx context.Context, bookID string) (int, error)
}

// CopyWriter defines write operations for physical book copies.
type CopyWriter interface {
	// SaveCopy persists a newly cataloged copy.
	SaveCopy(ctx context.Context, copy domain.BookCopy) error

	// CompareAndSetStatus transitions the copy from expected to next in a
	// single conditional update. It returns apperrors.ErrNotFound if the
	// copy does not exist and apperrors.ErrInvalidTransition if the copy
	// exists but is not in the expected status. Of two concurrent calls
	// with the same expected status, at most one can succeed.
	CompareAndSetStatus(ctx context.Context, copyID string, expected, next domain.CopyStatus, updatedBy string) error
}

// CopyRepositoryFacade combines all copy-related repository interfaces.
type CopyRepositoryFacade interface {
	CopyReader
	CopyWriter
}
