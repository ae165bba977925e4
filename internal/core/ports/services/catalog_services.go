package services

import (
	"context"

	"github.com/hnnsly/library-core/internal/core/domain"
	"github.com/hnnsly/library-core/internal/dto"
)

// CatalogReaderSvc defines read operations over the catalog.
type CatalogReaderSvc interface {
	// GetBookByID retrieves a cataloged book.
	GetBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// ListBooks retrieves a paginated list of cataloged books.
	ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error)

	// GetCopyByID retrieves a copy by id.
	GetCopyByID(ctx context.Context, copyID string) (*domain.BookCopy, error)

	// GetCopyByCode retrieves a copy by its physical copy code.
	GetCopyByCode(ctx context.Context, copyCode string) (*domain.BookCopy, error)

	// ListCopiesByBook retrieves every copy of one book.
	ListCopiesByBook(ctx context.Context, bookID string) ([]domain.BookCopy, error)

	// AvailableCopies returns the derived count of available copies for a
	// book. The count is always computed from copy status, never read
	// from a stored counter.
	AvailableCopies(ctx context.Context, bookID string) (int, error)
}

// CatalogWriterSvc defines cataloging and copy-status operations.
type CatalogWriterSvc interface {
	// CreateBook catalogs a new book.
	CreateBook(ctx context.Context, req dto.CreateBookRequest, librarianID string) (*domain.Book, error)

	// AddCopy catalogs a new physical copy of a book.
	AddCopy(ctx context.Context, bookID string, req dto.CreateCopyRequest, librarianID string) (*domain.BookCopy, error)

	// MarkIssued transitions an available copy to issued. Fails with
	// apperrors.ErrCopyUnavailable if the copy is in any other status.
	MarkIssued(ctx context.Context, copyID string, librarianID string) error

	// MarkReturned transitions an issued copy back to available, or to
	// damaged depending on condition. Fails with
	// apperrors.ErrInvalidTransition if the copy is not issued.
	MarkReturned(ctx context.Context, copyID string, condition domain.CopyCondition, librarianID string) error

	// MarkLost retires an issued copy as lost.
	MarkLost(ctx context.Context, copyID string, librarianID string) error
}

// CatalogSvcFacade combines all catalog service interfaces.
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogWriterSvc
}
