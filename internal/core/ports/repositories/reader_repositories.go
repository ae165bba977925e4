package repositories

import (
	"context"
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
)

// ReaderReader defines read operations for library members.
type ReaderReader interface {
	// FindReaderByID retrieves a reader by their unique identifier.
	FindReaderByID(ctx context.Context, readerID string) (*domain.Reader, error)

	// FindReaderByTicket retrieves a reader by their unique ticket number.
	FindReaderByTicket(ctx context.Context, ticketNumber string) (*domain.Reader, error)

	// ListReaders retrieves a paginated list of registered readers.
	ListReaders(ctx context.Context, limit int, offset int) ([]domain.Reader, error)
}

// ReaderWriter defines write operations for library members.
type ReaderWriter interface {
	// SaveReader persists a newly registered reader.
	SaveReader(ctx context.Context, reader domain.Reader) error

	// SetReaderActive toggles the reader's active flag. Readers are never
	// hard-deleted.
	SetReaderActive(ctx context.Context, readerID string, active bool, updatedBy string, now time.Time) error
}

// ReaderRepositoryFacade combines all reader-related repository interfaces.
type ReaderRepositoryFacade interface {
	ReaderReader
	ReaderWriter
}

// LibrarianReader defines read operations for staff accounts.
type LibrarianReader interface {
	// FindLibrarianByID retrieves a librarian by their unique identifier.
	FindLibrarianByID(ctx context.Context, librarianID string) (*domain.Librarian, error)

	// FindLibrarianByUsername retrieves a librarian by login name.
	FindLibrarianByUsername(ctx context.Context, username string) (*domain.Librarian, error)
}

// LibrarianWriter defines write operations for staff accounts.
type LibrarianWriter interface {
	// SaveLibrarian persists a new staff account.
	SaveLibrarian(ctx context.Context, librarian domain.Librarian) error
}

// LibrarianRepositoryFacade combines all librarian-related repository interfaces.
type LibrarianRepositoryFacade interface {
	LibrarianReader
	LibrarianWriter
}
