package services

import (
	"context"

	"github.com/hnnsly/library-core/internal/core/domain"
	"github.com/hnnsly/library-core/internal/dto"
)

// ReaderSvcFacade manages reader registrations.
type ReaderSvcFacade interface {
	// RegisterReader registers a new reader with a unique ticket number.
	RegisterReader(ctx context.Context, req dto.RegisterReaderRequest, librarianID string) (*domain.Reader, error)

	// GetReaderByID retrieves a reader.
	GetReaderByID(ctx context.Context, readerID string) (*domain.Reader, error)

	// GetReaderByTicket retrieves a reader by ticket number.
	GetReaderByTicket(ctx context.Context, ticketNumber string) (*domain.Reader, error)

	// ListReaders retrieves a paginated list of readers.
	ListReaders(ctx context.Context, limit int, offset int) ([]domain.Reader, error)

	// SetReaderActive toggles the reader's active flag. Readers are
	// never hard-deleted.
	SetReaderActive(ctx context.Context, readerID string, active bool, librarianID string) (*domain.Reader, error)
}
