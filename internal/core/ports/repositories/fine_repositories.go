package repositories

import (
	"context"
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
)

// FineReader defines read operations for the fine ledger.
type FineReader interface {
	// FindFineByID retrieves a fine by its unique identifier.
	FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error)

	// ListUnpaidFines retrieves unpaid fines across all readers, oldest first.
	ListUnpaidFines(ctx context.Context, limit int, offset int) ([]domain.Fine, error)

	// ListFinesByReader retrieves all fines of one reader, newest first.
	ListFinesByReader(ctx context.Context, readerID string) ([]domain.Fine, error)

	// OutstandingTotal sums the unpaid fine amounts of one reader in
	// minor currency units.
	OutstandingTotal(ctx context.Context, readerID string) (int64, error)
}

// FineWriter defines write operations for the fine ledger.
type FineWriter interface {
	// SaveFine persists a newly recorded fine.
	SaveFine(ctx context.Context, fine domain.Fine) error

	// MarkFinePaid settles the fine in a conditional update against
	// is_paid = FALSE. Returns apperrors.ErrAlreadyPaid if the fine is
	// already settled and apperrors.ErrNotFound if it does not exist.
	MarkFinePaid(ctx context.Context, fineID string, paidAt time.Time) error
}

// FineRepositoryFacade combines all fine-related repository interfaces.
type FineRepositoryFacade interface {
	FineReader
	FineWriter
}
