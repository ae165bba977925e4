package services

import (
	"context"

	"github.com/hnnsly/library-core/internal/core/domain"
	"github.com/hnnsly/library-core/internal/dto"
)

// FineSvcFacade is the fine ledger: fines are recorded once, paid once,
// and summed per reader for the circulation engine's issuing check.
type FineSvcFacade interface {
	// RecordFine records an unpaid fine. Amount must be a non-negative
	// number of minor units, otherwise ErrInvalidAmount.
	RecordFine(ctx context.Context, req dto.RecordFineRequest, librarianID string) (*domain.Fine, error)

	// PayFine settles a fine. The second call fails with ErrAlreadyPaid.
	PayFine(ctx context.Context, fineID string) (*domain.Fine, error)

	// GetFineByID retrieves a fine.
	GetFineByID(ctx context.Context, fineID string) (*domain.Fine, error)

	// ListUnpaidFines retrieves unpaid fines across readers.
	ListUnpaidFines(ctx context.Context, limit int, offset int) ([]domain.Fine, error)

	// ListFinesByReader retrieves all fines of one reader.
	ListFinesByReader(ctx context.Context, readerID string) ([]domain.Fine, error)

	// OutstandingTotal sums a reader's unpaid fines in minor units.
	OutstandingTotal(ctx context.Context, readerID string) (int64, error)
}
