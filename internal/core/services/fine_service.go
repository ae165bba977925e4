package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
)

// fineService implements the FineSvcFacade interface. It is a ledger:
// fines are appended and settled, never edited or refunded.
type fineService struct {
	BaseService
	fineRepo   portsrepo.FineRepositoryFacade
	readerRepo portsrepo.ReaderReader
}

// NewFineService creates a new fine service.
func NewFineService(fineRepo portsrepo.FineRepositoryFacade, readerRepo portsrepo.ReaderReader) portssvc.FineSvcFacade {
	return &fineService{
		fineRepo:   fineRepo,
		readerRepo: readerRepo,
	}
}

// Ensure fineService implements the FineSvcFacade interface
var _ portssvc.FineSvcFacade = (*fineService)(nil)

func (s *fineService) RecordFine(ctx context.Context, req dto.RecordFineRequest, librarianID string) (*domain.Fine, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("amount %d: %w", req.Amount, apperrors.ErrInvalidAmount)
	}

	if _, err := s.readerRepo.FindReaderByID(ctx, req.ReaderID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("reader %s: %w", req.ReaderID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to find reader for fine", slog.String("reader_id", req.ReaderID))
		return nil, err
	}

	fine := domain.Fine{
		FineID:   uuid.NewString(),
		ReaderID: req.ReaderID,
		LoanID:   req.LoanID,
		Amount:   req.Amount,
		Reason:   req.Reason,
		FineDate: time.Now(),
		IsPaid:   false,
	}

	if err := s.fineRepo.SaveFine(ctx, fine); err != nil {
		s.LogError(ctx, err, "Failed to save fine", slog.String("fine_id", fine.FineID))
		return nil, err
	}

	s.LogInfo(ctx, "Fine recorded",
		slog.String("fine_id", fine.FineID),
		slog.String("reader_id", fine.ReaderID),
		slog.Int64("amount", fine.Amount))
	return &fine, nil
}

func (s *fineService) PayFine(ctx context.Context, fineID string) (*domain.Fine, error) {
	if err := s.fineRepo.MarkFinePaid(ctx, fineID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrAlreadyPaid) {
			s.LogError(ctx, err, "Failed to mark fine paid", slog.String("fine_id", fineID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Fine paid", slog.String("fine_id", fineID))
	return s.fineRepo.FindFineByID(ctx, fineID)
}

func (s *fineService) GetFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	fine, err := s.fineRepo.FindFineByID(ctx, fineID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find fine by ID", slog.String("fine_id", fineID))
		}
		return nil, err
	}
	return fine, nil
}

func (s *fineService) ListUnpaidFines(ctx context.Context, limit int, offset int) ([]domain.Fine, error) {
	fines, err := s.fineRepo.ListUnpaidFines(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unpaid fines")
		return nil, fmt.Errorf("failed to list unpaid fines: %w", err)
	}
	if fines == nil {
		return []domain.Fine{}, nil
	}
	return fines, nil
}

func (s *fineService) ListFinesByReader(ctx context.Context, readerID string) ([]domain.Fine, error) {
	fines, err := s.fineRepo.ListFinesByReader(ctx, readerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fines for reader", slog.String("reader_id", readerID))
		return nil, err
	}
	if fines == nil {
		return []domain.Fine{}, nil
	}
	return fines, nil
}

func (s *fineService) OutstandingTotal(ctx context.Context, readerID string) (int64, error) {
	total, err := s.fineRepo.OutstandingTotal(ctx, readerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum outstanding fines", slog.String("reader_id", readerID))
		return 0, err
	}
	return total, nil
}
