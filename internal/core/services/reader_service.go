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

// readerService implements the ReaderSvcFacade interface.
type readerService struct {
	BaseService
	readerRepo portsrepo.ReaderRepositoryFacade
}

// NewReaderService creates a new reader service.
func NewReaderService(readerRepo portsrepo.ReaderRepositoryFacade) portssvc.ReaderSvcFacade {
	return &readerService{readerRepo: readerRepo}
}

// Ensure readerService implements the ReaderSvcFacade interface
var _ portssvc.ReaderSvcFacade = (*readerService)(nil)

func (s *readerService) RegisterReader(ctx context.Context, req dto.RegisterReaderRequest, librarianID string) (*domain.Reader, error) {
	now := time.Now()
	reader := domain.Reader{
		ReaderID:         uuid.NewString(),
		TicketNumber:     req.TicketNumber,
		FullName:         req.FullName,
		IsActive:         true,
		RegistrationDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     librarianID,
			LastUpdatedAt: now,
			LastUpdatedBy: librarianID,
		},
	}

	if err := s.readerRepo.SaveReader(ctx, reader); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("ticket number %s: %w", req.TicketNumber, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save reader", slog.String("reader_id", reader.ReaderID))
		return nil, err
	}

	s.LogInfo(ctx, "Reader registered",
		slog.String("reader_id", reader.ReaderID),
		slog.String("ticket_number", reader.TicketNumber))
	return &reader, nil
}

func (s *readerService) GetReaderByID(ctx context.Context, readerID string) (*domain.Reader, error) {
	reader, err := s.readerRepo.FindReaderByID(ctx, readerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find reader by ID", slog.String("reader_id", readerID))
		}
		return nil, err
	}
	return reader, nil
}

func (s *readerService) GetReaderByTicket(ctx context.Context, ticketNumber string) (*domain.Reader, error) {
	reader, err := s.readerRepo.FindReaderByTicket(ctx, ticketNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find reader by ticket", slog.String("ticket_number", ticketNumber))
		}
		return nil, err
	}
	return reader, nil
}

func (s *readerService) ListReaders(ctx context.Context, limit int, offset int) ([]domain.Reader, error) {
	readers, err := s.readerRepo.ListReaders(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list readers")
		return nil, fmt.Errorf("failed to list readers: %w", err)
	}
	if readers == nil {
		return []domain.Reader{}, nil
	}
	return readers, nil
}

func (s *readerService) SetReaderActive(ctx context.Context, readerID string, active bool, librarianID string) (*domain.Reader, error) {
	if err := s.readerRepo.SetReaderActive(ctx, readerID, active, librarianID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update reader active flag", slog.String("reader_id", readerID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Reader active flag updated",
		slog.String("reader_id", readerID),
		slog.Bool("is_active", active))
	return s.readerRepo.FindReaderByID(ctx, readerID)
}
