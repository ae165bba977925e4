package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"context"

	"github.com/google/uuid"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
)

// catalogService implements the CatalogSvcFacade interface. It is the
// single writer of copy status: every transition goes through the copy
// repository's compare-and-set, so two concurrent issue attempts on one
// copy can never both succeed.
type catalogService struct {
	BaseService
	bookRepo portsrepo.BookRepositoryFacade
	copyRepo portsrepo.CopyRepositoryFacade
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(bookRepo portsrepo.BookRepositoryFacade, copyRepo portsrepo.CopyRepositoryFacade) portssvc.CatalogSvcFacade {
	return &catalogService{
		bookRepo: bookRepo,
		copyRepo: copyRepo,
	}
}

// Ensure catalogService implements the CatalogSvcFacade interface
var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) CreateBook(ctx context.Context, req dto.CreateBookRequest, librarianID string) (*domain.Book, error) {
	now := time.Now()
	book := domain.Book{
		BookID:          uuid.NewString(),
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Publisher:       req.Publisher,
		AuthorIDs:       req.AuthorIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     librarianID,
			LastUpdatedAt: now,
			LastUpdatedBy: librarianID,
		},
	}

	if err := s.bookRepo.SaveBook(ctx, book); err != nil {
		s.LogError(ctx, err, "Failed to save book", slog.String("book_id", book.BookID))
		return nil, err
	}

	s.LogInfo(ctx, "Book cataloged", slog.String("book_id", book.BookID), slog.String("title", book.Title))
	return &book, nil
}

func (s *catalogService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find book by ID", slog.String("book_id", bookID))
		}
		return nil, err
	}
	return book, nil
}

func (s *catalogService) ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error) {
	books, err := s.bookRepo.ListBooks(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list books")
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	if books == nil {
		return []domain.Book{}, nil
	}
	return books, nil
}

func (s *catalogService) AddCopy(ctx context.Context, bookID string, req dto.CreateCopyRequest, librarianID string) (*domain.BookCopy, error) {
	// The copy must belong to an existing book.
	if _, err := s.bookRepo.FindBookByID(ctx, bookID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("book %s: %w", bookID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to find book for new copy", slog.String("book_id", bookID))
		return nil, err
	}

	now := time.Now()
	copy := domain.BookCopy{
		CopyID:       uuid.NewString(),
		BookID:       bookID,
		CopyCode:     req.CopyCode,
		Status:       domain.CopyAvailable,
		HallID:       req.HallID,
		LocationInfo: req.LocationInfo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     librarianID,
			LastUpdatedAt: now,
			LastUpdatedBy: librarianID,
		},
	}

	if err := s.copyRepo.SaveCopy(ctx, copy); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("copy code %s: %w", req.CopyCode, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save copy", slog.String("copy_id", copy.CopyID))
		return nil, err
	}

	s.LogInfo(ctx, "Copy cataloged",
		slog.String("copy_id", copy.CopyID),
		slog.String("copy_code", copy.CopyCode),
		slog.String("book_id", bookID))
	return &copy, nil
}

func (s *catalogService) GetCopyByID(ctx context.Context, copyID string) (*domain.BookCopy, error) {
	copy, err := s.copyRepo.FindCopyByID(ctx, copyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find copy by ID", slog.String("copy_id", copyID))
		}
		return nil, err
	}
	return copy, nil
}

func (s *catalogService) GetCopyByCode(ctx context.Context, copyCode string) (*domain.BookCopy, error) {
	copy, err := s.copyRepo.FindCopyByCode(ctx, copyCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find copy by code", slog.String("copy_code", copyCode))
		}
		return nil, err
	}
	return copy, nil
}

func (s *catalogService) ListCopiesByBook(ctx context.Context, bookID string) ([]domain.BookCopy, error) {
	copies, err := s.copyRepo.ListCopiesByBook(ctx, bookID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list copies", slog.String("book_id", bookID))
		return nil, err
	}
	if copies == nil {
		return []domain.BookCopy{}, nil
	}
	return copies, nil
}

// AvailableCopies computes availability by counting copies in the
// available status. The count is derived on every call; there is no
// stored counter to drift out of sync.
func (s *catalogService) AvailableCopies(ctx context.Context, bookID string) (int, error) {
	count, err := s.copyRepo.CountAvailableCopies(ctx, bookID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count available copies", slog.String("book_id", bookID))
		return 0, err
	}
	return count, nil
}

func (s *catalogService) MarkIssued(ctx context.Context, copyID string, librarianID string) error {
	err := s.copyRepo.CompareAndSetStatus(ctx, copyID, domain.CopyAvailable, domain.CopyIssued, librarianID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			// Not available right now: issued, reserved, lost or damaged.
			return fmt.Errorf("copy %s: %w", copyID, apperrors.ErrCopyUnavailable)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to mark copy issued", slog.String("copy_id", copyID))
		}
		return err
	}

	s.LogInfo(ctx, "Copy marked issued", slog.String("copy_id", copyID))
	return nil
}

func (s *catalogService) MarkReturned(ctx context.Context, copyID string, condition domain.CopyCondition, librarianID string) error {
	next := domain.ReturnStatus(condition)
	err := s.copyRepo.CompareAndSetStatus(ctx, copyID, domain.CopyIssued, next, librarianID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to mark copy returned", slog.String("copy_id", copyID))
		}
		return err
	}

	s.LogInfo(ctx, "Copy marked returned",
		slog.String("copy_id", copyID),
		slog.String("status", string(next)))
	return nil
}

func (s *catalogService) MarkLost(ctx context.Context, copyID string, librarianID string) error {
	err := s.copyRepo.CompareAndSetStatus(ctx, copyID, domain.CopyIssued, domain.CopyLost, librarianID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogError(ctx, err, "Failed to mark copy lost", slog.String("copy_id", copyID))
		}
		return err
	}

	s.LogInfo(ctx, "Copy marked lost", slog.String("copy_id", copyID))
	return nil
}
