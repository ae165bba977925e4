package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/utils/pagination"
)

const maxRecentVisitsPage = 200

// occupancyService implements the OccupancySvcFacade interface. Occupancy
// is never stored: it is derived from the append-only visit log on every
// read. A per-hall mutex serializes the validate-then-append section of
// RegisterVisit, so concurrent entries cannot overshoot the hall capacity
// and a reader cannot produce two consecutive entries.
type occupancyService struct {
	BaseService
	hallRepo   portsrepo.HallRepositoryFacade
	visitRepo  portsrepo.VisitRepositoryFacade
	readerRepo portsrepo.ReaderReader
	now        func() time.Time

	mu        sync.Mutex
	hallLocks map[string]*sync.Mutex
}

// OccupancyServiceOption configures optional parameters of the occupancy
// service.
type OccupancyServiceOption func(*occupancyService)

// WithOccupancyClock overrides the clock. Used by tests.
func WithOccupancyClock(now func() time.Time) OccupancyServiceOption {
	return func(s *occupancyService) {
		s.now = now
	}
}

// NewOccupancyService creates a new occupancy service.
func NewOccupancyService(
	hallRepo portsrepo.HallRepositoryFacade,
	visitRepo portsrepo.VisitRepositoryFacade,
	readerRepo portsrepo.ReaderReader,
	opts ...OccupancyServiceOption,
) portssvc.OccupancySvcFacade {
	s := &occupancyService{
		hallRepo:   hallRepo,
		visitRepo:  visitRepo,
		readerRepo: readerRepo,
		now:        time.Now,
		hallLocks:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure occupancyService implements the OccupancySvcFacade interface
var _ portssvc.OccupancySvcFacade = (*occupancyService)(nil)

// hallLock returns the mutex guarding one hall's validate-then-append
// section, creating it on first use.
func (s *occupancyService) hallLock(hallID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.hallLocks[hallID]
	if !ok {
		lock = &sync.Mutex{}
		s.hallLocks[hallID] = lock
	}
	return lock
}

func (s *occupancyService) RegisterVisit(ctx context.Context, req dto.RegisterVisitRequest, librarianID string) (*domain.HallVisit, error) {
	reader, err := s.readerRepo.FindReaderByTicket(ctx, req.TicketNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("ticket number %s: %w", req.TicketNumber, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to find reader for visit", slog.String("ticket_number", req.TicketNumber))
		return nil, err
	}
	if req.VisitType == domain.VisitEntry && !reader.IsActive {
		return nil, fmt.Errorf("reader %s: %w", reader.ReaderID, apperrors.ErrReaderInactive)
	}

	hall, err := s.hallRepo.FindHallByID(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("hall %s: %w", req.HallID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to find hall for visit", slog.String("hall_id", req.HallID))
		return nil, err
	}

	lock := s.hallLock(hall.HallID)
	lock.Lock()
	defer lock.Unlock()

	latest, err := s.visitRepo.FindLatestVisit(ctx, reader.ReaderID, hall.HallID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find latest visit",
			slog.String("reader_id", reader.ReaderID),
			slog.String("hall_id", hall.HallID))
		return nil, err
	}

	switch req.VisitType {
	case domain.VisitEntry:
		if latest != nil && latest.VisitType == domain.VisitEntry {
			return nil, fmt.Errorf("reader %s in hall %s: %w", reader.ReaderID, hall.HallID, apperrors.ErrAlreadyInHall)
		}
		occ, err := s.visitRepo.CurrentOccupancy(ctx, hall.HallID)
		if err != nil {
			s.LogError(ctx, err, "Failed to derive occupancy", slog.String("hall_id", hall.HallID))
			return nil, err
		}
		if occ.Count >= hall.TotalSeats {
			return nil, fmt.Errorf("hall %s at %d/%d seats: %w", hall.HallID, occ.Count, hall.TotalSeats, apperrors.ErrHallFull)
		}
	case domain.VisitExit:
		if latest == nil || latest.VisitType != domain.VisitEntry {
			return nil, fmt.Errorf("reader %s in hall %s: %w", reader.ReaderID, hall.HallID, apperrors.ErrNotInHall)
		}
	default:
		return nil, fmt.Errorf("visit type %q: %w", req.VisitType, apperrors.ErrValidation)
	}

	visit := domain.HallVisit{
		VisitID:   uuid.NewString(),
		ReaderID:  reader.ReaderID,
		HallID:    hall.HallID,
		VisitType: req.VisitType,
		VisitTime: s.now(),
	}
	if librarianID != "" {
		visit.LibrarianID = &librarianID
	}

	appended, err := s.visitRepo.AppendVisit(ctx, visit)
	if err != nil {
		s.LogError(ctx, err, "Failed to append visit", slog.String("visit_id", visit.VisitID))
		return nil, err
	}

	s.LogInfo(ctx, "Visit registered",
		slog.String("visit_id", appended.VisitID),
		slog.String("reader_id", appended.ReaderID),
		slog.String("hall_id", appended.HallID),
		slog.String("visit_type", string(appended.VisitType)))
	return appended, nil
}

func (s *occupancyService) GetOccupancy(ctx context.Context, hallID string) (domain.Occupancy, error) {
	if _, err := s.hallRepo.FindHallByID(ctx, hallID); err != nil {
		return domain.Occupancy{}, err
	}

	occ, err := s.visitRepo.CurrentOccupancy(ctx, hallID)
	if err != nil {
		s.LogError(ctx, err, "Failed to derive occupancy", slog.String("hall_id", hallID))
		return domain.Occupancy{}, err
	}
	return occ, nil
}

func (s *occupancyService) CreateHall(ctx context.Context, req dto.CreateHallRequest, librarianID string) (*domain.ReadingHall, error) {
	if req.TotalSeats <= 0 {
		return nil, fmt.Errorf("total seats must be positive: %w", apperrors.ErrValidation)
	}

	now := s.now()
	hall := domain.ReadingHall{
		HallID:         uuid.NewString(),
		Name:           req.Name,
		Specialization: req.Specialization,
		TotalSeats:     req.TotalSeats,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     librarianID,
			LastUpdatedAt: now,
			LastUpdatedBy: librarianID,
		},
	}

	if err := s.hallRepo.SaveHall(ctx, hall); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("hall name %s: %w", req.Name, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save hall", slog.String("hall_id", hall.HallID))
		return nil, err
	}

	s.LogInfo(ctx, "Hall created", slog.String("hall_id", hall.HallID), slog.String("name", hall.Name))
	return &hall, nil
}

func (s *occupancyService) ListHalls(ctx context.Context) ([]domain.ReadingHall, error) {
	halls, err := s.hallRepo.ListHalls(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list halls")
		return nil, fmt.Errorf("failed to list halls: %w", err)
	}
	if halls == nil {
		return []domain.ReadingHall{}, nil
	}
	return halls, nil
}

func (s *occupancyService) HallsDashboard(ctx context.Context) ([]dto.HallDashboardResponse, error) {
	halls, err := s.ListHalls(ctx)
	if err != nil {
		return nil, err
	}

	// Today's window in UTC, matching how late days are counted.
	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	dashboard := make([]dto.HallDashboardResponse, 0, len(halls))
	for i := range halls {
		hall := &halls[i]

		occ, err := s.visitRepo.CurrentOccupancy(ctx, hall.HallID)
		if err != nil {
			s.LogError(ctx, err, "Failed to derive occupancy", slog.String("hall_id", hall.HallID))
			return nil, err
		}

		stats, err := s.visitRepo.DailyStats(ctx, hall.HallID, dayStart, dayEnd)
		if err != nil {
			s.LogError(ctx, err, "Failed to compute daily stats", slog.String("hall_id", hall.HallID))
			return nil, err
		}

		freeSeats := hall.TotalSeats - occ.Count
		if freeSeats < 0 {
			freeSeats = 0
		}
		var percent float64
		if hall.TotalSeats > 0 {
			percent = float64(occ.Count) / float64(hall.TotalSeats) * 100
		}

		dashboard = append(dashboard, dto.HallDashboardResponse{
			HallID:              hall.HallID,
			Name:                hall.Name,
			Specialization:      hall.Specialization,
			TotalSeats:          hall.TotalSeats,
			CurrentVisitors:     occ.Count,
			FreeSeats:           freeSeats,
			OccupancyPercent:    percent,
			VisitsToday:         stats.Visits,
			UniqueVisitorsToday: stats.UniqueVisitors,
		})
	}

	return dashboard, nil
}

func (s *occupancyService) ListRecentVisits(ctx context.Context, params dto.RecentVisitsParams) (*dto.RecentVisitsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > maxRecentVisitsPage {
		limit = maxRecentVisitsPage
	}

	var before time.Time
	var beforeSeq int64
	if params.Token != "" {
		var err error
		before, beforeSeq, err = pagination.DecodeVisitToken(params.Token)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}

	visits, err := s.visitRepo.ListRecentVisits(ctx, before, beforeSeq, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent visits")
		return nil, err
	}

	resp := &dto.RecentVisitsResponse{
		Visits: dto.ToListVisitResponse(visits),
	}
	if len(visits) == limit {
		last := visits[len(visits)-1]
		resp.NextToken = pagination.EncodeVisitToken(last.VisitTime, last.Seq)
	}
	return resp, nil
}
