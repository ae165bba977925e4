package services

import (
	"context"

	"github.com/hnnsly/library-core/internal/core/domain"
	"github.com/hnnsly/library-core/internal/dto"
)

// OccupancySvcFacade reconstructs hall occupancy from the append-only
// visit log and guards new events against it. It never maintains a
// mutable occupancy counter.
type OccupancySvcFacade interface {
	// RegisterVisit validates and appends one entry/exit event. Refuses
	// with ErrHallFull, ErrAlreadyInHall or ErrNotInHall.
	RegisterVisit(ctx context.Context, req dto.RegisterVisitRequest, librarianID string) (*domain.HallVisit, error)

	// GetOccupancy derives the current occupancy of one hall.
	GetOccupancy(ctx context.Context, hallID string) (domain.Occupancy, error)

	// CreateHall registers a new reading hall.
	CreateHall(ctx context.Context, req dto.CreateHallRequest, librarianID string) (*domain.ReadingHall, error)

	// ListHalls retrieves all reading halls.
	ListHalls(ctx context.Context) ([]domain.ReadingHall, error)

	// HallsDashboard joins every hall's static data with its derived
	// occupancy and today's visit statistics.
	HallsDashboard(ctx context.Context) ([]dto.HallDashboardResponse, error)

	// ListRecentVisits pages through the visit log, newest first, using
	// an opaque cursor token.
	ListRecentVisits(ctx context.Context, params dto.RecentVisitsParams) (*dto.RecentVisitsResponse, error)
}
