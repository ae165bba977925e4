package repositories

import (
	"context"
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
)

// HallReader defines read operations for reading halls.
type HallReader interface {
	// FindHallByID retrieves a hall by its unique identifier.
	FindHallByID(ctx context.Context, hallID string) (*domain.ReadingHall, error)

	// ListHalls retrieves all reading halls ordered by name.
	ListHalls(ctx context.Context) ([]domain.ReadingHall, error)
}

// HallWriter defines write operations for reading halls.
type HallWriter interface {
	// SaveHall persists a new reading hall.
	SaveHall(ctx context.Context, hall domain.ReadingHall) error
}

// HallRepositoryFacade combines all hall-related repository interfaces.
type HallRepositoryFacade interface {
	HallReader
	HallWriter
}

// HallDailyStats aggregates one hall's visit activity for a single day.
type HallDailyStats struct {
	Visits         int
	UniqueVisitors int
}

// VisitReader defines read operations over the append-only visit log.
type VisitReader interface {
	// FindLatestVisit retrieves the most recent visit event of one reader
	// in one hall, ordered by visit time with ties broken by insertion
	// sequence. Returns apperrors.ErrNotFound when the reader has no
	// events in that hall.
	FindLatestVisit(ctx context.Context, readerID, hallID string) (*domain.HallVisit, error)

	// CurrentOccupancy derives the hall's occupancy from the log: the
	// readers whose latest event in the hall is an entry. The result must
	// agree with domain.ResolveOccupancy over the same log.
	CurrentOccupancy(ctx context.Context, hallID string) (domain.Occupancy, error)

	// ListVisitsByHall retrieves the hall's full event log in derivation
	// order (visit time, then insertion sequence).
	ListVisitsByHall(ctx context.Context, hallID string) ([]domain.HallVisit, error)

	// ListRecentVisits retrieves visits strictly older than the cursor
	// position (before, beforeSeq), newest first. A zero before time
	// means start from the newest event.
	ListRecentVisits(ctx context.Context, before time.Time, beforeSeq int64, limit int) ([]domain.HallVisit, error)

	// DailyStats counts the hall's visits and distinct visitors within
	// the given day window.
	DailyStats(ctx context.Context, hallID string, dayStart, dayEnd time.Time) (HallDailyStats, error)
}

// VisitWriter defines write operations over the append-only visit log.
type VisitWriter interface {
	// AppendVisit appends one event to the log and returns it with the
	// assigned insertion sequence. Existing events are never updated or
	// deleted.
	AppendVisit(ctx context.Context, visit domain.HallVisit) (*domain.HallVisit, error)
}

// VisitRepositoryFacade combines all visit-log repository interfaces.
type VisitRepositoryFacade interface {
	VisitReader
	VisitWriter
}
