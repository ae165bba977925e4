package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
)

type PgxVisitRepository struct {
	BaseRepository
}

// newPgxVisitRepository creates a new repository for the append-only
// visit log. There are no UPDATE or DELETE statements in this file on
// purpose.
func newPgxVisitRepository(pool *pgxpool.Pool) portsrepo.VisitRepositoryFacade {
	return &PgxVisitRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.VisitRepositoryFacade = (*PgxVisitRepository)(nil)

const visitColumns = `visit_id, seq, reader_id, hall_id, visit_type, visit_time, librarian_id`

func scanVisit(row pgx.Row) (domain.HallVisit, error) {
	var visit domain.HallVisit
	err := row.Scan(
		&visit.VisitID,
		&visit.Seq,
		&visit.ReaderID,
		&visit.HallID,
		&visit.VisitType,
		&visit.VisitTime,
		&visit.LibrarianID,
	)
	return visit, err
}

// AppendVisit appends one event to the log and returns it with the
// sequence the database assigned.
func (r *PgxVisitRepository) AppendVisit(ctx context.Context, visit domain.HallVisit) (*domain.HallVisit, error) {
	query := `
		INSERT INTO hall_visits (visit_id, reader_id, hall_id, visit_type, visit_time, librarian_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq;
	`

	err := r.Pool.QueryRow(ctx, query,
		visit.VisitID,
		visit.ReaderID,
		visit.HallID,
		visit.VisitType,
		visit.VisitTime,
		visit.LibrarianID,
	).Scan(&visit.Seq)

	if err != nil {
		return nil, fmt.Errorf("failed to append visit %s: %w", visit.VisitID, err)
	}
	return &visit, nil
}

// FindLatestVisit retrieves the most recent visit event of one reader in
// one hall, ordered by visit time with ties broken by insertion sequence.
func (r *PgxVisitRepository) FindLatestVisit(ctx context.Context, readerID, hallID string) (*domain.HallVisit, error) {
	query := `
		SELECT ` + visitColumns + `
		FROM hall_visits
		WHERE reader_id = $1 AND hall_id = $2
		ORDER BY visit_time DESC, seq DESC
		LIMIT 1;
	`

	visit, err := scanVisit(r.Pool.QueryRow(ctx, query, readerID, hallID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest visit of reader %s in hall %s: %w", readerID, hallID, err)
	}
	return &visit, nil
}

// CurrentOccupancy derives the hall's occupancy from the log. DISTINCT ON
// with the (visit_time DESC, seq DESC) ordering picks each reader's latest
// event, the same derivation domain.ResolveOccupancy performs in memory.
func (r *PgxVisitRepository) CurrentOccupancy(ctx context.Context, hallID string) (domain.Occupancy, error) {
	query := `
		SELECT reader_id FROM (
			SELECT DISTINCT ON (reader_id) reader_id, visit_type
			FROM hall_visits
			WHERE hall_id = $1
			ORDER BY reader_id, visit_time DESC, seq DESC
		) latest
		WHERE visit_type = $2
		ORDER BY reader_id;
	`

	rows, err := r.Pool.Query(ctx, query, hallID, domain.VisitEntry)
	if err != nil {
		return domain.Occupancy{}, fmt.Errorf("failed to derive occupancy of hall %s: %w", hallID, err)
	}
	defer rows.Close()

	readerIDs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var readerID string
		err := row.Scan(&readerID)
		return readerID, err
	})
	if err != nil {
		return domain.Occupancy{}, fmt.Errorf("failed to scan occupancy of hall %s: %w", hallID, err)
	}

	return domain.Occupancy{
		HallID:    hallID,
		Count:     len(readerIDs),
		ReaderIDs: readerIDs,
	}, nil
}

// ListVisitsByHall retrieves the hall's full event log in derivation order.
func (r *PgxVisitRepository) ListVisitsByHall(ctx context.Context, hallID string) ([]domain.HallVisit, error) {
	query := `
		SELECT ` + visitColumns + `
		FROM hall_visits
		WHERE hall_id = $1
		ORDER BY visit_time, seq;
	`

	rows, err := r.Pool.Query(ctx, query, hallID)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits for hall %s: %w", hallID, err)
	}
	defer rows.Close()

	visits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.HallVisit, error) {
		return scanVisit(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan visits: %w", err)
	}

	return visits, nil
}

// ListRecentVisits retrieves visits strictly older than the cursor
// position, newest first. The row comparison on (visit_time, seq) matches
// the keyset the pagination token encodes, so pages never skip or repeat
// events even when visit times collide.
func (r *PgxVisitRepository) ListRecentVisits(ctx context.Context, before time.Time, beforeSeq int64, limit int) ([]domain.HallVisit, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if before.IsZero() {
		query := `
			SELECT ` + visitColumns + `
			FROM hall_visits
			ORDER BY visit_time DESC, seq DESC
			LIMIT $1;
		`
		rows, err = r.Pool.Query(ctx, query, limit)
	} else {
		query := `
			SELECT ` + visitColumns + `
			FROM hall_visits
			WHERE (visit_time, seq) < ($1, $2)
			ORDER BY visit_time DESC, seq DESC
			LIMIT $3;
		`
		rows, err = r.Pool.Query(ctx, query, before, beforeSeq, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recent visits: %w", err)
	}
	defer rows.Close()

	visits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.HallVisit, error) {
		return scanVisit(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan visits: %w", err)
	}

	return visits, nil
}

// DailyStats counts the hall's entry events and distinct visitors within
// the given day window.
func (r *PgxVisitRepository) DailyStats(ctx context.Context, hallID string, dayStart, dayEnd time.Time) (portsrepo.HallDailyStats, error) {
	query := `
		SELECT COUNT(*), COUNT(DISTINCT reader_id)
		FROM hall_visits
		WHERE hall_id = $1 AND visit_type = $2 AND visit_time >= $3 AND visit_time < $4;
	`

	var stats portsrepo.HallDailyStats
	err := r.Pool.QueryRow(ctx, query, hallID, domain.VisitEntry, dayStart, dayEnd).Scan(&stats.Visits, &stats.UniqueVisitors)
	if err != nil {
		return portsrepo.HallDailyStats{}, fmt.Errorf("failed to compute daily stats for hall %s: %w", hallID, err)
	}
	return stats, nil
}
