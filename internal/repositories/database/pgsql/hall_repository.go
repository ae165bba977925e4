package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hnnsly/library-core/internal/apperrors"
	"github.com/hnnsly/library-core/internal/core/domain"
	portsrepo "github.com/hnnsly/library-core/internal/core/ports/repositories"
)

type PgxHallRepository struct {
	BaseRepository
}

// newPgxHallRepository creates a new repository for reading halls.
func newPgxHallRepository(pool *pgxpool.Pool) portsrepo.HallRepositoryFacade {
	return &PgxHallRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.HallRepositoryFacade = (*PgxHallRepository)(nil)

const hallColumns = `hall_id, name, specialization, total_seats, created_at, created_by, last_updated_at, last_updated_by`

func scanHall(row pgx.Row) (domain.ReadingHall, error) {
	var hall domain.ReadingHall
	err := row.Scan(
		&hall.HallID,
		&hall.Name,
		&hall.Specialization,
		&hall.TotalSeats,
		&hall.CreatedAt,
		&hall.CreatedBy,
		&hall.LastUpdatedAt,
		&hall.LastUpdatedBy,
	)
	return hall, err
}

// SaveHall persists a new reading hall.
func (r *PgxHallRepository) SaveHall(ctx context.Context, hall domain.ReadingHall) error {
	query := `
		INSERT INTO reading_halls (hall_id, name, specialization, total_seats, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		hall.HallID,
		hall.Name,
		hall.Specialization,
		hall.TotalSeats,
		hall.CreatedAt,
		hall.CreatedBy,
		hall.LastUpdatedAt,
		hall.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save hall %s: %w", hall.HallID, err)
	}
	return nil
}

// FindHallByID retrieves a hall by its unique identifier.
func (r *PgxHallRepository) FindHallByID(ctx context.Context, hallID string) (*domain.ReadingHall, error) {
	query := `SELECT ` + hallColumns + ` FROM reading_halls WHERE hall_id = $1;`

	hall, err := scanHall(r.Pool.QueryRow(ctx, query, hallID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find hall by id %s: %w", hallID, err)
	}
	return &hall, nil
}

// ListHalls retrieves all reading halls ordered by name.
func (r *PgxHallRepository) ListHalls(ctx context.Context) ([]domain.ReadingHall, error) {
	query := `SELECT ` + hallColumns + ` FROM reading_halls ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query halls: %w", err)
	}
	defer rows.Close()

	halls, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ReadingHall, error) {
		return scanHall(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan halls: %w", err)
	}

	return halls, nil
}
