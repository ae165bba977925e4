package domain_test

import (
	"testing"
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func visit(seq int64, reader, hall string, vt domain.VisitType, at time.Time) domain.HallVisit {
	return domain.HallVisit{
		Seq:       seq,
		ReaderID:  reader,
		HallID:    hall,
		VisitType: vt,
		VisitTime: at,
	}
}

func TestResolveOccupancy(t *testing.T) {
	t0 := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)

	t.Run("empty log means empty hall", func(t *testing.T) {
		occ := domain.ResolveOccupancy("h1", nil)
		assert.Equal(t, 0, occ.Count)
		assert.Empty(t, occ.ReaderIDs)
	})

	t.Run("latest event wins per reader", func(t *testing.T) {
		log := []domain.HallVisit{
			visit(1, "r1", "h1", domain.VisitEntry, t0),
			visit(2, "r1", "h1", domain.VisitExit, t0.Add(time.Hour)),
			visit(3, "r1", "h1", domain.VisitEntry, t0.Add(2*time.Hour)),
			visit(4, "r2", "h1", domain.VisitEntry, t0.Add(time.Minute)),
		}

		occ := domain.ResolveOccupancy("h1", log)
		assert.Equal(t, 2, occ.Count)
		assert.Equal(t, []string{"r1", "r2"}, occ.ReaderIDs)
	})

	t.Run("exit after entry decreases count by exactly one", func(t *testing.T) {
		log := []domain.HallVisit{
			visit(1, "r1", "h1", domain.VisitEntry, t0),
			visit(2, "r2", "h1", domain.VisitEntry, t0),
		}
		before := domain.ResolveOccupancy("h1", log)

		log = append(log, visit(3, "r2", "h1", domain.VisitExit, t0.Add(time.Hour)))
		after := domain.ResolveOccupancy("h1", log)

		assert.Equal(t, before.Count-1, after.Count)
		assert.Equal(t, []string{"r1"}, after.ReaderIDs)
	})

	t.Run("events for other halls are ignored", func(t *testing.T) {
		log := []domain.HallVisit{
			visit(1, "r1", "h1", domain.VisitEntry, t0),
			visit(2, "r1", "h2", domain.VisitExit, t0.Add(time.Hour)),
		}

		occ := domain.ResolveOccupancy("h1", log)
		assert.Equal(t, 1, occ.Count)
	})

	t.Run("equal timestamps resolved by insertion sequence", func(t *testing.T) {
		// Exit recorded after entry at the identical timestamp: the
		// higher sequence number is the later event.
		log := []domain.HallVisit{
			visit(2, "r1", "h1", domain.VisitExit, t0),
			visit(1, "r1", "h1", domain.VisitEntry, t0),
		}

		occ := domain.ResolveOccupancy("h1", log)
		assert.Equal(t, 0, occ.Count)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		log := []domain.HallVisit{
			visit(3, "r1", "h1", domain.VisitEntry, t0.Add(2*time.Hour)),
			visit(1, "r1", "h1", domain.VisitEntry, t0),
			visit(2, "r1", "h1", domain.VisitExit, t0.Add(time.Hour)),
		}

		occ := domain.ResolveOccupancy("h1", log)
		assert.Equal(t, 1, occ.Count)
		assert.Equal(t, []string{"r1"}, occ.ReaderIDs)
	})
}
