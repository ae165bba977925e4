package domain

import (
	"sort"
	"time"
)

// VisitType marks a hall visit event as an entry or an exit.
type VisitType string

const (
	VisitEntry VisitType = "entry"
	VisitExit  VisitType = "exit"
)

// HallVisit is one event in the append-only visit log. Visits are never
// edited or deleted; the log is the sole source of truth for occupancy.
// Seq is the insertion sequence number and breaks ordering ties between
// events that share a visit time.
type HallVisit struct {
	VisitID     string    `json:"visitID"`
	Seq         int64     `json:"seq"`
	ReaderID    string    `json:"readerID"`
	HallID      string    `json:"hallID"`
	VisitType   VisitType `json:"visitType"`
	VisitTime   time.Time `json:"visitTime"`
	LibrarianID *string   `json:"librarianID,omitempty"`
}

// Occupancy is the derived current state of one hall.
type Occupancy struct {
	HallID    string   `json:"hallID"`
	Count     int      `json:"count"`
	ReaderIDs []string `json:"readerIDs"`
}

// ResolveOccupancy reconstructs the current occupancy of a single hall
// from its visit log. A reader is inside iff their most recent event in
// the hall — ordered by visit time, ties broken by insertion sequence —
// is an entry. The slice is not mutated.
//
// The SQL repository answers the same question with an indexed
// latest-event-per-reader query; this fold is the reference derivation
// the repository query must agree with, and the one used by tests.
func ResolveOccupancy(hallID string, visits []HallVisit) Occupancy {
	ordered := make([]HallVisit, 0, len(visits))
	for _, v := range visits {
		if v.HallID == hallID {
			ordered = append(ordered, v)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].VisitTime.Equal(ordered[j].VisitTime) {
			return ordered[i].Seq < ordered[j].Seq
		}
		return ordered[i].VisitTime.Before(ordered[j].VisitTime)
	})

	latest := make(map[string]VisitType, len(ordered))
	for _, v := range ordered {
		latest[v.ReaderID] = v.VisitType
	}

	inside := make([]string, 0, len(latest))
	for readerID, vt := range latest {
		if vt == VisitEntry {
			inside = append(inside, readerID)
		}
	}
	sort.Strings(inside)

	return Occupancy{HallID: hallID, Count: len(inside), ReaderIDs: inside}
}
