package dto

import (
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
)

// CreateHallRequest defines the data needed to register a reading hall.
type CreateHallRequest struct {
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization"`
	TotalSeats     int    `json:"totalSeats" binding:"required,min=1"`
}

// HallResponse defines the data returned for a reading hall.
type HallResponse struct {
	HallID         string `json:"hallID"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	TotalSeats     int    `json:"totalSeats"`
}

// RegisterVisitRequest defines the data recorded at the hall desk. The
// reader is addressed by ticket number, as scanned from their card.
type RegisterVisitRequest struct {
	TicketNumber string           `json:"ticketNumber" binding:"required"`
	HallID       string           `json:"hallID" binding:"required"`
	VisitType    domain.VisitType `json:"visitType" binding:"required,oneof=entry exit"`
}

// VisitResponse defines the data returned for one visit event.
type VisitResponse struct {
	VisitID     string           `json:"visitID"`
	ReaderID    string           `json:"readerID"`
	HallID      string           `json:"hallID"`
	VisitType   domain.VisitType `json:"visitType"`
	VisitTime   time.Time        `json:"visitTime"`
	LibrarianID *string          `json:"librarianID,omitempty"`
}

// OccupancyResponse reports the derived occupancy of one hall.
type OccupancyResponse struct {
	HallID    string   `json:"hallID"`
	Count     int      `json:"count"`
	ReaderIDs []string `json:"readerIDs"`
}

// HallDashboardResponse is the per-hall dashboard projection: derived
// occupancy joined with static hall data and daily visit statistics.
type HallDashboardResponse struct {
	HallID              string  `json:"hallID"`
	Name                string  `json:"name"`
	Specialization      string  `json:"specialization,omitempty"`
	TotalSeats          int     `json:"totalSeats"`
	CurrentVisitors     int     `json:"currentVisitors"`
	FreeSeats           int     `json:"freeSeats"`
	OccupancyPercent    float64 `json:"occupancyPercent"`
	VisitsToday         int     `json:"visitsToday"`
	UniqueVisitorsToday int     `json:"uniqueVisitorsToday"`
}

// RecentVisitsResponse is a page of the visit log with a cursor to the
// next (older) page. NextToken is empty on the last page.
type RecentVisitsResponse struct {
	Visits    []VisitResponse `json:"visits"`
	NextToken string          `json:"nextToken,omitempty"`
}

// RecentVisitsParams defines query parameters for visit-log pagination.
type RecentVisitsParams struct {
	Limit int    `form:"limit,default=50"`
	Token string `form:"token"`
}

// ToHallResponse converts a domain.ReadingHall to HallResponse DTO
func ToHallResponse(h *domain.ReadingHall) HallResponse {
	return HallResponse{
		HallID:         h.HallID,
		Name:           h.Name,
		Specialization: h.Specialization,
		TotalSeats:     h.TotalSeats,
	}
}

// ToListHallResponse converts a slice of domain.ReadingHall to HallResponse DTOs
func ToListHallResponse(halls []domain.ReadingHall) []HallResponse {
	res := make([]HallResponse, len(halls))
	for i := range halls {
		res[i] = ToHallResponse(&halls[i])
	}
	return res
}

// ToVisitResponse converts a domain.HallVisit to VisitResponse DTO
func ToVisitResponse(v *domain.HallVisit) VisitResponse {
	return VisitResponse{
		VisitID:     v.VisitID,
		ReaderID:    v.ReaderID,
		HallID:      v.HallID,
		VisitType:   v.VisitType,
		VisitTime:   v.VisitTime,
		LibrarianID: v.LibrarianID,
	}
}

// ToListVisitResponse converts a slice of domain.HallVisit to VisitResponse DTOs
func ToListVisitResponse(visits []domain.HallVisit) []VisitResponse {
	res := make([]VisitResponse, len(visits))
	for i := range visits {
		res[i] = ToVisitResponse(&visits[i])
	}
	return res
}

// ToOccupancyResponse converts a domain.Occupancy to OccupancyResponse DTO
func ToOccupancyResponse(o domain.Occupancy) OccupancyResponse {
	return OccupancyResponse{
		HallID:    o.HallID,
		Count:     o.Count,
		ReaderIDs: o.ReaderIDs,
	}
}
