package dto

import (
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
)

// RegisterReaderRequest defines the data needed to register a new reader.
type RegisterReaderRequest struct {
	TicketNumber string `json:"ticketNumber" binding:"required"`
	FullName     string `json:"fullName" binding:"required"`
}

// SetReaderActiveRequest toggles a reader's active flag.
type SetReaderActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ReaderResponse defines the data returned for a reader.
type ReaderResponse struct {
	ReaderID         string    `json:"readerID"`
	TicketNumber     string    `json:"ticketNumber"`
	FullName         string    `json:"fullName"`
	IsActive         bool      `json:"isActive"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// ToReaderResponse converts a domain.Reader to ReaderResponse DTO
func ToReaderResponse(r *domain.Reader) ReaderResponse {
	return ReaderResponse{
		ReaderID:         r.ReaderID,
		TicketNumber:     r.TicketNumber,
		FullName:         r.FullName,
		IsActive:         r.IsActive,
		RegistrationDate: r.RegistrationDate,
	}
}

// ToListReaderResponse converts a slice of domain.Reader to ReaderResponse DTOs
func ToListReaderResponse(readers []domain.Reader) []ReaderResponse {
	res := make([]ReaderResponse, len(readers))
	for i := range readers {
		res[i] = ToReaderResponse(&readers[i])
	}
	return res
}
