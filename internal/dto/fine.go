package dto

import (
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
	"github.com/hnnsly/library-core/internal/utils"
)

// RecordFineRequest defines the data needed to record a manual fine.
// Amount is in integer minor currency units.
type RecordFineRequest struct {
	ReaderID string  `json:"readerID" binding:"required"`
	LoanID   *string `json:"loanID"`
	Amount   int64   `json:"amount"`
	Reason   string  `json:"reason" binding:"required"`
}

// FineResponse defines the data returned for a fine. Amount is in minor
// units; AmountFormatted is its exact decimal rendering.
type FineResponse struct {
	FineID          string     `json:"fineID"`
	ReaderID        string     `json:"readerID"`
	LoanID          *string    `json:"loanID,omitempty"`
	Amount          int64      `json:"amount"`
	AmountFormatted string     `json:"amountFormatted"`
	Reason          string     `json:"reason"`
	FineDate        time.Time  `json:"fineDate"`
	IsPaid          bool       `json:"isPaid"`
	PaidDate        *time.Time `json:"paidDate,omitempty"`
}

// ReaderFinesResponse lists a reader's fines with their outstanding total.
type ReaderFinesResponse struct {
	ReaderID                  string         `json:"readerID"`
	Fines                     []FineResponse `json:"fines"`
	OutstandingTotal          int64          `json:"outstandingTotal"`
	OutstandingTotalFormatted string         `json:"outstandingTotalFormatted"`
}

// ToFineResponse converts a domain.Fine to FineResponse DTO
func ToFineResponse(f *domain.Fine) FineResponse {
	return FineResponse{
		FineID:          f.FineID,
		ReaderID:        f.ReaderID,
		LoanID:          f.LoanID,
		Amount:          f.Amount,
		AmountFormatted: utils.FormatMinorUnits(f.Amount),
		Reason:          f.Reason,
		FineDate:        f.FineDate,
		IsPaid:          f.IsPaid,
		PaidDate:        f.PaidDate,
	}
}

// ToListFineResponse converts a slice of domain.Fine to FineResponse DTOs
func ToListFineResponse(fines []domain.Fine) []FineResponse {
	res := make([]FineResponse, len(fines))
	for i := range fines {
		res[i] = ToFineResponse(&fines[i])
	}
	return res
}
