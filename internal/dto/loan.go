package dto

import (
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
)

// IssueLoanRequest defines the data needed to issue a copy to a reader.
// The copy may be addressed either by its id or by the physical copy code
// scanned at the desk.
type IssueLoanRequest struct {
	ReaderID string    `json:"readerID" binding:"required"`
	CopyID   string    `json:"copyID" binding:"required_without=CopyCode"`
	CopyCode string    `json:"copyCode" binding:"required_without=CopyID"`
	DueDate  time.Time `json:"dueDate" binding:"required"`
}

// RenewLoanRequest defines the data needed to extend a loan's due date.
type RenewLoanRequest struct {
	NewDueDate time.Time `json:"newDueDate" binding:"required"`
}

// ReturnLoanRequest defines the data recorded when a copy comes back.
// ReturnTime defaults to the current time when omitted.
type ReturnLoanRequest struct {
	Condition  domain.CopyCondition `json:"condition" binding:"required,oneof=good damaged"`
	ReturnTime *time.Time           `json:"returnTime"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID      string     `json:"loanID"`
	ReaderID    string     `json:"readerID"`
	CopyID      string     `json:"copyID"`
	IssueDate   time.Time  `json:"issueDate"`
	DueDate     time.Time  `json:"dueDate"`
	ReturnDate  *time.Time `json:"returnDate,omitempty"`
	RenewCount  int        `json:"renewCount"`
	LibrarianID string     `json:"librarianID"`
}

// ReturnLoanResponse carries the closed loan plus the fine assessed at
// return time, if any.
type ReturnLoanResponse struct {
	Loan LoanResponse  `json:"loan"`
	Fine *FineResponse `json:"fine,omitempty"`
}

// RenewalResponse defines the data returned for one renewal record.
type RenewalResponse struct {
	RenewalID   string    `json:"renewalID"`
	LoanID      string    `json:"loanID"`
	OldDueDate  time.Time `json:"oldDueDate"`
	NewDueDate  time.Time `json:"newDueDate"`
	RenewedAt   time.Time `json:"renewedAt"`
	LibrarianID string    `json:"librarianID"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse DTO
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:      l.LoanID,
		ReaderID:    l.ReaderID,
		CopyID:      l.CopyID,
		IssueDate:   l.IssueDate,
		DueDate:     l.DueDate,
		ReturnDate:  l.ReturnDate,
		RenewCount:  l.RenewCount,
		LibrarianID: l.LibrarianID,
	}
}

// ToListLoanResponse converts a slice of domain.Loan to LoanResponse DTOs
func ToListLoanResponse(loans []domain.Loan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i := range loans {
		res[i] = ToLoanResponse(&loans[i])
	}
	return res
}

// ToRenewalResponse converts a domain.LoanRenewal to RenewalResponse DTO
func ToRenewalResponse(r *domain.LoanRenewal) RenewalResponse {
	return RenewalResponse{
		RenewalID:   r.RenewalID,
		LoanID:      r.LoanID,
		OldDueDate:  r.OldDueDate,
		NewDueDate:  r.NewDueDate,
		RenewedAt:   r.RenewedAt,
		LibrarianID: r.LibrarianID,
	}
}

// ToListRenewalResponse converts a slice of domain.LoanRenewal to RenewalResponse DTOs
func ToListRenewalResponse(renewals []domain.LoanRenewal) []RenewalResponse {
	res := make([]RenewalResponse, len(renewals))
	for i := range renewals {
		res[i] = ToRenewalResponse(&renewals[i])
	}
	return res
}
