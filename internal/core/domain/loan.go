package domain

import "time"

// Loan records a single issuance of a book copy to a reader.
// Lifecycle is none -> open -> closed; ReturnDate is set exactly once and
// the record is immutable afterward. At most one open loan may exist per
// copy at any time — the copy repository's conditional status update is
// what enforces that under concurrency.
type Loan struct {
	LoanID      string     `json:"loanID"`
	ReaderID    string     `json:"readerID"`
	CopyID      string     `json:"copyID"`
	IssueDate   time.Time  `json:"issueDate"`
	DueDate     time.Time  `json:"dueDate"`
	ReturnDate  *time.Time `json:"returnDate,omitempty"`
	RenewCount  int        `json:"renewCount"`
	LibrarianID string     `json:"librarianID"`
}

// LoanRenewal is an audit record of one due-date extension. The loan
// itself only carries the current due date and renewal count; the history
// lives here.
type LoanRenewal struct {
	RenewalID   string    `json:"renewalID"`
	LoanID      string    `json:"loanID"`
	OldDueDate  time.Time `json:"oldDueDate"`
	NewDueDate  time.Time `json:"newDueDate"`
	RenewedAt   time.Time `json:"renewedAt"`
	LibrarianID string    `json:"librarianID"`
}

// IsOpen reports whether the loan has not been returned yet.
func (l Loan) IsOpen() bool {
	return l.ReturnDate == nil
}

// IsOverdue reports whether the loan is past its due date at the given time.
func (l Loan) IsOverdue(at time.Time) bool {
	return at.After(l.DueDate)
}

// DaysLate returns the number of whole calendar days between the due date
// and the given return time, truncating both to dates in UTC. Returns on
// or before the due date yield zero; the count grows by one per calendar
// day thereafter, never by clock-hour arithmetic.
func (l Loan) DaysLate(at time.Time) int {
	due := truncateToDate(l.DueDate)
	ret := truncateToDate(at)
	if !ret.After(due) {
		return 0
	}
	return int(ret.Sub(due) / (24 * time.Hour))
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
