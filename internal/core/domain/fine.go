package domain

import (
	"fmt"
	"time"
)

// Fine is a monetary penalty owed by a reader, optionally tied to a loan.
// Amounts are integer minor currency units (kopecks/cents); floating point
// is never used for money. IsPaid flips once and there are no refunds.
type Fine struct {
	FineID   string     `json:"fineID"`
	ReaderID string     `json:"readerID"`
	LoanID   *string    `json:"loanID,omitempty"`
	Amount   int64      `json:"amount"` // Minor currency units
	Reason   string     `json:"reason"`
	FineDate time.Time  `json:"fineDate"`
	IsPaid   bool       `json:"isPaid"`
	PaidDate *time.Time `json:"paidDate,omitempty"`
}

// AssessReturn computes the fine owed when a loan closes: daysLate whole
// days at dailyLateRate plus a flat damageFee when the copy comes back
// damaged. A zero amount means no fine is recorded. Rates are policy
// values supplied by configuration, never constants here.
func AssessReturn(daysLate int, condition CopyCondition, dailyLateRate, damageFee int64) (int64, string) {
	var amount int64
	var reason string

	if daysLate > 0 {
		amount += int64(daysLate) * dailyLateRate
		reason = fmt.Sprintf("returned %d day(s) late", daysLate)
	}
	if condition == ConditionDamaged {
		amount += damageFee
		if reason != "" {
			reason += "; copy returned damaged"
		} else {
			reason = "copy returned damaged"
		}
	}

	return amount, reason
}
