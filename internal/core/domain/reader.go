package domain

import "time"

// Reader is a registered library member identified by a unique ticket number.
// Readers are never hard-deleted; deactivation flips IsActive.
type Reader struct {
	ReaderID         string    `json:"readerID"`
	TicketNumber     string    `json:"ticketNumber"`
	FullName         string    `json:"fullName"`
	IsActive         bool      `json:"isActive"`
	RegistrationDate time.Time `json:"registrationDate"`
	AuditFields
}
