package domain

// ReadingHall is static reference data for a supervised reading room.
// CurrentVisitors deliberately does not exist as a field: occupancy is
// always derived from the visit log.
type ReadingHall struct {
	HallID         string `json:"hallID"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"` // Optional subject focus
	TotalSeats     int    `json:"totalSeats"`
	AuditFields
}
