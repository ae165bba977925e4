package domain

// CopyStatus is the lifecycle state of a physical book copy.
type CopyStatus string

const (
	CopyAvailable CopyStatus = "available"
	CopyIssued    CopyStatus = "issued"
	CopyReserved  CopyStatus = "reserved"
	CopyLost      CopyStatus = "lost"
	CopyDamaged   CopyStatus = "damaged"
)

// CopyCondition describes the physical state of a copy at return time.
type CopyCondition string

const (
	ConditionGood    CopyCondition = "good"
	ConditionDamaged CopyCondition = "damaged"
)

// BookCopy is one physical instance of a Book. Its status is mutated only
// through the catalog service; copies are never deleted, a lost or damaged
// copy stays on record with a terminal status.
type BookCopy struct {
	CopyID       string     `json:"copyID"`
	BookID       string     `json:"bookID"`
	CopyCode     string     `json:"copyCode"` // Unique physical label
	Status       CopyStatus `json:"status"`
	HallID       string     `json:"hallID"`       // Optional home hall, empty if open stacks
	LocationInfo string     `json:"locationInfo"` // Optional shelf/rack note
	AuditFields
}

// ReturnStatus maps a return condition onto the copy status the copy
// should take after the loan closes.
func ReturnStatus(condition CopyCondition) CopyStatus {
	if condition == ConditionDamaged {
		return CopyDamaged
	}
	return CopyAvailable
}
