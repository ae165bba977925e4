package domain

// Book represents a cataloged title. Physical instances are tracked
// separately as BookCopy records; a Book itself carries no availability
// state — available counts are always derived from its copies.
type Book struct {
	BookID          string   `json:"bookID"`
	Title           string   `json:"title"`
	ISBN            string   `json:"isbn"`            // Optional, empty if unknown
	PublicationYear int      `json:"publicationYear"` // Optional, zero if unknown
	Publisher       string   `json:"publisher"`       // Optional
	AuthorIDs       []string `json:"authorIDs"`       // Ordered references to Author
	AuditFields
}
