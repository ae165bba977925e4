package domain

// Librarian is a staff account. Issue, return and visit records reference
// the librarian who processed them; the password hash is bcrypt.
type Librarian struct {
	LibrarianID  string `json:"librarianID"`
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
