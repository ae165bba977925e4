package dto

// LoginRequest defines the librarian login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token       string `json:"token"`
	LibrarianID string `json:"librarianID"`
	FullName    string `json:"fullName"`
}
