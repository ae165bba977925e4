package dto

import (
	"time"

	"github.com/hnnsly/library-core/internal/core/domain"
)

// CreateBookRequest defines the data needed to catalog a new book.
type CreateBookRequest struct {
	Title           string   `json:"title" binding:"required"`
	ISBN            string   `json:"isbn"`
	PublicationYear int      `json:"publicationYear"`
	Publisher       string   `json:"publisher"`
	AuthorIDs       []string `json:"authorIDs"`
}

// BookResponse defines the data returned for a book, including the derived
// availability count.
type BookResponse struct {
	BookID          string    `json:"bookID"`
	Title           string    `json:"title"`
	ISBN            string    `json:"isbn,omitempty"`
	PublicationYear int       `json:"publicationYear,omitempty"`
	Publisher       string    `json:"publisher,omitempty"`
	AuthorIDs       []string  `json:"authorIDs"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BookAvailabilityResponse reports the derived available-copy count for a book.
type BookAvailabilityResponse struct {
	BookID          string `json:"bookID"`
	AvailableCopies int    `json:"availableCopies"`
}

// CreateCopyRequest defines the data needed to catalog a new physical copy.
type CreateCopyRequest struct {
	CopyCode     string `json:"copyCode" binding:"required"`
	HallID       string `json:"hallID"`
	LocationInfo string `json:"locationInfo"`
}

// CopyResponse defines the data returned for a book copy.
type CopyResponse struct {
	CopyID       string            `json:"copyID"`
	BookID       string            `json:"bookID"`
	CopyCode     string            `json:"copyCode"`
	Status       domain.CopyStatus `json:"status"`
	HallID       string            `json:"hallID,omitempty"`
	LocationInfo string            `json:"locationInfo,omitempty"`
}

// ToBookResponse converts a domain.Book to BookResponse DTO
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:          b.BookID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Publisher:       b.Publisher,
		AuthorIDs:       b.AuthorIDs,
		CreatedAt:       b.CreatedAt,
	}
}

// ToListBookResponse converts a slice of domain.Book to BookResponse DTOs
func ToListBookResponse(books []domain.Book) []BookResponse {
	res := make([]BookResponse, len(books))
	for i := range books {
		res[i] = ToBookResponse(&books[i])
	}
	return res
}

// ToCopyResponse converts a domain.BookCopy to CopyResponse DTO
func ToCopyResponse(c *domain.BookCopy) CopyResponse {
	return CopyResponse{
		CopyID:       c.CopyID,
		BookID:       c.BookID,
		CopyCode:     c.CopyCode,
		Status:       c.Status,
		HallID:       c.HallID,
		LocationInfo: c.LocationInfo,
	}
}

// ToListCopyResponse converts a slice of domain.BookCopy to CopyResponse DTOs
func ToListCopyResponse(copies []domain.BookCopy) []CopyResponse {
	res := make([]CopyResponse, len(copies))
	for i := range copies {
		res[i] = ToCopyResponse(&copies[i])
	}
	return res
}

// ListParams defines common limit/offset query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
