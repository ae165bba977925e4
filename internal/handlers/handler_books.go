package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/middleware"
)

// bookHandler handles HTTP requests related to the catalog.
type bookHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// newBookHandler creates a new bookHandler.
func newBookHandler(cs portssvc.CatalogSvcFacade) *bookHandler {
	return &bookHandler{
		catalogService: cs,
	}
}

// registerBookRoutes registers routes related to books and copies.
func registerBookRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newBookHandler(catalogService)

	books := rg.Group("/books")
	{
		books.POST("", h.createBook)
		books.GET("", h.listBooks)
		books.GET("/:bookID", h.getBookByID)
		books.GET("/:bookID/availability", h.getAvailability)
		books.POST("/:bookID/copies", h.addCopy)
		books.GET("/:bookID/copies", h.listCopies)
	}

	copies := rg.Group("/copies")
	{
		copies.GET("/code/:copyCode", h.getCopyByCode)
		copies.POST("/:copyID/lost", h.markCopyLost)
	}
}

func (h *bookHandler) createBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBook", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := librarianID(c)
	if !ok {
		return
	}

	book, err := h.catalogService.CreateBook(c.Request.Context(), req, creatorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create book")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

func (h *bookHandler) listBooks(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	books, err := h.catalogService.ListBooks(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list books")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBookResponse(books))
}

func (h *bookHandler) getBookByID(c *gin.Context) {
	book, err := h.catalogService.GetBookByID(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve book")
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// getAvailability reports the derived available-copy count for a book.
func (h *bookHandler) getAvailability(c *gin.Context) {
	bookID := c.Param("bookID")

	if _, err := h.catalogService.GetBookByID(c.Request.Context(), bookID); err != nil {
		respondServiceError(c, err, "Failed to retrieve book")
		return
	}

	count, err := h.catalogService.AvailableCopies(c.Request.Context(), bookID)
	if err != nil {
		respondServiceError(c, err, "Failed to count available copies")
		return
	}

	c.JSON(http.StatusOK, dto.BookAvailabilityResponse{
		BookID:          bookID,
		AvailableCopies: count,
	})
}

func (h *bookHandler) addCopy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddCopy", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := librarianID(c)
	if !ok {
		return
	}

	copy, err := h.catalogService.AddCopy(c.Request.Context(), c.Param("bookID"), req, creatorID)
	if err != nil {
		respondServiceError(c, err, "Failed to add copy")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCopyResponse(copy))
}

func (h *bookHandler) listCopies(c *gin.Context) {
	copies, err := h.catalogService.ListCopiesByBook(c.Request.Context(), c.Param("bookID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list copies")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCopyResponse(copies))
}

func (h *bookHandler) getCopyByCode(c *gin.Context) {
	copy, err := h.catalogService.GetCopyByCode(c.Request.Context(), c.Param("copyCode"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve copy")
		return
	}

	c.JSON(http.StatusOK, dto.ToCopyResponse(copy))
}

// markCopyLost retires an issued copy as lost.
func (h *bookHandler) markCopyLost(c *gin.Context) {
	updaterID, ok := librarianID(c)
	if !ok {
		return
	}

	copyID := c.Param("copyID")
	if err := h.catalogService.MarkLost(c.Request.Context(), copyID, updaterID); err != nil {
		respondServiceError(c, err, "Failed to mark copy lost")
		return
	}

	copy, err := h.catalogService.GetCopyByID(c.Request.Context(), copyID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve copy")
		return
	}

	c.JSON(http.StatusOK, dto.ToCopyResponse(copy))
}
