package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/middleware"
	"github.com/hnnsly/library-core/internal/utils"
)

// readerHandler handles HTTP requests related to library members.
type readerHandler struct {
	readerService      portssvc.ReaderSvcFacade
	circulationService portssvc.CirculationSvcFacade
	fineService        portssvc.FineSvcFacade
}

// newReaderHandler creates a new readerHandler.
func newReaderHandler(rs portssvc.ReaderSvcFacade, cs portssvc.CirculationSvcFacade, fs portssvc.FineSvcFacade) *readerHandler {
	return &readerHandler{
		readerService:      rs,
		circulationService: cs,
		fineService:        fs,
	}
}

// registerReaderRoutes registers routes related to readers.
func registerReaderRoutes(rg *gin.RouterGroup, readerService portssvc.ReaderSvcFacade, circulationService portssvc.CirculationSvcFacade, fineService portssvc.FineSvcFacade) {
	h := newReaderHandler(readerService, circulationService, fineService)

	readers := rg.Group("/readers")
	{
		readers.POST("", h.registerReader)
		readers.GET("", h.listReaders)
		readers.GET("/:readerID", h.getReaderByID)
		readers.PUT("/:readerID/active", h.setReaderActive)
		readers.GET("/:readerID/loans", h.listOpenLoans)
		readers.GET("/:readerID/fines", h.listFines)
		readers.GET("/ticket/:ticketNumber", h.getReaderByTicket)
	}
}

func (h *readerHandler) registerReader(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterReader", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := librarianID(c)
	if !ok {
		return
	}

	reader, err := h.readerService.RegisterReader(c.Request.Context(), req, creatorID)
	if err != nil {
		respondServiceError(c, err, "Failed to register reader")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReaderResponse(reader))
}

func (h *readerHandler) listReaders(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	readers, err := h.readerService.ListReaders(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list readers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListReaderResponse(readers))
}

func (h *readerHandler) getReaderByID(c *gin.Context) {
	reader, err := h.readerService.GetReaderByID(c.Request.Context(), c.Param("readerID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve reader")
		return
	}

	c.JSON(http.StatusOK, dto.ToReaderResponse(reader))
}

func (h *readerHandler) getReaderByTicket(c *gin.Context) {
	reader, err := h.readerService.GetReaderByTicket(c.Request.Context(), c.Param("ticketNumber"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve reader")
		return
	}

	c.JSON(http.StatusOK, dto.ToReaderResponse(reader))
}

func (h *readerHandler) setReaderActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetReaderActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetReaderActive", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterID, ok := librarianID(c)
	if !ok {
		return
	}

	reader, err := h.readerService.SetReaderActive(c.Request.Context(), c.Param("readerID"), *req.IsActive, updaterID)
	if err != nil {
		respondServiceError(c, err, "Failed to update reader")
		return
	}

	c.JSON(http.StatusOK, dto.ToReaderResponse(reader))
}

// listOpenLoans retrieves the reader's open loans.
func (h *readerHandler) listOpenLoans(c *gin.Context) {
	readerID := c.Param("readerID")

	if _, err := h.readerService.GetReaderByID(c.Request.Context(), readerID); err != nil {
		respondServiceError(c, err, "Failed to retrieve reader")
		return
	}

	loans, err := h.circulationService.ListOpenLoansByReader(c.Request.Context(), readerID)
	if err != nil {
		respondServiceError(c, err, "Failed to list loans")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans))
}

// listFines retrieves the reader's fines together with the outstanding total.
func (h *readerHandler) listFines(c *gin.Context) {
	readerID := c.Param("readerID")

	if _, err := h.readerService.GetReaderByID(c.Request.Context(), readerID); err != nil {
		respondServiceError(c, err, "Failed to retrieve reader")
		return
	}

	fines, err := h.fineService.ListFinesByReader(c.Request.Context(), readerID)
	if err != nil {
		respondServiceError(c, err, "Failed to list fines")
		return
	}

	total, err := h.fineService.OutstandingTotal(c.Request.Context(), readerID)
	if err != nil {
		respondServiceError(c, err, "Failed to sum outstanding fines")
		return
	}

	c.JSON(http.StatusOK, dto.ReaderFinesResponse{
		ReaderID:                  readerID,
		Fines:                     dto.ToListFineResponse(fines),
		OutstandingTotal:          total,
		OutstandingTotalFormatted: utils.FormatMinorUnits(total),
	})
}
