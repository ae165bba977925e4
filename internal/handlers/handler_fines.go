package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/middleware"
)

// fineHandler handles HTTP requests related to the fine ledger.
type fineHandler struct {
	fineService portssvc.FineSvcFacade
}

// newFineHandler creates a new fineHandler.
func newFineHandler(fs portssvc.FineSvcFacade) *fineHandler {
	return &fineHandler{
		fineService: fs,
	}
}

// registerFineRoutes registers routes related to fines.
func registerFineRoutes(rg *gin.RouterGroup, fineService portssvc.FineSvcFacade) {
	h := newFineHandler(fineService)

	fines := rg.Group("/fines")
	{
		fines.POST("", h.recordFine)
		fines.GET("/unpaid", h.listUnpaidFines)
		fines.GET("/:fineID", h.getFineByID)
		fines.POST("/:fineID/pay", h.payFine)
	}
}

// recordFine records a manual fine, e.g. for a lost copy.
func (h *fineHandler) recordFine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordFine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	recorderID, ok := librarianID(c)
	if !ok {
		return
	}

	fine, err := h.fineService.RecordFine(c.Request.Context(), req, recorderID)
	if err != nil {
		respondServiceError(c, err, "Failed to record fine")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFineResponse(fine))
}

func (h *fineHandler) getFineByID(c *gin.Context) {
	fine, err := h.fineService.GetFineByID(c.Request.Context(), c.Param("fineID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve fine")
		return
	}

	c.JSON(http.StatusOK, dto.ToFineResponse(fine))
}

func (h *fineHandler) payFine(c *gin.Context) {
	fine, err := h.fineService.PayFine(c.Request.Context(), c.Param("fineID"))
	if err != nil {
		respondServiceError(c, err, "Failed to pay fine")
		return
	}

	c.JSON(http.StatusOK, dto.ToFineResponse(fine))
}

func (h *fineHandler) listUnpaidFines(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	fines, err := h.fineService.ListUnpaidFines(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list unpaid fines")
		return
	}

	c.JSON(http.StatusOK, dto.ToListFineResponse(fines))
}
