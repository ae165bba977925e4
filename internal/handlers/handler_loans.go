package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/middleware"
)

// loanHandler handles HTTP requests related to the loan lifecycle.
type loanHandler struct {
	circulationService portssvc.CirculationSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(cs portssvc.CirculationSvcFacade) *loanHandler {
	return &loanHandler{
		circulationService: cs,
	}
}

// registerLoanRoutes registers routes related to loans.
func registerLoanRoutes(rg *gin.RouterGroup, circulationService portssvc.CirculationSvcFacade) {
	h := newLoanHandler(circulationService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.issueLoan)
		loans.GET("/open", h.listBooksToReturn)
		loans.GET("/overdue", h.listOverdueLoans)
		loans.GET("/:loanID", h.getLoanByID)
		loans.POST("/:loanID/renew", h.renewLoan)
		loans.POST("/:loanID/return", h.returnLoan)
		loans.GET("/:loanID/renewals", h.listRenewals)
	}
}

func (h *loanHandler) issueLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.IssueLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	issuerID, ok := librarianID(c)
	if !ok {
		return
	}

	loan, err := h.circulationService.IssueLoan(c.Request.Context(), req, issuerID)
	if err != nil {
		respondServiceError(c, err, "Failed to issue loan")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

func (h *loanHandler) getLoanByID(c *gin.Context) {
	loan, err := h.circulationService.GetLoanByID(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve loan")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) renewLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RenewLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RenewLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	renewerID, ok := librarianID(c)
	if !ok {
		return
	}

	loan, err := h.circulationService.RenewLoan(c.Request.Context(), c.Param("loanID"), req, renewerID)
	if err != nil {
		respondServiceError(c, err, "Failed to renew loan")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

func (h *loanHandler) returnLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReturnLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	returnerID, ok := librarianID(c)
	if !ok {
		return
	}

	loan, fine, err := h.circulationService.ReturnLoan(c.Request.Context(), c.Param("loanID"), req, returnerID)
	if err != nil {
		respondServiceError(c, err, "Failed to return loan")
		return
	}

	resp := dto.ReturnLoanResponse{Loan: dto.ToLoanResponse(loan)}
	if fine != nil {
		f := dto.ToFineResponse(fine)
		resp.Fine = &f
	}

	c.JSON(http.StatusOK, resp)
}

func (h *loanHandler) listRenewals(c *gin.Context) {
	renewals, err := h.circulationService.ListRenewals(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondServiceError(c, err, "Failed to list renewals")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRenewalResponse(renewals))
}

// listBooksToReturn retrieves open loans ordered by due date, the desk's
// work queue.
func (h *loanHandler) listBooksToReturn(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	loans, err := h.circulationService.ListBooksToReturn(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list open loans")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans))
}

func (h *loanHandler) listOverdueLoans(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	loans, err := h.circulationService.ListOverdueLoans(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list overdue loans")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans))
}
