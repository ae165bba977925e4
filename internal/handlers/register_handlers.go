package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/hnnsly/library-core/internal/apperrors"
	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/middleware"
	"github.com/hnnsly/library-core/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.Auth, loginLimiter)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerBookRoutes(v1, services.Catalog)
	registerReaderRoutes(v1, services.Reader, services.Circulation, services.Fine)
	registerLoanRoutes(v1, services.Circulation)
	registerFineRoutes(v1, services.Fine)
	registerHallRoutes(v1, services.Occupancy)
}

// respondServiceError translates service-layer errors into HTTP responses.
// Business refusals become 409 Conflict, missing resources 404, bad input
// 400; anything unrecognized is a 500 with the fallback message so
// internals never leak to the client.
func respondServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrCopyUnavailable),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrReaderInactive),
		errors.Is(err, apperrors.ErrReaderOverLimit),
		errors.Is(err, apperrors.ErrUnpaidFinesBlock),
		errors.Is(err, apperrors.ErrLoanNotOpen),
		errors.Is(err, apperrors.ErrLoanOverdue),
		errors.Is(err, apperrors.ErrRenewalLimitReached),
		errors.Is(err, apperrors.ErrAlreadyReturned),
		errors.Is(err, apperrors.ErrAlreadyPaid),
		errors.Is(err, apperrors.ErrHallFull),
		errors.Is(err, apperrors.ErrAlreadyInHall),
		errors.Is(err, apperrors.ErrNotInHall):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// librarianID extracts the authenticated librarian from the context,
// aborting with 401 when it is missing.
func librarianID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetLibrarianIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Librarian ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}
