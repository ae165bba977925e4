package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/middleware"
)

// authHandler handles HTTP requests related to authentication.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{
		authService: as,
	}
}

// registerAuthRoutes registers the public authentication routes. The
// login endpoint sits behind a per-IP rate limit.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(authService)

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.login)
	}
}

// login verifies librarian credentials and returns a signed bearer token.
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}
