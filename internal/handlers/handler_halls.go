package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnnsly/library-core/internal/core/ports/services"
	"github.com/hnnsly/library-core/internal/dto"
	"github.com/hnnsly/library-core/internal/middleware"
)

// hallHandler handles HTTP requests related to halls and the visit log.
type hallHandler struct {
	occupancyService portssvc.OccupancySvcFacade
}

// newHallHandler creates a new hallHandler.
func newHallHandler(os portssvc.OccupancySvcFacade) *hallHandler {
	return &hallHandler{
		occupancyService: os,
	}
}

// registerHallRoutes registers routes related to reading halls and visits.
func registerHallRoutes(rg *gin.RouterGroup, occupancyService portssvc.OccupancySvcFacade) {
	h := newHallHandler(occupancyService)

	halls := rg.Group("/halls")
	{
		halls.POST("", h.createHall)
		halls.GET("", h.listHalls)
		halls.GET("/dashboard", h.dashboard)
		halls.GET("/:hallID/occupancy", h.getOccupancy)
	}

	visits := rg.Group("/visits")
	{
		visits.POST("", h.registerVisit)
		visits.GET("/recent", h.listRecentVisits)
	}
}

func (h *hallHandler) createHall(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateHall", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := librarianID(c)
	if !ok {
		return
	}

	hall, err := h.occupancyService.CreateHall(c.Request.Context(), req, creatorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create hall")
		return
	}

	c.JSON(http.StatusCreated, dto.ToHallResponse(hall))
}

func (h *hallHandler) listHalls(c *gin.Context) {
	halls, err := h.occupancyService.ListHalls(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list halls")
		return
	}

	c.JSON(http.StatusOK, dto.ToListHallResponse(halls))
}

// dashboard joins every hall's static data with derived occupancy and
// today's visit statistics.
func (h *hallHandler) dashboard(c *gin.Context) {
	dashboard, err := h.occupancyService.HallsDashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *hallHandler) getOccupancy(c *gin.Context) {
	occupancy, err := h.occupancyService.GetOccupancy(c.Request.Context(), c.Param("hallID"))
	if err != nil {
		respondServiceError(c, err, "Failed to derive occupancy")
		return
	}

	c.JSON(http.StatusOK, dto.ToOccupancyResponse(occupancy))
}

// registerVisit appends one entry/exit event to the visit log.
func (h *hallHandler) registerVisit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterVisit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	registrarID, ok := librarianID(c)
	if !ok {
		return
	}

	visit, err := h.occupancyService.RegisterVisit(c.Request.Context(), req, registrarID)
	if err != nil {
		respondServiceError(c, err, "Failed to register visit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToVisitResponse(visit))
}

// listRecentVisits pages through the visit log, newest first.
func (h *hallHandler) listRecentVisits(c *gin.Context) {
	var params dto.RecentVisitsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.occupancyService.ListRecentVisits(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list recent visits")
		return
	}

	c.JSON(http.StatusOK, page)
}
