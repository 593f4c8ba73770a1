package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/models"
)

const dashboardRecentLimit = 10

type DashboardHandler struct {
	dir Directory
	log *zap.SugaredLogger
}

func NewDashboardHandler(dir Directory, log *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{dir: dir, log: log}
}

// GetDashboard aggregates the landing-page view: status counts, recent
// projects and the activity feed. Admins get the firm-wide view; clients are
// scoped to their own projects.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// nil scope means all projects (admin view).
	var scope *uuid.UUID
	if !isAdmin(h.dir, userID) {
		scope = &userID
	}

	counts, err := h.dir.CountProjectsByStatus(scope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load dashboard",
			Message: err.Error(),
		})
		return
	}

	recent, err := h.dir.RecentProjects(scope, dashboardRecentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load dashboard",
			Message: err.Error(),
		})
		return
	}

	activity, err := h.dir.RecentActivities(scope, dashboardRecentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load dashboard",
			Message: err.Error(),
		})
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	c.JSON(http.StatusOK, models.DashboardResponse{
		StatusCounts:   counts,
		RecentProjects: projectSummaries(recent),
		RecentActivity: activity,
		TotalProjects:  total,
	})
}
