package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/models"
	"github.com/Catacombb/f9-sub000/internal/services"
)

type StatusHandler struct {
	status *services.StatusService
	dir    Directory
	log    *zap.SugaredLogger
}

func NewStatusHandler(status *services.StatusService, dir Directory, log *zap.SugaredLogger) *StatusHandler {
	return &StatusHandler{status: status, dir: dir, log: log}
}

func (h *StatusHandler) GetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}
	project, ok := accessProject(c, h.dir, projectID, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		ProjectID:       projectID.String(),
		Status:          project.Status,
		StatusUpdatedAt: project.StatusUpdatedAt,
	})
}

// UpdateStatus runs the transition through the state machine. Invalid
// transitions are rejected before any write; the activity row for a
// successful change is appended by the database trigger.
func (h *StatusHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := pathProjectID(c)
	if !ok {
		return
	}
	if _, ok := accessProject(c, h.dir, projectID, userID); !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	project, err := h.status.ChangeStatus(projectID, req.Status)
	if errors.Is(err, services.ErrUnknownStatus) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unknown status",
			Message: err.Error(),
		})
		return
	}
	if errors.Is(err, services.ErrInvalidTransition) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "invalid status transition",
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update status",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{
		ProjectID:       projectID.String(),
		Status:          project.Status,
		StatusUpdatedAt: project.StatusUpdatedAt,
	})
}
