package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/models"
)

type ActivityHandler struct {
	dir Directory
	log *zap.SugaredLogger
}

func NewActivityHandler(dir Directory, log *zap.SugaredLogger) *ActivityHandler {
	return &ActivityHandler{dir: dir, log: log}
}

// GetActivity returns the project timeline, newest first.
func (h *ActivityHandler) GetActivity(c *gin.Context) {
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

	activities, err := h.dir.ListActivities(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list activities",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ActivityResponse{Activities: activities})
}

// PostComment appends a comment row to the activity log.
func (h *ActivityHandler) PostComment(c *gin.Context) {
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

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	err := h.dir.InsertActivity(projectID, &userID, models.ActivityComment, models.CommentDetails{
		Text: req.Text,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to post comment",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "comment added"})
}
