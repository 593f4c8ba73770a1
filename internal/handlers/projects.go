package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/models"
	"github.com/Catacombb/f9-sub000/internal/services"
)

type ProjectsHandler struct {
	briefs   *services.BriefService
	autosave *services.Debouncer
	dir      Directory
	log      *zap.SugaredLogger
}

func NewProjectsHandler(briefs *services.BriefService, autosave *services.Debouncer, dir Directory, log *zap.SugaredLogger) *ProjectsHandler {
	return &ProjectsHandler{briefs: briefs, autosave: autosave, dir: dir, log: log}
}

// CreateProject resolves or creates the caller's project. Idempotent: a
// second call returns the same project.
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	project, err := h.briefs.GetOrCreateProject(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, projectResponse(project, nil))
}

func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var projects []models.Project
	var err error
	if isAdmin(h.dir, userID) {
		projects, err = h.dir.ListProjects()
	} else {
		projects, err = h.dir.ListProjectsForUser(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list projects",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: projectSummaries(projects)})
}

func (h *ProjectsHandler) GetProject(c *gin.Context) {
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

	brief, project, err := h.briefs.LoadBrief(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load brief",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, projectResponse(project, brief))
}

// SaveProject is the explicit, non-debounced save. A version conflict comes
// back as 409 with no writes performed; the client reloads and retries.
func (h *ProjectsHandler) SaveProject(c *gin.Context) {
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

	var req models.SaveBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	result, err := h.briefs.SaveBrief(project.UserID, projectID, &req.Brief)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.SaveResponse{Error: err.Error()})
		return
	}
	writeSaveResult(c, result)
}

// QueueDraft feeds the autosave debouncer: the snapshot is persisted once
// edits have been idle for the configured window.
func (h *ProjectsHandler) QueueDraft(c *gin.Context) {
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

	var req models.SaveBriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	h.autosave.Queue(project.UserID, projectID, &req.Brief)
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

// FlushDraft is the manual-save escape hatch: it writes any queued draft
// immediately instead of waiting out the idle window.
func (h *ProjectsHandler) FlushDraft(c *gin.Context) {
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

	result, err := h.autosave.Flush(projectID)
	if errors.Is(err, services.ErrNothingPending) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no pending draft"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.SaveResponse{Error: err.Error()})
		return
	}
	writeSaveResult(c, result)
}

func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
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

	if err := h.briefs.DeleteProject(projectID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete project",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}

func writeSaveResult(c *gin.Context, result *services.SaveResult) {
	if result.Conflict {
		c.JSON(http.StatusConflict, models.SaveResponse{
			Conflict:  true,
			ProjectID: result.ProjectID.String(),
			Error:     "project was modified by another session; reload before saving",
		})
		return
	}
	c.JSON(http.StatusOK, models.SaveResponse{
		Success:   true,
		ProjectID: result.ProjectID.String(),
		Brief:     result.Brief,
	})
}

func projectResponse(p *models.Project, brief *models.Brief) models.ProjectResponse {
	return models.ProjectResponse{
		ID:              p.ID.String(),
		ClientName:      p.ClientName,
		ProjectAddress:  p.ProjectAddress,
		ProjectType:     p.ProjectType,
		Status:          p.Status,
		StatusUpdatedAt: p.StatusUpdatedAt,
		Version:         p.Version,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Brief:           brief,
	}
}
