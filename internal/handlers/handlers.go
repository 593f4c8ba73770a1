package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Catacombb/f9-sub000/internal/middleware"
	"github.com/Catacombb/f9-sub000/internal/models"
)

// Directory is the read/lookup surface the handlers share: profiles for role
// checks, project scoping, and the dashboard aggregates. Satisfied by
// *supabase.DatabaseClient.
type Directory interface {
	GetUserProfile(userID uuid.UUID) (*models.UserProfile, error)
	GetProject(projectID uuid.UUID) (*models.Project, error)
	GetProjectForUser(projectID, userID uuid.UUID) (*models.Project, error)
	ListProjects() ([]models.Project, error)
	ListProjectsForUser(userID uuid.UUID) ([]models.Project, error)
	ListProjectIDs() ([]uuid.UUID, error)
	CountProjectsByStatus(userID *uuid.UUID) (map[string]int, error)
	RecentProjects(userID *uuid.UUID, limit int) ([]models.Project, error)
	RecentActivities(userID *uuid.UUID, limit int) ([]models.Activity, error)
	ListActivities(projectID uuid.UUID) ([]models.Activity, error)
	ListProjectFiles(projectID uuid.UUID) ([]models.ProjectFile, error)
	InsertActivity(projectID uuid.UUID, userID *uuid.UUID, activityType string, details any) error
}

// currentUserID pulls the authenticated user id set by the auth middleware.
// Writes the error response itself when the id is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}
	return userID, true
}

// pathProjectID parses the :project_id route parameter.
func pathProjectID(c *gin.Context) (uuid.UUID, bool) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return uuid.Nil, false
	}
	return projectID, true
}

// isAdmin resolves the caller's role. Missing profiles default to client.
func isAdmin(dir Directory, userID uuid.UUID) bool {
	profile, err := dir.GetUserProfile(userID)
	if err != nil {
		return false
	}
	return profile.Role == models.RoleAdmin
}

// accessProject loads a project scoped by role: admins see any project,
// clients only their own. Writes the 404 itself on failure.
func accessProject(c *gin.Context, dir Directory, projectID, userID uuid.UUID) (*models.Project, bool) {
	var project *models.Project
	var err error
	if isAdmin(dir, userID) {
		project, err = dir.GetProject(projectID)
	} else {
		project, err = dir.GetProjectForUser(projectID, userID)
	}
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return nil, false
	}
	return project, true
}

func projectSummaries(projects []models.Project) []models.ProjectSummary {
	return lo.Map(projects, func(p models.Project, _ int) models.ProjectSummary {
		return models.ProjectSummary{
			ID:             p.ID.String(),
			ClientName:     p.ClientName,
			ProjectAddress: p.ProjectAddress,
			Status:         p.Status,
			Version:        p.Version,
			UpdatedAt:      p.UpdatedAt,
		}
	})
}

func fileResponses(files []models.ProjectFile) []models.FileResponse {
	return lo.Map(files, func(f models.ProjectFile, _ int) models.FileResponse {
		return models.FileResponse{
			ID:          f.ID.String(),
			Name:        f.Name,
			Category:    f.Category,
			ContentType: f.ContentType,
			Size:        f.Size,
			StorageURL:  f.StorageURL,
			CreatedAt:   f.CreatedAt,
		}
	})
}
