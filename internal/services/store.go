package services

import (
	"github.com/google/uuid"

	"github.com/Catacombb/f9-sub000/internal/models"
)

// Store is the relational persistence surface the services depend on,
// satisfied by *supabase.DatabaseClient.
type Store interface {
	GetProject(projectID uuid.UUID) (*models.Project, error)
	GetProjectForUser(projectID, userID uuid.UUID) (*models.Project, error)
	MostRecentProject(userID uuid.UUID) (*models.Project, error)
	InsertProject(userID uuid.UUID) (uuid.UUID, error)
	UpdateProjectVersioned(p *models.Project, expectedVersion int) (bool, error)
	UpdateProjectStatus(projectID uuid.UUID, status string) (*models.Project, error)
	DeleteProject(projectID uuid.UUID) error

	ReplaceRooms(projectID uuid.UUID, rooms []models.Room) error
	GetRooms(projectID uuid.UUID) ([]models.Room, error)
	ReplaceOccupants(projectID uuid.UUID, occupants []models.Occupant) error
	GetOccupants(projectID uuid.UUID) ([]models.Occupant, error)
	ReplaceProfessionals(projectID uuid.UUID, professionals []models.Professional) error
	GetProfessionals(projectID uuid.UUID) ([]models.Professional, error)
	ReplaceInspiration(projectID uuid.UUID, entries []models.InspirationEntry) error
	GetInspiration(projectID uuid.UUID) ([]models.InspirationEntry, error)

	UpsertSettings(s *models.ProjectSettings) error
	GetSettings(projectID uuid.UUID) (*models.ProjectSettings, error)
	UpsertSummary(projectID uuid.UUID, s *models.Summary) error
	GetSummary(projectID uuid.UUID) (*models.Summary, error)

	CreateProjectFile(f *models.ProjectFile) error
	GetProjectFile(fileID uuid.UUID) (*models.ProjectFile, error)
	ListProjectFiles(projectID uuid.UUID) ([]models.ProjectFile, error)
	DeleteProjectFile(fileID uuid.UUID) error

	InsertActivity(projectID uuid.UUID, userID *uuid.UUID, activityType string, details any) error
}

// BlobStore is the object-storage surface, satisfied by
// *supabase.StorageClient.
type BlobStore interface {
	UploadFile(category string, projectID uuid.UUID, filename, contentType string, data []byte) (path, url string, err error)
	GetPublicURL(storagePath string) string
	DeleteFile(storagePath string) error
	ListProjectObjects(category string, projectID uuid.UUID) ([]string, error)
	DeleteProjectObjects(projectID uuid.UUID, categories []string) error
}

// ProjectCreator is the hosted create_client_project RPC, satisfied by
// *supabase.Client. Optional: a nil creator skips straight to the direct
// insert fallback.
type ProjectCreator interface {
	CreateClientProject(userID uuid.UUID) (uuid.UUID, error)
}
