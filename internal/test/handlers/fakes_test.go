package handlers_test

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/handlers"
	"github.com/Catacombb/f9-sub000/internal/middleware"
	"github.com/Catacombb/f9-sub000/internal/models"
	"github.com/Catacombb/f9-sub000/internal/services"
)

// fakeBackend backs the handler tests with a single in-memory project. The
// embedded Store interface is left nil: a test reaching an unimplemented
// method panics, which is the signal to implement it here.
type fakeBackend struct {
	services.Store

	mu       sync.Mutex
	project  *models.Project
	profiles map[uuid.UUID]*models.UserProfile

	rooms      []models.Room
	occupants  []models.Occupant
	files      []models.ProjectFile
	activities []models.Activity
}

func newFakeBackend(project *models.Project) *fakeBackend {
	return &fakeBackend{
		project:  project,
		profiles: make(map[uuid.UUID]*models.UserProfile),
	}
}

func (f *fakeBackend) setRole(userID uuid.UUID, role string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[userID] = &models.UserProfile{ID: userID, Role: role}
}

func (f *fakeBackend) GetUserProfile(userID uuid.UUID) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return profile, nil
}

func (f *fakeBackend) GetProject(projectID uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project == nil || f.project.ID != projectID {
		return nil, sql.ErrNoRows
	}
	cp := *f.project
	return &cp, nil
}

func (f *fakeBackend) GetProjectForUser(projectID, userID uuid.UUID) (*models.Project, error) {
	project, err := f.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, sql.ErrNoRows
	}
	return project, nil
}

func (f *fakeBackend) UpdateProjectStatus(projectID uuid.UUID, status string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project == nil || f.project.ID != projectID {
		return nil, sql.ErrNoRows
	}
	f.project.Status = status
	f.project.StatusUpdatedAt = time.Now()
	cp := *f.project
	return &cp, nil
}

func (f *fakeBackend) UpdateProjectVersioned(p *models.Project, expectedVersion int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project == nil || f.project.ID != p.ID || f.project.Version != expectedVersion {
		return false, nil
	}
	updated := *p
	updated.Version = expectedVersion + 1
	updated.UpdatedAt = time.Now()
	f.project = &updated
	return true, nil
}

func (f *fakeBackend) ReplaceRooms(projectID uuid.UUID, rooms []models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append([]models.Room(nil), rooms...)
	return nil
}

func (f *fakeBackend) GetRooms(projectID uuid.UUID) ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Room(nil), f.rooms...), nil
}

func (f *fakeBackend) ReplaceOccupants(projectID uuid.UUID, occupants []models.Occupant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.occupants = append([]models.Occupant(nil), occupants...)
	return nil
}

func (f *fakeBackend) GetOccupants(projectID uuid.UUID) ([]models.Occupant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Occupant(nil), f.occupants...), nil
}

func (f *fakeBackend) ReplaceProfessionals(projectID uuid.UUID, professionals []models.Professional) error {
	return nil
}

func (f *fakeBackend) GetProfessionals(projectID uuid.UUID) ([]models.Professional, error) {
	return nil, nil
}

func (f *fakeBackend) ReplaceInspiration(projectID uuid.UUID, entries []models.InspirationEntry) error {
	return nil
}

func (f *fakeBackend) GetInspiration(projectID uuid.UUID) ([]models.InspirationEntry, error) {
	return nil, nil
}

func (f *fakeBackend) UpsertSettings(s *models.ProjectSettings) error { return nil }

func (f *fakeBackend) GetSettings(projectID uuid.UUID) (*models.ProjectSettings, error) {
	return nil, nil
}

func (f *fakeBackend) UpsertSummary(projectID uuid.UUID, s *models.Summary) error { return nil }

func (f *fakeBackend) GetSummary(projectID uuid.UUID) (*models.Summary, error) { return nil, nil }

func (f *fakeBackend) CreateProjectFile(file *models.ProjectFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file.ID = uuid.New()
	file.CreatedAt = time.Now()
	f.files = append(f.files, *file)
	return nil
}

func (f *fakeBackend) GetProjectFile(fileID uuid.UUID) (*models.ProjectFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.files {
		if f.files[i].ID == fileID {
			cp := f.files[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBackend) DeleteProjectFile(fileID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.files {
		if f.files[i].ID == fileID {
			f.files = append(f.files[:i], f.files[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeBackend) ListProjectFiles(projectID uuid.UUID) ([]models.ProjectFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ProjectFile
	for _, file := range f.files {
		if file.ProjectID == projectID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeBackend) InsertActivity(projectID uuid.UUID, userID *uuid.UUID, activityType string, details any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities = append(f.activities, models.Activity{
		ID:           uuid.New(),
		ProjectID:    projectID,
		UserID:       userID,
		ActivityType: activityType,
		CreatedAt:    time.Now(),
	})
	return nil
}

func (f *fakeBackend) ListActivities(projectID uuid.UUID) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Activity(nil), f.activities...), nil
}

func (f *fakeBackend) ListProjects() ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project == nil {
		return nil, nil
	}
	return []models.Project{*f.project}, nil
}

func (f *fakeBackend) ListProjectsForUser(userID uuid.UUID) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project == nil || f.project.UserID != userID {
		return nil, nil
	}
	return []models.Project{*f.project}, nil
}

func (f *fakeBackend) ListProjectIDs() ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project == nil {
		return nil, nil
	}
	return []uuid.UUID{f.project.ID}, nil
}

func (f *fakeBackend) CountProjectsByStatus(userID *uuid.UUID) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	if f.project != nil && (userID == nil || f.project.UserID == *userID) {
		counts[f.project.Status]++
	}
	return counts, nil
}

func (f *fakeBackend) RecentProjects(userID *uuid.UUID, limit int) ([]models.Project, error) {
	if userID == nil {
		return f.ListProjects()
	}
	return f.ListProjectsForUser(*userID)
}

func (f *fakeBackend) RecentActivities(userID *uuid.UUID, limit int) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Activity(nil), f.activities...), nil
}

// nullBlobs satisfies services.BlobStore for tests that never touch storage.
type nullBlobs struct{}

func (nullBlobs) UploadFile(category string, projectID uuid.UUID, filename, contentType string, data []byte) (string, string, error) {
	path := fmt.Sprintf("%s/%s/0_%s", category, projectID, filename)
	return path, "https://storage.test/" + path, nil
}

func (nullBlobs) GetPublicURL(storagePath string) string { return "https://storage.test/" + storagePath }

func (nullBlobs) DeleteFile(storagePath string) error { return nil }

func (nullBlobs) ListProjectObjects(category string, projectID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (nullBlobs) DeleteProjectObjects(projectID uuid.UUID, categories []string) error { return nil }

// authAs injects the authenticated user the way the auth middleware does.
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
		c.Next()
	}
}

func seedProject(userID uuid.UUID) *models.Project {
	return &models.Project{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    models.StatusBrief,
		Version:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func testServices(backend *fakeBackend) (*services.BriefService, *services.StatusService, *services.Debouncer) {
	log := zap.NewNop().Sugar()
	files := services.NewFileService(backend, nullBlobs{}, log)
	briefs := services.NewBriefService(backend, files, nil, log)
	status := services.NewStatusService(backend, log)
	autosave := services.NewDebouncer(briefs, time.Hour, log)
	return briefs, status, autosave
}

var _ handlers.Directory = (*fakeBackend)(nil)
var _ services.Store = (*fakeBackend)(nil)
