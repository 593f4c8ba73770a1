package services_test

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Catacombb/f9-sub000/internal/models"
)

// fakeStore is an in-memory services.Store. Mutating calls are recorded so
// tests can assert that a conflicted save performed no writes.
type fakeStore struct {
	mu            sync.Mutex
	projects      map[uuid.UUID]*models.Project
	byUser        map[uuid.UUID]uuid.UUID
	rooms         map[uuid.UUID][]models.Room
	occupants     map[uuid.UUID][]models.Occupant
	professionals map[uuid.UUID][]models.Professional
	inspiration   map[uuid.UUID][]models.InspirationEntry
	settings      map[uuid.UUID]*models.ProjectSettings
	summaries     map[uuid.UUID]*models.Summary
	files         map[uuid.UUID]*models.ProjectFile
	activities    []models.Activity

	writes []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects:      make(map[uuid.UUID]*models.Project),
		byUser:        make(map[uuid.UUID]uuid.UUID),
		rooms:         make(map[uuid.UUID][]models.Room),
		occupants:     make(map[uuid.UUID][]models.Occupant),
		professionals: make(map[uuid.UUID][]models.Professional),
		inspiration:   make(map[uuid.UUID][]models.InspirationEntry),
		settings:      make(map[uuid.UUID]*models.ProjectSettings),
		summaries:     make(map[uuid.UUID]*models.Summary),
		files:         make(map[uuid.UUID]*models.ProjectFile),
	}
}

func (f *fakeStore) recordWrite(op string) {
	f.writes = append(f.writes, op)
}

func (f *fakeStore) seedProject(userID uuid.UUID, version int) *models.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &models.Project{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    models.StatusBrief,
		Version:   version,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.projects[p.ID] = p
	f.byUser[userID] = p.ID
	return p
}

func (f *fakeStore) GetProject(projectID uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) GetProjectForUser(projectID, userID uuid.UUID) (*models.Project, error) {
	p, err := f.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeStore) MostRecentProject(userID uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byUser[userID]
	if !ok {
		return nil, nil
	}
	cp := *f.projects[id]
	return &cp, nil
}

func (f *fakeStore) InsertProject(userID uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byUser[userID]; ok {
		return uuid.Nil, nil
	}
	p := &models.Project{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    models.StatusBrief,
		Version:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.projects[p.ID] = p
	f.byUser[userID] = p.ID
	f.recordWrite("insert_project")
	return p.ID, nil
}

func (f *fakeStore) UpdateProjectVersioned(p *models.Project, expectedVersion int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.projects[p.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	updated := *p
	updated.Version = expectedVersion + 1
	updated.UpdatedAt = time.Now()
	f.projects[p.ID] = &updated
	f.recordWrite("update_project")
	return true, nil
}

func (f *fakeStore) UpdateProjectStatus(projectID uuid.UUID, status string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.projects[projectID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	prev := stored.Status
	stored.Status = status
	stored.StatusUpdatedAt = time.Now()
	stored.UpdatedAt = time.Now()
	f.recordWrite("update_status")
	// Mirror the database trigger.
	f.activities = append(f.activities, models.Activity{
		ID:           uuid.New(),
		ProjectID:    projectID,
		ActivityType: models.ActivityStatusChange,
		Details:      []byte(fmt.Sprintf(`{"previous_status":%q,"new_status":%q}`, prev, status)),
		CreatedAt:    time.Now(),
	})
	cp := *stored
	return &cp, nil
}

func (f *fakeStore) DeleteProject(projectID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.projects[projectID]; ok {
		delete(f.byUser, p.UserID)
	}
	delete(f.projects, projectID)
	f.recordWrite("delete_project")
	return nil
}

func (f *fakeStore) ReplaceRooms(projectID uuid.UUID, rooms []models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms[projectID] = append([]models.Room(nil), rooms...)
	f.recordWrite("replace_rooms")
	return nil
}

func (f *fakeStore) GetRooms(projectID uuid.UUID) ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Room(nil), f.rooms[projectID]...), nil
}

func (f *fakeStore) ReplaceOccupants(projectID uuid.UUID, occupants []models.Occupant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.occupants[projectID] = append([]models.Occupant(nil), occupants...)
	f.recordWrite("replace_occupants")
	return nil
}

func (f *fakeStore) GetOccupants(projectID uuid.UUID) ([]models.Occupant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Occupant(nil), f.occupants[projectID]...), nil
}

func (f *fakeStore) ReplaceProfessionals(projectID uuid.UUID, professionals []models.Professional) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.professionals[projectID] = append([]models.Professional(nil), professionals...)
	f.recordWrite("replace_professionals")
	return nil
}

func (f *fakeStore) GetProfessionals(projectID uuid.UUID) ([]models.Professional, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Professional(nil), f.professionals[projectID]...), nil
}

func (f *fakeStore) ReplaceInspiration(projectID uuid.UUID, entries []models.InspirationEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inspiration[projectID] = append([]models.InspirationEntry(nil), entries...)
	f.recordWrite("replace_inspiration")
	return nil
}

func (f *fakeStore) GetInspiration(projectID uuid.UUID) ([]models.InspirationEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.InspirationEntry(nil), f.inspiration[projectID]...), nil
}

func (f *fakeStore) UpsertSettings(s *models.ProjectSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.settings[s.ProjectID] = &cp
	f.recordWrite("upsert_settings")
	return nil
}

func (f *fakeStore) GetSettings(projectID uuid.UUID) (*models.ProjectSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[projectID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) UpsertSummary(projectID uuid.UUID, s *models.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.summaries[projectID] = &cp
	f.recordWrite("upsert_summary")
	return nil
}

func (f *fakeStore) GetSummary(projectID uuid.UUID) (*models.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.summaries[projectID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) CreateProjectFile(file *models.ProjectFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file.ID = uuid.New()
	file.CreatedAt = time.Now()
	cp := *file
	f.files[file.ID] = &cp
	f.recordWrite("create_file")
	return nil
}

func (f *fakeStore) GetProjectFile(fileID uuid.UUID) (*models.ProjectFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[fileID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *file
	return &cp, nil
}

func (f *fakeStore) ListProjectFiles(projectID uuid.UUID) ([]models.ProjectFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ProjectFile
	for _, file := range f.files {
		if file.ProjectID == projectID {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteProjectFile(fileID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, fileID)
	f.recordWrite("delete_file")
	return nil
}

func (f *fakeStore) InsertActivity(projectID uuid.UUID, userID *uuid.UUID, activityType string, details any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities = append(f.activities, models.Activity{
		ID:           uuid.New(),
		ProjectID:    projectID,
		UserID:       userID,
		ActivityType: activityType,
		CreatedAt:    time.Now(),
	})
	f.recordWrite("insert_activity")
	return nil
}

// fakeBlobs is an in-memory services.BlobStore.
type fakeBlobs struct {
	mu      sync.Mutex
	counter int
	objects map[string][]byte
	deleted []string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: make(map[string][]byte)}
}

func (b *fakeBlobs) UploadFile(category string, projectID uuid.UUID, filename, contentType string, data []byte) (string, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counter++
	path := fmt.Sprintf("%s/%s/%d_%s", category, projectID, b.counter, filename)
	b.objects[path] = append([]byte(nil), data...)
	return path, "https://storage.test/" + path, nil
}

func (b *fakeBlobs) GetPublicURL(storagePath string) string {
	return "https://storage.test/" + storagePath
}

func (b *fakeBlobs) DeleteFile(storagePath string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, storagePath)
	b.deleted = append(b.deleted, storagePath)
	return nil
}

func (b *fakeBlobs) ListProjectObjects(category string, projectID uuid.UUID) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	prefix := fmt.Sprintf("%s/%s/", category, projectID)
	var out []string
	for path := range b.objects {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			out = append(out, path)
		}
	}
	return out, nil
}

func (b *fakeBlobs) DeleteProjectObjects(projectID uuid.UUID, categories []string) error {
	for _, category := range categories {
		paths, _ := b.ListProjectObjects(category, projectID)
		for _, path := range paths {
			b.DeleteFile(path)
		}
	}
	return nil
}
