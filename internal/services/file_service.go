package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/models"
)

// ErrFileNotFound covers both a missing row and a file that belongs to a
// different project; callers cannot tell the two apart.
var ErrFileNotFound = errors.New("file not found")

// FileService keeps the storage bucket and the project_files metadata table
// in step: uploads write the object first, then the row; deletes remove the
// object first, then the row.
type FileService struct {
	store Store
	blobs BlobStore
	log   *zap.SugaredLogger
}

func NewFileService(store Store, blobs BlobStore, log *zap.SugaredLogger) *FileService {
	return &FileService{store: store, blobs: blobs, log: log}
}

// Upload stores one binary and records its metadata row, then appends a
// document_upload activity.
func (s *FileService) Upload(userID, projectID uuid.UUID, category, filename, contentType string, data []byte) (*models.ProjectFile, error) {
	if !models.ValidFileCategory(category) {
		return nil, fmt.Errorf("invalid file category %q", category)
	}

	storagePath, storageURL, err := s.blobs.UploadFile(category, projectID, filename, contentType, data)
	if err != nil {
		return nil, err
	}

	file := &models.ProjectFile{
		ProjectID:   projectID,
		UserID:      userID,
		Name:        filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Category:    category,
		StoragePath: storagePath,
		StorageURL:  storageURL,
	}
	if err := s.store.CreateProjectFile(file); err != nil {
		return nil, err
	}

	if err := s.store.InsertActivity(projectID, &userID, models.ActivityDocumentUpload, models.DocumentUploadDetails{
		FileName: filename,
		Category: category,
		Size:     file.Size,
	}); err != nil {
		s.log.Warnw("failed to log upload activity", "project_id", projectID, "error", err)
	}

	return file, nil
}

// Reconcile scans each category list: entries without storage metadata are
// uploaded and replaced with a metadata-bearing record; already-uploaded
// entries pass through unchanged. Per-entry failures are logged and the raw
// entry is kept so the next save picks it up again.
func (s *FileService) Reconcile(userID, projectID uuid.UUID, files map[string][]models.BriefFile) map[string][]models.BriefFile {
	if len(files) == 0 {
		return files
	}

	normalized := make(map[string][]models.BriefFile, len(files))
	for category, entries := range files {
		out := make([]models.BriefFile, 0, len(entries))
		for _, entry := range entries {
			if entry.Uploaded() {
				out = append(out, entry)
				continue
			}
			if len(entry.Data) == 0 {
				s.log.Warnw("skipping file entry with no data and no storage path",
					"project_id", projectID, "category", category, "name", entry.Name)
				continue
			}

			uploaded, err := s.Upload(userID, projectID, category, entry.Name, entry.ContentType, entry.Data)
			if err != nil {
				s.log.Errorw("file upload failed during save",
					"project_id", projectID, "category", category, "name", entry.Name, "error", err)
				out = append(out, entry)
				continue
			}
			out = append(out, models.BriefFile{
				ID:          uploaded.ID.String(),
				Name:        uploaded.Name,
				ContentType: uploaded.ContentType,
				Size:        uploaded.Size,
				Category:    uploaded.Category,
				StoragePath: uploaded.StoragePath,
				StorageURL:  uploaded.StorageURL,
			})
		}
		normalized[category] = out
	}
	return normalized
}

// Delete removes the storage object, then the metadata row. The file must
// belong to the given project; the store runs on a direct service connection,
// so this check is the only tenancy guard on deletes. A crash between the two
// removals leaves a dangling row the orphan sweep cannot heal; that ordering
// matches the rest of the save path and is accepted.
func (s *FileService) Delete(projectID, fileID uuid.UUID) error {
	file, err := s.store.GetProjectFile(fileID)
	if err != nil {
		return ErrFileNotFound
	}
	if file.ProjectID != projectID {
		return ErrFileNotFound
	}

	if err := s.blobs.DeleteFile(file.StoragePath); err != nil {
		return fmt.Errorf("failed to delete storage object: %w", err)
	}
	return s.store.DeleteProjectFile(fileID)
}

// RemoveOrphans deletes storage objects under the project's prefixes that no
// metadata row references. It is never called from the save path; only the
// explicit admin endpoint and the opt-in scheduled sweep reach it.
func (s *FileService) RemoveOrphans(projectID uuid.UUID) ([]string, error) {
	files, err := s.store.ListProjectFiles(projectID)
	if err != nil {
		return nil, err
	}
	referenced := make(map[string]struct{}, len(files))
	for _, f := range files {
		referenced[f.StoragePath] = struct{}{}
	}

	var removed []string
	for _, category := range models.FileCategories {
		paths, err := s.blobs.ListProjectObjects(category, projectID)
		if err != nil {
			return removed, err
		}
		for _, path := range paths {
			if _, ok := referenced[path]; ok {
				continue
			}
			if err := s.blobs.DeleteFile(path); err != nil {
				s.log.Errorw("failed to delete orphaned object",
					"project_id", projectID, "path", path, "error", err)
				continue
			}
			removed = append(removed, path)
		}
	}

	if len(removed) > 0 {
		s.log.Infow("removed orphaned storage objects", "project_id", projectID, "count", len(removed))
	}
	return removed, nil
}

// PurgeProject removes every storage object for a deleted project.
func (s *FileService) PurgeProject(projectID uuid.UUID) error {
	return s.blobs.DeleteProjectObjects(projectID, models.FileCategories)
}
