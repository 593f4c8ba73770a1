package supabase

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Catacombb/f9-sub000/internal/models"
)

func (d *DatabaseClient) CreateProjectFile(f *models.ProjectFile) error {
	err := d.db.QueryRow(`
		INSERT INTO project_files (project_id, user_id, name, content_type, size, category, storage_path, storage_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, f.ProjectID, f.UserID, f.Name, f.ContentType, f.Size, f.Category,
		f.StoragePath, f.StorageURL).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create project file: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetProjectFile(fileID uuid.UUID) (*models.ProjectFile, error) {
	var f models.ProjectFile
	err := d.db.QueryRow(`
		SELECT id, project_id, user_id, name, content_type, size, category, storage_path, storage_url, created_at
		FROM project_files
		WHERE id = $1
	`, fileID).Scan(&f.ID, &f.ProjectID, &f.UserID, &f.Name, &f.ContentType, &f.Size,
		&f.Category, &f.StoragePath, &f.StorageURL, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get project file: %w", err)
	}
	return &f, nil
}

func (d *DatabaseClient) ListProjectFiles(projectID uuid.UUID) ([]models.ProjectFile, error) {
	rows, err := d.db.Query(`
		SELECT id, project_id, user_id, name, content_type, size, category, storage_path, storage_url, created_at
		FROM project_files
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project files: %w", err)
	}
	defer rows.Close()

	var files []models.ProjectFile
	for rows.Next() {
		var f models.ProjectFile
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.UserID, &f.Name, &f.ContentType, &f.Size,
			&f.Category, &f.StoragePath, &f.StorageURL, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (d *DatabaseClient) DeleteProjectFile(fileID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM project_files
		WHERE id = $1
	`, fileID)
	return err
}
