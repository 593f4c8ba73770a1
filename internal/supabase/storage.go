package supabase

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// ObjectPath builds the canonical storage path for an upload:
// {category}/{project_id}/{unix_ts}_{filename}. The timestamp keeps repeated
// uploads of the same filename from clobbering each other.
func ObjectPath(category string, projectID uuid.UUID, filename string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%d_%s", category, projectID.String(), at.Unix(), filename)
}

func (s *StorageClient) UploadFile(category string, projectID uuid.UUID, filename, contentType string, data []byte) (string, string, error) {
	storagePath := ObjectPath(category, projectID, filename, time.Now())

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %w", err)
	}

	return storagePath, s.GetPublicURL(storagePath), nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

func (s *StorageClient) DeleteFile(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}

// ListProjectObjects returns every storage path under a project's prefix in
// one category. Used by the orphan sweep.
func (s *StorageClient) ListProjectObjects(category string, projectID uuid.UUID) ([]string, error) {
	prefix := fmt.Sprintf("%s/%s/", category, projectID.String())

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = prefix + file.Name
	}
	return paths, nil
}

// DeleteProjectObjects removes every storage object belonging to a project,
// across all categories. Called when the project itself is deleted.
func (s *StorageClient) DeleteProjectObjects(projectID uuid.UUID, categories []string) error {
	var paths []string
	for _, category := range categories {
		found, err := s.ListProjectObjects(category, projectID)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}

	if len(paths) > 0 {
		if _, err := s.client.RemoveFile(s.bucket, paths); err != nil {
			return fmt.Errorf("failed to delete files: %w", err)
		}
	}
	return nil
}

func (s *StorageClient) DownloadFile(storagePath string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return data, nil
}
