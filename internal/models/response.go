package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SaveResponse mirrors the persistence contract: on conflict the save
// performed no writes and the client must reload before retrying.
type SaveResponse struct {
	Success   bool   `json:"success"`
	Conflict  bool   `json:"conflict,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Brief     *Brief `json:"brief,omitempty"`
	Error     string `json:"error,omitempty"`
}

type ProjectResponse struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"client_name"`
	ProjectAddress  string    `json:"project_address"`
	ProjectType     string    `json:"project_type"`
	Status          string    `json:"status"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Brief           *Brief    `json:"brief,omitempty"`
}

type ProjectListResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

type ProjectSummary struct {
	ID             string    `json:"id"`
	ClientName     string    `json:"client_name"`
	ProjectAddress string    `json:"project_address"`
	Status         string    `json:"status"`
	Version        int       `json:"version"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type StatusResponse struct {
	ProjectID       string    `json:"project_id"`
	Status          string    `json:"status"`
	StatusUpdatedAt time.Time `json:"status_updated_at"`
}

type FilesResponse struct {
	Files []FileResponse `json:"files"`
}

type FileResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StorageURL  string    `json:"storage_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type UploadResponse struct {
	ProjectID string         `json:"project_id"`
	Files     []FileResponse `json:"files"`
	Errors    []string       `json:"errors,omitempty"`
}

type ActivityResponse struct {
	Activities []Activity `json:"activities"`
}

type CleanupResponse struct {
	Removed []string `json:"removed"`
}

// DashboardResponse backs the admin/client landing pages.
type DashboardResponse struct {
	StatusCounts   map[string]int   `json:"status_counts"`
	RecentProjects []ProjectSummary `json:"recent_projects"`
	RecentActivity []Activity       `json:"recent_activity"`
	TotalProjects  int              `json:"total_projects"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
