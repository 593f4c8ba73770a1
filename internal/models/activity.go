package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Activity types. The log is append-only: rows are never updated or deleted
// in normal operation.
const (
	ActivityStatusChange   = "status_change"
	ActivityComment        = "comment"
	ActivityDocumentUpload = "document_upload"
	ActivitySystemEvent    = "system_event"
)

type Activity struct {
	ID           uuid.UUID       `json:"id"`
	ProjectID    uuid.UUID       `json:"project_id"`
	UserID       *uuid.UUID      `json:"user_id,omitempty"`
	ActivityType string          `json:"activity_type"`
	Details      json.RawMessage `json:"details"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StatusChangeDetails is the details payload written (by the database-side
// trigger) for status_change rows.
type StatusChangeDetails struct {
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	ProjectName    string `json:"project_name,omitempty"`
	ClientName     string `json:"client_name,omitempty"`
}

type CommentDetails struct {
	Text string `json:"text"`
}

type DocumentUploadDetails struct {
	FileName string `json:"file_name"`
	Category string `json:"category"`
	Size     int64  `json:"size,omitempty"`
}
