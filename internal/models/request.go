package models

// SaveBriefRequest carries the full form snapshot. Version is the project
// version the client loaded; a stale version is rejected with a conflict.
type SaveBriefRequest struct {
	Brief Brief `json:"brief"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type SendSummaryRequest struct {
	// Recipient overrides the brief's contact email when set.
	Recipient string `json:"recipient,omitempty"`
}
