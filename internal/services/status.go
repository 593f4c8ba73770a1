package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/models"
)

var (
	ErrUnknownStatus     = errors.New("unknown status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// statusTransitions is the full transition table. brief→complete and
// complete→brief are deliberately absent: a brief must pass through sent in
// both directions.
var statusTransitions = map[string][]string{
	models.StatusBrief:    {models.StatusSent},
	models.StatusSent:     {models.StatusComplete, models.StatusBrief},
	models.StatusComplete: {models.StatusSent},
}

// IsValidStatusTransition reports whether from→to is allowed. A same-state
// transition is always valid and treated as an idempotent no-op.
func IsValidStatusTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func knownStatus(status string) bool {
	_, ok := statusTransitions[status]
	return ok
}

type StatusService struct {
	store Store
	log   *zap.SugaredLogger
}

func NewStatusService(store Store, log *zap.SugaredLogger) *StatusService {
	return &StatusService{store: store, log: log}
}

// ChangeStatus validates the transition before any write. The activity row
// for the change is appended by the database trigger, not here.
func (s *StatusService) ChangeStatus(projectID uuid.UUID, newStatus string) (*models.Project, error) {
	if !knownStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}

	project, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	if project.Status == newStatus {
		return project, nil
	}

	if !IsValidStatusTransition(project.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, project.Status, newStatus)
	}

	updated, err := s.store.UpdateProjectStatus(projectID, newStatus)
	if err != nil {
		return nil, err
	}

	s.log.Infow("project status changed",
		"project_id", projectID,
		"previous_status", project.Status,
		"new_status", newStatus,
	)
	return updated, nil
}
