package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/models"
)

var ErrNothingPending = errors.New("no pending draft")

// Saver is the save entry point the debouncer flushes through, satisfied by
// *BriefService.
type Saver interface {
	SaveBrief(userID, projectID uuid.UUID, brief *models.Brief) (*SaveResult, error)
}

// Debouncer coalesces draft snapshots per project: each Queue (re)arms an
// idle timer and overwrites the pending snapshot, so only the latest draft
// is written once edits go quiet. There is no queueing beyond that; a slow
// save racing a newer draft is resolved by the version check downstream.
type Debouncer struct {
	saver Saver
	idle  time.Duration
	log   *zap.SugaredLogger

	mu      sync.Mutex
	pending map[uuid.UUID]*pendingDraft
	stopped bool
}

type pendingDraft struct {
	timer  *time.Timer
	userID uuid.UUID
	brief  *models.Brief
}

func NewDebouncer(saver Saver, idle time.Duration, log *zap.SugaredLogger) *Debouncer {
	return &Debouncer{
		saver:   saver,
		idle:    idle,
		log:     log,
		pending: make(map[uuid.UUID]*pendingDraft),
	}
}

// Queue records the latest draft for a project and restarts its idle timer.
// Last writer wins: an earlier unsaved draft is simply replaced.
func (d *Debouncer) Queue(userID, projectID uuid.UUID, brief *models.Brief) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if draft, ok := d.pending[projectID]; ok {
		draft.userID = userID
		draft.brief = brief
		draft.timer.Reset(d.idle)
		return
	}

	d.pending[projectID] = &pendingDraft{
		userID: userID,
		brief:  brief,
		timer: time.AfterFunc(d.idle, func() {
			d.fire(projectID)
		}),
	}
}

// Pending reports whether a draft is waiting for its idle window.
func (d *Debouncer) Pending(projectID uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[projectID]
	return ok
}

// Flush bypasses the idle window for a manual save. Returns
// ErrNothingPending when no draft is queued.
func (d *Debouncer) Flush(projectID uuid.UUID) (*SaveResult, error) {
	draft, ok := d.take(projectID)
	if !ok {
		return nil, ErrNothingPending
	}
	return d.saver.SaveBrief(draft.userID, projectID, draft.brief)
}

func (d *Debouncer) fire(projectID uuid.UUID) {
	draft, ok := d.take(projectID)
	if !ok {
		return
	}

	result, err := d.saver.SaveBrief(draft.userID, projectID, draft.brief)
	if err != nil {
		d.log.Errorw("autosave failed", "project_id", projectID, "error", err)
		return
	}
	if result.Conflict {
		// The draft was stale; it is dropped and the client must reload.
		d.log.Warnw("autosave conflict, draft dropped", "project_id", projectID)
		return
	}
	d.log.Debugw("autosaved project", "project_id", projectID, "version", result.Brief.Version)
}

func (d *Debouncer) take(projectID uuid.UUID) (*pendingDraft, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	draft, ok := d.pending[projectID]
	if !ok {
		return nil, false
	}
	draft.timer.Stop()
	delete(d.pending, projectID)
	return draft, true
}

// Stop cancels all timers and drops pending drafts.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for id, draft := range d.pending {
		draft.timer.Stop()
		delete(d.pending, id)
	}
}
