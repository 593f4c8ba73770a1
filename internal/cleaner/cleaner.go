package cleaner

import (
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/services"
)

// ProjectLister enumerates project ids for the sweep, satisfied by
// *supabase.DatabaseClient.
type ProjectLister interface {
	ListProjectIDs() ([]uuid.UUID, error)
}

// Sweeper periodically removes storage objects that no metadata row
// references. Orphan cleanup is intentionally kept out of the save path;
// this scheduled sweep is the only automated caller.
type Sweeper struct {
	projects ProjectLister
	files    *services.FileService
	cron     *cron.Cron
	log      *zap.SugaredLogger
}

func NewSweeper(projects ProjectLister, files *services.FileService, log *zap.SugaredLogger) *Sweeper {
	return &Sweeper{
		projects: projects,
		files:    files,
		cron:     cron.New(),
		log:      log,
	}
}

// Start registers the sweep on the given cron schedule and starts the
// scheduler.
func (s *Sweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.SweepAll); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infow("file sweep scheduled", "schedule", schedule)
	return nil
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
}

// SweepAll runs one pass over every project. Per-project failures are logged
// and do not stop the pass.
func (s *Sweeper) SweepAll() {
	ids, err := s.projects.ListProjectIDs()
	if err != nil {
		s.log.Errorw("file sweep failed to list projects", "error", err)
		return
	}

	total := 0
	for _, id := range ids {
		removed, err := s.files.RemoveOrphans(id)
		if err != nil {
			s.log.Errorw("file sweep failed for project", "project_id", id, "error", err)
			continue
		}
		total += len(removed)
	}
	s.log.Infow("file sweep finished", "projects", len(ids), "removed", total)
}
