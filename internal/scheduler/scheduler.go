package scheduler

import (
	"context"
	"time"

	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the trash retention purge. It fires once at startup to
// catch anything that expired while the process was down, then on the
// configured cron schedule.
type Scheduler struct {
	cron        *cron.Cron
	noteService service.INoteService
	spec        string
	logger      logger.ILogger
}

func NewScheduler(noteService service.INoteService, spec string, log logger.ILogger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		noteService: noteService,
		spec:        spec,
		logger:      log,
	}
}

func (s *Scheduler) Start() error {
	go s.purge()

	if _, err := s.cron.AddFunc(s.spec, s.purge); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	purged, err := s.noteService.PurgeExpiredTrash(ctx, time.Now())
	if err != nil {
		s.logger.Error("Scheduler", "Trash purge failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if purged > 0 {
		s.logger.Info("Scheduler", "Trash purge completed", map[string]interface{}{"purged": purged})
	}
}
