package application

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler wraps a UTC cron runner for recurring jobs
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a scheduler pinned to UTC. Draw times are specified in
// UTC and must not drift with the host timezone.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
	}
}

// ScheduleWeekly registers a job to run once a week at the given UTC time.
// Weekday follows time.Weekday numbering, 0 is Sunday.
func (s *Scheduler) ScheduleWeekly(weekday, hour, minute int, job func()) error {
	spec := fmt.Sprintf("%d %d * * %d", minute, hour, weekday)
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("failed to schedule weekly job %q: %w", spec, err)
	}

	log.WithField("spec", spec).Info("Scheduled weekly job")
	return nil
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
