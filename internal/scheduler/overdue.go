// Package scheduler drives the recurring jobs: the overdue loan sweep and
// audit retention cleanup. The cron entries only enqueue tasks; the queue
// workers do the actual work so a slow sweep never blocks the scheduler.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/tasks"
)

// TaskEnqueuer puts tasks on the background queue.
type TaskEnqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

// Config controls the sweep scheduler.
type Config struct {
	// Enabled switches the scheduler on.
	Enabled bool

	// Schedule is a five-field cron expression for the overdue sweep.
	Schedule string

	// AuditCleanupSchedule is a five-field cron expression for the audit
	// retention job.
	AuditCleanupSchedule string

	// AuditRetentionDays is passed through to the cleanup task.
	AuditRetentionDays int
}

// OverdueSweepScheduler manages the periodic overdue sweep and audit
// cleanup jobs.
type OverdueSweepScheduler struct {
	enqueuer TaskEnqueuer
	config   Config

	cron       *cron.Cron
	sweepID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewOverdueSweepScheduler creates a new scheduler instance.
func NewOverdueSweepScheduler(enqueuer TaskEnqueuer, config Config) *OverdueSweepScheduler {
	return &OverdueSweepScheduler{
		enqueuer: enqueuer,
		config:   config,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if it is enabled.
func (s *OverdueSweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.config.Enabled {
		log.Printf("Overdue sweep scheduler: disabled")
		return nil
	}

	sweepID, err := s.cron.AddFunc(s.config.Schedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("failed to schedule overdue sweep: %w", err)
	}
	s.sweepID = sweepID

	if s.config.AuditCleanupSchedule != "" {
		_, err = s.cron.AddFunc(s.config.AuditCleanupSchedule, s.runAuditCleanup)
		if err != nil {
			return fmt.Errorf("failed to schedule audit cleanup: %w", err)
		}
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Overdue sweep scheduler: started with schedule %q", s.config.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *OverdueSweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Overdue sweep scheduler: stopped")
}

// RunNow triggers an immediate sweep.
func (s *OverdueSweepScheduler) RunNow() {
	s.runSweep()
}

// IsRunning returns whether the scheduler is active.
func (s *OverdueSweepScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextSweep returns when the next sweep will run.
func (s *OverdueSweepScheduler) NextSweep() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.sweepID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *OverdueSweepScheduler) runSweep() {
	task := tasks.OverdueReportTask{RequestedAt: time.Now()}
	if _, err := s.enqueuer.Add(task).Save(); err != nil {
		log.Printf("Overdue sweep: failed to enqueue report task: %v", err)
		return
	}
	log.Printf("Overdue sweep: report task enqueued")
}

func (s *OverdueSweepScheduler) runAuditCleanup() {
	task := tasks.CleanupAuditEventsTask{RetentionDays: s.config.AuditRetentionDays}
	if _, err := s.enqueuer.Add(task).Save(); err != nil {
		log.Printf("Audit cleanup: failed to enqueue task: %v", err)
		return
	}
	log.Printf("Audit cleanup: task enqueued")
}
