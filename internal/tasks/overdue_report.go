package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/loans"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// OverdueSource lists the loans that are past due.
type OverdueSource interface {
	Overdue() ([]loans.Record, error)
}

// OverdueRecorder receives the audit event produced by a sweep.
type OverdueRecorder interface {
	Log(event *entities.AuditEvent) error
}

// OverdueReportTask sweeps the loan table for overdue items and records
// the result in the audit trail. The sweep is report-only; loans are
// never mutated.
type OverdueReportTask struct {
	RequestedAt time.Time `json:"requested_at"`
}

// Config returns the queue configuration for overdue report tasks.
func (t OverdueReportTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_report",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// OverdueReportProcessor creates a processor function for
// OverdueReportTask.
func OverdueReportProcessor(source OverdueSource, recorder OverdueRecorder) backlite.QueueProcessor[OverdueReportTask] {
	return func(ctx context.Context, task OverdueReportTask) error {
		if source == nil {
			return fmt.Errorf("overdue source not configured")
		}

		overdue, err := source.Overdue()
		if err != nil {
			return fmt.Errorf("overdue sweep: %w", err)
		}

		log.Printf("[TASK] Overdue sweep found %d loan(s) past due", len(overdue))
		for _, record := range overdue {
			log.Printf("[TASK] Overdue: loan %d, %q due %s (member %s %s)",
				record.LoanID, record.Title, record.DueDate,
				record.MemberFirstName, record.MemberLastName)
		}

		if recorder != nil {
			event := &entities.AuditEvent{
				EventType:   entities.AuditEventReport,
				Action:      "overdue_sweep",
				Description: fmt.Sprintf("Overdue sweep found %d loan(s) past due", len(overdue)),
				EntityType:  "loan",
				Status:      entities.AuditStatusSuccess,
			}
			if err := recorder.Log(event); err != nil {
				log.Printf("[TASK ERROR] Failed to record overdue sweep: %v", err)
			}
		}
		return nil
	}
}

// NewOverdueReportQueue creates a backlite queue for overdue report tasks.
func NewOverdueReportQueue(source OverdueSource, recorder OverdueRecorder) backlite.Queue {
	return backlite.NewQueue(OverdueReportProcessor(source, recorder))
}
