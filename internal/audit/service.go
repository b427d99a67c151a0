// Package audit records catalog and circulation operations for later
// review. Writes are fire and forget so the audit trail never slows down
// or fails the operation it describes.
package audit

import (
	"log"
	"time"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/audit"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogCatalogChange records an add or update of a catalog entity. entityKey
// is the ISBN for books and the decimal id for everything else.
func (s *Service) LogCatalogChange(entityType, entityKey, action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCatalog,
		Action:      entityType + "_" + action,
		Description: description,
		EntityType:  entityType,
		EntityKey:   entityKey,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogDelete records a deletion attempt, including ones refused because
// dependent records exist.
func (s *Service) LogDelete(entityType, entityKey, entityName string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: "Deleted " + entityType + ": " + entityName,
		EntityType:  entityType,
		EntityKey:   entityKey,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Description = "Failed to delete " + entityType + ": " + entityName
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogLoan records a circulation event (issue, return, copy added).
func (s *Service) LogLoan(action, entityKey, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventLoan,
		Action:      action,
		Description: description,
		EntityType:  "loan",
		EntityKey:   entityKey,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogAuth records an authentication event.
func (s *Service) LogAuth(action, username string, success bool) {
	event := &entities.AuditEvent{
		EventType:  entities.AuditEventAuth,
		Action:     action,
		EntityType: "user",
		EntityKey:  username,
		Status:     entities.AuditStatusSuccess,
	}
	if !success {
		event.Status = entities.AuditStatusFailed
	}
	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetEventsForEntity retrieves the audit history of one record.
func (s *Service) GetEventsForEntity(entityType, entityKey string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(entityType, entityKey)
}

// DeleteOldEvents removes events older than the retention window and
// returns the number removed.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	return s.repo.DeleteOldEvents(time.Now().Add(-retention))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
