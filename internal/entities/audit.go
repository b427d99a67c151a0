package entities

import "time"

type AuditEventType string

const (
	AuditEventCatalog AuditEventType = "catalog" // add/update of catalog entities
	AuditEventDelete  AuditEventType = "delete"
	AuditEventLoan    AuditEventType = "loan" // issue/return/copy additions
	AuditEventReport  AuditEventType = "report"
	AuditEventAuth    AuditEventType = "auth"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent is one row of the operation audit trail. EntityKey is a string
// because books are keyed by ISBN while every other entity uses a numeric id.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"` // e.g. "book_add", "loan_issue"
	Description string         `gorm:"size:500" json:"description"`
	EntityType  string         `gorm:"size:50" json:"entity_type"` // "book", "member", "loan", ...
	EntityKey   string         `gorm:"index;size:64" json:"entity_key,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string { return "audit_events" }
