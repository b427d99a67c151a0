package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	auditRepo "github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/audit"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(database.DSN(":memory:")), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo)

	return svc, db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCatalog,
		Action:      "book_add",
		Description: "Added Dune",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "book_add", saved.Action)
}

func TestService_LogCatalogChange(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful change", func(t *testing.T) {
		svc.LogCatalogChange("book", "978-0441013593", "add", "Added Dune with 2 copies", nil)

		// Allow async operation to complete
		time.Sleep(50 * time.Millisecond)

		var event entities.AuditEvent
		err := db.Where("action = ?", "book_add").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, "978-0441013593", event.EntityKey)
	})

	t.Run("failed change", func(t *testing.T) {
		svc.LogCatalogChange("member", "7", "update", "Update member 7", errors.New("member \"7\" not found"))

		time.Sleep(50 * time.Millisecond)

		var event entities.AuditEvent
		err := db.Where("action = ?", "member_update").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "not found")
	})
}

func TestService_LogDelete(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful delete", func(t *testing.T) {
		svc.LogDelete("author", "3", "Agatha Christie", nil)

		time.Sleep(50 * time.Millisecond)

		var event entities.AuditEvent
		err := db.Where("action = ?", "author_delete").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditEventDelete, event.EventType)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Contains(t, event.Description, "Agatha Christie")
	})

	t.Run("refused delete", func(t *testing.T) {
		svc.LogDelete("member", "2", "Jane Smith", errors.New("cannot delete member: 1 dependent record(s) exist"))

		time.Sleep(50 * time.Millisecond)

		var event entities.AuditEvent
		err := db.Where("action = ?", "member_delete").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Contains(t, event.ErrorMsg, "dependent record")
	})
}

func TestService_LogLoan(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogLoan("loan_issue", "12", "Issued copy 3 to member 1", nil)

	time.Sleep(50 * time.Millisecond)

	var event entities.AuditEvent
	err := db.Where("action = ?", "loan_issue").First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventLoan, event.EventType)
	assert.Equal(t, "12", event.EntityKey)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)

	require.NoError(t, db.Create(&entities.AuditEvent{
		EventType: entities.AuditEventLoan,
		Action:    "loan_issue",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-72 * time.Hour),
	}).Error)
	require.NoError(t, db.Create(&entities.AuditEvent{
		EventType: entities.AuditEventLoan,
		Action:    "loan_return",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now(),
	}).Error)

	deleted, err := svc.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := svc.GetEvents(10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
