package scheduler

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/tasks"
)

func setupTaskClient(t *testing.T) *tasks.Client {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	cfg := tasks.DefaultConfig()
	cfg.Workers = 1

	client, err := tasks.NewClient(dbPath, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestScheduler_DisabledDoesNotStart(t *testing.T) {
	client := setupTaskClient(t)

	s := NewOverdueSweepScheduler(client, Config{Enabled: false})
	err := s.Start(context.Background())
	require.NoError(t, err)
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextSweep())
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	client := setupTaskClient(t)

	s := NewOverdueSweepScheduler(client, Config{Enabled: true, Schedule: "not a schedule"})
	err := s.Start(context.Background())
	require.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestScheduler_StartStop(t *testing.T) {
	client := setupTaskClient(t)

	s := NewOverdueSweepScheduler(client, Config{
		Enabled:              true,
		Schedule:             "0 8 * * *",
		AuditCleanupSchedule: "30 3 * * *",
		AuditRetentionDays:   90,
	})
	err := s.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.NextSweep())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextSweep())
}

func TestScheduler_RunNowEnqueues(t *testing.T) {
	client := setupTaskClient(t)

	s := NewOverdueSweepScheduler(client, Config{Enabled: true, Schedule: "0 8 * * *"})

	// Enqueueing does not require the scheduler to be running.
	s.RunNow()
}
