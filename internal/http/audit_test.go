package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsController_Summary(t *testing.T) {
	router, db, cleanup := setupRouter(t)
	defer cleanup()

	copyID := seedCatalog(t, db, "978-0-11-111111-0")
	memberID := seedMember(t, db)

	issued := doJSON(t, router, "POST", "/api/loans", map[string]any{
		"copy_id": copyID, "member_id": memberID,
	})
	require.Equal(t, http.StatusCreated, issued.Code)

	w := doJSON(t, router, "GET", "/api/reports/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, float64(1), response["total_books"])
	assert.Equal(t, float64(1), response["total_copies"])
	assert.Equal(t, float64(1), response["total_members"])
	assert.Equal(t, float64(1), response["active_loans"])
}

func TestAuditController_List(t *testing.T) {
	t.Run("records catalog mutations", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		created := doJSON(t, router, "POST", "/api/authors", map[string]any{"name": "Audited"})
		require.Equal(t, http.StatusCreated, created.Code)

		// Audit writes go through a goroutine
		time.Sleep(50 * time.Millisecond)

		w := doJSON(t, router, "GET", "/api/audit/events", nil)
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		assert.Equal(t, float64(1), response["total"])
	})

	t.Run("filters by event type", func(t *testing.T) {
		router, db, cleanup := setupRouter(t)
		defer cleanup()

		copyID := seedCatalog(t, db, "978-0-22-222222-0")
		memberID := seedMember(t, db)
		issued := doJSON(t, router, "POST", "/api/loans", map[string]any{
			"copy_id": copyID, "member_id": memberID,
		})
		require.Equal(t, http.StatusCreated, issued.Code)

		time.Sleep(50 * time.Millisecond)

		w := doJSON(t, router, "GET", "/api/audit/events?type=loan", nil)
		require.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, float64(1), response["total"])

		none := doJSON(t, router, "GET", "/api/audit/events?type=delete", nil)
		require.Equal(t, http.StatusOK, none.Code)
		assert.Equal(t, float64(0), decodeBody(t, none)["total"])
	})

	t.Run("returns per entity history", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		created := doJSON(t, router, "POST", "/api/authors", map[string]any{"name": "Tracked"})
		require.Equal(t, http.StatusCreated, created.Code)

		time.Sleep(50 * time.Millisecond)

		w := doJSON(t, router, "GET", "/api/audit/events/author/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), decodeBody(t, w)["count"])
	})
}
