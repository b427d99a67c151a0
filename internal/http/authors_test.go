package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

func TestAuthorsController_Create(t *testing.T) {
	t.Run("creates an author", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doJSON(t, router, "POST", "/api/authors", map[string]any{
			"name":      "Ursula K. Le Guin",
			"biography": "Speculative fiction",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		list := doJSON(t, router, "GET", "/api/authors", nil)
		assert.Equal(t, http.StatusOK, list.Code)
		response := decodeBody(t, list)
		assert.Equal(t, float64(1), response["count"])
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doJSON(t, router, "POST", "/api/authors", map[string]any{"name": "   "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name")
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doJSON(t, router, "POST", "/api/authors", "not an object")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthorsController_Update(t *testing.T) {
	t.Run("updates an existing author", func(t *testing.T) {
		router, db, cleanup := setupRouter(t)
		defer cleanup()

		author := entities.Author{Name: "Old Name"}
		require.NoError(t, db.DB.Create(&author).Error)

		w := doJSON(t, router, "PUT", "/api/authors/1", map[string]any{"name": "New Name"})
		assert.Equal(t, http.StatusOK, w.Code)

		var updated entities.Author
		require.NoError(t, db.DB.First(&updated, author.ID).Error)
		assert.Equal(t, "New Name", updated.Name)
	})

	t.Run("returns 404 for a missing author", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doJSON(t, router, "PUT", "/api/authors/999", map[string]any{"name": "Ghost"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects a non-numeric id", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doJSON(t, router, "PUT", "/api/authors/abc", map[string]any{"name": "X"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthorsController_Delete(t *testing.T) {
	t.Run("deletes an unreferenced author", func(t *testing.T) {
		router, db, cleanup := setupRouter(t)
		defer cleanup()

		author := entities.Author{Name: "Removable"}
		require.NoError(t, db.DB.Create(&author).Error)

		w := doJSON(t, router, "DELETE", "/api/authors/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.DB.Model(&entities.Author{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("returns 409 when books reference the author", func(t *testing.T) {
		router, db, cleanup := setupRouter(t)
		defer cleanup()

		seedCatalog(t, db, "978-0-00-000001-1")

		w := doJSON(t, router, "DELETE", "/api/authors/1", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "dependent record")
	})

	t.Run("returns 404 for a missing author", func(t *testing.T) {
		router, _, cleanup := setupRouter(t)
		defer cleanup()

		w := doJSON(t, router, "DELETE", "/api/authors/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
