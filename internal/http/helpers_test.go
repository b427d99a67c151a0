package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditservice "github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/audit"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	auditrepo "github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/audit"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/authors"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/books"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/categories"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/loans"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/members"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/publishers"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// setupRouter wires a full router over a throwaway on-disk database so
// handler tests exercise the real repositories.
func setupRouter(t *testing.T) (*gin.Engine, *database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath, database.Options{})
	require.NoError(t, err)

	auditor := auditservice.NewService(auditrepo.NewRepository(db.DB))
	loanRepo := loans.NewRepository(db.DB)

	router := NewRouter(RouterConfig{
		Database:       db,
		Auditor:        auditor,
		AuthorStore:    authors.NewRepository(db.DB),
		PublisherStore: publishers.NewRepository(db.DB),
		CategoryStore:  categories.NewRepository(db.DB),
		BookStore:      books.NewRepository(db.DB),
		MemberStore:    members.NewRepository(db.DB),
		LoanStore:      loanRepo,
		StatsStore:     loanRepo,
		AuditStore:     auditor,
		Version:        "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, db, cleanup
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// seedCatalog inserts a publisher, author, category, one book and its copy
// directly so handler tests have something to work against.
func seedCatalog(t *testing.T, db *database.Database, isbn string) (copyID int) {
	t.Helper()

	publisher := entities.Publisher{Name: "Test Press"}
	require.NoError(t, db.DB.Create(&publisher).Error)
	author := entities.Author{Name: "Test Author"}
	require.NoError(t, db.DB.Create(&author).Error)
	category := entities.Category{Name: "Test Category"}
	require.NoError(t, db.DB.Create(&category).Error)

	book := entities.Book{ISBN: isbn, Title: "Seeded Book", PublisherID: publisher.ID}
	require.NoError(t, db.DB.Create(&book).Error)
	require.NoError(t, db.DB.Create(&entities.BookAuthor{BookISBN: isbn, AuthorID: author.ID}).Error)
	require.NoError(t, db.DB.Create(&entities.BookCategory{BookISBN: isbn, CategoryID: category.ID}).Error)

	copy := entities.BookCopy{ISBN: isbn, Status: entities.CopyStatusAvailable, ShelfLocation: "A1"}
	require.NoError(t, db.DB.Create(&copy).Error)
	return copy.ID
}

func seedMember(t *testing.T, db *database.Database) int {
	t.Helper()
	member := entities.Member{FirstName: "Pat", LastName: "Reader", JoinDate: "2024-01-01"}
	require.NoError(t, db.DB.Create(&member).Error)
	return member.ID
}

func TestPing(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	w := doJSON(t, router, "GET", "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestHealthStatus(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	w := doJSON(t, router, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeBody(t, w)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "test", response["version"])
}
