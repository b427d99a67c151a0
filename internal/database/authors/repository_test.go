package authors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	db, err := gorm.Open(sqlite.Open(database.DSN(":memory:")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = database.Migrate(db)
	require.NoError(t, err)

	return db, NewRepository(db)
}

func TestRepository_AddAndList(t *testing.T) {
	_, repo := setupTestDB(t)

	author := &entities.Author{Name: "Ursula K. Le Guin", Biography: "American author", BirthDate: "1929-10-21"}
	err := repo.Add(author)
	require.NoError(t, err)
	assert.NotZero(t, author.ID)

	authors, err := repo.List()
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Ursula K. Le Guin", authors[0].Name)
	assert.Equal(t, "1929-10-21", authors[0].BirthDate)
}

func TestRepository_Update(t *testing.T) {
	_, repo := setupTestDB(t)

	author := &entities.Author{Name: "Old Name"}
	require.NoError(t, repo.Add(author))

	author.Name = "New Name"
	author.Biography = "Updated"
	err := repo.Update(author)
	require.NoError(t, err)

	authors, err := repo.List()
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "New Name", authors[0].Name)
	assert.Equal(t, "Updated", authors[0].Biography)
}

func TestRepository_UpdateMissingAuthor(t *testing.T) {
	_, repo := setupTestDB(t)

	err := repo.Update(&entities.Author{ID: 42, Name: "Nobody"})
	require.Error(t, err)
	assert.True(t, database.IsNotFound(err))
}

func TestRepository_Delete(t *testing.T) {
	_, repo := setupTestDB(t)

	author := &entities.Author{Name: "Disposable"}
	require.NoError(t, repo.Add(author))

	err := repo.Delete(author.ID)
	require.NoError(t, err)

	authors, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestRepository_DeleteBlockedByBooks(t *testing.T) {
	db, repo := setupTestDB(t)

	author := &entities.Author{Name: "Prolific"}
	require.NoError(t, repo.Add(author))

	publisher := entities.Publisher{Name: "Test Press"}
	require.NoError(t, db.Create(&publisher).Error)
	book := entities.Book{ISBN: "978-0000000001", Title: "Kept Book", PublisherID: publisher.ID}
	require.NoError(t, db.Create(&book).Error)
	join := entities.BookAuthor{BookISBN: book.ISBN, AuthorID: author.ID}
	require.NoError(t, db.Create(&join).Error)

	err := repo.Delete(author.ID)
	require.Error(t, err)

	var riErr *database.ReferentialIntegrityError
	require.ErrorAs(t, err, &riErr)
	assert.Equal(t, "author", riErr.Entity)
	assert.Equal(t, int64(1), riErr.Dependents)

	// The author must survive the refused delete.
	authors, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestRepository_DeleteMissingAuthor(t *testing.T) {
	_, repo := setupTestDB(t)

	err := repo.Delete(99)
	require.Error(t, err)
	assert.True(t, database.IsNotFound(err))
}
