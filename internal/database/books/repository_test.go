package books

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(database.DSN(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = database.Migrate(db)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestPublisher(t *testing.T, db *gorm.DB, name string) *entities.Publisher {
	publisher := &entities.Publisher{Name: name}
	require.NoError(t, db.Create(publisher).Error)
	return publisher
}

func createTestAuthor(t *testing.T, db *gorm.DB, name string) *entities.Author {
	author := &entities.Author{Name: name}
	require.NoError(t, db.Create(author).Error)
	return author
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *entities.Category {
	category := &entities.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func TestRepository_Add(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	publisher := createTestPublisher(t, db, "Orbit")
	author := createTestAuthor(t, db, "N. K. Jemisin")
	category := createTestCategory(t, db, "Fantasy")

	book := &entities.Book{
		ISBN:            "978-0316229296",
		Title:           "The Fifth Season",
		PublicationYear: 2015,
		Edition:         "1st",
		PublisherID:     publisher.ID,
	}
	err := repo.Add(book, []int{author.ID}, []int{category.ID}, 3)
	require.NoError(t, err)

	var copies []entities.BookCopy
	require.NoError(t, db.Where("ISBN = ?", book.ISBN).Find(&copies).Error)
	require.Len(t, copies, 3)
	for _, copy := range copies {
		assert.Equal(t, entities.CopyStatusAvailable, copy.Status)
		assert.Equal(t, entities.DefaultShelfLocation, copy.ShelfLocation)
	}

	var authorJoins, categoryJoins int64
	db.Model(&entities.BookAuthor{}).Where("Book_ISBN = ?", book.ISBN).Count(&authorJoins)
	db.Model(&entities.BookCategory{}).Where("Book_ISBN = ?", book.ISBN).Count(&categoryJoins)
	assert.Equal(t, int64(1), authorJoins)
	assert.Equal(t, int64(1), categoryJoins)
}

func TestRepository_AddRollsBackOnBadAuthor(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	publisher := createTestPublisher(t, db, "Orbit")
	author := createTestAuthor(t, db, "Solo Author")

	book := &entities.Book{ISBN: "978-0316229297", Title: "Half Inserted", PublisherID: publisher.ID}
	// Second join row duplicates the first and violates the composite key,
	// which must roll back the book and copies too.
	err := repo.Add(book, []int{author.ID, author.ID}, nil, 2)
	require.Error(t, err)

	var bookCount, copyCount int64
	db.Model(&entities.Book{}).Where("ISBN = ?", book.ISBN).Count(&bookCount)
	db.Model(&entities.BookCopy{}).Where("ISBN = ?", book.ISBN).Count(&copyCount)
	assert.Zero(t, bookCount)
	assert.Zero(t, copyCount)
}

func TestRepository_List(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	publisher := createTestPublisher(t, db, "Gollancz")
	category := createTestCategory(t, db, "Classics")

	book := &entities.Book{ISBN: "978-0575094185", Title: "The Dispossessed", PublicationYear: 1974, PublisherID: publisher.ID}
	require.NoError(t, repo.Add(book, nil, []int{category.ID}, 2))

	listings, err := repo.List()
	require.NoError(t, err)
	require.Len(t, listings, 1)

	listing := listings[0]
	assert.Equal(t, "The Dispossessed", listing.Title)
	assert.Equal(t, "Gollancz", listing.PublisherName)
	assert.Equal(t, "Classics", listing.CategoryName)
	assert.Equal(t, 2, listing.TotalCopies)
	assert.Equal(t, 2, listing.AvailableCopies)
}

func TestRepository_ListUnknownPublisher(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Databases written before enforcement was on can carry a dangling
	// Publisher_ID; the listing must fall back to "Unknown" instead of
	// dropping the row.
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	book := entities.Book{ISBN: "978-0000000099", Title: "Orphaned", PublisherID: 999}
	require.NoError(t, db.Create(&book).Error)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	listings, err := repo.List()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Unknown", listings[0].PublisherName)
	assert.Equal(t, "", listings[0].CategoryName)
	assert.Zero(t, listings[0].TotalCopies)
}

func TestRepository_ListOnePerBook(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	publisher := createTestPublisher(t, db, "Tor")
	first := createTestCategory(t, db, "Fantasy")
	second := createTestCategory(t, db, "Adventure")

	book := &entities.Book{ISBN: "978-0765326355", Title: "The Way of Kings", PublisherID: publisher.ID}
	require.NoError(t, repo.Add(book, nil, []int{first.ID, second.ID}, 1))

	// A book in two categories still shows up once.
	listings, err := repo.List()
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Contains(t, []string{"Fantasy", "Adventure"}, listings[0].CategoryName)
}

func TestRepository_Get(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	publisher := createTestPublisher(t, db, "Ace")
	author := createTestAuthor(t, db, "Frank Herbert")
	category := createTestCategory(t, db, "Science Fiction")

	book := &entities.Book{ISBN: "978-0441013593", Title: "Dune", PublicationYear: 1965, PublisherID: publisher.ID}
	require.NoError(t, repo.Add(book, []int{author.ID}, []int{category.ID}, 2))

	detail, err := repo.Get(book.ISBN)
	require.NoError(t, err)
	assert.Equal(t, "Dune", detail.Book.Title)
	assert.Equal(t, "Ace", detail.PublisherName)
	require.Len(t, detail.Authors, 1)
	assert.Equal(t, "Frank Herbert", detail.Authors[0].Name)
	require.Len(t, detail.Categories, 1)
	assert.Equal(t, "Science Fiction", detail.Categories[0].Name)
	assert.Len(t, detail.Copies, 2)
}

func TestRepository_GetMissingBook(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.Get("978-none")
	require.Error(t, err)
	assert.True(t, database.IsNotFound(err))
}

func TestRepository_Update(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	publisher := createTestPublisher(t, db, "Harper")
	oldAuthor := createTestAuthor(t, db, "Old Author")
	newAuthor := createTestAuthor(t, db, "New Author")

	book := &entities.Book{ISBN: "978-0061120084", Title: "Draft Title", PublisherID: publisher.ID}
	require.NoError(t, repo.Add(book, []int{oldAuthor.ID}, nil, 2))

	book.Title = "To Kill a Mockingbird"
	book.PublicationYear = 1960
	err := repo.Update(book, []int{newAuthor.ID}, nil)
	require.NoError(t, err)

	detail, err := repo.Get(book.ISBN)
	require.NoError(t, err)
	assert.Equal(t, "To Kill a Mockingbird", detail.Book.Title)
	assert.Equal(t, 1960, detail.Book.PublicationYear)
	require.Len(t, detail.Authors, 1)
	assert.Equal(t, "New Author", detail.Authors[0].Name)
	// Copies are not part of an update.
	assert.Len(t, detail.Copies, 2)
}

func TestRepository_UpdateMissingBook(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Update(&entities.Book{ISBN: "978-absent", Title: "Nothing"}, nil, nil)
	require.Error(t, err)
	assert.True(t, database.IsNotFound(err))
}

func TestRepository_DeleteCascades(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	publisher := createTestPublisher(t, db, "Bantam")
	author := createTestAuthor(t, db, "George R. R. Martin")
	category := createTestCategory(t, db, "Fantasy")

	book := &entities.Book{ISBN: "978-0553103540", Title: "A Game of Thrones", PublisherID: publisher.ID}
	require.NoError(t, repo.Add(book, []int{author.ID}, []int{category.ID}, 1))

	var copy entities.BookCopy
	require.NoError(t, db.Where("ISBN = ?", book.ISBN).First(&copy).Error)

	member := entities.Member{FirstName: "Sam", LastName: "Tarly", JoinDate: "2023-01-01"}
	require.NoError(t, db.Create(&member).Error)
	loan := entities.Loan{CopyID: copy.ID, MemberID: member.ID, IssueDate: "2023-06-01", DueDate: "2023-06-15", Status: entities.LoanStatusActive}
	require.NoError(t, db.Create(&loan).Error)

	err := repo.Delete(book.ISBN)
	require.NoError(t, err)

	var loans, copies, authorJoins, categoryJoins, bookRows int64
	db.Model(&entities.Loan{}).Count(&loans)
	db.Model(&entities.BookCopy{}).Count(&copies)
	db.Model(&entities.BookAuthor{}).Count(&authorJoins)
	db.Model(&entities.BookCategory{}).Count(&categoryJoins)
	db.Model(&entities.Book{}).Count(&bookRows)
	assert.Zero(t, loans)
	assert.Zero(t, copies)
	assert.Zero(t, authorJoins)
	assert.Zero(t, categoryJoins)
	assert.Zero(t, bookRows)

	// The referenced author, category, and member stay behind.
	var authorCount, memberCount int64
	db.Model(&entities.Author{}).Count(&authorCount)
	db.Model(&entities.Member{}).Count(&memberCount)
	assert.Equal(t, int64(1), authorCount)
	assert.Equal(t, int64(1), memberCount)
}

func TestRepository_DeleteMissingBook(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Delete("978-absent")
	require.Error(t, err)
	assert.True(t, database.IsNotFound(err))
}
