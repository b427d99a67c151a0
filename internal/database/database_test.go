package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := NewDatabase(dbPath, Options{})
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	require.NoError(t, err)

	// Migrated but unseeded.
	var authors int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&authors).Error)
	assert.Zero(t, authors)
}

// The copy table holds the foreign key, not the book table. A copy of a
// book that was never catalogued must be rejected by the connection-level
// enforcement, and a catalogued book must insert cleanly.
func TestCopyForeignKeyPointsAtBook(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := NewDatabase(dbPath, Options{})
	require.NoError(t, err)
	defer db.Close()

	publisher := entities.Publisher{Name: "Press"}
	require.NoError(t, db.DB.Create(&publisher).Error)
	book := entities.Book{ISBN: "978-0441013593", Title: "Dune", PublisherID: publisher.ID}
	require.NoError(t, db.DB.Create(&book).Error)

	copy := entities.BookCopy{ISBN: book.ISBN, Status: entities.CopyStatusAvailable}
	require.NoError(t, db.DB.Create(&copy).Error)

	orphan := entities.BookCopy{ISBN: "978-0000000000", Status: entities.CopyStatusAvailable}
	assert.Error(t, db.DB.Create(&orphan).Error)
}

func TestNewDatabaseSeeded(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := NewDatabase(dbPath, Options{Seed: true})
	require.NoError(t, err)
	defer db.Close()

	counts := map[string]int64{}
	for name, model := range map[string]any{
		"authors":    &entities.Author{},
		"publishers": &entities.Publisher{},
		"categories": &entities.Category{},
		"members":    &entities.Member{},
		"books":      &entities.Book{},
		"copies":     &entities.BookCopy{},
		"loans":      &entities.Loan{},
	} {
		var count int64
		require.NoError(t, db.DB.Model(model).Count(&count).Error)
		counts[name] = count
	}

	assert.Equal(t, int64(5), counts["authors"])
	assert.Equal(t, int64(5), counts["publishers"])
	assert.Equal(t, int64(5), counts["categories"])
	assert.Equal(t, int64(5), counts["members"])
	assert.Equal(t, int64(5), counts["books"])
	assert.Equal(t, int64(5), counts["copies"])
	assert.Equal(t, int64(3), counts["loans"])

	// Copies with an open loan start out Loaned, the rest Available.
	var loaned int64
	require.NoError(t, db.DB.Model(&entities.BookCopy{}).
		Where("Status = ?", entities.CopyStatusLoaned).
		Count(&loaned).Error)
	assert.Equal(t, int64(2), loaned)

	var returned entities.Loan
	require.NoError(t, db.DB.Where("Return_Date IS NOT NULL").First(&returned).Error)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, "2023-09-10", *returned.ReturnDate)
	assert.Equal(t, entities.LoanStatusReturned, returned.Status)
}

func TestSeedIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := NewDatabase(dbPath, Options{Seed: true})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening with seeding on must not duplicate anything.
	db, err = NewDatabase(dbPath, Options{Seed: true})
	require.NoError(t, err)
	defer db.Close()

	var authors int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&authors).Error)
	assert.Equal(t, int64(5), authors)
}
