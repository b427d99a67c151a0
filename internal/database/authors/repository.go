// Package authors provides database operations for author management.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	list, err := repo.List()
package authors

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every author. Nullable text columns come back as empty
// strings.
func (r *Repository) List() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Find(&authors).Error
	return authors, err
}

// Add inserts a new author. Any id on the input is ignored; storage assigns
// the identity.
func (r *Repository) Add(author *entities.Author) error {
	author.ID = 0
	return r.db.Create(author).Error
}

// Update rewrites every column of the author row. Returns NotFoundError
// when the id does not exist.
func (r *Repository) Update(author *entities.Author) error {
	result := r.db.Model(&entities.Author{}).
		Where("Author_ID = ?", author.ID).
		Updates(map[string]any{
			"Name":       author.Name,
			"Biography":  author.Biography,
			"Birth_Date": author.BirthDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &database.NotFoundError{Entity: "author", Key: strconv.Itoa(author.ID)}
	}
	return nil
}

// Delete removes an author unless books still reference it. The reference
// check and the delete share one transaction so no book can slip in
// between them.
func (r *Repository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var books int64
		err := tx.Model(&entities.BookAuthor{}).
			Where("Author_ID = ?", id).
			Count(&books).Error
		if err != nil {
			return err
		}
		if books > 0 {
			return &database.ReferentialIntegrityError{Entity: "author", Dependents: books}
		}

		result := tx.Delete(&entities.Author{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &database.NotFoundError{Entity: "author", Key: strconv.Itoa(id)}
		}
		return nil
	})
}
