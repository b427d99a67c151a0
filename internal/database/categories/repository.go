// Package categories provides database operations for category management.
package categories

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// Repository handles all category database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new categories repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every category.
func (r *Repository) List() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Find(&categories).Error
	return categories, err
}

// Add inserts a new category; storage assigns the identity.
func (r *Repository) Add(category *entities.Category) error {
	category.ID = 0
	return r.db.Create(category).Error
}

// Update renames the category. Returns NotFoundError when the id does not
// exist.
func (r *Repository) Update(category *entities.Category) error {
	result := r.db.Model(&entities.Category{}).
		Where("Category_ID = ?", category.ID).
		Update("Name", category.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &database.NotFoundError{Entity: "category", Key: strconv.Itoa(category.ID)}
	}
	return nil
}

// Delete removes a category unless books still reference it through the
// BOOK_CATEGORY join.
func (r *Repository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var books int64
		err := tx.Model(&entities.BookCategory{}).
			Where("Category_ID = ?", id).
			Count(&books).Error
		if err != nil {
			return err
		}
		if books > 0 {
			return &database.ReferentialIntegrityError{Entity: "category", Dependents: books}
		}

		result := tx.Delete(&entities.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &database.NotFoundError{Entity: "category", Key: strconv.Itoa(id)}
		}
		return nil
	})
}
