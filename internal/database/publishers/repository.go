// Package publishers provides database operations for publisher management.
package publishers

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// Repository handles all publisher database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new publishers repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every publisher.
func (r *Repository) List() ([]entities.Publisher, error) {
	var publishers []entities.Publisher
	err := r.db.Find(&publishers).Error
	return publishers, err
}

// Add inserts a new publisher; storage assigns the identity.
func (r *Repository) Add(publisher *entities.Publisher) error {
	publisher.ID = 0
	return r.db.Create(publisher).Error
}

// Update rewrites every column of the publisher row. Returns NotFoundError
// when the id does not exist.
func (r *Repository) Update(publisher *entities.Publisher) error {
	result := r.db.Model(&entities.Publisher{}).
		Where("Publisher_ID = ?", publisher.ID).
		Updates(map[string]any{
			"Name":         publisher.Name,
			"Address":      publisher.Address,
			"Contact_Info": publisher.ContactInfo,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &database.NotFoundError{Entity: "publisher", Key: strconv.Itoa(publisher.ID)}
	}
	return nil
}

// Delete removes a publisher unless books still reference it. Books carry a
// required foreign key to their publisher, so the count is taken from BOOK
// directly.
func (r *Repository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var books int64
		err := tx.Model(&entities.Book{}).
			Where("Publisher_ID = ?", id).
			Count(&books).Error
		if err != nil {
			return err
		}
		if books > 0 {
			return &database.ReferentialIntegrityError{Entity: "publisher", Dependents: books}
		}

		result := tx.Delete(&entities.Publisher{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &database.NotFoundError{Entity: "publisher", Key: strconv.Itoa(id)}
		}
		return nil
	})
}
