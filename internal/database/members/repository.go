// Package members provides database operations for library members.
// Deleting a member is guarded by their active loans; once the guard
// passes the member's entire loan history goes with them.
package members

import (
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// Repository handles all member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new members repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all members.
func (r *Repository) List() ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Find(&members).Error
	return members, err
}

// Add registers a member. An empty join date defaults to today.
func (r *Repository) Add(member *entities.Member) error {
	member.ID = 0
	if member.JoinDate == "" {
		member.JoinDate = time.Now().Format(entities.DateFormat)
	}
	return r.db.Create(member).Error
}

// Update rewrites a member's contact fields. The join date is not
// editable after registration. Returns NotFoundError for an unknown ID.
func (r *Repository) Update(member *entities.Member) error {
	result := r.db.Model(&entities.Member{}).
		Where("Member_ID = ?", member.ID).
		Updates(map[string]any{
			"First_Name": member.FirstName,
			"Last_Name":  member.LastName,
			"Email":      member.Email,
			"Phone":      member.Phone,
			"Address":    member.Address,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &database.NotFoundError{Entity: "member", Key: strconv.Itoa(member.ID)}
	}
	return nil
}

// Delete removes a member and their loan history. A member holding any
// active loan cannot be deleted; the caller gets a
// ReferentialIntegrityError carrying the active-loan count.
func (r *Repository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&entities.Loan{}).
			Where("Member_ID = ? AND Return_Date IS NULL", id).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return &database.ReferentialIntegrityError{Entity: "member", Dependents: active}
		}

		if err := tx.Where("Member_ID = ?", id).Delete(&entities.Loan{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entities.Member{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &database.NotFoundError{Entity: "member", Key: strconv.Itoa(id)}
		}
		return nil
	})
}
