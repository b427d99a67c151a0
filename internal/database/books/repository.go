// Package books provides database operations for the book catalog,
// including the copy batch created alongside each book and the cascade
// that removes a book together with its copies, loans, and associations.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	err := repo.Add(&book, []int{1, 2}, []int{3}, 4)
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Listing is one display row of the catalog. A book with several categories
// shows an arbitrary one of them; the selection is storage-order and not
// stable across engines.
type Listing struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	Edition         string `json:"edition"`
	PublisherID     int    `json:"publisher_id"`
	PublisherName   string `json:"publisher_name"`
	CategoryID      int    `json:"category_id,omitempty"`
	CategoryName    string `json:"category_name,omitempty"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// Detail composes a book with everything attached to it, for single-book
// consumers. Authors and categories are unordered sets.
type Detail struct {
	Book          entities.Book       `json:"book"`
	PublisherName string              `json:"publisher_name"`
	Authors       []entities.Author   `json:"authors"`
	Categories    []entities.Category `json:"categories"`
	Copies        []entities.BookCopy `json:"copies"`
}

// List returns one row per book with the publisher name resolved (missing
// publishers display as "Unknown"), at most one category, and copy counts.
func (r *Repository) List() ([]Listing, error) {
	var listings []Listing
	err := r.db.Raw(`
		SELECT b.ISBN                                 AS isbn,
		       b.Title                                AS title,
		       COALESCE(b.Publication_Year, 0)        AS publication_year,
		       COALESCE(b.Edition, '')                AS edition,
		       COALESCE(p.Publisher_ID, 0)            AS publisher_id,
		       COALESCE(p.Name, 'Unknown')            AS publisher_name,
		       COALESCE(c.Category_ID, 0)             AS category_id,
		       COALESCE(c.Name, '')                   AS category_name,
		       (SELECT COUNT(*) FROM BOOK_COPY bc
		         WHERE bc.ISBN = b.ISBN)              AS total_copies,
		       (SELECT COUNT(*) FROM BOOK_COPY bc
		         WHERE bc.ISBN = b.ISBN
		           AND bc.Status = ?)                 AS available_copies
		FROM BOOK b
		LEFT JOIN PUBLISHER p      ON b.Publisher_ID = p.Publisher_ID
		LEFT JOIN BOOK_CATEGORY bj ON b.ISBN = bj.Book_ISBN
		LEFT JOIN CATEGORY c       ON bj.Category_ID = c.Category_ID
		GROUP BY b.ISBN
		ORDER BY b.Title`, entities.CopyStatusAvailable).
		Scan(&listings).Error
	return listings, err
}

// Get returns the full composition for one book: row, publisher name,
// author set, category set, and copies. Returns NotFoundError for an
// unknown ISBN.
func (r *Repository) Get(isbn string) (*Detail, error) {
	var book entities.Book
	err := r.db.Where("ISBN = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &database.NotFoundError{Entity: "book", Key: isbn}
	}
	if err != nil {
		return nil, err
	}

	detail := &Detail{Book: book, PublisherName: "Unknown"}

	var publisher entities.Publisher
	if err := r.db.First(&publisher, book.PublisherID).Error; err == nil {
		detail.PublisherName = publisher.Name
	}

	err = r.db.
		Joins("JOIN BOOK_AUTHOR ba ON ba.Author_ID = AUTHOR.Author_ID").
		Where("ba.Book_ISBN = ?", isbn).
		Find(&detail.Authors).Error
	if err != nil {
		return nil, err
	}

	err = r.db.
		Joins("JOIN BOOK_CATEGORY bc ON bc.Category_ID = CATEGORY.Category_ID").
		Where("bc.Book_ISBN = ?", isbn).
		Find(&detail.Categories).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Where("ISBN = ?", isbn).Find(&detail.Copies).Error
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// Add inserts a book together with its author and category associations
// and copyCount copies, all Available in the default shelf location. The
// whole insertion is one transaction; any failure rolls everything back.
func (r *Repository) Add(book *entities.Book, authorIDs, categoryIDs []int, copyCount int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(book).Error; err != nil {
			return err
		}

		for _, authorID := range authorIDs {
			join := entities.BookAuthor{BookISBN: book.ISBN, AuthorID: authorID}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}

		for _, categoryID := range categoryIDs {
			join := entities.BookCategory{BookISBN: book.ISBN, CategoryID: categoryID}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}

		for i := 0; i < copyCount; i++ {
			copy := entities.BookCopy{
				ISBN:          book.ISBN,
				Status:        entities.CopyStatusAvailable,
				ShelfLocation: entities.DefaultShelfLocation,
			}
			if err := tx.Create(&copy).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Update rewrites the book row and fully replaces its author and category
// associations (delete-all-then-reinsert, not a diff). Copies are left
// untouched. Returns NotFoundError when the ISBN does not exist.
func (r *Repository) Update(book *entities.Book, authorIDs, categoryIDs []int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Book{}).
			Where("ISBN = ?", book.ISBN).
			Updates(map[string]any{
				"Title":            book.Title,
				"Publication_Year": book.PublicationYear,
				"Edition":          book.Edition,
				"Publisher_ID":     book.PublisherID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &database.NotFoundError{Entity: "book", Key: book.ISBN}
		}

		if err := tx.Where("Book_ISBN = ?", book.ISBN).Delete(&entities.BookAuthor{}).Error; err != nil {
			return err
		}
		for _, authorID := range authorIDs {
			join := entities.BookAuthor{BookISBN: book.ISBN, AuthorID: authorID}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("Book_ISBN = ?", book.ISBN).Delete(&entities.BookCategory{}).Error; err != nil {
			return err
		}
		for _, categoryID := range categoryIDs {
			join := entities.BookCategory{BookISBN: book.ISBN, CategoryID: categoryID}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete cascades a book away in dependency order: loans against its
// copies, the copies, both association sets, then the book row. The
// cascade is unconditional; loans on the book's copies disappear with it,
// active or not.
func (r *Repository) Delete(isbn string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(`
			DELETE FROM LOAN
			WHERE Book_Copy_ID IN (SELECT Copy_ID FROM BOOK_COPY WHERE ISBN = ?)`, isbn).Error
		if err != nil {
			return err
		}

		if err := tx.Where("ISBN = ?", isbn).Delete(&entities.BookCopy{}).Error; err != nil {
			return err
		}
		if err := tx.Where("Book_ISBN = ?", isbn).Delete(&entities.BookAuthor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("Book_ISBN = ?", isbn).Delete(&entities.BookCategory{}).Error; err != nil {
			return err
		}

		result := tx.Where("ISBN = ?", isbn).Delete(&entities.Book{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &database.NotFoundError{Entity: "book", Key: isbn}
		}
		return nil
	})
}
