// Package loans implements the circulation workflow: issuing copies to
// members, recording returns, and the availability queries that feed the
// issue form. Copy status and loan rows always move together inside one
// transaction, so a copy is Loaned exactly when it has an open loan.
package loans

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record is one loan as displayed, with the borrower and the borrowed
// title resolved.
type Record struct {
	LoanID          int     `json:"loan_id"`
	CopyID          int     `json:"copy_id"`
	MemberID        int     `json:"member_id"`
	IssueDate       string  `json:"issue_date"`
	DueDate         string  `json:"due_date"`
	ReturnDate      *string `json:"return_date"`
	Status          string  `json:"status"`
	MemberFirstName string  `json:"member_first_name"`
	MemberLastName  string  `json:"member_last_name"`
	ISBN            string  `json:"isbn"`
	Title           string  `json:"title"`
}

// AvailableBook is a title with at least one copy on the shelf.
type AvailableBook struct {
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
}

// List returns every loan, newest first, with member and book resolved.
func (r *Repository) List() ([]Record, error) {
	var records []Record
	err := r.db.Raw(`
		SELECT l.Loan_ID              AS loan_id,
		       l.Book_Copy_ID         AS copy_id,
		       l.Member_ID            AS member_id,
		       l.Loan_Date            AS issue_date,
		       l.Due_Date             AS due_date,
		       l.Return_Date          AS return_date,
		       l.Status               AS status,
		       COALESCE(m.First_Name, '') AS member_first_name,
		       COALESCE(m.Last_Name, '')  AS member_last_name,
		       COALESCE(bc.ISBN, '')      AS isbn,
		       COALESCE(b.Title, '')      AS title
		FROM LOAN l
		LEFT JOIN MEMBER m     ON l.Member_ID = m.Member_ID
		LEFT JOIN BOOK_COPY bc ON l.Book_Copy_ID = bc.Copy_ID
		LEFT JOIN BOOK b       ON bc.ISBN = b.ISBN
		ORDER BY l.Loan_ID DESC`).
		Scan(&records).Error
	return records, err
}

// ListActive returns only loans without a return date, newest first.
func (r *Repository) ListActive() ([]Record, error) {
	records, err := r.List()
	if err != nil {
		return nil, err
	}
	active := make([]Record, 0, len(records))
	for _, record := range records {
		if record.ReturnDate == nil {
			active = append(active, record)
		}
	}
	return active, nil
}

// AvailableBooks returns the distinct titles that have at least one copy
// on the shelf, ordered by title.
func (r *Repository) AvailableBooks() ([]AvailableBook, error) {
	var books []AvailableBook
	err := r.db.Raw(`
		SELECT DISTINCT b.ISBN AS isbn, b.Title AS title
		FROM BOOK b
		JOIN BOOK_COPY bc ON b.ISBN = bc.ISBN
		WHERE bc.Status = ?
		ORDER BY b.Title`, entities.CopyStatusAvailable).
		Scan(&books).Error
	return books, err
}

// AvailableCopies returns every copy currently on the shelf.
func (r *Repository) AvailableCopies() ([]entities.BookCopy, error) {
	var copies []entities.BookCopy
	err := r.db.
		Where("Status = ?", entities.CopyStatusAvailable).
		Find(&copies).Error
	return copies, err
}

// FirstAvailableCopy resolves an ISBN to one available copy ID. The
// second return value reports whether any copy was free.
func (r *Repository) FirstAvailableCopy(isbn string) (int, bool, error) {
	var copy entities.BookCopy
	err := r.db.
		Where("ISBN = ? AND Status = ?", isbn, entities.CopyStatusAvailable).
		Limit(1).
		First(&copy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return copy.ID, true, nil
}

// Issue lends a copy to a member. The copy is claimed with a conditional
// update keyed on its Available status, so two concurrent issues of the
// same copy cannot both succeed; the loser gets ErrCopyNotAvailable.
func (r *Repository) Issue(copyID, memberID int, issueDate, dueDate string) (*entities.Loan, error) {
	loan := &entities.Loan{
		CopyID:    copyID,
		MemberID:  memberID,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Status:    entities.LoanStatusActive,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.BookCopy{}).
			Where("Copy_ID = ? AND Status = ?", copyID, entities.CopyStatusAvailable).
			Update("Status", entities.CopyStatusLoaned)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.ErrCopyNotAvailable
		}
		return tx.Create(loan).Error
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// Return closes out a loan: stamps the return date, marks the loan
// Returned, and puts the copy back on the shelf. Returning a loan twice
// fails with ErrLoanAlreadyReturned.
func (r *Repository) Return(loanID int, returnDate string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var loan entities.Loan
		err := tx.First(&loan, loanID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &database.NotFoundError{Entity: "loan", Key: strconv.Itoa(loanID)}
		}
		if err != nil {
			return err
		}
		if loan.ReturnDate != nil {
			return database.ErrLoanAlreadyReturned
		}

		err = tx.Model(&entities.Loan{}).
			Where("Loan_ID = ?", loanID).
			Updates(map[string]any{
				"Return_Date": returnDate,
				"Status":      entities.LoanStatusReturned,
			}).Error
		if err != nil {
			return err
		}

		return tx.Model(&entities.BookCopy{}).
			Where("Copy_ID = ?", loan.CopyID).
			Update("Status", entities.CopyStatusAvailable).Error
	})
}

// AddCopy puts one more copy of an existing book on the shelf. An empty
// shelf location falls back to the default stack.
func (r *Repository) AddCopy(isbn, shelfLocation string) (*entities.BookCopy, error) {
	var book entities.Book
	err := r.db.Where("ISBN = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &database.NotFoundError{Entity: "book", Key: isbn}
	}
	if err != nil {
		return nil, err
	}

	if shelfLocation == "" {
		shelfLocation = entities.DefaultShelfLocation
	}
	copy := &entities.BookCopy{
		ISBN:          isbn,
		Status:        entities.CopyStatusAvailable,
		ShelfLocation: shelfLocation,
	}
	if err := r.db.Create(copy).Error; err != nil {
		return nil, err
	}
	return copy, nil
}

// Stats summarizes the collection and circulation state. A loan is
// overdue when it is still open and its due date has passed; the dates
// are ISO strings, so plain string comparison orders them correctly.
type Stats struct {
	TotalBooks   int64 `json:"total_books"`
	TotalCopies  int64 `json:"total_copies"`
	TotalMembers int64 `json:"total_members"`
	ActiveLoans  int64 `json:"active_loans"`
	OverdueLoans int64 `json:"overdue_loans"`
}

// Stats computes the report counters as of today.
func (r *Repository) Stats() (*Stats, error) {
	return r.statsAsOf(time.Now().Format(entities.DateFormat))
}

func (r *Repository) statsAsOf(today string) (*Stats, error) {
	var stats Stats
	if err := r.db.Model(&entities.Book{}).Count(&stats.TotalBooks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.BookCopy{}).Count(&stats.TotalCopies).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Member{}).Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}
	err := r.db.Model(&entities.Loan{}).
		Where("Return_Date IS NULL").
		Count(&stats.ActiveLoans).Error
	if err != nil {
		return nil, err
	}
	err = r.db.Model(&entities.Loan{}).
		Where("Return_Date IS NULL AND Due_Date < ?", today).
		Count(&stats.OverdueLoans).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Overdue returns the open loans whose due date has passed as of today.
func (r *Repository) Overdue() ([]Record, error) {
	today := time.Now().Format(entities.DateFormat)
	records, err := r.List()
	if err != nil {
		return nil, err
	}
	overdue := make([]Record, 0)
	for _, record := range records {
		if record.ReturnDate == nil && record.DueDate < today {
			overdue = append(overdue, record)
		}
	}
	return overdue, nil
}
