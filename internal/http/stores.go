package http

import (
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/books"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/loans"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// This file consolidates the store interface definitions used by HTTP
// controllers. Each controller depends only on the operations it calls;
// the gorm repositories satisfy these implicitly.

// AuthorStore provides author catalog operations.
type AuthorStore interface {
	List() ([]entities.Author, error)
	Add(author *entities.Author) error
	Update(author *entities.Author) error
	Delete(id int) error
}

// PublisherStore provides publisher catalog operations.
type PublisherStore interface {
	List() ([]entities.Publisher, error)
	Add(publisher *entities.Publisher) error
	Update(publisher *entities.Publisher) error
	Delete(id int) error
}

// CategoryStore provides category catalog operations.
type CategoryStore interface {
	List() ([]entities.Category, error)
	Add(category *entities.Category) error
	Update(category *entities.Category) error
	Delete(id int) error
}

// BookStore provides book catalog operations.
type BookStore interface {
	List() ([]books.Listing, error)
	Get(isbn string) (*books.Detail, error)
	Add(book *entities.Book, authorIDs, categoryIDs []int, copyCount int) error
	Update(book *entities.Book, authorIDs, categoryIDs []int) error
	Delete(isbn string) error
}

// MemberStore provides member operations.
type MemberStore interface {
	List() ([]entities.Member, error)
	Add(member *entities.Member) error
	Update(member *entities.Member) error
	Delete(id int) error
}

// LoanStore provides the circulation workflow.
type LoanStore interface {
	List() ([]loans.Record, error)
	ListActive() ([]loans.Record, error)
	AvailableBooks() ([]loans.AvailableBook, error)
	AvailableCopies() ([]entities.BookCopy, error)
	FirstAvailableCopy(isbn string) (int, bool, error)
	Issue(copyID, memberID int, issueDate, dueDate string) (*entities.Loan, error)
	Return(loanID int, returnDate string) error
	AddCopy(isbn, shelfLocation string) (*entities.BookCopy, error)
	Overdue() ([]loans.Record, error)
}

// StatsStore provides the report counters.
type StatsStore interface {
	Stats() (*loans.Stats, error)
}

// AuditStore provides read access to the audit trail.
type AuditStore interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetEventsForEntity(entityType, entityKey string) ([]entities.AuditEvent, error)
}

// Auditor records operations on the audit trail.
type Auditor interface {
	LogCatalogChange(entityType, entityKey, action, description string, err error)
	LogDelete(entityType, entityKey, entityName string, err error)
	LogLoan(action, entityKey, description string, err error)
	LogAuth(action, username string, success bool)
}
