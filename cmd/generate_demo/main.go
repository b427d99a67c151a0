// Command generate_demo creates a demo catalog database populated with
// public domain books, members, and a mix of active, returned, and overdue
// loans.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/books"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/loans"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath, database.Options{})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	publisherIDs := createPublishers(db)
	authorIDs := createAuthors(db)
	categoryIDs := createCategories(db)
	createBooks(db, publisherIDs, authorIDs, categoryIDs)
	memberIDs := createMembers(db)
	createLoans(db, memberIDs)

	log.Println("Demo database generated successfully!")
}

func createPublishers(db *database.Database) map[string]int {
	names := []string{"Penguin Classics", "Oxford University Press", "Dover Publications"}
	ids := make(map[string]int)
	for _, name := range names {
		publisher := entities.Publisher{Name: name}
		if err := db.DB.Create(&publisher).Error; err != nil {
			log.Printf("Failed to create publisher %s: %v", name, err)
			continue
		}
		ids[name] = publisher.ID
	}
	return ids
}

func createAuthors(db *database.Database) map[string]int {
	names := []string{
		"Jane Austen",
		"Herman Melville",
		"Mary Shelley",
		"Charles Dickens",
		"Leo Tolstoy",
	}
	ids := make(map[string]int)
	for _, name := range names {
		author := entities.Author{Name: name}
		if err := db.DB.Create(&author).Error; err != nil {
			log.Printf("Failed to create author %s: %v", name, err)
			continue
		}
		ids[name] = author.ID
	}
	return ids
}

func createCategories(db *database.Database) map[string]int {
	names := []string{"Fiction", "Classics", "Gothic", "Historical"}
	ids := make(map[string]int)
	for _, name := range names {
		category := entities.Category{Name: name}
		if err := db.DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", name, err)
			continue
		}
		ids[name] = category.ID
	}
	return ids
}

type demoBook struct {
	book       entities.Book
	publisher  string
	authors    []string
	categories []string
	copies     int
}

func createBooks(db *database.Database, publisherIDs, authorIDs, categoryIDs map[string]int) {
	repo := books.NewRepository(db.DB)

	demos := []demoBook{
		{
			book:       entities.Book{ISBN: "978-0-14-143951-8", Title: "Pride and Prejudice", PublicationYear: 1813},
			publisher:  "Penguin Classics",
			authors:    []string{"Jane Austen"},
			categories: []string{"Fiction", "Classics"},
			copies:     3,
		},
		{
			book:       entities.Book{ISBN: "978-0-14-243724-7", Title: "Moby-Dick", PublicationYear: 1851},
			publisher:  "Penguin Classics",
			authors:    []string{"Herman Melville"},
			categories: []string{"Fiction", "Classics"},
			copies:     2,
		},
		{
			book:       entities.Book{ISBN: "978-0-19-953716-7", Title: "Frankenstein", PublicationYear: 1818},
			publisher:  "Oxford University Press",
			authors:    []string{"Mary Shelley"},
			categories: []string{"Gothic", "Classics"},
			copies:     2,
		},
		{
			book:       entities.Book{ISBN: "978-0-486-41586-4", Title: "A Tale of Two Cities", PublicationYear: 1859},
			publisher:  "Dover Publications",
			authors:    []string{"Charles Dickens"},
			categories: []string{"Historical", "Classics"},
			copies:     2,
		},
		{
			book:       entities.Book{ISBN: "978-0-14-044793-4", Title: "War and Peace", PublicationYear: 1869},
			publisher:  "Penguin Classics",
			authors:    []string{"Leo Tolstoy"},
			categories: []string{"Historical", "Classics"},
			copies:     1,
		},
	}

	for _, demo := range demos {
		demo.book.PublisherID = publisherIDs[demo.publisher]
		var authors []int
		for _, name := range demo.authors {
			authors = append(authors, authorIDs[name])
		}
		var categories []int
		for _, name := range demo.categories {
			categories = append(categories, categoryIDs[name])
		}
		if err := repo.Add(&demo.book, authors, categories, demo.copies); err != nil {
			log.Printf("Failed to save book %s: %v", demo.book.Title, err)
			continue
		}
		log.Printf("Saved: %s (%d copies)", demo.book.Title, demo.copies)
	}
}

func createMembers(db *database.Database) []int {
	members := []entities.Member{
		{FirstName: "Alice", LastName: "Johnson", Email: "alice.johnson@example.com", JoinDate: "2023-02-14"},
		{FirstName: "Bruno", LastName: "Costa", Email: "bruno.costa@example.com", JoinDate: "2023-06-30"},
		{FirstName: "Chen", LastName: "Wei", Email: "chen.wei@example.com", JoinDate: "2024-01-08"},
		{FirstName: "Dana", LastName: "Okafor", Email: "dana.okafor@example.com", JoinDate: "2024-04-22"},
	}

	var ids []int
	for i := range members {
		if err := db.DB.Create(&members[i]).Error; err != nil {
			log.Printf("Failed to create member %s: %v", members[i].LastName, err)
			continue
		}
		ids = append(ids, members[i].ID)
	}
	return ids
}

func createLoans(db *database.Database, memberIDs []int) {
	if len(memberIDs) < 3 {
		log.Printf("Not enough members for demo loans")
		return
	}

	repo := loans.NewRepository(db.DB)
	today := time.Now()

	// An active loan due next week
	issue(repo, "978-0-14-143951-8", memberIDs[0], today.AddDate(0, 0, -7), 14)

	// An overdue loan
	issue(repo, "978-0-14-243724-7", memberIDs[1], today.AddDate(0, 0, -30), 14)

	// A completed loan
	loanID := issue(repo, "978-0-19-953716-7", memberIDs[2], today.AddDate(0, 0, -60), 14)
	if loanID > 0 {
		returnDate := today.AddDate(0, 0, -50).Format(entities.DateFormat)
		if err := repo.Return(loanID, returnDate); err != nil {
			log.Printf("Failed to return demo loan %d: %v", loanID, err)
		}
	}
}

func issue(repo *loans.Repository, isbn string, memberID int, issuedAt time.Time, periodDays int) int {
	copyID, found, err := repo.FirstAvailableCopy(isbn)
	if err != nil || !found {
		log.Printf("No available copy of %s for demo loan", isbn)
		return 0
	}

	issueDate := issuedAt.Format(entities.DateFormat)
	dueDate := issuedAt.AddDate(0, 0, periodDays).Format(entities.DateFormat)
	loan, err := repo.Issue(copyID, memberID, issueDate, dueDate)
	if err != nil {
		log.Printf("Failed to issue demo loan for %s: %v", isbn, err)
		return 0
	}
	log.Printf("Issued copy %d of %s (due %s)", copyID, isbn, dueDate)
	return loan.ID
}
