package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

var seedAuthors = []entities.Author{
	{Name: "J.K. Rowling", Biography: "British author, best known for the Harry Potter series."},
	{Name: "George R.R. Martin", Biography: "American novelist and short story writer, A Song of Ice and Fire."},
	{Name: "J.R.R. Tolkien", Biography: "English writer, poet, philologist, and academic, The Lord of the Rings."},
	{Name: "Agatha Christie", Biography: "English writer known for her sixty-six detective novels."},
	{Name: "Stephen King", Biography: "American author of horror, supernatural fiction, suspense, crime, science-fiction, and fantasy novels."},
}

var seedPublishers = []entities.Publisher{
	{Name: "Bloomsbury", Address: "London, UK", ContactInfo: "contact@bloomsbury.com"},
	{Name: "Bantam Books", Address: "New York, USA", ContactInfo: "info@bantam.com"},
	{Name: "Allen & Unwin", Address: "Sydney, Australia", ContactInfo: "support@allenandunwin.com"},
	{Name: "HarperCollins", Address: "New York, USA", ContactInfo: "help@harpercollins.com"},
	{Name: "Scribner", Address: "New York, USA", ContactInfo: "contact@scribner.com"},
}

var seedCategories = []entities.Category{
	{Name: "Fantasy"},
	{Name: "Science Fiction"},
	{Name: "Mystery"},
	{Name: "Horror"},
	{Name: "Adventure"},
}

var seedMembers = []entities.Member{
	{FirstName: "John", LastName: "Doe", Email: "john.doe@email.com", Phone: "555-0101", JoinDate: "2023-01-15"},
	{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@email.com", Phone: "555-0102", JoinDate: "2023-02-20"},
	{FirstName: "Alice", LastName: "Johnson", Email: "alice.j@email.com", Phone: "555-0103", JoinDate: "2023-03-10"},
	{FirstName: "Bob", LastName: "Wilson", Email: "bob.w@email.com", Phone: "555-0104", JoinDate: "2023-04-05"},
	{FirstName: "Eva", LastName: "Brown", Email: "eva.b@email.com", Phone: "555-0105", JoinDate: "2023-05-12"},
}

type seedBook struct {
	book       entities.Book
	authorID   int
	categoryID int
	shelf      string
}

var seedBooks = []seedBook{
	{entities.Book{ISBN: "978-0747532743", Title: "Harry Potter and the Philosopher's Stone", PublicationYear: 1997, Edition: "1st", PublisherID: 1}, 1, 1, "Fantasy-01"},
	{entities.Book{ISBN: "978-0553103540", Title: "A Game of Thrones", PublicationYear: 1996, Edition: "1st", PublisherID: 2}, 2, 1, "Fantasy-02"},
	{entities.Book{ISBN: "978-0618640157", Title: "The Fellowship of the Ring", PublicationYear: 1954, Edition: "1st", PublisherID: 3}, 3, 1, "Fantasy-03"},
	{entities.Book{ISBN: "978-0007119318", Title: "Murder on the Orient Express", PublicationYear: 1934, Edition: "1st", PublisherID: 4}, 4, 3, "Mystery-01"},
	{entities.Book{ISBN: "978-1501142970", Title: "It", PublicationYear: 1986, Edition: "1st", PublisherID: 5}, 5, 4, "Horror-01"},
}

// returned loan fixture: copy 2 went back on 2023-09-10
var seedReturnDate = "2023-09-10"

// seedCatalog inserts the starter data set on a fresh database. The whole
// insertion runs in one transaction and is skipped when authors already
// exist, so repeated startups never duplicate rows.
func (d *Database) seedCatalog() error {
	var authorCount int64
	if err := d.DB.Model(&entities.Author{}).Count(&authorCount).Error; err != nil {
		return err
	}
	if authorCount > 0 {
		return nil
	}

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		for _, a := range seedAuthors {
			if err := tx.Create(&a).Error; err != nil {
				return fmt.Errorf("seed author %q: %w", a.Name, err)
			}
		}
		for _, p := range seedPublishers {
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("seed publisher %q: %w", p.Name, err)
			}
		}
		for _, c := range seedCategories {
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, err)
			}
		}
		for _, m := range seedMembers {
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("seed member %q: %w", m.LastName, err)
			}
		}

		for _, sb := range seedBooks {
			book := sb.book
			if err := tx.Create(&book).Error; err != nil {
				return fmt.Errorf("seed book %q: %w", book.ISBN, err)
			}
			if err := tx.Create(&entities.BookAuthor{BookISBN: book.ISBN, AuthorID: sb.authorID}).Error; err != nil {
				return err
			}
			if err := tx.Create(&entities.BookCategory{BookISBN: book.ISBN, CategoryID: sb.categoryID}).Error; err != nil {
				return err
			}
			copy := entities.BookCopy{ISBN: book.ISBN, Status: entities.CopyStatusAvailable, ShelfLocation: sb.shelf}
			if err := tx.Create(&copy).Error; err != nil {
				return err
			}
		}

		// Two active loans and one returned, matching copy/member ids 1-3
		// assigned above.
		loans := []entities.Loan{
			{CopyID: 1, MemberID: 1, IssueDate: "2023-10-01", DueDate: "2023-10-15", Status: entities.LoanStatusActive},
			{CopyID: 2, MemberID: 2, IssueDate: "2023-09-01", DueDate: "2023-09-15", ReturnDate: &seedReturnDate, Status: entities.LoanStatusReturned},
			{CopyID: 3, MemberID: 3, IssueDate: "2023-08-01", DueDate: "2023-08-15", Status: entities.LoanStatusActive},
		}
		for i := range loans {
			if err := tx.Create(&loans[i]).Error; err != nil {
				return fmt.Errorf("seed loan for copy %d: %w", loans[i].CopyID, err)
			}
			if loans[i].Active() {
				err := tx.Model(&entities.BookCopy{}).
					Where("Copy_ID = ?", loans[i].CopyID).
					Update("Status", entities.CopyStatusLoaned).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Seeded starter catalog: %d authors, %d books, 3 loans", len(seedAuthors), len(seedBooks))
	return nil
}
