package entities

// DateFormat is the persisted layout for every date column. The catalog
// stores dates as ISO-like text so the values survive round trips through
// SQLite untouched.
const DateFormat = "2006-01-02"

// DefaultShelfLocation is assigned to copies created in bulk when a book
// is added to the catalog.
const DefaultShelfLocation = "Main Stack"

type CopyStatus string

const (
	CopyStatusAvailable CopyStatus = "Available"
	CopyStatusLoaned    CopyStatus = "Loaned"
	CopyStatusLost      CopyStatus = "Lost"
)

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "Active"
	LoanStatusReturned LoanStatus = "Returned"
)

type Author struct {
	ID        int    `gorm:"column:Author_ID;primaryKey" json:"id"`
	Name      string `gorm:"column:Name;size:255;not null" json:"name"`
	Biography string `gorm:"column:Biography;type:text" json:"biography,omitempty"`
	BirthDate string `gorm:"column:Birth_Date;size:64" json:"birth_date,omitempty"`
}

func (Author) TableName() string { return "AUTHOR" }

type Publisher struct {
	ID          int    `gorm:"column:Publisher_ID;primaryKey" json:"id"`
	Name        string `gorm:"column:Name;size:255;not null" json:"name"`
	Address     string `gorm:"column:Address;size:512" json:"address,omitempty"`
	ContactInfo string `gorm:"column:Contact_Info;size:255" json:"contact_info,omitempty"`
}

func (Publisher) TableName() string { return "PUBLISHER" }

type Category struct {
	ID   int    `gorm:"column:Category_ID;primaryKey" json:"id"`
	Name string `gorm:"column:Name;size:255;not null" json:"name"`
}

func (Category) TableName() string { return "CATEGORY" }

// Book is keyed by its ISBN rather than a surrogate id. The Publisher
// association exists so migrations emit the foreign key constraint; reads
// compose display rows through the repository view structs instead of
// preloading it.
type Book struct {
	ISBN            string     `gorm:"column:ISBN;primaryKey;size:32" json:"isbn"`
	Title           string     `gorm:"column:Title;size:512;not null" json:"title"`
	PublicationYear int        `gorm:"column:Publication_Year" json:"publication_year,omitempty"`
	Edition         string     `gorm:"column:Edition;size:64" json:"edition,omitempty"`
	PublisherID     int        `gorm:"column:Publisher_ID;not null" json:"publisher_id"`
	Publisher       Publisher  `gorm:"foreignKey:PublisherID" json:"-"`
	Copies          []BookCopy `gorm:"foreignKey:ISBN;references:ISBN" json:"-"`
}

func (Book) TableName() string { return "BOOK" }

// BookAuthor is the many-to-many join between books and authors.
type BookAuthor struct {
	BookISBN string `gorm:"column:Book_ISBN;primaryKey;size:32" json:"book_isbn"`
	AuthorID int    `gorm:"column:Author_ID;primaryKey" json:"author_id"`
	Book     Book   `gorm:"foreignKey:BookISBN" json:"-"`
	Author   Author `gorm:"foreignKey:AuthorID" json:"-"`
}

func (BookAuthor) TableName() string { return "BOOK_AUTHOR" }

// BookCategory is the many-to-many join between books and categories.
type BookCategory struct {
	BookISBN   string   `gorm:"column:Book_ISBN;primaryKey;size:32" json:"book_isbn"`
	CategoryID int      `gorm:"column:Category_ID;primaryKey" json:"category_id"`
	Book       Book     `gorm:"foreignKey:BookISBN" json:"-"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (BookCategory) TableName() string { return "BOOK_CATEGORY" }

// BookCopy is a physical instance of a book. Copies are created in a batch
// when the book is added and cascade away when it is deleted. Status is
// mutated only by the loan workflow.
type BookCopy struct {
	ID            int        `gorm:"column:Copy_ID;primaryKey" json:"id"`
	ISBN          string     `gorm:"column:ISBN;size:32;not null;index" json:"isbn"`
	Status        CopyStatus `gorm:"column:Status;size:16;not null" json:"status"`
	ShelfLocation string     `gorm:"column:Shelf_Location;size:128" json:"shelf_location,omitempty"`
}

func (BookCopy) TableName() string { return "BOOK_COPY" }

type Member struct {
	ID        int    `gorm:"column:Member_ID;primaryKey" json:"id"`
	FirstName string `gorm:"column:First_Name;size:128;not null" json:"first_name"`
	LastName  string `gorm:"column:Last_Name;size:128;not null" json:"last_name"`
	Email     string `gorm:"column:Email;size:255" json:"email,omitempty"`
	Phone     string `gorm:"column:Phone;size:64" json:"phone,omitempty"`
	Address   string `gorm:"column:Address;size:512" json:"address,omitempty"`
	JoinDate  string `gorm:"column:Join_Date;size:10" json:"join_date"`
}

func (Member) TableName() string { return "MEMBER" }

// Loan records a copy being lent to a member. A nil ReturnDate means the
// loan is active; setting it is a one-way transition.
type Loan struct {
	ID         int        `gorm:"column:Loan_ID;primaryKey" json:"id"`
	CopyID     int        `gorm:"column:Book_Copy_ID;not null;index" json:"copy_id"`
	MemberID   int        `gorm:"column:Member_ID;not null;index" json:"member_id"`
	IssueDate  string     `gorm:"column:Loan_Date;size:10;not null" json:"issue_date"`
	DueDate    string     `gorm:"column:Due_Date;size:10;not null" json:"due_date"`
	ReturnDate *string    `gorm:"column:Return_Date;size:10" json:"return_date,omitempty"`
	Status     LoanStatus `gorm:"column:Status;size:16;not null" json:"status"`
	Copy       BookCopy   `gorm:"foreignKey:CopyID" json:"-"`
	Member     Member     `gorm:"foreignKey:MemberID" json:"-"`
}

func (Loan) TableName() string { return "LOAN" }

// Active reports whether the loan has not been returned yet.
func (l Loan) Active() bool { return l.ReturnDate == nil }
