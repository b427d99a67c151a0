package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// Database owns the SQLite connection shared by every repository. It is
// passed into repository constructors explicitly; there is no package-level
// handle.
type Database struct {
	DB *gorm.DB
}

// Options controls bootstrap behaviour.
type Options struct {
	// Seed inserts the starter catalog on first run. The insertion is
	// skipped whenever the AUTHOR table already has rows.
	Seed bool
}

// DSN appends the connection options every catalog connection requires.
// Tests must open their databases through this too, so foreign key
// enforcement matches the production connection.
func DSN(dbPath string) string {
	return fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", dbPath)
}

// NewDatabase opens (or creates) the catalog database at dbPath, runs
// migrations, and optionally seeds the starter catalog. Foreign key
// enforcement is switched on at the connection level.
func NewDatabase(dbPath string, opts Options) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(DSN(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if opts.Seed {
		if err := database.seedCatalog(); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

// Migrate creates or updates the schema for every catalog entity. Exposed
// separately so tests can build their own fixtures on a bare connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Author{},
		&entities.Publisher{},
		&entities.Category{},
		&entities.Book{},
		&entities.BookAuthor{},
		&entities.BookCategory{},
		&entities.BookCopy{},
		&entities.Member{},
		&entities.Loan{},
		&entities.User{},
		&entities.AuditEvent{},
	)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
