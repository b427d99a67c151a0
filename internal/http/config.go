package http

import (
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/auth"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router, in place of a long parameter list on NewRouter.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Auditor  Auditor

	// Catalog stores
	AuthorStore    AuthorStore
	PublisherStore PublisherStore
	CategoryStore  CategoryStore
	BookStore      BookStore
	MemberStore    MemberStore

	// Circulation
	LoanStore  LoanStore
	StatsStore StatsStore

	// Audit trail reads
	AuditStore AuditStore

	// Authentication (all nil when auth mode is none)
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	CSRFSecret     []byte
	SecureCookies  bool

	// Application info
	Version string
}
