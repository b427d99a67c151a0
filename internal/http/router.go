package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/auth"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Next()
		})
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/api/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Staff login endpoints only exist when auth is enabled
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.Auditor)
		router.GET("/api/auth/mode", authController.Mode)
		router.POST("/api/auth/login", authController.Login)
		router.POST("/api/auth/logout", authController.Logout)
		router.GET("/api/auth/me", authController.Me)
		router.POST("/api/auth/password", authController.ChangePassword)
	}

	authors := NewAuthorsController(cfg.AuthorStore, cfg.Auditor)
	router.GET("/api/authors", authors.List)
	router.POST("/api/authors", authors.Create)
	router.PUT("/api/authors/:id", authors.Update)
	router.DELETE("/api/authors/:id", authors.Delete)

	publishers := NewPublishersController(cfg.PublisherStore, cfg.Auditor)
	router.GET("/api/publishers", publishers.List)
	router.POST("/api/publishers", publishers.Create)
	router.PUT("/api/publishers/:id", publishers.Update)
	router.DELETE("/api/publishers/:id", publishers.Delete)

	categories := NewCategoriesController(cfg.CategoryStore, cfg.Auditor)
	router.GET("/api/categories", categories.List)
	router.POST("/api/categories", categories.Create)
	router.PUT("/api/categories/:id", categories.Update)
	router.DELETE("/api/categories/:id", categories.Delete)

	booksController := NewBooksController(cfg.BookStore, cfg.Auditor)
	router.GET("/api/books", booksController.List)
	router.GET("/api/books/:isbn", booksController.Get)
	router.POST("/api/books", booksController.Create)
	router.PUT("/api/books/:isbn", booksController.Update)
	router.DELETE("/api/books/:isbn", booksController.Delete)

	members := NewMembersController(cfg.MemberStore, cfg.Auditor)
	router.GET("/api/members", members.List)
	router.POST("/api/members", members.Create)
	router.PUT("/api/members/:id", members.Update)
	router.DELETE("/api/members/:id", members.Delete)

	loansController := NewLoansController(cfg.LoanStore, cfg.Auditor)
	router.GET("/api/loans", loansController.List)
	router.GET("/api/loans/overdue", loansController.Overdue)
	router.GET("/api/loans/available-books", loansController.AvailableBooks)
	router.GET("/api/loans/available-copies", loansController.AvailableCopies)
	router.POST("/api/loans", loansController.Issue)
	router.POST("/api/loans/:id/return", loansController.Return)
	router.POST("/api/copies", loansController.AddCopy)

	reports := NewReportsController(cfg.StatsStore)
	router.GET("/api/reports/summary", reports.Summary)

	if cfg.AuditStore != nil {
		auditController := NewAuditController(cfg.AuditStore)
		auditRoutes := router.Group("/api/audit")
		if cfg.AuthMiddleware != nil {
			auditRoutes.Use(cfg.AuthMiddleware.RequireRole(entities.UserRoleAdmin))
		}
		auditRoutes.GET("/events", auditController.List)
		auditRoutes.GET("/events/:entityType/:entityKey", auditController.EntityHistory)
	}

	return router
}
