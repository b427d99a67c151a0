package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	auditservice "github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/audit"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/auth"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/config"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database"
	auditrepo "github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/audit"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/authors"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/books"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/categories"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/loans"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/members"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/database/publishers"
	http_controllers "github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/http"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/scheduler"
	"github.com/mustafaelshahhat-art/LibraryManagementSystem/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt, then drain with a timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Shutdown callback first so the task queue stops taking work
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting library catalog v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, database.Options{Seed: cfg.Seed.Enabled})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditor := auditservice.NewService(auditrepo.NewRepository(db.DB))
	loanRepo := loans.NewRepository(db.DB)

	// Task queue workers run the overdue report and audit retention jobs
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:            cfg.Tasks.Workers,
			ReleaseAfter:       cfg.Tasks.ReleaseAfter,
			CleanupInterval:    cfg.Tasks.CleanupInterval,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditor),
			tasks.NewOverdueReportQueue(loanRepo, auditor),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Cron entries enqueue the daily jobs onto the task queue
	var sweepScheduler *scheduler.OverdueSweepScheduler
	if taskClient != nil && cfg.OverdueSweep.Enabled {
		sweepScheduler = scheduler.NewOverdueSweepScheduler(taskClient, scheduler.Config{
			Enabled:              true,
			Schedule:             cfg.OverdueSweep.Schedule,
			AuditCleanupSchedule: cfg.OverdueSweep.AuditCleanupSchedule,
			AuditRetentionDays:   cfg.Audit.RetentionDays,
		})
		if err := sweepScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start overdue sweep scheduler: %v", err)
		}
	}

	var authService *auth.Service
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		authService = auth.NewService(db.DB, cfg.Auth)

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authMiddleware = auth.NewMiddleware(authService, sessionManager, cfg.Auth)

		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}

		hasUsers, _ := authService.HasUsers()
		if !hasUsers {
			log.Printf("No users found. Run the create-admin command to create an administrator account.")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Auditor:        auditor,
		AuthorStore:    authors.NewRepository(db.DB),
		PublisherStore: publishers.NewRepository(db.DB),
		CategoryStore:  categories.NewRepository(db.DB),
		BookStore:      books.NewRepository(db.DB),
		MemberStore:    members.NewRepository(db.DB),
		LoanStore:      loanRepo,
		StatsStore:     loanRepo,
		AuditStore:     auditor,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if sweepScheduler != nil {
			sweepScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
