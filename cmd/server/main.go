package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Catacombb/f9-sub000/internal/cleaner"
	"github.com/Catacombb/f9-sub000/internal/config"
	"github.com/Catacombb/f9-sub000/internal/database"
	"github.com/Catacombb/f9-sub000/internal/handlers"
	"github.com/Catacombb/f9-sub000/internal/logger"
	"github.com/Catacombb/f9-sub000/internal/mailer"
	"github.com/Catacombb/f9-sub000/internal/middleware"
	"github.com/Catacombb/f9-sub000/internal/services"
	"github.com/Catacombb/f9-sub000/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Environment)
	defer log.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Apply embedded migrations before serving traffic.
	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("migration failed: %v", err)
	}
	migrator.Close()

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("failed to initialize storage client: %v", err)
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	// Services
	fileService := services.NewFileService(dbClient, storageClient, log)
	briefService := services.NewBriefService(dbClient, fileService, supabaseClient, log)
	statusService := services.NewStatusService(dbClient, log)
	autosave := services.NewDebouncer(briefService, cfg.AutosaveIdle, log)
	defer autosave.Stop()

	mail := mailer.New(cfg, log)
	if mail == nil {
		log.Info("SMTP not configured; summary email delivery disabled")
	}

	// Opt-in scheduled orphan sweep.
	if cfg.FileSweepSchedule != "" {
		sweeper := cleaner.NewSweeper(dbClient, fileService, log)
		if err := sweeper.Start(cfg.FileSweepSchedule); err != nil {
			log.Fatalf("invalid FILE_SWEEP_SCHEDULE: %v", err)
		}
		defer sweeper.Stop()
	}

	// Handlers
	projectsHandler := handlers.NewProjectsHandler(briefService, autosave, dbClient, log)
	statusHandler := handlers.NewStatusHandler(statusService, dbClient, log)
	filesHandler := handlers.NewFilesHandler(fileService, dbClient, log)
	activityHandler := handlers.NewActivityHandler(dbClient, log)
	dashboardHandler := handlers.NewDashboardHandler(dbClient, log)
	pdfHandler := handlers.NewPDFHandler(briefService, mail, dbClient, log)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.PUT("/projects/:project_id", projectsHandler.SaveProject)
	api.PUT("/projects/:project_id/draft", projectsHandler.QueueDraft)
	api.POST("/projects/:project_id/save", projectsHandler.FlushDraft)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	api.GET("/projects/:project_id/status", statusHandler.GetStatus)
	api.PUT("/projects/:project_id/status", statusHandler.UpdateStatus)

	api.GET("/projects/:project_id/activity", activityHandler.GetActivity)
	api.POST("/projects/:project_id/comments", activityHandler.PostComment)

	api.POST("/projects/:project_id/files", filesHandler.Upload)
	api.GET("/projects/:project_id/files", filesHandler.ListFiles)
	api.DELETE("/projects/:project_id/files/:file_id", filesHandler.DeleteFile)
	api.POST("/files/cleanup", filesHandler.Cleanup)

	api.GET("/projects/:project_id/summary.pdf", pdfHandler.ExportSummary)
	api.POST("/projects/:project_id/summary/send", pdfHandler.SendSummary)

	api.GET("/dashboard", dashboardHandler.GetDashboard)

	log.Infof("server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
