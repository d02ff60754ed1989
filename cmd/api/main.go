package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scopus-dashboard/config"
	"scopus-dashboard/controllers"
	"scopus-dashboard/middleware"
	"scopus-dashboard/models"
	"scopus-dashboard/monitor"
	"scopus-dashboard/routes"
	"scopus-dashboard/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	logFile, logWriter := config.InitLogging(settings.LogDir)
	if logFile != nil {
		defer logFile.Close()
	}

	// Export history is optional
	if err := config.InitDB(settings.Database); err != nil {
		log.Printf("Warning: %v; export history disabled", err)
	} else if config.DB != nil {
		if err := config.DB.AutoMigrate(&models.ExportRun{}); err != nil {
			log.Printf("Warning: migrating export_runs failed: %v", err)
		}
	}

	if settings.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	repo := services.NewDatasetRepository(services.NewDatasetLoader(), settings.DatasetPath, settings.DatasetSheet)
	if _, err := repo.Dataset(context.Background()); err != nil {
		// The page and API report the failure until the file is fixed.
		log.Printf("Warning: %v", err)
	}

	exporter := services.NewExporter(services.ExportOptions{
		BaseName: settings.ExportBaseName,
		Title:    settings.ReportTitle,
		FontPath: settings.PDFFontPath,
	})
	dashboard := services.NewDashboardService(repo, exporter, services.DashboardOptions{
		TopSourcesLimit: settings.TopSourcesLimit,
		TopAuthorsLimit: settings.TopAuthorsLimit,
	})
	handlers := controllers.NewHandlers(
		dashboard,
		services.NewExportRunService(config.DB),
		services.NewReportMailer(settings.Mail),
		"",
	)

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logWriter))
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(settings.CORSAllowedOrigins))
	router.Use(middleware.RateLimitMiddleware(settings.RateLimitRPS, settings.RateLimitBurst))

	routes.SetupRoutes(router, handlers)

	if settings.MonitorToken != "" {
		monitor.New(settings.MonitorToken, config.LogFilePath(settings.LogDir), func(ctx context.Context) (string, bool) {
			info, err := dashboard.Info(ctx)
			if err != nil {
				return err.Error(), false
			}
			return fmt.Sprintf("online, dataset %s with %d publications", info.Sheet, info.Rows), true
		}).Register(router)
		log.Printf("Monitor enabled at /monitor")
	}

	srv := &http.Server{
		Addr:              ":" + settings.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s", settings.ServerPort)
		log.Printf("📚 Dataset %s (sheet %s)", settings.DatasetPath, settings.DatasetSheet)
		if settings.GinMode == "release" {
			log.Printf("🏭 Running in production mode")
		} else {
			log.Printf("🔧 Running in development mode, dashboard at http://localhost:%s/", settings.ServerPort)
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
