package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stargate/internal/handlers"
	"stargate/internal/middleware"
	"stargate/internal/repositories"
	"stargate/internal/services"
	"stargate/pkg/config"
	"stargate/pkg/database"
	"stargate/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize logger
	logger.Init()

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	personRepo := repositories.NewPersonRepository(database.DB, config.AppConfig.Duty.CaseInsensitiveNames)
	dutyRepo := repositories.NewAstronautDutyRepository(database.DB)
	personService := services.NewPersonService(personRepo)
	dutyService := services.NewAstronautDutyService(database.DB, personRepo, dutyRepo, config.AppConfig.Duty.RetiredTitle)
	exportService := services.NewExportService(personRepo, dutyRepo)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router, personService, dutyService, exportService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, personService *services.PersonService,
	dutyService *services.AstronautDutyService, exportService *services.ExportService) {
	// Initialize handlers
	personHandler := handlers.NewPersonHandler(personService, exportService)
	dutyHandler := handlers.NewAstronautDutyHandler(personService, dutyService)
	healthHandler := handlers.NewHealthHandler()

	// Person routes
	router.POST("/person", personHandler.CreatePerson)
	router.GET("/person", personHandler.GetPeople)
	router.GET("/person/:name", personHandler.GetPersonByName)

	// Roster export (kept off /person to avoid clashing with /person/:name)
	router.GET("/export/roster", personHandler.ExportRoster)

	// Astronaut duty routes
	router.POST("/astronautduty", dutyHandler.CreateAstronautDuty)
	router.GET("/astronautduty/:name", dutyHandler.GetAstronautDutiesByName)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
