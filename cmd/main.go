package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/skillbridge-backend/internal/app"
	"github.com/yungbote/skillbridge-backend/internal/handlers"
	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/server"
	"github.com/yungbote/skillbridge-backend/internal/services"
	"github.com/yungbote/skillbridge-backend/internal/sheetstore"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	cfg := app.LoadConfig(log)

	// Sheet store
	log.Info("Setting up sheet store from main...")
	sheetsClient, err := sheetstore.NewClient(context.Background(), log, cfg.SheetsTimeout)
	if err != nil {
		log.Error("Could not init SheetsClient", "error", err)
		os.Exit(1)
	}
	store := sheetstore.NewStore(sheetsClient, log, sheetstore.Config{
		DynamicTTL:   cfg.DynamicTTL,
		ReferenceTTL: cfg.ReferenceTTL,
	})

	// Repos
	log.Info("Setting up repos from main...")
	respondentRepo := repos.NewRespondentRepo(store, log)
	diagnosisRepo := repos.NewDiagnosisRepo(store, log)
	roadmapRepo := repos.NewRoadmapRepo(store, log)
	referenceRepo := repos.NewReferenceRepo(store, log)

	// Services
	log.Info("Setting up services from main...")
	respondentService := services.NewRespondentService(log, respondentRepo, referenceRepo)
	diagnosisService := services.NewDiagnosisService(log, diagnosisRepo, referenceRepo)
	roadmapService := services.NewRoadmapService(log, diagnosisRepo, roadmapRepo, referenceRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	respondentHandler := handlers.NewRespondentHandler(respondentService)
	diagnosisHandler := handlers.NewDiagnosisHandler(diagnosisService)
	roadmapHandler := handlers.NewRoadmapHandler(roadmapService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:               log,
		RespondentHandler: respondentHandler,
		DiagnosisHandler:  diagnosisHandler,
		RoadmapHandler:    roadmapHandler,
		StaticDir:         cfg.StaticDir,
	})

	log.Info("Server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
