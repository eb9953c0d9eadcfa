package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/studywise/studywise-backend/internal/ai"
	"github.com/studywise/studywise-backend/internal/ai/engine"
	"github.com/studywise/studywise-backend/internal/ai/engine/localhttp"
	enginemock "github.com/studywise/studywise-backend/internal/ai/engine/mock"
	"github.com/studywise/studywise-backend/internal/db"
	"github.com/studywise/studywise-backend/internal/handlers"
	"github.com/studywise/studywise-backend/internal/logger"
	"github.com/studywise/studywise-backend/internal/middleware"
	"github.com/studywise/studywise-backend/internal/repos"
	"github.com/studywise/studywise-backend/internal/server"
	"github.com/studywise/studywise-backend/internal/services"
	"github.com/studywise/studywise-backend/internal/utils"
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
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	inferWaitSec := utils.GetEnvAsInt("AI_MAX_WAIT", 120, log)
	generateTimeoutSec := utils.GetEnvAsInt("AI_GENERATE_TIMEOUT", 300, log)
	maxTokens := utils.GetEnvAsInt("AI_MAX_TOKENS", 800, log)
	temperature := utils.GetEnvAsFloat("AI_TEMPERATURE", 0.7, log)
	port := utils.GetEnv("PORT", "8080", log)
	inferWait := time.Duration(inferWaitSec) * time.Second

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	studyPlanRepo := repos.NewStudyPlanRepo(thePG, log)
	studySessionRepo := repos.NewStudySessionRepo(thePG, log)
	reminderRepo := repos.NewReminderRepo(thePG, log)
	counselingRepo := repos.NewCounselingSessionRepo(thePG, log)
	progressRepo := repos.NewProgressRecordRepo(thePG, log)

	// Inference gate
	log.Info("Setting up inference gate from main...")
	var eng engine.Engine
	if strings.EqualFold(utils.GetEnv("AI_MODE", "local", log), "mock") {
		eng = enginemock.New()
	} else {
		eng = localhttp.New(log)
	}
	gate := ai.NewGate(eng, ai.GateConfig{
		MaxTokens:       maxTokens,
		Temperature:     temperature,
		DefaultWait:     inferWait,
		GenerateTimeout: time.Duration(generateTimeoutSec) * time.Second,
	}, log)
	gate.Start(context.Background())

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	counselingService := services.NewCounselingService(thePG, log, gate, counselingRepo, studyPlanRepo, inferWait)
	studyPlanService := services.NewStudyPlanService(thePG, log, gate, studyPlanRepo, inferWait)
	studySessionService := services.NewStudySessionService(thePG, log, studySessionRepo, studyPlanRepo, progressRepo)
	reminderService := services.NewReminderService(thePG, log, reminderRepo, progressRepo)
	progressService := services.NewProgressService(thePG, log, progressRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	counselingHandler := handlers.NewCounselingHandler(counselingService)
	studyPlanHandler := handlers.NewStudyPlanHandler(studyPlanService)
	studySessionHandler := handlers.NewStudySessionHandler(studySessionService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	progressHandler := handlers.NewProgressHandler(progressService)
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:         authHandler,
		AuthMiddleware:      authMiddleware,
		CounselingHandler:   counselingHandler,
		StudyPlanHandler:    studyPlanHandler,
		StudySessionHandler: studySessionHandler,
		ReminderHandler:     reminderHandler,
		ProgressHandler:     progressHandler,
	})
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
