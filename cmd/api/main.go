package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/CodeWithNorayr/job-portal-platform-backend/config"
	_ "github.com/CodeWithNorayr/job-portal-platform-backend/docs" // Important for Swagger
	v1 "github.com/CodeWithNorayr/job-portal-platform-backend/internal/delivery/http/v1"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/repository/postgres"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/storage/s3store"
	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/usecase"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/database"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/logger"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/redis"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/token"
)

// @title           Job Portal Backend API
// @version         1.0
// @description     REST backend for job seekers, recruiters and public job browsing.
// @host            localhost:4000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job portal backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Object Storage
	storeCfg := s3store.ClientConfig{
		Provider:        s3store.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		WasabiEndpoint:  cfg.WasabiEndpoint,
	}
	s3Client, err := s3store.NewClient(context.Background(), storeCfg)
	if err != nil {
		logger.Log.Error("Failed to build storage client", "error", err)
		os.Exit(1)
	}
	if err := s3store.TestConnection(context.Background(), s3Client, cfg.S3Bucket); err != nil {
		logger.Log.Warn("Storage bucket check failed, uploads may not work", "error", err)
	}
	store := s3store.NewStore(s3Client, storeCfg)

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup UseCases
	validate := validator.New()
	tokens := token.NewIssuer(cfg.JWTSecret)
	lifecycle := usecase.NewAttachmentLifecycle(store, logger.Log)

	userUC := usecase.NewUserUsecase(userRepo, applicationRepo, lifecycle, tokens, validate, cfg.CascadePolicy)
	companyUC := usecase.NewCompanyUsecase(companyRepo, jobRepo, applicationRepo, lifecycle, tokens, validate, cfg.CascadePolicy)
	jobUC := usecase.NewJobUsecase(jobRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:        userUC,
		CompanyUC:     companyUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		UserRepo:      userRepo,
		CompanyRepo:   companyRepo,
		Tokens:        tokens,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
