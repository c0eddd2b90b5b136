package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	_ "clearcomply/docs"
	"clearcomply/internal/ai"
	"clearcomply/internal/cache"
	"clearcomply/internal/config"
	"clearcomply/internal/engine"
	"clearcomply/internal/repository"
	"clearcomply/internal/service"
	"clearcomply/internal/transport/rest"
	"clearcomply/internal/transport/ws"
)

// @title ClearComply API
// @version 1.0
// @description Adaptive compliance assessment service
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  FollowUp:  %s", aiConfig.Models.FollowUp)
	log.Printf("  Recommend: %s", aiConfig.Models.Recommend)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:   configured ✓")
	} else {
		log.Println("  API Key:   NOT SET (fallback generator only)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	frameworkRepo := repository.NewFrameworkRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	resultRepo := repository.NewResultRepo(db)

	// Initialize caches
	snapshotCache := cache.NewSnapshotCache(rdb)
	assessmentCache := cache.NewAssessmentCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	frameworkSvc := service.NewFrameworkService(frameworkRepo)
	profileSvc := service.NewProfileService(profileRepo)
	gateway := ai.NewGeminiGateway(aiConfig)
	assessmentSvc := service.NewAssessmentService(
		frameworkRepo,
		profileRepo,
		resultRepo,
		assessmentCache,
		snapshotCache,
		gateway,
		authSvc,
		engine.Config{AITimeout: aiConfig.Timeout()},
	)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		FrameworkService:  frameworkSvc,
		ProfileService:    profileSvc,
		AssessmentService: assessmentSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/frameworks")
		log.Println("  POST/GET /v1/profiles")
		log.Println("  POST/GET /v1/assessments")
		log.Println("  POST /v1/assessments/{assessmentId}/resume")
		log.Println("  GET  /v1/assessments/{assessmentId}/question/current")
		log.Println("  POST /v1/assessments/{assessmentId}/answers")
		log.Println("  POST /v1/assessments/{assessmentId}/next")
		log.Println("  GET  /v1/assessments/{assessmentId}/results")
		log.Println("  WS  /v1/ws/assessments/{assessmentId}/host")
		log.Println("  WS  /v1/ws/assessments/{assessmentId}/subject")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
