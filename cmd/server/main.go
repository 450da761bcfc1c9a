package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizhub-backend/internal/config"
	"quizhub-backend/internal/database"
	"quizhub-backend/internal/handlers"
	"quizhub-backend/internal/middleware"
	"quizhub-backend/internal/repository"
	"quizhub-backend/internal/router"
	"quizhub-backend/internal/services"
)

func main() {
	log.Println("Starting QuizHub Backend...")

	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	topicRepo := repository.NewTopicRepo(pool)
	quizRepo := repository.NewQuizRepo(pool)
	questionRepo := repository.NewQuestionRepo(pool)
	answerRepo := repository.NewAnswerRepo(pool)
	resultRepo := repository.NewResultRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, redisClient, jwtAuth, cfg.StoragePath)
	quizService := services.NewQuizService(quizRepo, questionRepo, answerRepo, resultRepo)
	resultService := services.NewResultService(resultRepo, redisClient,
		time.Duration(cfg.LeaderboardCacheTTLSeconds)*time.Second)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	questionHandler := handlers.NewQuestionHandler(questionRepo, answerRepo)
	answerHandler := handlers.NewAnswerHandler(answerRepo)
	topicHandler := handlers.NewTopicHandler(topicRepo)
	resultHandler := handlers.NewResultHandler(resultService)

	r := router.New(
		jwtAuth,
		authHandler,
		quizHandler,
		questionHandler,
		answerHandler,
		topicHandler,
		resultHandler,
		cfg.FrontendURL,
		cfg.StoragePath,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ QuizHub Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
