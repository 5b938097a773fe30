package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"career_path/internal/api"
	"career_path/internal/app/mail"
	"career_path/internal/app/service"
	"career_path/internal/app/worker"
	"career_path/internal/common/security"
	"career_path/internal/domain/repository"
	"career_path/internal/platform/config"
	"career_path/internal/platform/database"
	"career_path/internal/platform/queue"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Repositories (store driver from config)
	var userRepo repository.UserRepository
	var progressRepo repository.ProgressRepository
	switch config.AppConfig.StoreDriver {
	case "postgres":
		database.Connect()
		defer database.Close()
		userRepo = repository.NewPgUserRepository(database.DB)
		progressRepo = repository.NewPgProgressRepository(database.DB)
	case "json":
		dataDir := config.AppConfig.DataDir
		userRepo = repository.NewJSONUserRepository(filepath.Join(dataDir, "users.json"))
		progressRepo = repository.NewJSONProgressRepository(filepath.Join(dataDir, "progress.json"))
	default:
		log.Fatalf("Unknown STORE_DRIVER %q (expected json or postgres)", config.AppConfig.StoreDriver)
	}
	fmt.Printf("Store driver %q initialized.\n", config.AppConfig.StoreDriver)

	// 4. Initialize Redis (mail outbox + session revocation)
	queue.ConnectRedis()
	defer queue.CloseRedis()

	// 5. Initialize Services
	roadmapService := service.NewRoadmapService()
	if config.AppConfig.RoadmapsFile != "" {
		if err := roadmapService.LoadFile(config.AppConfig.RoadmapsFile); err != nil {
			log.Fatalf("Could not load roadmaps: %v", err)
		}
	}
	sessionService := service.NewSessionService(
		queue.NewRedisRevocationStore(queue.RDB, config.AppConfig.RevokedTokenPrefix))
	outbox := mail.NewRedisOutbox(queue.RDB, config.AppConfig.MailQueueName)
	authService := service.NewAuthService(userRepo, outbox, sessionService)
	progressService := service.NewProgressService(progressRepo, roadmapService)

	// 6. Initialize Mail Worker (as a goroutine)
	mailWorker := worker.NewMailWorker(queue.RDB)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go mailWorker.Start(workerCtx)
	fmt.Println("Mail worker started.")

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, progressService, sessionService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel() // Signal worker to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
