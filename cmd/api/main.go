package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/servicedesk-v2/backend/config"
	"github.com/pageza/servicedesk-v2/backend/internal/api"
	"github.com/pageza/servicedesk-v2/backend/internal/database"
	"github.com/pageza/servicedesk-v2/backend/internal/router"
	"github.com/pageza/servicedesk-v2/backend/internal/server"
	"github.com/pageza/servicedesk-v2/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	requestService := service.NewRequestService(db)
	categoryService := service.NewCategoryService(db)
	feedbackService := service.NewFeedbackService(db)
	statsService := service.NewStatsService(db)

	handlers := router.Handlers{
		Auth:      api.NewAuthHandler(authService),
		Requests:  api.NewRequestHandler(requestService, feedbackService),
		Admin:     api.NewAdminHandler(requestService),
		Category:  api.NewCategoryHandler(categoryService),
		Feedback:  api.NewFeedbackHandler(feedbackService),
		Dashboard: api.NewDashboardHandler(statsService, requestService, feedbackService, categoryService),
	}

	engine := router.SetupRouter(cfg, authService, handlers)
	srv := server.New(engine, net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
