// Package main provides the main entry point for the BankForge banking service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bankforge/bankforge/app/handlers"
	"github.com/bankforge/bankforge/app/middleware"
	"github.com/bankforge/bankforge/app/router"
	"github.com/bankforge/bankforge/app/services"
	businessflow "github.com/bankforge/bankforge/business_flow"
	"github.com/bankforge/bankforge/config"
	"github.com/bankforge/bankforge/repository"
)

// Application represents the main application structure
type Application struct {
	router router.Router
	config *config.Config
	server *fiber.App
	state  *businessflow.BankState
}

func main() {
	log.Println("Starting BankForge application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	// Save a final snapshot so nothing applied since the last write is lost
	app.state.Lock()
	if err := app.state.Persist(); err != nil {
		log.Printf("Final snapshot save failed: %v", err)
	}
	app.state.Unlock()

	log.Println("Shutdown complete")
}

// setupLogging routes the standard logger to stdout, a rotated file, or both
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" {
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		log.SetOutput(rotated)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotated))
	}
}

// initializeApplication wires the repositories, flows, handlers, and router
func initializeApplication(cfg *config.Config) (*Application, error) {
	store, err := repository.NewSnapshotStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	directory := repository.NewDirectory()
	customers, accounts, err := store.LoadAll()
	if err != nil {
		// A corrupt snapshot starts the service empty rather than failing it
		log.Printf("Snapshot load degraded, starting with partial data: %v", err)
	}
	directory.Load(customers, accounts)
	log.Printf("Loaded %d customers and %d accounts from snapshot", len(customers), len(accounts))

	state := businessflow.NewBankState(directory, store)
	clock := businessflow.SystemClock()

	tokenService, err := services.NewTokenService(cfg.JWT.SessionTTL, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	signupFlow := businessflow.NewSignupFlow(state, clock, cfg.Security.BcryptCost)
	loginFlow := businessflow.NewLoginFlow(state, tokenService)
	recoveryFlow := businessflow.NewRecoveryFlow(state)
	accountFlow := businessflow.NewAccountFlow(state, clock)
	transferFlow := businessflow.NewTransferFlow(state, clock)
	statementFlow := businessflow.NewStatementFlow(state)

	authHandler := handlers.NewAuthHandler(signupFlow, loginFlow, recoveryFlow)
	accountHandler := handlers.NewAccountHandler(accountFlow, transferFlow, statementFlow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewFiberRouter(authHandler, accountHandler, authMiddleware)

	return &Application{
		router: r,
		config: cfg,
		server: r.GetApp(),
		state:  state,
	}, nil
}
