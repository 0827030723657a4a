// Package main is the entry point for the LifeSync schedule server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifesync/backend/internal/api"
	"github.com/lifesync/backend/internal/config"
	"github.com/lifesync/backend/internal/focus"
	"github.com/lifesync/backend/internal/notify"
	"github.com/lifesync/backend/internal/planner"
	"github.com/lifesync/backend/internal/storage"
	"github.com/lifesync/backend/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	configPath := flag.String("config", "./config.yaml", "Path to YAML configuration file")
	addr := flag.String("addr", "", "HTTP server address (overrides config)")
	staticDir := flag.String("static", "", "Directory for static frontend files")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config %q: %v", *configPath, err)
	}
	if *addr != "" {
		cfg.Listen = *addr
	}

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(cfg.Listen); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting LifeSync server (version: %s)...", version)

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", cfg.Timezone, err)
	}

	// Initialize database
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory %q: %v", cfg.DataDir, err)
	}
	db, err := storage.NewDB(cfg.DataDir + "/lifesync.db")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations complete")

	// A fresh install starts with the built-in default week
	eventRepo := storage.NewEventRepository(db)
	if err := eventRepo.Seed(context.Background()); err != nil {
		log.Fatalf("Failed to seed default schedule: %v", err)
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	settingsRepo := storage.NewSettingsRepository(db)

	// Focus timer, phase lengths from settings
	focusMinutes, err := settingsRepo.GetInt(context.Background(), storage.SettingFocusMinutes, focus.DefaultFocusMinutes)
	if err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	}
	breakMinutes, err := settingsRepo.GetInt(context.Background(), storage.SettingBreakMinutes, focus.DefaultBreakMinutes)
	if err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	}
	focusManager := focus.NewManager(websocket.NewEventBroadcaster(hub), focusMinutes, breakMinutes)

	// Reminder scheduler; the config window is the fallback when no stored
	// setting overrides it
	reminderScheduler := notify.NewReminderScheduler(eventRepo, settingsRepo, hub, location, cfg.ReminderWindowMinutes)
	reminderScheduler.Start()

	// AI planner, only when a key is configured. A key or model stored in
	// settings takes precedence over the config file.
	plannerAPIKey, err := settingsRepo.Get(context.Background(), storage.SettingPlannerAPIKey, cfg.Planner.APIKey)
	if err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	}
	plannerModel, err := settingsRepo.Get(context.Background(), storage.SettingPlannerModel, cfg.Planner.Model)
	if err != nil {
		log.Fatalf("Failed to read settings: %v", err)
	}

	var plannerClient *planner.Client
	if plannerAPIKey != "" {
		opts := []planner.Option{planner.WithModel(plannerModel)}
		if cfg.Planner.BaseURL != "" {
			opts = append(opts, planner.WithBaseURL(cfg.Planner.BaseURL))
		}
		plannerClient = planner.NewClient(plannerAPIKey, opts...)
		log.Printf("AI planner enabled (model: %s)", plannerModel)
	} else {
		log.Println("AI planner disabled: no API key configured")
	}

	router := api.NewRouter(db, hub, api.RouterOptions{
		FocusManager:  focusManager,
		PlannerClient: plannerClient,
		Location:      location,
		StaticDir:     *staticDir,
	})

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Listen)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	reminderScheduler.Stop()
	focusManager.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
