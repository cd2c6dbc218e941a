package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jtcarver/hoopsight/internal/api/handlers"
	"github.com/jtcarver/hoopsight/internal/api/presto"
	"github.com/jtcarver/hoopsight/internal/config"
	"github.com/jtcarver/hoopsight/internal/repository/memory"
	"github.com/jtcarver/hoopsight/internal/scheduler"
	"github.com/jtcarver/hoopsight/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	sources, err := config.LoadTeams(cfg.Source.TeamsFile)
	if err != nil {
		return err
	}
	slog.Info("Loaded team sources", "teams", len(sources))

	prestoClient := presto.NewClient(cfg.Source.Timeout)
	prestoAPI := presto.NewAPI(prestoClient)

	repo := memory.NewRepository()
	statsService := service.NewStatsService(prestoAPI, repo, sources, cfg.Source.CacheTTL, cfg.Ratings.AdjustConfig())

	sched, err := scheduler.NewScheduler(statsService, cfg.Source.RefreshCron)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	statsHandler := handlers.NewStatsHandler(statsService)
	healthHandler := handlers.NewHealthHandler()

	api := router.Group("/api")
	{
		api.GET("/stats", statsHandler.GetStats)
		api.GET("/ratings", statsHandler.GetRatings)
		api.GET("/teams/:name", statsHandler.GetTeam)
		api.GET("/health", healthHandler.GetHealth)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
