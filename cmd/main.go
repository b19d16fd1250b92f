package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"air-quality-dashboard/internal/config"
	"air-quality-dashboard/internal/dashboard"
	"air-quality-dashboard/internal/logger"
	"air-quality-dashboard/internal/registry"
	"air-quality-dashboard/internal/routes"
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/ws"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	reg := registry.Default()
	gen := telemetry.NewGenerator(reg)

	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	binder := ws.NewBinder(hub)
	controller := dashboard.NewController(reg, gen, binder, binder, binder,
		dashboard.WithHistoryDays(cfg.Dashboard.HistoryDays),
	)
	controller.Init()
	controller.Start(cfg.Dashboard.RefreshInterval())
	defer controller.Close()

	logger.Info("Dashboard controller started",
		zap.Int("devices", reg.Len()),
		zap.Duration("refresh_interval", cfg.Dashboard.RefreshInterval()),
	)

	router := routes.SetupRoutes(cfg, reg, gen, controller, hub)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}
