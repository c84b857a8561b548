package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"battery-analyzer/internal/config"
	"battery-analyzer/internal/processor"
	"battery-analyzer/internal/webserver"
)

func main() {
	configPath := flag.String("config", "", "path to a .toml or .yaml configuration file")
	listen := flag.String("listen", "", "listen address, overrides the configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	level, _ := cfg.LogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := webserver.LoadTranslations(); err != nil {
		slog.Error("Failed to load translations", "error", err)
		os.Exit(1)
	}

	proc := processor.New(processor.Options{
		Interpreter: cfg.Launcher.Interpreter,
		Script:      cfg.Launcher.Script,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           webserver.NewServer(proc, cfg.Defaults).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server started", "addr", cfg.Server.Listen,
		"interpreter", cfg.Launcher.Interpreter, "script", cfg.Launcher.Script)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server startup error", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
