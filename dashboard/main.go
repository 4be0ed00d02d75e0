package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"

	"github.com/koshai/npdes/dashboard/client"
	"github.com/koshai/npdes/dashboard/web"
	"github.com/koshai/npdes/internal/logger"
)

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging")
	pflag.Parse()

	log := logger.New(*verbose)

	_ = godotenv.Load()
	_ = godotenv.Load("dashboard/.env")

	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "http://127.0.0.1:8080"
	}

	port := os.Getenv("DASHBOARD_PORT")
	if port == "" {
		port = "8081"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	api := client.New(apiBaseURL)
	srv := web.NewServer(api, port, clockwork.NewRealClock(), log)

	log.Info("starting dashboard", "port", port, "api", apiBaseURL)
	if err := srv.Run(ctx); err != nil {
		log.Error("dashboard server error", "error", err)
		os.Exit(1)
	}
	log.Info("dashboard stopped")
}
