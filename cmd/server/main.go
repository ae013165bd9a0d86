// cmd/server/main.go
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/astronote/campaign-console/internal/backend"
	"github.com/astronote/campaign-console/internal/billing"
	"github.com/astronote/campaign-console/internal/config"
	"github.com/astronote/campaign-console/internal/controller"
	"github.com/astronote/campaign-console/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)

	client := backend.NewHTTPClient(cfg.BackendBaseURL, cfg.BackendTimeout)
	gate := &billing.Gate{CTATarget: cfg.BillingCTATarget}
	sendService := service.NewSendService(client, gate, log, cfg.ConfirmTTL)

	sendController := &controller.SendController{
		SendService: sendService,
	}

	r := chi.NewRouter()

	// Send orchestration routes
	r.Post("/campaigns/{id}/send", sendController.RequestSend)
	r.Post("/campaigns/{id}/send/confirm", sendController.ConfirmSend)
	r.Delete("/campaigns/{id}/send", sendController.CancelSend)
	r.Get("/campaigns/{id}/send/attempt", sendController.GetAttempt)
	r.Get("/campaigns/{id}/actions", sendController.GetActions)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	log.Info("server running", "addr", cfg.Addr, "backend", cfg.BackendBaseURL)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
