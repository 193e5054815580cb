package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ownby4levy/topup-gateway/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TopupService is what the handlers need from the orchestrator.
type TopupService interface {
	ProcessTopup(ctx context.Context, steamID, link string) *domain.TopupResult
	History(ctx context.Context, steamID string, limit int) []*domain.TopupLog
	Stats(ctx context.Context, steamID string) *domain.TopupStats
}

// RemoteHealthChecker probes the redemption provider.
type RemoteHealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DBPinger checks database connectivity for /healthz.
type DBPinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	topup  TopupService
	remote RemoteHealthChecker
	db     DBPinger
	logger *slog.Logger
}

func NewHandlers(topup TopupService, remote RemoteHealthChecker, db DBPinger, logger *slog.Logger) *Handlers {
	return &Handlers{
		topup:  topup,
		remote: remote,
		db:     db,
		logger: logger,
	}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/topup/redeem", h.Redeem)
	mux.HandleFunc("GET /api/topup/history", h.History)
	mux.HandleFunc("GET /api/topup/stats", h.Stats)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())
}
