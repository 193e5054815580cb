package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ownby4levy/topup-gateway/internal/application"
	"github.com/ownby4levy/topup-gateway/internal/domain"
	"github.com/ownby4levy/topup-gateway/internal/interfaces/rest"
)

// The session guard in front of this service authenticates the user and
// forwards their identity in this header.
const steamIDHeader = "X-Steam-ID"

const defaultHistoryLimit = 20

type redeemRequest struct {
	Link string `json:"link"`
}

type redeemData struct {
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"newBalance"`
	Message    string  `json:"message"`
}

type topupLogEntry struct {
	Amount      float64   `json:"amount"`
	VoucherHash string    `json:"voucherHash"`
	Error       *string   `json:"error,omitempty"`
	Date        time.Time `json:"date"`
}

type statsData struct {
	TotalAmount       float64    `json:"totalAmount"`
	TotalTransactions int        `json:"totalTransactions"`
	AverageAmount     float64    `json:"averageAmount"`
	LastTopup         *time.Time `json:"lastTopup"`
}

func (h *Handlers) Redeem(w http.ResponseWriter, r *http.Request) {
	steamID := r.Header.Get(steamIDHeader)
	if steamID == "" {
		rest.WriteErrorCode(w, http.StatusBadRequest,
			application.ErrCodeAccountNotFound, application.MissingIdentityMessage())
		return
	}

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteErrorCode(w, http.StatusBadRequest,
			application.ErrCodeInvalidLinkFormat, application.MissingLinkMessage())
		return
	}

	// Form-level checks the shop used to run before the service: the link
	// must exist and at least mention the provider.
	if strings.TrimSpace(req.Link) == "" {
		rest.WriteErrorCode(w, http.StatusBadRequest,
			application.ErrCodeInvalidLinkFormat, application.MissingLinkMessage())
		return
	}
	if !strings.Contains(req.Link, "truemoney.com") {
		rest.WriteErrorCode(w, http.StatusBadRequest,
			application.ErrCodeInvalidLinkFormat, application.NotTrueMoneyLinkMessage())
		return
	}

	result := h.topup.ProcessTopup(r.Context(), steamID, req.Link)
	if !result.Succeeded {
		rest.WriteErrorCode(w, application.ToHTTPStatus(result.Code), result.Code, result.Message)
		return
	}

	rest.WriteData(w, http.StatusOK, redeemData{
		Amount:     result.Amount,
		NewBalance: result.NewBalance,
		Message:    result.Message,
	})
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	steamID := r.Header.Get(steamIDHeader)
	if steamID == "" {
		rest.WriteErrorCode(w, http.StatusBadRequest,
			application.ErrCodeAccountNotFound, application.MissingIdentityMessage())
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	history := h.topup.History(r.Context(), steamID, limit)
	stats := h.topup.Stats(r.Context(), steamID)

	rest.WriteData(w, http.StatusOK, map[string]any{
		"history": toLogEntries(history),
		"stats":   toStatsData(stats),
	})
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	steamID := r.Header.Get(steamIDHeader)
	if steamID == "" {
		rest.WriteErrorCode(w, http.StatusBadRequest,
			application.ErrCodeAccountNotFound, application.MissingIdentityMessage())
		return
	}

	stats := h.topup.Stats(r.Context(), steamID)
	rest.WriteData(w, http.StatusOK, toStatsData(stats))
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("health check: database unreachable", "error", err)
		rest.WriteErrorCode(w, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "database unreachable")
		return
	}

	if err := h.remote.HealthCheck(r.Context()); err != nil {
		h.logger.Error("health check: redemption API unreachable", "error", err)
		rest.WriteErrorCode(w, http.StatusServiceUnavailable, "REMOTE_UNAVAILABLE", "redemption API unreachable")
		return
	}

	rest.WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toLogEntries(logs []*domain.TopupLog) []topupLogEntry {
	entries := make([]topupLogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, topupLogEntry{
			Amount:      l.Amount,
			VoucherHash: l.VoucherHash,
			Error:       l.Error,
			Date:        l.CreatedAt,
		})
	}
	return entries
}

func toStatsData(stats *domain.TopupStats) statsData {
	return statsData{
		TotalAmount:       stats.TotalAmount,
		TotalTransactions: stats.TotalTransactions,
		AverageAmount:     stats.AverageAmount,
		LastTopup:         stats.LastTopup,
	}
}
