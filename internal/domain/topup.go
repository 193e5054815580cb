// Package domain encodes the voucher top-up entities and their invariants.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TopupLog is one append-only audit row, written on every redemption attempt.
// A row with Amount > 0 records a credited voucher; the storage layer enforces
// that at most one such row exists per voucher hash.
type TopupLog struct {
	ID          string
	SteamID     string
	VoucherHash string
	Amount      float64
	Error       *string
	CreatedAt   time.Time
}

func NewSuccessLog(steamID, voucherHash string, amount float64) *TopupLog {
	return &TopupLog{
		ID:          uuid.New().String(),
		SteamID:     steamID,
		VoucherHash: voucherHash,
		Amount:      amount,
		CreatedAt:   time.Now(),
	}
}

func NewFailedLog(steamID, voucherHash, reason string) *TopupLog {
	return &TopupLog{
		ID:          uuid.New().String(),
		SteamID:     steamID,
		VoucherHash: voucherHash,
		Amount:      0,
		Error:       &reason,
		CreatedAt:   time.Now(),
	}
}

// User is the shop's account record. The top-up service only ever reads it
// and increments Balance; everything else is owned by the shop.
type User struct {
	ID          string
	SteamID     string
	DisplayName string
	Balance     float64
}

// TopupResult is the outcome returned for every ProcessTopup call. It is
// never persisted; the audit trail lives in TopupLog.
type TopupResult struct {
	Succeeded  bool
	Amount     float64
	NewBalance float64
	Code       string
	Message    string
}

// TopupStats aggregates credited attempts for one account. Failed attempts
// (Amount == 0) are excluded.
type TopupStats struct {
	TotalAmount       float64
	TotalTransactions int
	AverageAmount     float64
	LastTopup         *time.Time
}
