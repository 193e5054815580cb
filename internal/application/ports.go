package application

import (
	"context"

	"github.com/ownby4levy/topup-gateway/internal/domain"
	"github.com/ownby4levy/topup-gateway/internal/infrastructure/truemoney"
)

// VoucherRedeemer is the port for the external redemption API. In production
// it is the truemoney retry client.
type VoucherRedeemer interface {
	Redeem(ctx context.Context, voucherHash string) (*truemoney.RedeemResponse, error)
	HealthCheck(ctx context.Context) error
}

// UserRepository resolves shop accounts by their external identifier.
type UserRepository interface {
	FindBySteamID(ctx context.Context, steamID string) (*domain.User, error)
}

// TopupLogRepository is the port for the append-only audit trail.
type TopupLogRepository interface {
	Insert(ctx context.Context, log *domain.TopupLog) error
	ExistsByVoucherHash(ctx context.Context, voucherHash string) (bool, error)
	FindBySteamID(ctx context.Context, steamID string, limit int) ([]*domain.TopupLog, error)
	Stats(ctx context.Context, steamID string) (*domain.TopupStats, error)
}

// CreditStore commits the balance credit and the success log atomically.
type CreditStore interface {
	CreditAndLog(ctx context.Context, log *domain.TopupLog) (newBalance float64, err error)
}
