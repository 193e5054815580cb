package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ownby4levy/topup-gateway/internal/domain"
)

type TopupLogRepository struct {
	db *DB
}

func NewTopupLogRepository(db *DB) *TopupLogRepository {
	return &TopupLogRepository{db: db}
}

func (r *TopupLogRepository) Insert(ctx context.Context, log *domain.TopupLog) error {
	query := `
		INSERT INTO topup_logs (id, steam_id, voucher_hash, amount, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		log.ID,
		log.SteamID,
		log.VoucherHash,
		log.Amount,
		log.Error,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert topup log: %w", err)
	}

	return nil
}

// ExistsByVoucherHash reports whether any attempt was already recorded for
// the voucher. This backs the fail-fast duplicate check; the partial unique
// index on credited rows is what actually closes the race.
func (r *TopupLogRepository) ExistsByVoucherHash(ctx context.Context, voucherHash string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM topup_logs WHERE voucher_hash = $1 AND amount > 0)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, voucherHash).Scan(&exists); err != nil {
		return false, fmt.Errorf("query voucher usage: %w", err)
	}

	return exists, nil
}

// FindBySteamID returns the account's attempts, newest first.
func (r *TopupLogRepository) FindBySteamID(ctx context.Context, steamID string, limit int) ([]*domain.TopupLog, error) {
	query := `
		SELECT id, steam_id, voucher_hash, amount, error, created_at
		FROM topup_logs
		WHERE steam_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, steamID, limit)
	if err != nil {
		return nil, fmt.Errorf("query topup logs by steam_id: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.TopupLog, error) {
		var l domain.TopupLog
		err := row.Scan(&l.ID, &l.SteamID, &l.VoucherHash, &l.Amount, &l.Error, &l.CreatedAt)
		return &l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan topup logs: %w", err)
	}

	return results, nil
}

// Stats aggregates credited attempts only (amount > 0).
func (r *TopupLogRepository) Stats(ctx context.Context, steamID string) (*domain.TopupStats, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0),
		       COUNT(*),
		       COALESCE(AVG(amount), 0),
		       MAX(created_at)
		FROM topup_logs
		WHERE steam_id = $1 AND amount > 0
	`

	var stats domain.TopupStats
	err := r.db.Pool.QueryRow(ctx, query, steamID).Scan(
		&stats.TotalAmount,
		&stats.TotalTransactions,
		&stats.AverageAmount,
		&stats.LastTopup,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("query topup stats: %w", err)
	}

	return &stats, nil
}
