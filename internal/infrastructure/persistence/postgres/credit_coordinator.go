package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ownby4levy/topup-gateway/internal/domain"
)

// CreditCoordinator commits the balance increment and the success audit row
// as one transaction. The partial unique index on credited voucher hashes
// makes the commit fail if another request credited the same voucher first;
// that failure is reported as a duplicate use, not an internal error.
type CreditCoordinator struct {
	db *DB
}

func NewCreditCoordinator(db *DB) *CreditCoordinator {
	return &CreditCoordinator{db: db}
}

func (c *CreditCoordinator) CreditAndLog(ctx context.Context, log *domain.TopupLog) (float64, error) {
	tx, err := c.db.Pool.Begin(ctx)
	if err != nil {
		return 0, domain.NewCreditFailedError(fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback(ctx)

	var newBalance float64
	err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1 WHERE steam_id = $2 RETURNING balance`,
		log.Amount, log.SteamID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Account vanished between resolution and credit.
			return 0, domain.NewCreditFailedError(errors.New("account no longer exists"))
		}
		return 0, domain.NewCreditFailedError(fmt.Errorf("update balance: %w", err))
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO topup_logs (id, steam_id, voucher_hash, amount, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		log.ID, log.SteamID, log.VoucherHash, log.Amount, log.Error, log.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, domain.NewVoucherAlreadyUsedError(log.VoucherHash)
		}
		return 0, domain.NewCreditFailedError(fmt.Errorf("insert success log: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		if IsUniqueViolation(err) {
			return 0, domain.NewVoucherAlreadyUsedError(log.VoucherHash)
		}
		return 0, domain.NewCreditFailedError(fmt.Errorf("commit transaction: %w", err))
	}

	return newBalance, nil
}
