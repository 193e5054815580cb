// Package services holds the top-up orchestration logic.
package services

import (
	"context"
	"log/slog"

	"github.com/ownby4levy/topup-gateway/internal/application"
	"github.com/ownby4levy/topup-gateway/internal/domain"
)

const (
	// Voucher hash recorded when the link never parsed.
	unknownVoucherHash = "unknown"

	resultSuccess = "SUCCESS"
)

type TopupService struct {
	users     application.UserRepository
	logs      application.TopupLogRepository
	credits   application.CreditStore
	redeemer  application.VoucherRedeemer
	maxAmount float64
	logger    *slog.Logger
}

func NewTopupService(
	users application.UserRepository,
	logs application.TopupLogRepository,
	credits application.CreditStore,
	redeemer application.VoucherRedeemer,
	maxAmount float64,
	logger *slog.Logger,
) *TopupService {
	return &TopupService{
		users:     users,
		logs:      logs,
		credits:   credits,
		redeemer:  redeemer,
		maxAmount: maxAmount,
		logger:    logger,
	}
}

// ProcessTopup redeems a gift link and credits the account. It never returns
// an error: every failure is logged as an audit row and folded into the
// result. The duplicate pre-check is an optimization; the credit transaction
// and the storage-level unique index are what guarantee exactly-once.
func (s *TopupService) ProcessTopup(ctx context.Context, steamID, link string) *domain.TopupResult {
	voucherHash, err := domain.ExtractVoucherHash(link)
	if err != nil {
		return s.fail(ctx, steamID, unknownVoucherHash, err)
	}

	log := s.logger.With("steam_id", steamID, "voucher_hash", voucherHash)

	if _, err := s.users.FindBySteamID(ctx, steamID); err != nil {
		return s.fail(ctx, steamID, voucherHash, err)
	}

	used, err := s.logs.ExistsByVoucherHash(ctx, voucherHash)
	if err != nil {
		// Fail-fast check only; the credit transaction still catches
		// duplicates, so degrade instead of rejecting the attempt.
		log.Warn("duplicate pre-check unavailable", "error", err)
	} else if used {
		return s.fail(ctx, steamID, voucherHash, domain.NewVoucherAlreadyUsedError(voucherHash))
	}

	resp, err := s.redeemer.Redeem(ctx, voucherHash)
	if err != nil {
		return s.fail(ctx, steamID, voucherHash, err)
	}

	if !resp.AmountFound {
		log.Warn("no amount field in successful redemption response")
		application.AmountExtractionMisses.Inc()
	}

	if err := domain.ValidateAmount(resp.Amount, s.maxAmount); err != nil {
		return s.fail(ctx, steamID, voucherHash, err)
	}

	entry := domain.NewSuccessLog(steamID, voucherHash, resp.Amount)
	newBalance, err := s.credits.CreditAndLog(ctx, entry)
	if err != nil {
		return s.fail(ctx, steamID, voucherHash, err)
	}

	log.Info("topup credited", "amount", resp.Amount, "new_balance", newBalance)
	application.TopupAttempts.WithLabelValues(resultSuccess).Inc()

	return &domain.TopupResult{
		Succeeded:  true,
		Amount:     resp.Amount,
		NewBalance: newBalance,
		Message:    application.SuccessMessage(resp.Amount, newBalance),
	}
}

// fail records the attempt and converts the cause into a user-facing result.
func (s *TopupService) fail(ctx context.Context, steamID, voucherHash string, cause error) *domain.TopupResult {
	svcErr := application.Categorize(cause)

	entry := domain.NewFailedLog(steamID, voucherHash, cause.Error())
	if err := s.logs.Insert(ctx, entry); err != nil {
		s.logger.Error("failed to write attempt log",
			"steam_id", steamID,
			"voucher_hash", voucherHash,
			"error", err,
		)
	}

	s.logger.Warn("topup failed",
		"steam_id", steamID,
		"voucher_hash", voucherHash,
		"code", svcErr.Code,
		"error", cause,
	)
	application.TopupAttempts.WithLabelValues(svcErr.Code).Inc()

	return &domain.TopupResult{
		Succeeded: false,
		Code:      svcErr.Code,
		Message:   svcErr.UserMessage,
	}
}

// History returns the account's recent attempts, newest first. The view is a
// convenience; if the store is unreachable it degrades to empty rather than
// failing the page.
func (s *TopupService) History(ctx context.Context, steamID string, limit int) []*domain.TopupLog {
	if limit <= 0 {
		limit = 10
	}

	history, err := s.logs.FindBySteamID(ctx, steamID, limit)
	if err != nil {
		s.logger.Error("failed to load topup history", "steam_id", steamID, "error", err)
		return []*domain.TopupLog{}
	}

	return history
}

// Stats aggregates the account's credited attempts; zero values when none.
func (s *TopupService) Stats(ctx context.Context, steamID string) *domain.TopupStats {
	stats, err := s.logs.Stats(ctx, steamID)
	if err != nil {
		s.logger.Error("failed to load topup stats", "steam_id", steamID, "error", err)
		return &domain.TopupStats{}
	}

	return stats
}
