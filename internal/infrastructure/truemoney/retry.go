package truemoney

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ownby4levy/topup-gateway/internal/config"
)

// Redeemer is what the retry decorator wraps; satisfied by *Client.
type Redeemer interface {
	Redeem(ctx context.Context, voucherHash string) (*RedeemResponse, error)
	HealthCheck(ctx context.Context) error
}

// RetryClient retries transient redemption failures with a backoff that
// grows linearly with the attempt index. Application-level rejections and
// 4xx responses abort immediately: re-sending a voucher the provider has
// already rejected cannot succeed and risks confusing its dedupe logic.
type RetryClient struct {
	inner       Redeemer
	baseDelay   time.Duration
	maxAttempts int
	logger      *slog.Logger
}

func NewRetryClient(inner Redeemer, cfg config.RetryConfig, logger *slog.Logger) *RetryClient {
	return &RetryClient{
		inner:       inner,
		baseDelay:   cfg.BaseDelay,
		maxAttempts: cfg.MaxAttempts,
		logger:      logger,
	}
}

func (r *RetryClient) Redeem(ctx context.Context, voucherHash string) (*RedeemResponse, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		// Backoff only between attempts, never before the first.
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.baseDelay * time.Duration(attempt-1)):
			}
		}

		resp, err := r.inner.Redeem(ctx, voucherHash)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		r.logger.Warn("redemption attempt failed",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"error", err,
		)
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func (r *RetryClient) HealthCheck(ctx context.Context) error {
	return r.inner.HealthCheck(ctx)
}

func isRetryable(err error) bool {
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.IsRetryable()
	}
	return false
}
