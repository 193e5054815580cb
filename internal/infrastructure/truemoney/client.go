// Package truemoney talks to the external gift-voucher redemption API.
package truemoney

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ownby4levy/topup-gateway/internal/config"
	"github.com/ownby4levy/topup-gateway/internal/domain"
	"github.com/tidwall/gjson"
)

// RedeemResponse is the normalized result of a successful redemption call.
// AmountFound is false when the 200 body carried none of the known amount
// fields; the amount is then 0 and validation downstream rejects it.
type RedeemResponse struct {
	Amount      float64
	AmountFound bool
}

type redeemRequest struct {
	VoucherCode  string `json:"voucherCode"`
	MobileNumber string `json:"mobileNumber"`
}

type Client struct {
	baseURL      string
	mobileNumber string
	httpClient   *http.Client
}

func NewClient(cfg config.TrueMoneyConfig) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		mobileNumber: cfg.MobileNumber,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// Redeem performs exactly one redemption attempt for the voucher hash.
// Retries live in RetryClient, not here.
func (c *Client) Redeem(ctx context.Context, voucherHash string) (*RedeemResponse, error) {
	payload := redeemRequest{
		VoucherCode:  domain.CanonicalVoucherURL(voucherHash),
		MobileNumber: c.mobileNumber,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling json: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (compatible; TopupBot/1.0)")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindConnection, Message: fmt.Sprintf("read response body: %v", err)}
	}

	if resp.StatusCode >= 400 {
		kind := KindRejected
		if resp.StatusCode >= 500 {
			kind = KindServer
		}
		msg := failureMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return nil, &APIError{Kind: kind, Message: msg, StatusCode: resp.StatusCode}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &APIError{Kind: KindMalformed, Message: "empty API response"}
	}
	if !gjson.ValidBytes(body) {
		preview := body
		if len(preview) > 100 {
			preview = preview[:100]
		}
		return nil, &APIError{Kind: KindMalformed, Message: fmt.Sprintf("invalid JSON response: %s", preview)}
	}

	if !isSuccess(body) {
		msg := failureMessage(body)
		if msg == "" {
			msg = "voucher redemption failed"
		}
		return nil, &APIError{Kind: KindApplication, Message: msg, StatusCode: resp.StatusCode}
	}

	amount, found := extractAmount(body)
	return &RedeemResponse{Amount: amount, AmountFound: found}, nil
}

// HealthCheck probes the redemption endpoint with a HEAD request.
func (c *Client) HealthCheck(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return &APIError{Kind: KindServer, Message: "health check failed", StatusCode: resp.StatusCode}
	}
	return nil
}

func classifyTransportError(err error) *APIError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &APIError{Kind: KindTimeout, Message: urlErr.Error()}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: err.Error()}
	}
	return &APIError{Kind: KindConnection, Message: err.Error()}
}
