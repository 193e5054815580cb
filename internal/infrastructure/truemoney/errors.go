package truemoney

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed redemption attempt so the orchestrator can
// pick the right user message and the retry layer knows whether another
// attempt is worth it.
type ErrorKind string

const (
	// KindTimeout: the attempt exceeded the per-request timeout. Retryable.
	KindTimeout ErrorKind = "timeout"
	// KindConnection: DNS/connection-level failure. Retryable.
	KindConnection ErrorKind = "connection"
	// KindServer: HTTP 5xx from the provider. Retryable.
	KindServer ErrorKind = "server"
	// KindRejected: HTTP 4xx from the provider. Not retryable.
	KindRejected ErrorKind = "rejected"
	// KindApplication: 200 response that explicitly signals failure
	// (voucher invalid, expired, redeemed elsewhere). Not retryable.
	KindApplication ErrorKind = "application"
	// KindMalformed: empty or unparseable response body. Not retryable.
	KindMalformed ErrorKind = "malformed"
)

// APIError is the normalized failure of one redemption attempt.
type APIError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("truemoney error [%s]: %s (status: %d)", e.Kind, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("truemoney error [%s]: %s", e.Kind, e.Message)
}

func (e *APIError) IsRetryable() bool {
	switch e.Kind {
	case KindTimeout, KindConnection, KindServer:
		return true
	default:
		return false
	}
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
