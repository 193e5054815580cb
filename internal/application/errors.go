package application

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError is the orchestration-level failure handed back to the
// request layer: a stable code, an HTTP status, and a user-facing message
// that is already localized.
type ServiceError struct {
	Code        string
	UserMessage string
	HTTPStatus  int
	Err         error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidLinkFormat  = "INVALID_LINK_FORMAT"
	ErrCodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	ErrCodeVoucherAlreadyUsed = "VOUCHER_ALREADY_USED"
	ErrCodeRemoteTimeout      = "REMOTE_TIMEOUT"
	ErrCodeRemoteUnreachable  = "REMOTE_UNREACHABLE"
	ErrCodeRemoteServerError  = "REMOTE_SERVER_ERROR"
	ErrCodeRemoteRejected     = "REMOTE_REJECTED"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeCreditFailed       = "CREDIT_FAILED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// ToHTTPStatus maps a service error code to the response status.
func ToHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidLinkFormat:
		return http.StatusBadRequest
	case ErrCodeAccountNotFound:
		return http.StatusNotFound
	case ErrCodeVoucherAlreadyUsed:
		return http.StatusConflict
	case ErrCodeRemoteRejected, ErrCodeInvalidAmount:
		return http.StatusUnprocessableEntity
	case ErrCodeRemoteTimeout, ErrCodeRemoteUnreachable, ErrCodeRemoteServerError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}
