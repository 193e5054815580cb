package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/ownby4levy/topup-gateway/internal/domain"
	"github.com/ownby4levy/topup-gateway/internal/infrastructure/truemoney"
)

// Categorize converts any failure from the top-up pipeline into a
// ServiceError carrying a stable code and a localized user message. Every
// path through ProcessTopup funnels its error here, so nothing unclassified
// reaches the request layer.
func Categorize(err error) *ServiceError {
	if err == nil {
		return nil
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case domain.ErrCodeInvalidLinkFormat:
			return newServiceError(ErrCodeInvalidLinkFormat, msgInvalidLink, err)
		case domain.ErrCodeAccountNotFound:
			return newServiceError(ErrCodeAccountNotFound, msgAccountNotFound, err)
		case domain.ErrCodeVoucherAlreadyUsed:
			return newServiceError(ErrCodeVoucherAlreadyUsed, msgVoucherUsed, err)
		case domain.ErrCodeInvalidAmount:
			return newServiceError(ErrCodeInvalidAmount, msgInvalidAmount, err)
		case domain.ErrCodeCreditFailed:
			return newServiceError(ErrCodeCreditFailed, msgGenericFailure, err)
		}
	}

	if apiErr, ok := truemoney.IsAPIError(err); ok {
		switch apiErr.Kind {
		case truemoney.KindTimeout:
			return newServiceError(ErrCodeRemoteTimeout, msgTimeout, err)
		case truemoney.KindConnection:
			return newServiceError(ErrCodeRemoteUnreachable, msgUnreachable, err)
		case truemoney.KindServer:
			return newServiceError(ErrCodeRemoteServerError, msgProviderDown, err)
		case truemoney.KindRejected:
			switch apiErr.StatusCode {
			case http.StatusBadRequest:
				return newServiceError(ErrCodeRemoteRejected, msgBadVoucherLink, err)
			case http.StatusNotFound:
				return newServiceError(ErrCodeRemoteRejected, msgVoucherNotFound, err)
			default:
				return newServiceError(ErrCodeRemoteRejected, msgRedemptionFailed, err)
			}
		case truemoney.KindApplication:
			// The provider's own message, when it sent one.
			msg := apiErr.Message
			if msg == "" || msg == "voucher redemption failed" {
				msg = msgRedemptionFailed
			}
			return newServiceError(ErrCodeRemoteRejected, msg, err)
		case truemoney.KindMalformed:
			return newServiceError(ErrCodeRemoteRejected, msgRedemptionFailed, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newServiceError(ErrCodeRemoteTimeout, msgTimeout, err)
	}

	return newServiceError(ErrCodeInternal, msgGenericFailure, err)
}

func newServiceError(code, userMessage string, err error) *ServiceError {
	return &ServiceError{
		Code:        code,
		UserMessage: userMessage,
		HTTPStatus:  ToHTTPStatus(code),
		Err:         err,
	}
}
