package application_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ownby4levy/topup-gateway/internal/application"
	"github.com/ownby4levy/topup-gateway/internal/domain"
	"github.com/ownby4levy/topup-gateway/internal/infrastructure/truemoney"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "invalid link",
			err:        domain.NewInvalidLinkFormatError(),
			wantCode:   application.ErrCodeInvalidLinkFormat,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "account not found",
			err:        domain.NewAccountNotFoundError("7656119"),
			wantCode:   application.ErrCodeAccountNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "voucher already used",
			err:        domain.NewVoucherAlreadyUsedError("XYZ"),
			wantCode:   application.ErrCodeVoucherAlreadyUsed,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "invalid amount",
			err:        domain.NewInvalidAmountError(0),
			wantCode:   application.ErrCodeInvalidAmount,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "credit failure",
			err:        domain.NewCreditFailedError(errors.New("account no longer exists")),
			wantCode:   application.ErrCodeCreditFailed,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "remote timeout",
			err:        &truemoney.APIError{Kind: truemoney.KindTimeout},
			wantCode:   application.ErrCodeRemoteTimeout,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "remote timeout after exhausted retries",
			err:        fmt.Errorf("maximum retries exceeded: %w", &truemoney.APIError{Kind: truemoney.KindTimeout}),
			wantCode:   application.ErrCodeRemoteTimeout,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "remote 5xx",
			err:        &truemoney.APIError{Kind: truemoney.KindServer, StatusCode: 503},
			wantCode:   application.ErrCodeRemoteServerError,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "remote rejection",
			err:        &truemoney.APIError{Kind: truemoney.KindApplication, Message: "voucher expired"},
			wantCode:   application.ErrCodeRemoteRejected,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "context deadline",
			err:        context.DeadlineExceeded,
			wantCode:   application.ErrCodeRemoteTimeout,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unclassified",
			err:        errors.New("something odd"),
			wantCode:   application.ErrCodeInternal,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcErr := application.Categorize(tt.err)

			require.NotNil(t, svcErr)
			assert.Equal(t, tt.wantCode, svcErr.Code)
			assert.Equal(t, tt.wantStatus, svcErr.HTTPStatus)
			assert.NotEmpty(t, svcErr.UserMessage)
		})
	}
}

func TestCategorize_RemoteRejectionKeepsProviderMessage(t *testing.T) {
	svcErr := application.Categorize(&truemoney.APIError{
		Kind:    truemoney.KindApplication,
		Message: "voucher expired",
	})

	assert.Equal(t, "voucher expired", svcErr.UserMessage)
}

func TestCategorize_HTTPStatusMapping(t *testing.T) {
	for _, tt := range []struct {
		status int
	}{
		{http.StatusBadRequest},
		{http.StatusNotFound},
		{http.StatusGone},
	} {
		svcErr := application.Categorize(&truemoney.APIError{
			Kind:       truemoney.KindRejected,
			StatusCode: tt.status,
		})
		assert.Equal(t, application.ErrCodeRemoteRejected, svcErr.Code)
		assert.NotEmpty(t, svcErr.UserMessage)
	}
}
