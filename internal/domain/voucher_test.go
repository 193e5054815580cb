package domain_test

import (
	"testing"

	"github.com/ownby4levy/topup-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVoucherHash_KnownShapes(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"query param", "https://example.com/redeem?v=ABC123", "ABC123"},
		{"trailing segment", "https://gift.truemoney.com/campaign/ABC123", "ABC123"},
		{"canonical url", "https://gift.truemoney.com/campaign/?v=ABC123", "ABC123"},
		{"bare v param", "v=XYZ789", "XYZ789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := domain.ExtractVoucherHash(tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hash)
		})
	}
}

func TestExtractVoucherHash_Invalid(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{"empty", ""},
		{"no pattern", "not a link at all!!"},
		{"only separators", "https://???//"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ExtractVoucherHash(tt.link)
			require.Error(t, err)
			assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidLinkFormat))
		})
	}
}

func TestCanonicalVoucherURL(t *testing.T) {
	assert.Equal(t,
		"https://gift.truemoney.com/campaign/?v=ABC123",
		domain.CanonicalVoucherURL("ABC123"),
	)
}

func TestValidateAmount(t *testing.T) {
	const maxAmount = 50000

	tests := []struct {
		amount float64
		valid  bool
	}{
		{0, false},
		{-5, false},
		{50001, false},
		{1, true},
		{50000, true},
		{100.50, true},
	}

	for _, tt := range tests {
		err := domain.ValidateAmount(tt.amount, maxAmount)
		if tt.valid {
			assert.NoError(t, err, "amount %v", tt.amount)
		} else {
			require.Error(t, err, "amount %v", tt.amount)
			assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidAmount))
		}
	}
}
