package domain

import (
	"fmt"
	"regexp"
)

// Known gift-link shapes, tried in order. Different URL forms carrying the
// same hash must normalize to the same identifier or duplicate detection
// breaks.
var voucherPatterns = []*regexp.Regexp{
	regexp.MustCompile(`v=([a-zA-Z0-9]+)`),
	regexp.MustCompile(`/([a-zA-Z0-9]+)$`),
	regexp.MustCompile(`gift\.truemoney\.com/campaign/\?v=([a-zA-Z0-9]+)`),
}

// ExtractVoucherHash pulls the canonical voucher identifier out of a
// user-supplied gift link. It never panics on malformed input.
func ExtractVoucherHash(link string) (string, error) {
	if link == "" {
		return "", NewInvalidLinkFormatError()
	}

	for _, pattern := range voucherPatterns {
		match := pattern.FindStringSubmatch(link)
		if len(match) > 1 && match[1] != "" {
			return match[1], nil
		}
	}

	return "", NewInvalidLinkFormatError()
}

// CanonicalVoucherURL rebuilds the provider's canonical gift URL for a hash.
func CanonicalVoucherURL(voucherHash string) string {
	return fmt.Sprintf("https://gift.truemoney.com/campaign/?v=%s", voucherHash)
}

// ValidateAmount fails closed: zero, negative and over-limit amounts are all
// rejected even when the remote call itself reported success.
func ValidateAmount(amount, maxAmount float64) error {
	if amount <= 0 || amount > maxAmount {
		return NewInvalidAmountError(amount)
	}
	return nil
}
