package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidLinkFormat  = "INVALID_LINK_FORMAT"
	ErrCodeAccountNotFound    = "ACCOUNT_NOT_FOUND"
	ErrCodeVoucherAlreadyUsed = "VOUCHER_ALREADY_USED"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeCreditFailed       = "CREDIT_FAILED"
)

func NewInvalidLinkFormatError() *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidLinkFormat,
		Message: "voucher link does not match any known format",
	}
}

func NewAccountNotFoundError(steamID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAccountNotFound,
		Message: fmt.Sprintf("account with steam ID %s not found", steamID),
	}
}

func NewVoucherAlreadyUsedError(voucherHash string) *DomainError {
	return &DomainError{
		Code:    ErrCodeVoucherAlreadyUsed,
		Message: fmt.Sprintf("voucher %s has already been redeemed", voucherHash),
	}
}

func NewInvalidAmountError(amount float64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid voucher amount %v", amount),
	}
}

func NewCreditFailedError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeCreditFailed,
		Message: "could not commit balance credit",
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
