package payments

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SettlementMode describes when a payment method settles. Immediate methods
// mark the booking paid as part of creation; deferred methods leave it
// unpaid until an external confirmation arrives.
type SettlementMode string

const (
	SettlementImmediate SettlementMode = "immediate"
	SettlementDeferred  SettlementMode = "deferred"
)

// Details carries the method-specific fields a client submits. Only the
// fields a given method validates are required for that method.
type Details struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	Expiry     string `json:"expiry"` // MM/YY
	CVV        string `json:"cvv"`

	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`

	WalletProvider string `json:"wallet_provider"`
	Phone          string `json:"phone"`
}

// Method is one way to pay. Each method owns its own detail validation;
// the shared submission path runs only after validation passes.
type Method interface {
	Name() string
	DisplayName() string
	Settlement() SettlementMode
	ValidateDetails(details Details) error
}

var vnPhonePattern = regexp.MustCompile(`^(0|\+84)\d{9,10}$`)

// creditCard settles immediately after local card validation
type creditCard struct{}

func (creditCard) Name() string               { return "credit_card" }
func (creditCard) DisplayName() string        { return "Thẻ tín dụng" }
func (creditCard) Settlement() SettlementMode { return SettlementImmediate }

func (creditCard) ValidateDetails(details Details) error {
	number := strings.ReplaceAll(details.CardNumber, " ", "")
	if len(number) != 16 {
		return fmt.Errorf("%w: card number must be 16 digits", ErrInvalidDetails)
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: card number must contain only digits", ErrInvalidDetails)
		}
	}

	if strings.TrimSpace(details.CardHolder) == "" {
		return fmt.Errorf("%w: card holder name is required", ErrInvalidDetails)
	}

	if err := validateExpiry(details.Expiry); err != nil {
		return err
	}

	cvv := strings.TrimSpace(details.CVV)
	if len(cvv) < 3 || len(cvv) > 4 {
		return fmt.Errorf("%w: CVV must be 3 or 4 digits", ErrInvalidDetails)
	}
	if _, err := strconv.Atoi(cvv); err != nil {
		return fmt.Errorf("%w: CVV must contain only digits", ErrInvalidDetails)
	}

	return nil
}

func validateExpiry(expiry string) error {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return fmt.Errorf("%w: expiry must be in MM/YY format", ErrInvalidDetails)
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("%w: expiry month must be between 01 and 12", ErrInvalidDetails)
	}

	if _, err := strconv.Atoi(parts[1]); err != nil {
		return fmt.Errorf("%w: expiry year must be numeric", ErrInvalidDetails)
	}

	return nil
}

// bankTransfer defers settlement until the transfer is confirmed externally
type bankTransfer struct{}

func (bankTransfer) Name() string               { return "bank_transfer" }
func (bankTransfer) DisplayName() string        { return "Chuyển khoản ngân hàng" }
func (bankTransfer) Settlement() SettlementMode { return SettlementDeferred }

func (bankTransfer) ValidateDetails(details Details) error {
	// The transfer happens outside the system; nothing to validate up front
	return nil
}

// eWallet settles immediately through the wallet provider
type eWallet struct{}

func (eWallet) Name() string               { return "e_wallet" }
func (eWallet) DisplayName() string        { return "Ví điện tử" }
func (eWallet) Settlement() SettlementMode { return SettlementImmediate }

func (eWallet) ValidateDetails(details Details) error {
	if strings.TrimSpace(details.WalletProvider) == "" {
		return fmt.Errorf("%w: wallet provider is required", ErrInvalidDetails)
	}
	return nil
}

// momo settles immediately against a Vietnamese phone number
type momo struct{}

func (momo) Name() string               { return "momo" }
func (momo) DisplayName() string        { return "Ví MoMo" }
func (momo) Settlement() SettlementMode { return SettlementImmediate }

func (momo) ValidateDetails(details Details) error {
	phone := strings.TrimSpace(details.Phone)
	if !vnPhonePattern.MatchString(phone) {
		return fmt.Errorf("%w: invalid Vietnamese phone number", ErrInvalidDetails)
	}
	return nil
}
