package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() Details {
	return Details{
		CardNumber: "4111 1111 1111 1111",
		CardHolder: "NGUYEN VAN A",
		Expiry:     "09/27",
		CVV:        "123",
	}
}

func TestCreditCardValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Details)
		wantErr bool
	}{
		{"valid card", func(d *Details) {}, false},
		{"spaces stripped from number", func(d *Details) { d.CardNumber = "4111111111111111" }, false},
		{"four digit cvv", func(d *Details) { d.CVV = "1234" }, false},
		{"short number", func(d *Details) { d.CardNumber = "4111 1111 1111" }, true},
		{"non-digit number", func(d *Details) { d.CardNumber = "4111 1111 1111 111X" }, true},
		{"missing holder", func(d *Details) { d.CardHolder = "  " }, true},
		{"month zero", func(d *Details) { d.Expiry = "00/27" }, true},
		{"month thirteen", func(d *Details) { d.Expiry = "13/27" }, true},
		{"bad expiry format", func(d *Details) { d.Expiry = "9/2027" }, true},
		{"cvv too short", func(d *Details) { d.CVV = "12" }, true},
		{"cvv too long", func(d *Details) { d.CVV = "12345" }, true},
		{"cvv non-digit", func(d *Details) { d.CVV = "12a" }, true},
	}

	card := creditCard{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validCard()
			tt.mutate(&details)

			err := card.ValidateDetails(details)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDetails)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMomoPhoneValidation(t *testing.T) {
	tests := []struct {
		phone   string
		wantErr bool
	}{
		{"0912345678", false},
		{"+84912345678", false},
		{"09123456789", false},
		{"12345678", true},
		{"+1 555 0100", true},
		{"", true},
		{"0912", true},
	}

	wallet := momo{}
	for _, tt := range tests {
		err := wallet.ValidateDetails(Details{Phone: tt.phone})
		if tt.wantErr {
			assert.Error(t, err, "phone %q should be rejected", tt.phone)
		} else {
			assert.NoError(t, err, "phone %q should be accepted", tt.phone)
		}
	}
}

func TestDispatchImmediateSettlement(t *testing.T) {
	d := NewDispatcher()

	result, err := d.Dispatch(context.Background(), "credit_card", validCard())
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, result.Status)
	assert.NotNil(t, result.PaidAt)
	assert.NotEmpty(t, result.TransactionRef)
}

func TestDispatchDeferredSettlement(t *testing.T) {
	d := NewDispatcher()

	result, err := d.Dispatch(context.Background(), "bank_transfer", Details{})
	require.NoError(t, err)

	assert.Equal(t, StatusUnpaid, result.Status)
	assert.Nil(t, result.PaidAt)
}

func TestDispatchUnknownMethod(t *testing.T) {
	d := NewDispatcher()

	_, err := d.Dispatch(context.Background(), "crypto", Details{})
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestDispatchInvalidDetailsBlocksSubmission(t *testing.T) {
	d := NewDispatcher()

	_, err := d.Dispatch(context.Background(), "momo", Details{Phone: "not-a-phone"})
	assert.ErrorIs(t, err, ErrInvalidDetails)
}

func TestMethodsOrderStable(t *testing.T) {
	d := NewDispatcher()

	var names []string
	for _, method := range d.Methods() {
		names = append(names, method.Name())
	}
	assert.Equal(t, []string{"credit_card", "bank_transfer", "e_wallet", "momo"}, names)
}
