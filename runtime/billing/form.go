package billing

import (
	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
)

// Payment methods offered by the form.
const (
	PaymentCreditCard   = "Credit Card"
	PaymentDebitCard    = "Debit Card"
	PaymentBankTransfer = "Bank Transfer"

	DefaultPaymentMethod = PaymentCreditCard
)

// Input length limits of the form fields.
const (
	MaxCardNumberLen = 19
	MaxExpiryLen     = 5
	MaxCVVLen        = 4
)

// Form field names, used in validation error details.
const (
	FieldCardNumber     = "card_number"
	FieldCardholderName = "cardholder_name"
	FieldExpiry         = "expiry"
	FieldCVV            = "cvv"
)

// PaymentMethods lists the selectable payment methods, default first.
func PaymentMethods() []string {
	return []string{PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer}
}

// Form is the data entered in the payment dialog.
type Form struct {
	PaymentMethod  string
	CardNumber     string
	CardholderName string
	Expiry         string
	CVV            string
}

// Method returns the selected payment method, or DefaultPaymentMethod.
func (f Form) Method() string {
	if f.PaymentMethod == "" {
		return DefaultPaymentMethod
	}
	return f.PaymentMethod
}

// Validate checks that the card fields are non-empty, in form order, and
// returns a validation error for the first empty one. Content is not checked.
func (f Form) Validate() error {
	checks := []struct {
		field, value, message string
	}{
		{FieldCardNumber, f.CardNumber, "Please enter card number"},
		{FieldCardholderName, f.CardholderName, "Please enter cardholder name"},
		{FieldExpiry, f.Expiry, "Please enter expiry date"},
		{FieldCVV, f.CVV, "Please enter CVV"},
	}
	for _, c := range checks {
		if c.value == "" {
			return pkgerrors.Validation(component, c.field, c.message)
		}
	}
	return nil
}

// LastFour returns the last four characters of card, or "****" when it is
// shorter than four.
func LastFour(card string) string {
	r := []rune(card)
	if len(r) < 4 {
		return "****"
	}
	return string(r[len(r)-4:])
}
