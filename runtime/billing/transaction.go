package billing

import (
	"encoding/json"
	"fmt"
	"time"
)

// DowngradeWindow is how long after payment the automatic downgrade takes effect.
const DowngradeWindow = 30 * 24 * time.Hour

const transactionIDLayout = "20060102150405"

// Transaction is the synthetic record of a successful payment.
type Transaction struct {
	Success       bool      `json:"success" yaml:"success"`
	TransactionID string    `json:"transaction_id" yaml:"transaction_id"`
	Amount        float64   `json:"amount" yaml:"amount"`
	PaymentType   string    `json:"payment_type" yaml:"payment_type"`
	CardLastFour  string    `json:"card_last_four" yaml:"card_last_four"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
	MemberID      string    `json:"member_id" yaml:"member_id"`
	TierChange    string    `json:"tier_change" yaml:"tier_change"`
	DowngradeDate time.Time `json:"downgrade_date" yaml:"downgrade_date"`
	NewTier       string    `json:"new_tier" yaml:"new_tier"`
}

// ToMap returns the transaction keyed by its JSON field names.
func (t *Transaction) ToMap() (map[string]any, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// TransactionID derives the identifier of a transaction made at t.
func TransactionID(t time.Time) string {
	return "TXN_" + t.Format(transactionIDLayout)
}

// TierChange describes a move between tiers as "Standard -> Premium".
func TierChange(from, to string) string {
	return from + " -> " + to
}

// SuccessMessage is shown to the member after a successful payment.
func SuccessMessage(tx *Transaction) string {
	return fmt.Sprintf("Payment of %s processed successfully!\n\n"+
		"Transaction ID: %s\nNew Tier: %s\n\nYour account has been upgraded.",
		FormatAmount(tx.Amount), tx.TransactionID, tx.NewTier)
}

// FailureMessage is shown to the member when processing fails.
func FailureMessage(err error) string {
	return fmt.Sprintf("Payment processing failed:\n%v\n\nPlease try again.", err)
}
