package prometheus

import (
	"github.com/CrimsonX77/Aurora/runtime/billing"
)

// PaymentListener records payment dialog transitions as metrics. Its
// HandleTransition method matches billing.TransitionFunc.
type PaymentListener struct{}

// NewPaymentListener creates a new PaymentListener.
func NewPaymentListener() *PaymentListener {
	return &PaymentListener{}
}

// HandleTransition maps a dialog state change to an outcome counter.
func (l *PaymentListener) HandleTransition(from, to billing.State) {
	//exhaustive:ignore
	switch to {
	case billing.StateInvalid:
		RecordPaymentOutcome(OutcomeInvalid)
	case billing.StateSucceeded:
		RecordPaymentOutcome(OutcomeSucceeded)
	case billing.StateCancelled:
		RecordPaymentOutcome(OutcomeCancelled)
	case billing.StateOpen:
		if from == billing.StateProcessing {
			RecordPaymentOutcome(OutcomeFailed)
		}
	}
}

// HandleTransaction records the amount of a successful payment.
func (l *PaymentListener) HandleTransaction(tx *billing.Transaction) {
	if tx == nil {
		return
	}
	RecordPaymentAmount(tx.NewTier, tx.Amount)
}
