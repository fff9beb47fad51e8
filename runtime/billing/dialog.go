package billing

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
	"github.com/CrimsonX77/Aurora/runtime/logger"
)

const component = "billing"

// State is a payment dialog state.
type State string

// Dialog states.
const (
	StateOpen       State = "open"
	StateValidating State = "validating"
	StateInvalid    State = "invalid"
	StateValid      State = "valid"
	StateProcessing State = "processing"
	StateSucceeded  State = "succeeded"
	StateCancelled  State = "cancelled"
)

// Terminal reports whether the dialog is closed in state s.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateCancelled
}

// ErrDialogClosed is returned by Submit and Cancel once the dialog has closed.
var ErrDialogClosed = errors.New("payment dialog is closed")

// TransitionFunc observes every state change of a dialog.
type TransitionFunc func(from, to State)

// Dialog drives one tier upgrade payment:
//
//	Open -> Validating -> Invalid -> Open
//	Open -> Validating -> Valid -> Processing -> Succeeded
//	Open -> Cancelled
//
// A processing failure returns the dialog to Open. Dialog is safe for
// concurrent use but is normally driven from a single UI goroutine.
type Dialog struct {
	mu sync.Mutex

	member     Member
	target     string
	state      State
	sessionID  string
	window     time.Duration
	now        func() time.Time
	ctx        context.Context
	transition TransitionFunc
}

// DialogOption configures a Dialog.
type DialogOption func(*Dialog)

// WithClock overrides the time source used for transaction timestamps.
func WithClock(now func() time.Time) DialogOption {
	return func(d *Dialog) {
		d.now = now
	}
}

// WithDowngradeWindow overrides DowngradeWindow.
func WithDowngradeWindow(window time.Duration) DialogOption {
	return func(d *Dialog) {
		d.window = window
	}
}

// WithContext sets the context whose logging fields are attached to dialog logs.
func WithContext(ctx context.Context) DialogOption {
	return func(d *Dialog) {
		d.ctx = ctx
	}
}

// WithTransitionFunc registers an observer for state changes. fn runs with
// the dialog locked and must not call back into it.
func WithTransitionFunc(fn TransitionFunc) DialogOption {
	return func(d *Dialog) {
		d.transition = fn
	}
}

// NewDialog opens a payment dialog upgrading member to target.
func NewDialog(member Member, target string, opts ...DialogOption) *Dialog {
	d := &Dialog{
		member:    member,
		target:    target,
		state:     StateOpen,
		sessionID: uuid.NewString(),
		window:    DowngradeWindow,
		now:       time.Now,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ctx = logger.WithSessionID(d.ctx, d.sessionID)
	if member.MemberID != "" {
		d.ctx = logger.WithMemberID(d.ctx, member.MemberID)
	}

	logger.InfoContext(d.ctx, fmt.Sprintf("Payment dialog opened: %s -> %s", d.CurrentTier(), target))
	return d
}

// Member returns the member being upgraded.
func (d *Dialog) Member() Member {
	return d.member
}

// CurrentTier returns the member's tier before the upgrade.
func (d *Dialog) CurrentTier() string {
	return d.member.Tier()
}

// TargetTier returns the requested tier.
func (d *Dialog) TargetTier() string {
	return d.target
}

// SessionID identifies this dialog in logs.
func (d *Dialog) SessionID() string {
	return d.sessionID
}

// Amount is the amount due today: the monthly price of the target tier.
func (d *Dialog) Amount() float64 {
	return PriceFor(d.target)
}

// PayLabel is the caption of the pay button.
func (d *Dialog) PayLabel() string {
	return "Process Payment - " + FormatAmount(d.Amount())
}

// State returns the current state.
func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Summary describes the pending payment.
func (d *Dialog) Summary() Summary {
	return Summary{
		MemberName:   d.member.Name(),
		CurrentTier:  d.CurrentTier(),
		TargetTier:   d.target,
		MonthlyPrice: PriceFor(d.target),
		AmountDue:    d.Amount(),
	}
}

// Cancel closes the dialog without producing a transaction.
func (d *Dialog) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Terminal() {
		return ErrDialogClosed
	}
	d.setState(StateCancelled)
	logger.InfoContext(d.ctx, "Payment dialog cancelled")
	return nil
}

// Submit validates form and, when every field is present, produces the
// transaction and closes the dialog. A validation error leaves the dialog
// open with no side effects. Any failure while building the transaction is
// logged with its stack trace, returned as a processing error, and also
// leaves the dialog open.
func (d *Dialog) Submit(form Form) (*Transaction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state.Terminal() {
		return nil, ErrDialogClosed
	}

	d.setState(StateValidating)
	if err := form.Validate(); err != nil {
		d.setState(StateInvalid)
		logger.WarnContext(d.ctx, "Validation Error", "error", err)
		d.setState(StateOpen)
		return nil, err
	}
	d.setState(StateValid)

	d.setState(StateProcessing)
	tx, err := d.process(form)
	if err != nil {
		d.setState(StateOpen)
		return nil, err
	}

	logger.InfoContext(d.ctx, "Payment processed: "+tx.TransactionID)
	d.setState(StateSucceeded)
	return tx, nil
}

// process builds the transaction, converting panics into processing errors.
func (d *Dialog) process(form Form) (tx *Transaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = d.processingError(fmt.Errorf("panic: %v", r), debug.Stack())
			tx = nil
		}
	}()

	tx, err = d.buildTransaction(form)
	if err != nil {
		return nil, d.processingError(err, debug.Stack())
	}
	return tx, nil
}

func (d *Dialog) processingError(cause error, stack []byte) error {
	logger.ErrorContext(d.ctx, fmt.Sprintf("Payment processing error: %v", cause),
		"stack", strings.TrimSpace(string(stack)))
	return pkgerrors.Processing(component, "Submit", cause)
}

func (d *Dialog) buildTransaction(form Form) (*Transaction, error) {
	if d.now == nil {
		return nil, errors.New("no clock configured")
	}
	now := d.now()
	return &Transaction{
		Success:       true,
		TransactionID: TransactionID(now),
		Amount:        d.Amount(),
		PaymentType:   form.Method(),
		CardLastFour:  LastFour(form.CardNumber),
		Timestamp:     now,
		MemberID:      d.member.MemberID,
		TierChange:    TierChange(d.CurrentTier(), d.target),
		DowngradeDate: now.Add(d.window),
		NewTier:       d.target,
	}, nil
}

// setState must be called with mu held.
func (d *Dialog) setState(to State) {
	from := d.state
	d.state = to
	logger.DebugContext(d.ctx, "payment dialog state", "from", from, "to", to)
	if d.transition != nil {
		d.transition(from, to)
	}
}
