package tui

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/CrimsonX77/Aurora/runtime/billing"
	"github.com/CrimsonX77/Aurora/runtime/logger"
)

type runOptions struct {
	ctx         context.Context
	input       io.Reader
	output      io.Writer
	dialogOpts  []billing.DialogOption
	onCompleted func(*billing.Transaction)
}

// Option configures ProcessTierUpgrade.
type Option func(*runOptions)

// WithContext ends the form, as if cancelled, when ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *runOptions) {
		o.ctx = ctx
	}
}

// WithInput reads keystrokes from r instead of the terminal. The terminal
// check is skipped.
func WithInput(r io.Reader) Option {
	return func(o *runOptions) {
		o.input = r
	}
}

// WithOutput renders the form to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *runOptions) {
		o.output = w
	}
}

// WithDialogOptions passes options to the underlying billing.Dialog.
func WithDialogOptions(opts ...billing.DialogOption) Option {
	return func(o *runOptions) {
		o.dialogOpts = append(o.dialogOpts, opts...)
	}
}

// OnCompleted registers a function called with the transaction of a
// successful payment before ProcessTierUpgrade returns.
func OnCompleted(fn func(*billing.Transaction)) Option {
	return func(o *runOptions) {
		o.onCompleted = fn
	}
}

// ProcessTierUpgrade shows the payment form for upgrading member to target
// and blocks until it closes. It returns the transaction on success and nil
// when the member cancels or the form cannot be shown. Failures are logged,
// never returned.
func ProcessTierUpgrade(member billing.Member, target string, opts ...Option) *billing.Transaction {
	o := runOptions{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.input == nil {
		if ok, reason := CheckTerminal(); !ok {
			logger.Error("Payment form unavailable", "reason", reason)
			return nil
		}
	}

	dialogOpts := append([]billing.DialogOption{billing.WithContext(o.ctx)}, o.dialogOpts...)
	model := NewModel(billing.NewDialog(member, target, dialogOpts...))

	programOpts := []tea.ProgramOption{tea.WithContext(o.ctx)}
	if o.input != nil {
		programOpts = append(programOpts, tea.WithInput(o.input))
	}
	if o.output != nil {
		programOpts = append(programOpts, tea.WithOutput(o.output))
	}

	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		_ = model.dialog.Cancel()
		if errors.Is(err, tea.ErrProgramKilled) {
			logger.Info("Payment form closed", "reason", err)
		} else {
			logger.Error("Payment form failed", "error", err)
		}
		return nil
	}

	fm, ok := final.(*Model)
	if !ok {
		fm = model
	}
	tx := finish(fm)
	if tx != nil && o.onCompleted != nil {
		o.onCompleted(tx)
	}
	return tx
}

// finish returns the transaction of a closed form. A form whose program ended
// before the dialog closed is cancelled so the dialog ends in a terminal state.
func finish(m *Model) *billing.Transaction {
	if !m.Done() {
		if err := m.dialog.Cancel(); err == nil {
			logger.Info("Payment form closed before the dialog finished")
		}
		return nil
	}
	return m.Result()
}

// CheckTerminal reports whether stdin and stdout are terminals.
func CheckTerminal() (ok bool, reason string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, "stdin is not a terminal"
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false, "stdout is not a terminal"
	}
	return true, ""
}
