// Package tui renders the tier upgrade payment dialog as a modal terminal form.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
	"github.com/CrimsonX77/Aurora/runtime/billing"
)

// Focusable elements in tab order.
const (
	focusMethod = iota
	focusCardNumber
	focusCardholderName
	focusExpiry
	focusCVV
	focusPay
	focusCancel
	focusCount
)

// Indexes into Model.inputs.
const (
	inputCardNumber = iota
	inputCardholderName
	inputExpiry
	inputCVV
	inputCount
)

const securityNotice = "🔒 This is a simulated payment. No real charges will be made."

var fieldFocus = map[string]int{
	billing.FieldCardNumber:     focusCardNumber,
	billing.FieldCardholderName: focusCardholderName,
	billing.FieldExpiry:         focusExpiry,
	billing.FieldCVV:            focusCVV,
}

type messageKind int

const (
	messageNone messageKind = iota
	messageWarning
	messageError
	messageSuccess
)

// Model is the bubbletea model of the payment form. It owns a billing.Dialog
// and feeds it the entered form on submit.
type Model struct {
	dialog  *billing.Dialog
	keys    KeyMap
	methods []string

	inputs    []textinput.Model
	methodIdx int
	focus     int

	message     string
	messageKind messageKind

	result *billing.Transaction
	done   bool
}

// NewModel creates the form for dialog with the card number field focused.
func NewModel(dialog *billing.Dialog) *Model {
	m := &Model{
		dialog:  dialog,
		keys:    DefaultKeyMap(),
		methods: billing.PaymentMethods(),
		inputs:  make([]textinput.Model, inputCount),
	}

	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.TextStyle = TextStyle
		ti.PlaceholderStyle = NoteStyle
		return ti
	}
	m.inputs[inputCardNumber] = newInput("4532-1111-2222-3333", billing.MaxCardNumberLen)
	m.inputs[inputCardholderName] = newInput("John Doe", 0)
	m.inputs[inputExpiry] = newInput("MM/YY", billing.MaxExpiryLen)
	m.inputs[inputCVV] = newInput("123", billing.MaxCVVLen)
	m.inputs[inputCVV].EchoMode = textinput.EchoPassword
	m.inputs[inputCVV].EchoCharacter = '•'

	m.setFocus(focusCardNumber)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Result returns the transaction of a successful payment, or nil.
func (m *Model) Result() *billing.Transaction {
	return m.result
}

// Done reports whether the dialog has closed.
func (m *Model) Done() bool {
	return m.done
}

// Form returns the data currently entered.
func (m *Model) Form() billing.Form {
	return billing.Form{
		PaymentMethod:  m.methods[m.methodIdx],
		CardNumber:     m.inputs[inputCardNumber].Value(),
		CardholderName: m.inputs[inputCardholderName].Value(),
		Expiry:         m.inputs[inputExpiry].Value(),
		CVV:            m.inputs[inputCVV].Value(),
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocusedInput(msg)
	}
	if m.done {
		return m, tea.Quit
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		return m, m.cancel()
	case key.Matches(keyMsg, m.keys.Submit):
		if m.focus == focusCancel {
			return m, m.cancel()
		}
		return m, m.submit()
	case key.Matches(keyMsg, m.keys.Next):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case key.Matches(keyMsg, m.keys.Prev):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case m.focus == focusMethod && key.Matches(keyMsg, m.keys.MethodNext):
		m.methodIdx = (m.methodIdx + 1) % len(m.methods)
		return m, nil
	case m.focus == focusMethod && key.Matches(keyMsg, m.keys.MethodPrev):
		m.methodIdx = (m.methodIdx + len(m.methods) - 1) % len(m.methods)
		return m, nil
	}

	return m, m.updateFocusedInput(msg)
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	idx, ok := inputIndex(m.focus)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return cmd
}

func (m *Model) cancel() tea.Cmd {
	if err := m.dialog.Cancel(); err != nil && !errors.Is(err, billing.ErrDialogClosed) {
		m.showMessage(messageError, err.Error())
		return nil
	}
	m.done = true
	return tea.Quit
}

func (m *Model) submit() tea.Cmd {
	tx, err := m.dialog.Submit(m.Form())
	if err == nil {
		m.result = tx
		m.done = true
		m.showMessage(messageSuccess, "✅ "+billing.SuccessMessage(tx))
		return tea.Quit
	}

	var ce *pkgerrors.ContextualError
	switch {
	case errors.Is(err, pkgerrors.ErrValidation) && errors.As(err, &ce):
		m.showMessage(messageWarning, "Validation Error: "+ce.Message)
		if field, ok := ce.Details["field"].(string); ok {
			if f, ok := fieldFocus[field]; ok {
				m.setFocus(f)
			}
		}
	case errors.Is(err, billing.ErrDialogClosed):
		m.done = true
		return tea.Quit
	default:
		m.showMessage(messageError, "❌ "+billing.FailureMessage(err))
	}
	return nil
}

func (m *Model) showMessage(kind messageKind, text string) {
	m.messageKind = kind
	m.message = text
}

func (m *Model) setFocus(f int) {
	m.focus = f
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if idx, ok := inputIndex(f); ok {
		m.inputs[idx].Focus()
	}
}

func inputIndex(focus int) (int, bool) {
	if focus >= focusCardNumber && focus <= focusCVV {
		return focus - focusCardNumber, true
	}
	return 0, false
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{m.renderHeader(), m.renderSummary()}
	if !m.done {
		sections = append(sections, m.renderForm(), m.renderButtons())
	}
	if msg := m.renderMessage(); msg != "" {
		sections = append(sections, msg)
	}
	if !m.done {
		sections = append(sections, m.renderHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) renderHeader() string {
	title := lipgloss.JoinVertical(lipgloss.Center,
		TitleStyle.Render("🏛️ Tier Upgrade Payment"),
		SubtitleStyle.Render("Simulated Payment Processing"),
	)
	return BoxStyle.Align(lipgloss.Center).Render(title)
}

func (m *Model) renderSummary() string {
	s := m.dialog.Summary()
	lines := s.Lines()
	rendered := []string{
		SectionStyle.Render("📋 Payment Summary"),
		TextStyle.Render(lines[0]),
		HighlightStyle.Render(lines[1]),
		TextStyle.Render(lines[2]),
		AmountStyle.Render(lines[3]),
		NoteStyle.Render(lines[4]),
	}
	return BoxStyle.Render(strings.Join(rendered, "\n"))
}

func (m *Model) renderForm() string {
	label := func(f int, text string) string {
		if m.focus == f {
			return focusedLabelStyle.Render(text)
		}
		return labelStyle.Render(text)
	}

	method := fmt.Sprintf("‹ %s ›", m.methods[m.methodIdx])
	if m.focus == focusMethod {
		method = HighlightStyle.Render(method)
	} else {
		method = TextStyle.Render(method)
	}

	rows := []string{
		label(focusMethod, "Payment Method:") + method,
		label(focusCardNumber, "Card Number:") + m.inputs[inputCardNumber].View(),
		label(focusCardholderName, "Cardholder Name:") + m.inputs[inputCardholderName].View(),
		label(focusExpiry, "Expiry Date:") + m.inputs[inputExpiry].View(),
		label(focusCVV, "CVV:") + m.inputs[inputCVV].View(),
		"",
		NoticeStyle.Render(securityNotice),
	}
	return BoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderButtons() string {
	button := func(f int, text string) string {
		if m.focus == f {
			return FocusedButtonStyle.Render(text)
		}
		return ButtonStyle.Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		button(focusCancel, "Cancel"),
		"  ",
		button(focusPay, "💳 "+m.dialog.PayLabel()),
	)
}

func (m *Model) renderMessage() string {
	switch m.messageKind {
	case messageWarning:
		return WarningStyle.Render(m.message)
	case messageError:
		return ErrorStyle.Render(m.message)
	case messageSuccess:
		return SuccessStyle.Render(m.message)
	default:
		return ""
	}
}

func (m *Model) renderHelp() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return NoteStyle.Render(strings.Join(parts, " • "))
}
