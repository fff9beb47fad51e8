package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the payment form key bindings.
type KeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	MethodNext key.Binding
	MethodPrev key.Binding
	Submit     key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:       key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next field")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "previous field")),
		MethodNext: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next method")),
		MethodPrev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous method")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pay")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.MethodNext, k.Submit, k.Cancel}
}
