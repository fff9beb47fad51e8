package tui

import "github.com/charmbracelet/lipgloss"

// Archive Sanctum palette.
const (
	ColorBackground = "#0A0A0A"
	ColorCrimson    = "#DC2626"
	ColorRose       = "#FCA5A5"
	ColorMaroon     = "#7F1D1D"
	ColorRed        = "#EF4444"
	ColorAmber      = "#FBBF24"
	ColorEmerald    = "#10B981"
	ColorGray       = "#9CA3AF"
)

const (
	boxPaddingHorizontal = 2
	boxPaddingVertical   = 1
	dialogWidth          = 60
	labelWidth           = 18
)

var (
	// TitleStyle is used for the dialog title
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCrimson))
	// SubtitleStyle is used below the title
	SubtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(ColorAmber))
	// SectionStyle is used for section headings
	SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCrimson))
	// TextStyle is used for plain labels and values
	TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRose))
	// HighlightStyle is used for the tier change line
	HighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAmber))
	// AmountStyle is used for the amount due
	AmountStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorEmerald))
	// NoteStyle is used for small print
	NoteStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(ColorGray))
	// NoticeStyle is used for the simulated payment notice
	NoticeStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(ColorEmerald))
	// WarningStyle is used for validation warnings
	WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAmber))
	// ErrorStyle is used for processing failures
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed))
	// SuccessStyle is used for the success message
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorEmerald))

	// BoxStyle frames the header, summary and form sections
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorMaroon)).
			Padding(boxPaddingVertical, boxPaddingHorizontal).
			Width(dialogWidth)

	// ButtonStyle is an unfocused button
	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorRose)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorMaroon)).
			Padding(0, boxPaddingHorizontal)

	// FocusedButtonStyle is a focused button
	FocusedButtonStyle = ButtonStyle.
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color(ColorMaroon)).
				BorderForeground(lipgloss.Color(ColorRed))

	labelStyle        = TextStyle.Width(labelWidth)
	focusedLabelStyle = labelStyle.Bold(true).Foreground(lipgloss.Color(ColorCrimson))
)
