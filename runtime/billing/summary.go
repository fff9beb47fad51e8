package billing

import (
	"fmt"
	"strings"
)

// SummaryNote explains when tier changes take effect.
const SummaryNote = "Note: Upgrade takes effect immediately. Downgrade after 1 month."

// Summary is the payment overview shown above the form.
type Summary struct {
	MemberName   string
	CurrentTier  string
	TargetTier   string
	MonthlyPrice float64
	AmountDue    float64
}

// Lines returns the summary as display lines.
func (s Summary) Lines() []string {
	return []string{
		"Member: " + s.MemberName,
		fmt.Sprintf("Upgrade: %s → %s", s.CurrentTier, s.TargetTier),
		"Monthly Price: " + FormatAmount(s.MonthlyPrice),
		"Amount Due Today: " + FormatAmount(s.AmountDue),
		SummaryNote,
	}
}

// String joins Lines with newlines.
func (s Summary) String() string {
	return strings.Join(s.Lines(), "\n")
}
