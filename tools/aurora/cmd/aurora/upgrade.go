package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CrimsonX77/Aurora/runtime/billing"
	"github.com/CrimsonX77/Aurora/runtime/logger"
	metrics "github.com/CrimsonX77/Aurora/runtime/metrics/prometheus"
	"github.com/CrimsonX77/Aurora/runtime/structured"
	"github.com/CrimsonX77/Aurora/tools/aurora/tui"
)

// Demo member used when no member flags are given.
const (
	defaultMemberID   = "m_test123"
	defaultMemberName = "Test User"
)

type upgradeOptions struct {
	memberFile  string
	memberID    string
	name        string
	currentTier string
	targetTier  string
	record      bool
}

func newUpgradeCmd() *cobra.Command {
	var opts upgradeOptions

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Open the membership tier upgrade payment form",
		Long: `Opens the payment form for upgrading a member to --tier. The upgrade is
charged at the fixed monthly price of the target tier. No payment is sent
anywhere; a successful submission prints a synthetic transaction record.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, map[string]string{
				"metrics_file":     flagMetricsFile,
				"payment.log_file": "log-file",
			})
			if err != nil {
				return err
			}
			if err := configureLogging(cmd, s.Logging, s.Payment.LogFile); err != nil {
				return err
			}
			defer func() { _ = logger.Close() }()

			member, err := opts.member()
			if err != nil {
				return err
			}
			if !billing.IsKnownTier(opts.targetTier) {
				logger.Warn("Unknown target tier, charging the default price",
					"tier", opts.targetTier, "amount", billing.FormatAmount(billing.DefaultPrice),
					"known", strings.Join(billing.Tiers(), ", "))
			}

			tx := runUpgrade(cmd, member, opts.targetTier)

			if s.MetricsFile != "" {
				if err := metrics.NewExporter().WriteTextfile(s.MetricsFile); err != nil {
					logger.Warn("Failed to write metrics", "error", err)
				}
			}
			return printUpgradeResult(cmd.OutOrStdout(), tx, opts.record)
		},
	}

	addConfigFlag(cmd)
	cmd.Flags().StringVar(&opts.memberFile, "member-file", "", "JSON member record")
	cmd.Flags().StringVar(&opts.memberID, "member-id", defaultMemberID, "Member identifier")
	cmd.Flags().StringVar(&opts.name, "name", defaultMemberName, "Member display name")
	cmd.Flags().StringVar(&opts.currentTier, "current-tier", billing.TierStandard, "Member's current tier")
	cmd.Flags().StringVarP(&opts.targetTier, "tier", "t", billing.TierPremium, "Tier to upgrade to")
	cmd.Flags().BoolVar(&opts.record, "record", false, "Print the full transaction record as JSON")
	cmd.Flags().String("log-file", "", "Payment log file (default logs/payment_module.log)")
	cmd.Flags().String(flagMetricsFile, "", "Write Prometheus metrics to this file on exit")
	_ = cmd.RegisterFlagCompletionFunc("tier", completeTiers)
	_ = cmd.RegisterFlagCompletionFunc("current-tier", completeTiers)
	return cmd
}

func completeTiers(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, tier := range billing.Tiers() {
		if strings.HasPrefix(strings.ToLower(tier), strings.ToLower(toComplete)) {
			out = append(out, tier)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func (o *upgradeOptions) member() (billing.Member, error) {
	if o.memberFile != "" {
		return billing.LoadMember(o.memberFile)
	}
	return billing.NewMember(o.memberID, o.name, o.currentTier), nil
}

// runUpgrade shows the form on the command's streams. The terminal check
// only applies when the command reads the process stdin.
func runUpgrade(cmd *cobra.Command, member billing.Member, target string) *billing.Transaction {
	listener := metrics.NewPaymentListener()
	opts := []tui.Option{
		tui.WithContext(cmd.Context()),
		tui.WithDialogOptions(billing.WithTransitionFunc(listener.HandleTransition)),
		tui.OnCompleted(listener.HandleTransaction),
	}
	if in := cmd.InOrStdin(); in != os.Stdin {
		opts = append(opts, tui.WithInput(in), tui.WithOutput(cmd.OutOrStdout()))
	}
	return tui.ProcessTierUpgrade(member, target, opts...)
}

func printUpgradeResult(w io.Writer, tx *billing.Transaction, record bool) error {
	if tx == nil {
		_, err := fmt.Fprintln(w, "Payment cancelled")
		return err
	}
	if record {
		return structured.Render(w, structured.Normalize(tx), structured.FormatJSON)
	}
	_, err := fmt.Fprintf(w, "Payment successful!\nTransaction ID: %s\nAmount: %s\n",
		tx.TransactionID, billing.FormatAmount(tx.Amount))
	return err
}
