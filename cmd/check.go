// cmd/check.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propwatch/violationwatch/config"
	"github.com/propwatch/violationwatch/models"
	"github.com/propwatch/violationwatch/utils"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Block   string
	Lot     string
	Since   string
	NoEmail bool
}

// NewCheckCommand creates the check command: one monitoring cycle, now.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one violation check cycle",
		Long: `Fetch all four sources once, report the records never seen before, and
mark them as seen. Use --no-email to inspect results without notifying.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Block, "block", "", "override property block from config")
	cmd.Flags().StringVar(&opts.Lot, "lot", "", "override property lot from config")
	cmd.Flags().StringVar(&opts.Since, "since", "", "override cutoff date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.NoEmail, "no-email", false, "skip sending the email notification")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Block != "" {
		cfg.Property.Block = opts.Block
	}
	if opts.Lot != "" {
		cfg.Property.Lot = opts.Lot
	}
	if opts.Since != "" && !utils.IsValidDate(opts.Since) {
		return fmt.Errorf("invalid --since date %q, expected YYYY-MM-DD", opts.Since)
	}

	monitor, store, err := buildMonitor(cfg, opts.NoEmail)
	if err != nil {
		return err
	}
	defer store.Close()

	var report *models.Report
	if opts.Since != "" {
		report, err = monitor.RunCheckSince(cmd.Context(), opts.Since)
	} else {
		report, err = monitor.RunCheck(cmd.Context())
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Block %s, Lot %s: %d new violations\n",
		report.Subject.Block, report.Subject.Lot, report.TotalNew())
	for _, spec := range models.AllSourceSpecs() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %d\n", spec.Label+":", len(report.Sections[spec.Source]))
	}
	return nil
}
