// cmd/root.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/propwatch/violationwatch/config"
	"github.com/propwatch/violationwatch/database"
	"github.com/propwatch/violationwatch/fetcher"
	"github.com/propwatch/violationwatch/notifier"
	"github.com/propwatch/violationwatch/services"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the violationwatch root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "violationwatch",
		Short: "Monitor NYC Open Data for new violations at a property",
		Long: `violationwatch polls four NYC Open Data feeds (311 complaints, HPD,
OATH and DOB violations) for records concerning a single property, keeps a
durable ledger of everything already reported, and emails a report of the
newly observed records.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "config.yaml", "path to the YAML config file")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewScheduleCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewInitCommand())

	return cmd
}

// buildMonitor wires the store, source adapters, tracker and notifier for one
// process. The caller owns the returned store and must Close it.
func buildMonitor(cfg *config.Config, suppressDelivery bool) (*services.Monitor, *database.ViolationStore, error) {
	store, err := database.OpenStore(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	var n services.Notifier
	if suppressDelivery {
		n = notifier.NoopNotifier{}
	} else {
		n = notifier.NewEmailNotifier(cfg.Email)
	}

	monitor := services.NewMonitor(cfg, fetcher.New(cfg.NYCData), services.NewTracker(store), n)
	return monitor, store, nil
}
