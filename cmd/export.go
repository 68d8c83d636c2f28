// cmd/export.go
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/propwatch/violationwatch/config"
	"github.com/propwatch/violationwatch/database"
	"github.com/propwatch/violationwatch/services"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command: dump the tracked ledger as CSV.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the tracked violation ledger as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "output file ('-' for stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	store, err := database.OpenStore(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	var w io.Writer = cmd.OutOrStdout()
	if opts.Output != "-" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", opts.Output, err)
		}
		defer f.Close()
		w = f
	}

	return services.ExportTrackedCSV(store, w)
}
