// cmd/init.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const sampleConfig = `# violationwatch configuration
property:
  block: "1234"
  lot: "56"

email:
  smtp_server: smtp.gmail.com
  smtp_port: 587
  from_email: alerts@example.com
  # Prefer VIOLATIONWATCH_SMTP_PASSWORD in the environment or a .env file.
  from_password: ""
  to_emails:
    - owner@example.com

nyc_data:
  base_url: https://data.cityofnewyork.us/resource
  # Optional Socrata app token for higher rate limits; also settable via
  # VIOLATIONWATCH_SOCRATA_TOKEN.
  app_token: ""
  record_limit: 1000
  request_timeout: 30s

database:
  driver: sqlite3
  path: violations.db

monitor:
  lookback_days: 1
  schedule_at: "09:00"
  # Set to e.g. ":9108" to expose /healthz, /api/status and /metrics while
  # the scheduler runs.
  listen_addr: ""
`

// NewInitCommand creates the init command: write a starter config file.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample config file",
		Long:  "Write a commented sample configuration to the given path (default config.yaml). Refuses to overwrite an existing file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, refusing to overwrite", path)
			}
			if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s - edit the property and email sections before running 'violationwatch check'.\n", path)
			return nil
		},
	}
}
