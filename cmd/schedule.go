// cmd/schedule.go
package cmd

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/propwatch/violationwatch/config"
	"github.com/propwatch/violationwatch/handlers"
	"github.com/propwatch/violationwatch/metrics"
)

// ScheduleOptions holds flags for the schedule command.
type ScheduleOptions struct {
	*RootOptions
	At string
}

// NewScheduleCommand creates the schedule command: run the check once per day
// at a fixed local time until interrupted.
func NewScheduleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScheduleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the violation check daily at a fixed time",
		Long: `Run as a long-lived process, executing one check cycle per day at the
configured time (monitor.schedule_at, default 09:00). With
monitor.listen_addr set, also serves /healthz, /api/status and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(opts)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "override daily run time (HH:MM)")

	return cmd
}

func runSchedule(opts *ScheduleOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.At != "" {
		cfg.Monitor.ScheduleAt = opts.At
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	monitor, store, err := buildMonitor(cfg, false)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Monitor.ListenAddr != "" {
		h := &handlers.Handlers{Store: store, Monitor: monitor}
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", h.HealthHandler)
		mux.HandleFunc("/api/status", h.StatusHandler)
		mux.Handle("/metrics", metrics.Handler())

		server := &http.Server{Addr: cfg.Monitor.ListenAddr, Handler: mux}
		go func() {
			log.Printf("Scheduler: status listener on %s\n", cfg.Monitor.ListenAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("ERROR Scheduler: status listener: %v\n", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	log.Printf("Scheduler: started, will run daily at %s\n", cfg.Monitor.ScheduleAt)

	for {
		wait := untilNext(time.Now(), cfg.Monitor.ScheduleAt)
		log.Printf("Scheduler: next check in %s\n", wait.Round(time.Second))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("Scheduler: shutting down")
			return nil
		case <-timer.C:
		}

		// A failed cycle (storage error) ends this run only; the scheduler
		// stays up and tries again tomorrow.
		if _, err := monitor.RunCheck(ctx); err != nil {
			log.Printf("ERROR Scheduler: check cycle failed: %v\n", err)
		}
	}
}

// untilNext returns the duration from now until the next occurrence of the
// daily HH:MM run time.
func untilNext(now time.Time, at string) time.Duration {
	t, err := time.Parse("15:04", at)
	if err != nil {
		// Config validation already rejected malformed times; fall back to
		// a day just in case.
		return 24 * time.Hour
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
