// Package cli wires configuration, adapters and flows into the nuance command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/nuance-coach/internal/adapters/backend"
	"github.com/PabloGalante/nuance-coach/internal/adapters/clipboard"
	"github.com/PabloGalante/nuance-coach/internal/adapters/tui"
	"github.com/PabloGalante/nuance-coach/internal/app/navigation"
	"github.com/PabloGalante/nuance-coach/internal/config"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

// Execute runs the root command with a context that is cancelled on SIGINT or
// SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRoot().ExecuteContext(ctx)
}

// runTUI is swapped out in tests.
var runTUI = tui.Run

func NewRoot() *cobra.Command {
	var (
		route   string
		logFile string
	)

	root := &cobra.Command{
		Use:          "nuance",
		Short:        "Understand dating messages and draft replies",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}

			start, err := navigation.Parse(route)
			if err != nil {
				return err
			}

			closeLog, err := initTUILogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			observability.Logger().Info("starting tui", "backend", cfg.BackendURL, "route", start.String())

			deps := tui.Deps{
				Analyzer:  backend.NewClient(cfg.BackendURL),
				Clipboard: clipboard.New(),
			}
			return runTUI(cmd.Context(), deps, start)
		},
	}

	root.PersistentFlags().String("backend", "", "backend base URL (default $NUANCE_BACKEND_URL or "+config.DefaultBackendURL+")")
	root.Flags().StringVar(&route, "route", "/", "page to open, e.g. \"/reply?text=Hoi&goal=Afspraak+maken\"")
	root.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (default $NUANCE_LOG_FILE, otherwise discarded)")

	root.AddCommand(
		StubCmd(),
		SmokeCmd(),
	)
	return root
}

// loadConfig reads the config and applies the --backend override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if f := cmd.Flags().Lookup("backend"); f != nil && f.Changed {
		cfg.BackendURL = f.Value.String()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// initTUILogging keeps logs off the terminal the UI draws on.
func initTUILogging(cfg *config.Config) (func(), error) {
	if cfg.LogFile == "" {
		observability.Init(io.Discard, cfg.LogLevel)
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	observability.Init(f, cfg.LogLevel)
	return func() { _ = f.Close() }, nil
}
