package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	httpadapter "github.com/PabloGalante/nuance-coach/internal/adapters/http"
	"github.com/PabloGalante/nuance-coach/internal/adapters/stub"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

const shutdownTimeout = 5 * time.Second

func StubCmd() *cobra.Command {
	var (
		addr  string
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve a canned analysis backend for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Stub.Addr = addr
			}
			if cmd.Flags().Changed("delay") {
				cfg.Stub.Delay = delay
			}

			observability.Init(os.Stdout, cfg.LogLevel)
			log := observability.WithFields("component", "stub")

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())

			handler := httpadapter.NewServer(stub.NewAnalyzer(cfg.Stub.Delay), httpadapter.Options{
				CORSOrigins: cfg.Stub.CORSOrigins,
				RateLimit:   cfg.Stub.RateLimit,
				RateBurst:   cfg.Stub.RateBurst,
				Registry:    reg,
			})

			srv := &http.Server{
				Addr:              cfg.Stub.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("stub backend listening", "addr", cfg.Stub.Addr, "delay", cfg.Stub.Delay.String())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serving stub backend: %w", err)
			case <-cmd.Context().Done():
			}

			log.Info("shutting down stub backend")
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutting down stub backend: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $NUANCE_STUB_ADDR or :8000)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "artificial latency per analysis request")
	return cmd
}
