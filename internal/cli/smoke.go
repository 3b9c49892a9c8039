package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/nuance-coach/internal/adapters/backend"
	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

type smokeCheck struct {
	name string
	run  func(ctx context.Context, a domain.Analyzer) (string, error)
}

var smokeChecks = []smokeCheck{
	{
		name: "interpret",
		run: func(ctx context.Context, a domain.Analyzer) (string, error) {
			res, err := a.Interpret(ctx, domain.Examples[0])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d betekenissen", len(res.PossibleMeanings)), nil
		},
	},
	{
		name: "replies",
		run: func(ctx context.Context, a domain.Analyzer) (string, error) {
			res, err := a.Replies(ctx, domain.Examples[0], domain.DefaultGoal)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d antwoorden", len(res.Options)), nil
		},
	},
	{
		name: "style",
		run: func(ctx context.Context, a domain.Analyzer) (string, error) {
			res, err := a.Style(ctx, domain.Preferences[:2])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d varianten", len(res.Variants)), nil
		},
	},
}

func SmokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Call every backend endpoint once and report the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			observability.Init(io.Discard, cfg.LogLevel)

			client := backend.NewClient(cfg.BackendURL)
			return runSmoke(cmd.Context(), cmd.OutOrStdout(), client)
		},
	}
}

// runSmoke prints one line per check and fails when any check failed.
func runSmoke(ctx context.Context, out io.Writer, a domain.Analyzer) error {
	failed := 0
	for _, c := range smokeChecks {
		summary, err := c.run(ctx, a)
		if err != nil {
			failed++
			fmt.Fprintf(out, "✗ %s: %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(out, "✓ %s: %s\n", c.name, summary)
	}
	if failed > 0 {
		return fmt.Errorf("smoke test failed: %d of %d checks failed", failed, len(smokeChecks))
	}
	return nil
}
