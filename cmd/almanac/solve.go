package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liznear/rangemap/pipeline"
)

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <file|->",
		Short: "Print the lowest value for discrete seeds and for seed ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			a, err := loadAlmanac(args[0], cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			runner := pipeline.NewRunner(a.Pipeline,
				pipeline.WithWorkers(cfg.Workers),
				pipeline.WithDebug(cfg.Debug),
				pipeline.WithLogger(logger))
			sol, err := runner.Solve(cmd.Context(), a.Seeds)
			if err != nil {
				return err
			}
			logger.Debug("Finished", zap.Duration("elapsed", time.Since(start)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "First Solution: %d\n", sol.Discrete)
			fmt.Fprintf(out, "Second Solution: %d\n", sol.Ranged)
			return nil
		},
	}
}
