// Command almanac evaluates an almanac file: it maps the declared seeds through every
// section and prints the lowest resulting value, once treating the seeds as discrete
// values and once treating them as (start, length) ranges.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/liznear/rangemap/config"
	"github.com/liznear/rangemap/parse"
)

var (
	configPath string
	workers    int
	debug      bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "almanac",
		Short:        "Map seeds through a chain of range translation tables",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().IntVar(&workers, "workers", 0, "number of seed ranges evaluated concurrently (overrides config)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log every stage of every query")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newTraceCmd())
	return root
}

// loadConfig resolves the config file, the environment and the flags of cmd.
func loadConfig(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, fmt.Errorf("config: invalid: %w", err)
	}
	logger, err := cfg.Logger()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

// loadAlmanac parses the file at path. "-" reads stdin.
func loadAlmanac(path string, cfg config.Config) (a *parse.Almanac, err error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("almanac: fail to open input: %w", openErr)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		r = f
	}
	return parse.Parse(r, parse.WithStrictChain(cfg.StrictChain))
}
