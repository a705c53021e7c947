package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTraceCmd() *cobra.Command {
	var value uint64
	cmd := &cobra.Command{
		Use:   "trace <file|->",
		Short: "Print the value of a single seed after every section",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "seed: %d\n", value)
			for i, v := range a.Pipeline.Trace(value) {
				name := a.Pipeline.Stage(i).Name()
				if name == "" {
					name = fmt.Sprintf("stage %d", i)
				}
				fmt.Fprintf(out, "%s: %d\n", name, v)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&value, "value", 0, "seed value to trace")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
