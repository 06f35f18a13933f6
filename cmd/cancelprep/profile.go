package main

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/cancelprep/metrics"
	"github.com/YuminosukeSato/cancelprep/pipeline"
	"github.com/spf13/cobra"
)

func newProfileCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the label distribution before and after downsampling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			prof, err := pipeline.New(cfg).Profile(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d rows, %d columns\n", cfg.Input, prof.Samples, prof.Features)
			printShares(out, "raw", prof.RawBalance)
			printShares(out, "balanced", prof.Balanced)
			return nil
		},
	}
}

func printShares(w io.Writer, title string, shares []metrics.ClassShare) {
	fmt.Fprintf(w, "%s (imbalance %.2f)\n", title, metrics.ImbalanceRatio(shares))
	for _, s := range shares {
		fmt.Fprintf(w, "  %s\n", s)
	}
}
