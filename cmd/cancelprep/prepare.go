package main

import (
	"fmt"

	"github.com/YuminosukeSato/cancelprep/pipeline"
	"github.com/spf13/cobra"
)

func newPrepareCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Run the full preparation and write the encoded partitions",
		Long: `prepare loads the input CSV, balances the label column, splits the
result into train and test, encodes the configured feature columns and writes
train_features.csv, test_features.csv, train_labels.csv, test_labels.csv and
encoding.json into the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			res, paths, err := pipeline.New(cfg).Run(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "train: %d rows, test: %d rows, %d features\n",
				res.Train.Len(), res.Test.Len(), len(res.Encoding.FeatureNames()))
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "output directory (overrides output_dir)")
	return cmd
}
