package main

import (
	"github.com/YuminosukeSato/cancelprep/config"
	"github.com/YuminosukeSato/cancelprep/pkg/log"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
	input      string
	outDir     string
	seed       int64
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "cancelprep",
		Short: "Balance and encode the hotel booking dataset",
		Long: `cancelprep downsamples the majority class of the is_canceled label,
splits the balanced table into train and test partitions, and one-hot encodes
a fixed set of feature columns so both partitions share the same columns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "YAML configuration file")
	pf.StringVar(&flags.input, "input", "", "input CSV file (overrides input)")
	pf.Int64Var(&flags.seed, "seed", 0, "random seed (overrides seed)")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "", "json or console")

	root.AddCommand(newPrepareCmd(flags), newProfileCmd(flags))
	return root
}

// loadConfig merges the configuration layers with the flags the user set
// explicitly, then configures logging.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	overrides := map[string]interface{}{}
	set := func(name, key string, value interface{}) {
		if cmd.Flags().Changed(name) {
			overrides[key] = value
		}
	}
	set("input", "input", flags.input)
	set("out-dir", "output_dir", flags.outDir)
	set("seed", "seed", flags.seed)
	set("log-level", "log.level", flags.logLevel)
	set("log-format", "log.format", flags.logFormat)

	cfg, err := config.Load(flags.configFile, overrides)
	if err != nil {
		return nil, err
	}
	if err := log.SetupLogger(log.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}
