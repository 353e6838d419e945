package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"synergy_valuation/pkg/core/config"
)

var cfg *config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "valuation",
		Short: "Merger valuation with and without synergies",
		Long: `Values an acquisition target with a traditional DCF and with a naive
synergy-adjusted DCF, explains why the two diverge, and recommends a
corrected maximum price.

Configuration is read from ./config.yaml, ./.env and SYNERGY_* environment
variables (e.g. SYNERGY_PARAMS_RAMP_FACTOR=0.6).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return eris.Wrap(err, "load config")
			}
			cfg = c

			if err := config.InitLogger(cfg.Log); err != nil {
				return eris.Wrap(err, "init logger")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	root.AddCommand(
		newCompareCmd(),
		newSensitivityCmd(),
		newParamsCmd(),
		newFieldsCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
