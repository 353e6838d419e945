package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"synergy_valuation/pkg/core/assumption"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the effective model parameters as YAML",
		Long: `Prints the heuristic constants after config.yaml, SYNERGY_* variables and
an optional scenario file have been applied. The output can be pasted into
config.yaml under "params:".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := resolveInputs(cmd.Flags())
			if err != nil {
				return err
			}
			if err := in.Params.Validate(); err != nil {
				return eris.Wrap(err, "params")
			}
			out, err := yaml.Marshal(in.Params)
			if err != nil {
				return eris.Wrap(err, "params: encode yaml")
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().String("scenario", "", "scenario file whose params override config")
	return cmd
}

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the assumption fields and their flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := assumption.FromAssumptions("config", cfg.Assumptions)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FLAG\tLABEL\tUNIT\tCURRENT")
			for _, f := range assumption.Fields {
				v, _ := form.Display(f.ID)
				fmt.Fprintf(w, "--%s\t%s\t%s\t%g\n", flagName(f.ID), f.Label, f.Unit, v)
			}
			return w.Flush()
		},
	}
}
