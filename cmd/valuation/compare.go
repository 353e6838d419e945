package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"synergy_valuation/pkg/core/report"
	"synergy_valuation/pkg/core/valuation"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the traditional DCF with the synergy-adjusted model",
		Long: `Runs the baseline DCF, the naive synergy-adjusted DCF, the diagnostics,
the corrected ceiling and the scenario-weighted corrected model, then prints
an explanatory report.

Currency inputs marked ($M) are entered in millions, as in the form.

Examples:
  # Reference deal
  valuation compare

  # A scenario file with a higher WACC, as Markdown
  valuation compare --scenario deals/acme.hcl --wacc 12 --format markdown

  # Save an HTML report
  valuation compare --format html --out report.html`,
		Args: cobra.NoArgs,
		RunE: runCompare,
	}

	f := cmd.Flags()
	addInputFlags(f)
	f.String("format", "", "output format: text, markdown, html or json (default from config)")
	f.String("out", "", "output file path (default: stdout)")
	f.String("locale", "", "BCP 47 locale for amounts (default from config)")
	f.String("currency", "", "ISO 4217 currency code (default from config)")
	f.String("save-inputs", "", "write the resolved form state (JSON) to this file")
	return cmd
}

func runCompare(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	log := zap.L().With(zap.String("command", "compare"))

	in, err := resolveInputs(f)
	if err != nil {
		return err
	}

	engine, err := valuation.NewEngine(in.Params)
	if err != nil {
		return eris.Wrap(err, "compare: params")
	}
	a := in.Form.Assumptions()
	cmp, err := engine.Compare(a)
	if err != nil {
		return eris.Wrap(err, "compare")
	}
	log.Info("comparison complete",
		zap.String("scenario", in.Name),
		zap.String("case_id", in.Form.CaseID),
		zap.Float64("baseline_ev", cmp.Baseline.EnterpriseValue),
		zap.Float64("adjusted_ev", cmp.Adjusted.EnterpriseValue),
		zap.Float64("ceiling", cmp.Ceiling.Ceiling),
	)

	if path, _ := f.GetString("save-inputs"); path != "" {
		data, err := in.Form.ToJSON()
		if err != nil {
			return eris.Wrap(err, "encode inputs")
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return eris.Wrapf(err, "write inputs %s", path)
		}
	}

	format, err := report.ParseFormat(flagOr(f, "format", cfg.Report.Format))
	if err != nil {
		return err
	}
	formatter, err := report.NewFormatter(flagOr(f, "locale", cfg.Report.Locale), flagOr(f, "currency", cfg.Report.Currency))
	if err != nil {
		return err
	}

	return withOutput(cmd, func(w io.Writer) error {
		return report.Render(w, format, cmp, formatter)
	})
}

// flagOr returns a string flag, or fallback when the flag is empty.
func flagOr(f *pflag.FlagSet, name, fallback string) string {
	if v, _ := f.GetString(name); v != "" {
		return v
	}
	return fallback
}

// withOutput runs write against --out, or the command's stdout when unset.
func withOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return eris.Wrapf(err, "close %s", path)
	}
	zap.L().Info("report written", zap.String("path", path))
	return nil
}
