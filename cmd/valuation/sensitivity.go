package main

import (
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"synergy_valuation/pkg/core/report"
	"synergy_valuation/pkg/core/valuation"
)

func newSensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Grid of enterprise values over WACC and terminal growth",
		Long: `Re-runs the traditional and synergy-adjusted DCF for every combination of
WACC and terminal growth. Combinations with WACC <= growth are shown as n/a.

Examples:
  valuation sensitivity --waccs 8,9,10 --growths 2,3
  valuation sensitivity --scenario deals/acme.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: runSensitivity,
	}

	f := cmd.Flags()
	addInputFlags(f)
	f.Float64Slice("waccs", nil, "WACC values in percent (default from config)")
	f.Float64Slice("growths", nil, "terminal growth values in percent (default from config)")
	f.String("format", "", "output format: text, markdown, html or json (default from config)")
	f.String("out", "", "output file path (default: stdout)")
	f.String("locale", "", "BCP 47 locale for amounts (default from config)")
	f.String("currency", "", "ISO 4217 currency code (default from config)")
	return cmd
}

func runSensitivity(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f := cmd.Flags()
	in, err := resolveInputs(f)
	if err != nil {
		return err
	}

	waccs, _ := f.GetFloat64Slice("waccs")
	if len(waccs) == 0 {
		waccs = cfg.Sensitivity.WACCs
	}
	growths, _ := f.GetFloat64Slice("growths")
	if len(growths) == 0 {
		growths = cfg.Sensitivity.Growths
	}
	if len(waccs) == 0 || len(growths) == 0 {
		return eris.New("sensitivity: need at least one WACC and one growth value")
	}

	engine, err := valuation.NewEngine(in.Params)
	if err != nil {
		return eris.Wrap(err, "sensitivity: params")
	}
	grid, err := engine.Sensitivity(ctx, in.Form.Assumptions(), waccs, growths)
	if err != nil {
		return eris.Wrap(err, "sensitivity")
	}
	zap.L().Info("sensitivity complete",
		zap.String("scenario", in.Name),
		zap.Int("cells", len(waccs)*len(growths)),
	)

	format, err := report.ParseFormat(flagOr(f, "format", cfg.Report.Format))
	if err != nil {
		return err
	}
	formatter, err := report.NewFormatter(flagOr(f, "locale", cfg.Report.Locale), flagOr(f, "currency", cfg.Report.Currency))
	if err != nil {
		return err
	}

	return withOutput(cmd, func(w io.Writer) error {
		return report.RenderSensitivity(w, format, grid, formatter)
	})
}
