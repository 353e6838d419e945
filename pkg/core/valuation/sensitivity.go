package valuation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SensitivityCell is one (WACC, g) point of the grid.
// Valid is false when WACC <= g; the EVs are then zero.
type SensitivityCell struct {
	WACC           float64 `json:"wacc"`
	TerminalGrowth float64 `json:"terminal_growth"`
	BaselineEV     float64 `json:"baseline_ev"`
	AdjustedEV     float64 `json:"adjusted_ev"`
	Valid          bool    `json:"valid"`
}

// SensitivityGrid is indexed Cells[i][j] for WACCs[i] and Growths[j].
type SensitivityGrid struct {
	WACCs   []float64           `json:"waccs"`
	Growths []float64           `json:"growths"`
	Cells   [][]SensitivityCell `json:"cells"`
}

// Sensitivity re-runs the baseline and naive models for every combination of
// WACC and terminal growth (both in percent). Cells are evaluated concurrently.
func (e *Engine) Sensitivity(ctx context.Context, a Assumptions, waccs, growths []float64) (*SensitivityGrid, error) {
	grid := &SensitivityGrid{
		WACCs:   append([]float64(nil), waccs...),
		Growths: append([]float64(nil), growths...),
		Cells:   make([][]SensitivityCell, len(waccs)),
	}
	for i := range grid.Cells {
		grid.Cells[i] = make([]SensitivityCell, len(growths))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, w := range waccs {
		for j, tg := range growths {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				cell := SensitivityCell{WACC: w, TerminalGrowth: tg}
				point := a
				point.WACC, point.TerminalGrowth = w, tg

				base, err := e.Baseline(point)
				if IsDomainError(err) {
					grid.Cells[i][j] = cell
					return nil
				}
				if err != nil {
					return err
				}
				adj, err := e.SynergyAdjusted(point)
				if err != nil {
					return err
				}
				cell.BaselineEV, cell.AdjustedEV, cell.Valid = base.EnterpriseValue, adj.EnterpriseValue, true
				grid.Cells[i][j] = cell
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grid, nil
}
