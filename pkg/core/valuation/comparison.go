package valuation

// Comparison bundles every output of one run for the presentation layer.
type Comparison struct {
	Assumptions Assumptions       `json:"assumptions"`
	Params      Params            `json:"params"`
	Baseline    ValuationResult   `json:"baseline"`
	Adjusted    ValuationResult   `json:"adjusted"`
	Diagnostics Diagnostics       `json:"diagnostics"`
	Ceiling     CeilingBreakdown  `json:"ceiling"`
	Weighted    WeightedValuation `json:"weighted"`

	// TailAdjustedEV is the synergy-adjusted EV after the flat tail-risk haircut.
	TailAdjustedEV float64 `json:"tail_adjusted_ev"`
}

// Compare runs the baseline, naive and corrected models over a.
func (e *Engine) Compare(a Assumptions) (*Comparison, error) {
	baseline, err := e.Baseline(a)
	if err != nil {
		return nil, err
	}
	adjusted, err := e.SynergyAdjusted(a)
	if err != nil {
		return nil, err
	}
	diag, err := e.Diagnostics(baseline, adjusted, a)
	if err != nil {
		return nil, err
	}
	weighted, err := e.ScenarioWeighted(a)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Assumptions:    a,
		Params:         e.Params(),
		Baseline:       baseline,
		Adjusted:       adjusted,
		Diagnostics:    diag,
		Ceiling:        e.CorrectedCeiling(baseline, a),
		Weighted:       weighted,
		TailAdjustedEV: e.params.ApplyTailHaircut(adjusted.EnterpriseValue),
	}, nil
}
