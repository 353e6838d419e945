package valuation

import (
	"math"
)

// =============================================================================
// CORRECTED MODEL
// Remedies for the naive model: finite decaying synergies discounted at a
// risk-adjusted rate, integration spend phased over several years, and no
// synergies in the terminal value. Capture cases are blended by probability
// instead of haircutting the final number.
// =============================================================================

// Case names used in WeightedValuation.
const (
	CaseBear = "bear"
	CaseBase = "base"
	CaseBull = "bull"
)

// DecaySchedule returns the synergy for years 1..max(ForecastYears,
// SynergyDecayYears) under linear decay:
//
//	Synergy_t = annual × (1 - t/SynergyDecayYears), floored at zero.
func (e *Engine) DecaySchedule(annual float64) []float64 {
	n := e.params.ForecastYears
	if e.params.SynergyDecayYears > n {
		n = e.params.SynergyDecayYears
	}
	out := make([]float64, n)
	decay := float64(e.params.SynergyDecayYears)
	for i := range out {
		t := float64(i + 1)
		out[i] = annual * math.Max(0, 1-t/decay)
	}
	return out
}

// PhasedIntegration splits total integration spend by IntegrationPhasing.
// Phases beyond the forecast horizon are charged in the final forecast year.
func (e *Engine) PhasedIntegration(total float64) []float64 {
	out := make([]float64, e.params.ForecastYears)
	last := len(out) - 1
	for i, share := range e.params.IntegrationPhasing {
		idx := i
		if idx > last {
			idx = last
		}
		out[idx] += total * share
	}
	return out
}

// Corrected values the deal with a capture rate applied to MaxSynergy.
// Decayed synergies beyond the forecast horizon are valued as a tail at the
// synergy rate; none enter the terminal value.
func (e *Engine) Corrected(a Assumptions, capture float64) (ValuationResult, error) {
	synergies := e.DecaySchedule(a.MaxSynergy * capture)
	integration := e.PhasedIntegration(a.MaxSynergy * e.params.IntegrationToSynergy)
	horizon := e.params.ForecastYears

	return e.run(a, flowModel{
		synergy:     func(year int) float64 { return synergies[year-1] },
		synergyRate: (a.WACC + e.params.SynergyRiskPremium) / 100,
		integration: func(year int) float64 { return integration[year-1] },
		synergyTail: synergies[horizon:],
	})
}

// ScenarioValue is one capture case of the weighted valuation.
type ScenarioValue struct {
	Case    string          `json:"case"`
	Capture float64         `json:"capture"`
	Weight  float64         `json:"weight"`
	Result  ValuationResult `json:"result"`
}

// WeightedValuation blends the corrected model across capture cases.
type WeightedValuation struct {
	Cases           []ScenarioValue `json:"cases"`
	EnterpriseValue float64         `json:"enterprise_value"`
}

// ScenarioWeighted computes EV = Σ weight_c × EV_c over bear/base/bull.
func (e *Engine) ScenarioWeighted(a Assumptions) (WeightedValuation, error) {
	cc, w := e.params.CaptureCases, e.params.ScenarioWeights
	cases := []struct {
		name            string
		capture, weight float64
	}{
		{CaseBear, cc.Bear, w.Bear},
		{CaseBase, cc.Base, w.Base},
		{CaseBull, cc.Bull, w.Bull},
	}

	var out WeightedValuation
	for _, c := range cases {
		res, err := e.Corrected(a, c.capture)
		if err != nil {
			return WeightedValuation{}, err
		}
		out.Cases = append(out.Cases, ScenarioValue{Case: c.name, Capture: c.capture, Weight: c.weight, Result: res})
		out.EnterpriseValue += c.weight * res.EnterpriseValue
	}
	return out, nil
}

// Case returns the named case, if present.
func (w WeightedValuation) Case(name string) (ScenarioValue, bool) {
	for _, c := range w.Cases {
		if c.Case == name {
			return c, true
		}
	}
	return ScenarioValue{}, false
}
