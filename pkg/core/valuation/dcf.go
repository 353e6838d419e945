package valuation

import (
	"math"
)

// YearProjection is one row of the explicit forecast.
type YearProjection struct {
	Year            int     `json:"year"`
	Revenue         float64 `json:"revenue"`
	EBITDA          float64 `json:"ebitda"`
	NOPAT           float64 `json:"nopat"`
	Synergy         float64 `json:"synergy"`
	IntegrationCost float64 `json:"integration_cost"`
	FreeCashFlow    float64 `json:"free_cash_flow"`
	// DiscountFactor is 1/(1+WACC)^t.
	DiscountFactor float64 `json:"discount_factor"`
	PresentValue   float64 `json:"present_value"`
}

// ValuationResult holds the outputs of one DCF run.
type ValuationResult struct {
	PresentValueOfForecast float64 `json:"present_value_of_forecast"`
	PresentValueOfTerminal float64 `json:"present_value_of_terminal"`
	// PresentValueOfSynergyTail covers synergies that run past the horizon.
	PresentValueOfSynergyTail float64 `json:"present_value_of_synergy_tail"`
	EnterpriseValue           float64 `json:"enterprise_value"`

	// TerminalValue is the undiscounted Gordon growth value at the horizon.
	TerminalValue float64 `json:"terminal_value"`
	// TerminalBaseFlow is the final-year flow capitalised into TerminalValue.
	TerminalBaseFlow float64          `json:"terminal_base_flow"`
	Years            []YearProjection `json:"years"`
}

// Engine evaluates the merger models under a fixed set of Params.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	params Params
}

// NewEngine validates p and returns an engine bound to a private copy of it.
func NewEngine(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.IntegrationPhasing = append([]float64(nil), p.IntegrationPhasing...)
	return &Engine{params: p}, nil
}

// Params returns a copy of the engine parameters.
func (e *Engine) Params() Params {
	p := e.params
	p.IntegrationPhasing = append([]float64(nil), e.params.IntegrationPhasing...)
	return p
}

var defaultEngine = &Engine{params: DefaultParams()}

// Default returns the engine bound to DefaultParams.
func Default() *Engine { return defaultEngine }

// ComputeBaseline values the target stand-alone with DefaultParams.
func ComputeBaseline(a Assumptions) (ValuationResult, error) {
	return defaultEngine.Baseline(a)
}

// ComputeSynergyAdjusted values the target under the naive synergy model with DefaultParams.
func ComputeSynergyAdjusted(a Assumptions) (ValuationResult, error) {
	return defaultEngine.SynergyAdjusted(a)
}

// =============================================================================
// FORECAST LOOP
// =============================================================================

// flowModel describes how a scenario modifies the stand-alone free cash flow.
type flowModel struct {
	// synergy returns the synergy added to FCF in the given year.
	synergy func(year int) float64
	// synergyRate discounts synergies; the naive model reuses WACC.
	synergyRate float64
	// integration returns the integration spend deducted in the given year.
	integration func(year int) float64
	// terminalSynergy is added to the final-year base flow before capitalising.
	terminalSynergy float64
	// synergyTail holds synergies for the years after the horizon, N+1 onwards.
	synergyTail []float64
}

func none(int) float64 { return 0 }

// run performs the two-stage DCF:
//
//	FCF_t = Revenue_t × margin × (1 - tax) - Capex - ΔWC - Integration_t + Synergy_t
//	TV    = (FCF_base,N + TerminalSynergy) × (1 + g) / (WACC - g)
//	Tail  = Σ Synergy_t / (1+SynergyRate)^t   for t > N
//	EV    = Σ FCF_t / (1+WACC)^t + Tail + TV / (1+WACC)^N
func (e *Engine) run(a Assumptions, m flowModel) (ValuationResult, error) {
	r := a.rates()
	if err := checkSpread(r.wacc, r.terminal); err != nil {
		return ValuationResult{}, err
	}

	years := e.params.ForecastYears
	res := ValuationResult{Years: make([]YearProjection, 0, years)}

	revenue := a.Revenue
	var baseFlow float64
	for year := 1; year <= years; year++ {
		revenue *= 1 + r.growth
		ebitda := revenue * r.margin
		nopat := ebitda * (1 - r.tax)
		baseFlow = nopat - a.Capex - a.DeltaWC

		synergy := m.synergy(year)
		integration := m.integration(year)
		fcf := baseFlow - integration + synergy

		t := float64(year)
		df := 1 / math.Pow(1+r.wacc, t)
		pv := (baseFlow-integration)*df + synergy/math.Pow(1+m.synergyRate, t)
		res.PresentValueOfForecast += pv

		res.Years = append(res.Years, YearProjection{
			Year:            year,
			Revenue:         revenue,
			EBITDA:          ebitda,
			NOPAT:           nopat,
			Synergy:         synergy,
			IntegrationCost: integration,
			FreeCashFlow:    fcf,
			DiscountFactor:  df,
			PresentValue:    pv,
		})
	}

	for i, synergy := range m.synergyTail {
		res.PresentValueOfSynergyTail += synergy / math.Pow(1+m.synergyRate, float64(years+1+i))
	}

	res.TerminalBaseFlow = baseFlow + m.terminalSynergy
	res.TerminalValue = res.TerminalBaseFlow * (1 + r.terminal) / (r.wacc - r.terminal)
	res.PresentValueOfTerminal = res.TerminalValue / math.Pow(1+r.wacc, float64(years))
	res.EnterpriseValue = res.PresentValueOfForecast + res.PresentValueOfSynergyTail + res.PresentValueOfTerminal
	return res, nil
}

// Baseline is the standard DCF with no synergies and no integration cost.
func (e *Engine) Baseline(a Assumptions) (ValuationResult, error) {
	return e.run(a, flowModel{
		synergy:     none,
		synergyRate: a.WACC / 100,
		integration: none,
	})
}

// SynergyAdjusted is the naive merger model: the average synergy is added to
// every forecast year and to the terminal base flow, so it is capitalised in
// perpetuity, while integration cost is charged once in year 1.
func (e *Engine) SynergyAdjusted(a Assumptions) (ValuationResult, error) {
	avg := e.AverageSynergy(a)
	return e.run(a, flowModel{
		synergy:     func(int) float64 { return avg },
		synergyRate: a.WACC / 100,
		integration: func(year int) float64 {
			if year == 1 {
				return a.IntegrationCost
			}
			return 0
		},
		terminalSynergy: avg,
	})
}

// AverageSynergy is the naive model's annual run-rate:
//
//	MaxSynergy × Ramp × Realization × (1 - RiskDiscount)
func (e *Engine) AverageSynergy(a Assumptions) float64 {
	return a.MaxSynergy * e.params.RampFactor * e.params.RealizationFactor * (1 - a.SynergyRiskDiscount/100)
}
