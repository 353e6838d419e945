// Package valuation implements the comparative merger valuation engine.
// It values a target with a standard DCF (baseline) and with the naive
// synergy-adjusted model, then decomposes where the extra value comes from.
// Every function here is pure: no logging, no I/O, no shared mutable state.
package valuation

// =============================================================================
// ASSUMPTIONS (Input Record)
// =============================================================================

// Assumptions is the flat input record for one valuation run.
// Percent fields are expressed 0-100 (e.g. WACC 10 means 10%).
// Currency fields are in units, already scaled by the caller.
type Assumptions struct {
	Revenue             float64 `json:"revenue" yaml:"revenue" mapstructure:"revenue" hcl:"revenue,optional"`
	EBITDAMargin        float64 `json:"ebitdaMargin" yaml:"ebitdaMargin" mapstructure:"ebitdaMargin" hcl:"ebitda_margin,optional"`
	RevenueGrowth       float64 `json:"revenueGrowth" yaml:"revenueGrowth" mapstructure:"revenueGrowth" hcl:"revenue_growth,optional"`
	WACC                float64 `json:"wacc" yaml:"wacc" mapstructure:"wacc" hcl:"wacc,optional"`
	TerminalGrowth      float64 `json:"terminalGrowth" yaml:"terminalGrowth" mapstructure:"terminalGrowth" hcl:"terminal_growth,optional"`
	TaxRate             float64 `json:"taxRate" yaml:"taxRate" mapstructure:"taxRate" hcl:"tax_rate,optional"`
	Capex               float64 `json:"capex" yaml:"capex" mapstructure:"capex" hcl:"capex,optional"`
	DeltaWC             float64 `json:"deltaWC" yaml:"deltaWC" mapstructure:"deltaWC" hcl:"delta_wc,optional"`
	MaxSynergy          float64 `json:"maxSynergy" yaml:"maxSynergy" mapstructure:"maxSynergy" hcl:"max_synergy,optional"`
	IntegrationCost     float64 `json:"integrationCost" yaml:"integrationCost" mapstructure:"integrationCost" hcl:"integration_cost,optional"`
	SynergyRiskDiscount float64 `json:"synergyRiskDiscount" yaml:"synergyRiskDiscount" mapstructure:"synergyRiskDiscount" hcl:"synergy_risk_discount,optional"`
}

// DefaultAssumptions returns the reference deal: a $50M revenue target with
// $5M of maximum synergies and a $2M one-time integration budget.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		Revenue:             50_000_000,
		EBITDAMargin:        20,
		RevenueGrowth:       8,
		WACC:                10,
		TerminalGrowth:      3,
		TaxRate:             30,
		Capex:               1_500_000,
		DeltaWC:             500_000,
		MaxSynergy:          5_000_000,
		IntegrationCost:     2_000_000,
		SynergyRiskDiscount: 20,
	}
}

// WithoutSynergies returns a copy with every synergy-related input zeroed.
func (a Assumptions) WithoutSynergies() Assumptions {
	a.MaxSynergy = 0
	a.IntegrationCost = 0
	a.SynergyRiskDiscount = 0
	return a
}

// rates converts the percent fields to decimals once per run.
type rates struct {
	margin, growth, wacc, terminal, tax, risk float64
}

func (a Assumptions) rates() rates {
	return rates{
		margin:   a.EBITDAMargin / 100,
		growth:   a.RevenueGrowth / 100,
		wacc:     a.WACC / 100,
		terminal: a.TerminalGrowth / 100,
		tax:      a.TaxRate / 100,
		risk:     a.SynergyRiskDiscount / 100,
	}
}

// checkSpread enforces WACC > terminal growth.
func checkSpread(wacc, terminalGrowth float64) error {
	if wacc <= terminalGrowth {
		return &DomainError{
			Field:  "wacc",
			Reason: "must exceed terminalGrowth for a finite terminal value",
			Values: []float64{wacc, terminalGrowth},
		}
	}
	return nil
}
