package valuation

// CeilingBreakdown itemises the recommended maximum price.
type CeilingBreakdown struct {
	BaselineEV float64 `json:"baseline_ev"`

	// ConservativeSynergy = MaxSynergy × ConservativeCapture.
	ConservativeSynergy float64 `json:"conservative_synergy"`
	// SynergyValue = ConservativeSynergy × CeilingAnnuityFactor (five years, no terminal).
	SynergyValue float64 `json:"synergy_value"`
	// SynergyDiscountRate is the percent rate the annuity factor stands in for.
	SynergyDiscountRate float64 `json:"synergy_discount_rate"`

	// IntegrationTotal = MaxSynergy × IntegrationToSynergy.
	IntegrationTotal float64 `json:"integration_total"`
	// IntegrationPV = IntegrationTotal × IntegrationDiscount.
	IntegrationPV float64 `json:"integration_pv"`

	Ceiling float64 `json:"ceiling"`
}

// ComputeCorrectedCeiling returns the maximum justifiable price with DefaultParams:
//
//	EV_base + MaxSynergy × 0.30 × 3.5 - MaxSynergy × 1.75 × 0.9
func ComputeCorrectedCeiling(baseline ValuationResult, a Assumptions) float64 {
	return defaultEngine.CorrectedCeiling(baseline, a).Ceiling
}

// CorrectedCeiling prices only a conservative, finite slice of synergies and
// charges a realistic integration budget against it.
func (e *Engine) CorrectedCeiling(baseline ValuationResult, a Assumptions) CeilingBreakdown {
	p := e.params
	b := CeilingBreakdown{
		BaselineEV:          baseline.EnterpriseValue,
		ConservativeSynergy: a.MaxSynergy * p.ConservativeCapture,
		SynergyDiscountRate: a.WACC + p.SynergyRiskPremium,
		IntegrationTotal:    a.MaxSynergy * p.IntegrationToSynergy,
	}
	b.SynergyValue = b.ConservativeSynergy * p.CeilingAnnuityFactor
	b.IntegrationPV = b.IntegrationTotal * p.IntegrationDiscount
	b.Ceiling = baseline.EnterpriseValue + b.SynergyValue - b.IntegrationPV
	return b
}
