package valuation

import (
	"math"
)

// Diagnostics decomposes the gap between the naive and baseline models.
// Ratios with a zero denominator are reported as NaN.
type Diagnostics struct {
	AbsoluteDifference   float64 `json:"absolute_difference"`
	PercentDifference    float64 `json:"percent_difference"`
	AverageAnnualSynergy float64 `json:"average_annual_synergy"`

	// SynergyPVForecast is the annuity value of the average synergy.
	SynergyPVForecast float64 `json:"synergy_pv_forecast"`
	// SynergyPerpetuity is the undiscounted perpetuity value at the horizon.
	SynergyPerpetuity float64 `json:"synergy_perpetuity"`
	// SynergyPVTerminal is SynergyPerpetuity discounted back to today.
	SynergyPVTerminal float64 `json:"synergy_pv_terminal"`
	TotalSynergyValue float64 `json:"total_synergy_value"`

	// SynergyToIntegration is TotalSynergyValue / IntegrationCost.
	SynergyToIntegration float64 `json:"synergy_to_integration"`
}

// ComputeDiagnostics compares two results produced with DefaultParams.
func ComputeDiagnostics(baseline, adjusted ValuationResult, a Assumptions) (Diagnostics, error) {
	return defaultEngine.Diagnostics(baseline, adjusted, a)
}

// Diagnostics computes the synergy decomposition.
//
// FORMULA:
//
//	PV_5yr      = S × (1 - (1+WACC)^-N) / WACC          N = SynergyAnnuityPeriods
//	Perpetuity  = S × (1 + g) / (WACC - g)
//	PV_terminal = Perpetuity / (1+WACC)^ForecastYears
func (e *Engine) Diagnostics(baseline, adjusted ValuationResult, a Assumptions) (Diagnostics, error) {
	r := a.rates()
	if err := checkSpread(r.wacc, r.terminal); err != nil {
		return Diagnostics{}, err
	}

	d := Diagnostics{
		AbsoluteDifference:   adjusted.EnterpriseValue - baseline.EnterpriseValue,
		PercentDifference:    math.NaN(),
		AverageAnnualSynergy: e.AverageSynergy(a),
	}
	if baseline.EnterpriseValue != 0 {
		d.PercentDifference = d.AbsoluteDifference / baseline.EnterpriseValue * 100
	}

	d.SynergyPVForecast = AnnuityPV(d.AverageAnnualSynergy, r.wacc, e.params.SynergyAnnuityPeriods)
	d.SynergyPerpetuity = d.AverageAnnualSynergy * (1 + r.terminal) / (r.wacc - r.terminal)
	d.SynergyPVTerminal = d.SynergyPerpetuity / math.Pow(1+r.wacc, float64(e.params.ForecastYears))
	d.TotalSynergyValue = d.SynergyPVForecast + d.SynergyPVTerminal

	ratio, err := SynergyToIntegrationRatio(d.TotalSynergyValue, a.IntegrationCost)
	if err != nil {
		ratio = math.NaN()
	}
	d.SynergyToIntegration = ratio
	return d, nil
}

// AnnuityPV is the present value of a level payment over n periods.
// A zero rate degenerates to payment × n.
func AnnuityPV(payment, rate float64, n int) float64 {
	if rate == 0 {
		return payment * float64(n)
	}
	return payment * (1 - math.Pow(1+rate, -float64(n))) / rate
}

// SynergyToIntegrationRatio returns how many dollars of synergy value the
// model books per dollar of integration cost.
func SynergyToIntegrationRatio(totalSynergyValue, integrationCost float64) (float64, error) {
	if integrationCost == 0 {
		return 0, &UndefinedRatioError{Numerator: "total synergy value", Denominator: "integration cost"}
	}
	return totalSynergyValue / integrationCost, nil
}
