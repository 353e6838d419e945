package valuation

import (
	"math"
)

// =============================================================================
// HEURISTIC PARAMETERS
// Fixed illustrative constants of the merger model, exposed so that callers
// can tune them per deal or per config file. None are derived from Assumptions.
// =============================================================================

// CaseRates holds one value per bear/base/bull case.
type CaseRates struct {
	Bear float64 `json:"bear" yaml:"bear" mapstructure:"bear" hcl:"bear,optional"`
	Base float64 `json:"base" yaml:"base" mapstructure:"base" hcl:"base,optional"`
	Bull float64 `json:"bull" yaml:"bull" mapstructure:"bull" hcl:"bull,optional"`
}

// Sum returns Bear + Base + Bull.
func (c CaseRates) Sum() float64 { return c.Bear + c.Base + c.Bull }

// Params are the named knobs of the engine.
type Params struct {
	// ForecastYears is the explicit forecast horizon before the terminal value.
	ForecastYears int `json:"forecast_years" yaml:"forecast_years" mapstructure:"forecast_years" hcl:"forecast_years,optional"`

	// RampFactor and RealizationFactor scale MaxSynergy to an average annual run-rate.
	RampFactor        float64 `json:"ramp_factor" yaml:"ramp_factor" mapstructure:"ramp_factor" hcl:"ramp_factor,optional"`
	RealizationFactor float64 `json:"realization_factor" yaml:"realization_factor" mapstructure:"realization_factor" hcl:"realization_factor,optional"`

	// SynergyAnnuityPeriods is the exponent of the synergy PV annuity.
	// Defaults to 6, one more than the forecast horizon, to reproduce the
	// reference figures.
	SynergyAnnuityPeriods int `json:"synergy_annuity_periods" yaml:"synergy_annuity_periods" mapstructure:"synergy_annuity_periods" hcl:"synergy_annuity_periods,optional"`

	// Corrected ceiling multipliers.
	ConservativeCapture  float64 `json:"conservative_capture" yaml:"conservative_capture" mapstructure:"conservative_capture" hcl:"conservative_capture,optional"`
	CeilingAnnuityFactor float64 `json:"ceiling_annuity_factor" yaml:"ceiling_annuity_factor" mapstructure:"ceiling_annuity_factor" hcl:"ceiling_annuity_factor,optional"`
	IntegrationToSynergy float64 `json:"integration_to_synergy" yaml:"integration_to_synergy" mapstructure:"integration_to_synergy" hcl:"integration_to_synergy,optional"`
	IntegrationDiscount  float64 `json:"integration_discount" yaml:"integration_discount" mapstructure:"integration_discount" hcl:"integration_discount,optional"`

	// SynergyRiskPremium is added to WACC (percentage points) when discounting synergies.
	SynergyRiskPremium float64 `json:"synergy_risk_premium" yaml:"synergy_risk_premium" mapstructure:"synergy_risk_premium" hcl:"synergy_risk_premium,optional"`

	// SynergyDecayYears is the year in which linearly decaying synergies reach zero.
	SynergyDecayYears int `json:"synergy_decay_years" yaml:"synergy_decay_years" mapstructure:"synergy_decay_years" hcl:"synergy_decay_years,optional"`

	// TailRiskHaircut is the after-the-fact percentage cut of the naive
	// approach, EV_tail = EV × (1 - haircut).
	TailRiskHaircut float64 `json:"tail_risk_haircut" yaml:"tail_risk_haircut" mapstructure:"tail_risk_haircut" hcl:"tail_risk_haircut,optional"`

	// IntegrationPhasing splits total integration spend across the first years.
	IntegrationPhasing []float64 `json:"integration_phasing" yaml:"integration_phasing" mapstructure:"integration_phasing" hcl:"integration_phasing,optional"`

	// CaptureCases and ScenarioWeights drive the probability-weighted corrected value.
	// HCL files set them through dedicated blocks.
	CaptureCases    CaseRates `json:"capture_cases" yaml:"capture_cases" mapstructure:"capture_cases"`
	ScenarioWeights CaseRates `json:"scenario_weights" yaml:"scenario_weights" mapstructure:"scenario_weights"`
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		ForecastYears:         5,
		RampFactor:            0.8,
		RealizationFactor:     0.8,
		SynergyAnnuityPeriods: 6,
		ConservativeCapture:   0.30,
		CeilingAnnuityFactor:  3.5,
		IntegrationToSynergy:  1.75,
		IntegrationDiscount:   0.9,
		SynergyRiskPremium:    5,
		SynergyDecayYears:     10,
		TailRiskHaircut:       15,
		IntegrationPhasing:    []float64{0.50, 0.35, 0.15},
		CaptureCases:          CaseRates{Bear: 0.30, Base: 0.50, Bull: 0.70},
		ScenarioWeights:       CaseRates{Bear: 0.30, Base: 0.50, Bull: 0.20},
	}
}

const weightTolerance = 1e-9

// Validate checks that the parameters describe a computable model.
func (p Params) Validate() error {
	if p.ForecastYears < 1 {
		return &DomainError{Field: "forecast_years", Reason: "must be at least 1", Values: []float64{float64(p.ForecastYears)}}
	}
	if p.SynergyAnnuityPeriods < 0 {
		return &DomainError{Field: "synergy_annuity_periods", Reason: "must not be negative", Values: []float64{float64(p.SynergyAnnuityPeriods)}}
	}
	if p.SynergyDecayYears < 1 {
		return &DomainError{Field: "synergy_decay_years", Reason: "must be at least 1", Values: []float64{float64(p.SynergyDecayYears)}}
	}
	if p.TailRiskHaircut < 0 || p.TailRiskHaircut >= 100 || math.IsNaN(p.TailRiskHaircut) {
		return &DomainError{Field: "tail_risk_haircut", Reason: "must be in [0, 100)", Values: []float64{p.TailRiskHaircut}}
	}
	for _, w := range p.IntegrationPhasing {
		if w < 0 || math.IsNaN(w) {
			return &DomainError{Field: "integration_phasing", Reason: "shares must be non-negative", Values: p.IntegrationPhasing}
		}
	}
	if s := sum(p.IntegrationPhasing); len(p.IntegrationPhasing) > 0 && math.Abs(s-1) > weightTolerance {
		return &DomainError{Field: "integration_phasing", Reason: "shares must sum to 1", Values: []float64{s}}
	}
	if s := p.ScenarioWeights.Sum(); math.Abs(s-1) > weightTolerance {
		return &DomainError{Field: "scenario_weights", Reason: "must sum to 1", Values: []float64{s}}
	}
	return nil
}

// ApplyTailHaircut cuts ev by TailRiskHaircut percent.
func (p Params) ApplyTailHaircut(ev float64) float64 {
	return ev * (1 - p.TailRiskHaircut/100)
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}
