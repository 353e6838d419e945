package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBaseline_ReferenceDeal(t *testing.T) {
	res, err := ComputeBaseline(DefaultAssumptions())
	require.NoError(t, err)

	assert.InDelta(t, 25_554_990.02, res.PresentValueOfForecast, 0.01)
	assert.InDelta(t, 75_697_897.24, res.PresentValueOfTerminal, 0.01)
	assert.InDelta(t, 101_252_887.25, res.EnterpriseValue, 0.01)
	assert.Len(t, res.Years, 5)
	assert.InDelta(t, 50_000_000*math.Pow(1.08, 5), res.Years[4].Revenue, 1e-3)
	assert.InDelta(t, 1/1.1, res.Years[0].DiscountFactor, 1e-12)
	assert.InDelta(t, res.Years[0].FreeCashFlow/1.1, res.Years[0].PresentValue, 1e-6)
}

func TestComputeSynergyAdjusted_ReferenceDeal(t *testing.T) {
	a := DefaultAssumptions()
	base, err := ComputeBaseline(a)
	require.NoError(t, err)
	adj, err := ComputeSynergyAdjusted(a)
	require.NoError(t, err)

	assert.InDelta(t, 132_528_338.77, adj.EnterpriseValue, 0.01)
	assert.Greater(t, adj.EnterpriseValue-base.EnterpriseValue, 0.0)
	assert.Greater(t, adj.PresentValueOfTerminal, base.PresentValueOfTerminal)

	// Integration cost lands in year 1 only.
	assert.Equal(t, a.IntegrationCost, adj.Years[0].IntegrationCost)
	for _, y := range adj.Years[1:] {
		assert.Zero(t, y.IntegrationCost)
	}
	// Synergy is capitalised into the terminal flow.
	assert.InDelta(t, base.TerminalBaseFlow+2_560_000, adj.TerminalBaseFlow, 1e-6)
}

// The naive model books more value than the stand-alone DCF even after its
// "risk adjustment". This is the defect the comparison exists to expose.
func TestSynergyAdjusted_AlwaysExceedsBaseline(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Assumptions)
	}{
		{"reference", func(a *Assumptions) {}},
		{"heavy risk discount", func(a *Assumptions) { a.SynergyRiskDiscount = 95 }},
		{"tiny synergy", func(a *Assumptions) { a.MaxSynergy = 10_000; a.IntegrationCost = 0 }},
		{"large integration", func(a *Assumptions) { a.IntegrationCost = 10_000_000 }},
		{"low spread", func(a *Assumptions) { a.WACC = 6; a.TerminalGrowth = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DefaultAssumptions()
			tt.mutate(&a)
			base, err := ComputeBaseline(a)
			require.NoError(t, err)
			adj, err := ComputeSynergyAdjusted(a)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, adj.EnterpriseValue, base.EnterpriseValue)
		})
	}
}

func TestSynergyAdjusted_ZeroSynergyEqualsBaseline(t *testing.T) {
	a := DefaultAssumptions().WithoutSynergies()

	base, err := ComputeBaseline(a)
	require.NoError(t, err)
	adj, err := ComputeSynergyAdjusted(a)
	require.NoError(t, err)

	assert.Equal(t, base, adj)
}

func TestCompute_FiniteForValidInputs(t *testing.T) {
	for _, wacc := range []float64{3.5, 8, 12, 25} {
		for _, g := range []float64{-2, 0, 3} {
			a := DefaultAssumptions()
			a.WACC, a.TerminalGrowth = wacc, g

			base, err := ComputeBaseline(a)
			require.NoError(t, err)
			adj, err := ComputeSynergyAdjusted(a)
			require.NoError(t, err)

			for _, ev := range []float64{base.EnterpriseValue, adj.EnterpriseValue} {
				assert.False(t, math.IsNaN(ev), "wacc=%v g=%v", wacc, g)
				assert.False(t, math.IsInf(ev, 0), "wacc=%v g=%v", wacc, g)
			}
		}
	}
}

func TestCompute_WACCNotAboveGrowthIsDomainError(t *testing.T) {
	for _, g := range []float64{10, 12} {
		a := DefaultAssumptions()
		a.TerminalGrowth = g

		_, err := ComputeBaseline(a)
		require.Error(t, err)
		assert.True(t, IsDomainError(err))

		_, err = ComputeSynergyAdjusted(a)
		assert.True(t, IsDomainError(err))

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "wacc", de.Field)
	}
}

func TestNewEngine_HorizonOverride(t *testing.T) {
	p := DefaultParams()
	p.ForecastYears = 3
	e, err := NewEngine(p)
	require.NoError(t, err)

	res, err := e.Baseline(DefaultAssumptions())
	require.NoError(t, err)
	assert.Len(t, res.Years, 3)

	// A one-year horizon still keeps integration cost out of the terminal flow.
	p.ForecastYears = 1
	p.IntegrationPhasing = []float64{1}
	e, err = NewEngine(p)
	require.NoError(t, err)
	adj, err := e.SynergyAdjusted(DefaultAssumptions())
	require.NoError(t, err)
	assert.InDelta(t, adj.Years[0].FreeCashFlow+DefaultAssumptions().IntegrationCost, adj.TerminalBaseFlow, 1e-6)
}

func TestEngine_ParamsReturnsCopy(t *testing.T) {
	e, err := NewEngine(DefaultParams())
	require.NoError(t, err)

	p := e.Params()
	p.IntegrationPhasing[0] = 0.9
	assert.Equal(t, 0.5, e.Params().IntegrationPhasing[0])
}
