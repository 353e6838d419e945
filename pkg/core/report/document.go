package report

import (
	"fmt"
	"math"
	"strconv"

	"synergy_valuation/pkg/core/valuation"
)

// Document is a renderer-neutral explanation of a Comparison.
type Document struct {
	Title    string
	Sections []Section
}

// Section is a heading with optional prose, formulas, bullets and a table.
// Renderers emit the parts in field order.
type Section struct {
	Heading    string
	Paragraphs []string
	Formulas   []string
	Bullets    []string
	Numbered   []string
	Table      *Table
}

// Section headings, in document order.
const (
	HeadingSummary     = "Summary"
	HeadingBaseline    = "Baseline forecast"
	HeadingAdjusted    = "Synergy-adjusted forecast"
	HeadingPerpetuity  = "Problem 1: Synergies in perpetuity"
	HeadingIntegration = "Problem 2: Integration cost is trivial next to synergy value"
	HeadingCapture     = "Problem 3: The risk discount is optimism"
	HeadingRate        = "Problem 4: No discount-rate adjustment for synergy risk"
	HeadingTailRisk    = "Problem 5: Tail risk is applied after, not during"
	HeadingCorrected   = "Corrected approach"
	HeadingBottomLine  = "Bottom line"
	HeadingTakeaways   = "Key takeaways"
)

// Build assembles the explanatory document for c. Amounts are formatted with f.
func Build(c *valuation.Comparison, f *Formatter) *Document {
	if f == nil {
		f = DefaultFormatter()
	}
	b := builder{c: c, f: f}
	return &Document{
		Title: "Merger Valuation Review",
		Sections: []Section{
			b.summary(),
			b.forecast(HeadingBaseline, c.Baseline),
			b.forecast(HeadingAdjusted, c.Adjusted),
			b.perpetuity(),
			b.integration(),
			b.capture(),
			b.rate(),
			b.tailRisk(),
			b.corrected(),
			b.bottomLine(),
			b.takeaways(),
		},
	}
}

// Section returns the section with the given heading.
func (d *Document) Section(heading string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Heading == heading {
			return s, true
		}
	}
	return Section{}, false
}

type builder struct {
	c *valuation.Comparison
	f *Formatter
}

func (b builder) summary() Section {
	d := b.c.Diagnostics
	direction := "HIGHER"
	if d.AbsoluteDifference < 0 {
		direction = "LOWER"
	}
	s := Section{
		Heading: HeadingSummary,
		Bullets: []string{
			"Traditional DCF enterprise value: " + b.f.Money(b.c.Baseline.EnterpriseValue),
			"Synergy-adjusted enterprise value: " + b.f.Money(b.c.Adjusted.EnterpriseValue),
		},
	}
	s.Paragraphs = []string{fmt.Sprintf("The synergy-adjusted model is %s %s than the traditional DCF (%s).",
		b.f.Money(math.Abs(d.AbsoluteDifference)), direction, Percent(d.PercentDifference))}
	if d.AbsoluteDifference > 0 && b.c.Assumptions.SynergyRiskDiscount > 0 {
		s.Paragraphs = append(s.Paragraphs,
			"A model that applies risk adjustments should not produce a higher value. The adjustments are adding value, not removing risk.")
	}
	return s
}

func (b builder) forecast(heading string, r valuation.ValuationResult) Section {
	t := &Table{Header: []string{"Year", "Revenue", "EBITDA", "NOPAT", "Synergy", "Integration", "FCF", "Discount factor", "PV"}}
	for _, y := range r.Years {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(y.Year),
			b.f.Money(y.Revenue),
			b.f.Money(y.EBITDA),
			b.f.Money(y.NOPAT),
			b.f.Money(y.Synergy),
			b.f.Money(y.IntegrationCost),
			b.f.Money(y.FreeCashFlow),
			b.f.Number(y.DiscountFactor, 4),
			b.f.Money(y.PresentValue),
		})
	}
	return Section{
		Heading: heading,
		Table:   t,
		Bullets: []string{
			"PV of forecast: " + b.f.Money(r.PresentValueOfForecast),
			"Terminal value: " + b.f.Money(r.TerminalValue) + " (PV " + b.f.Money(r.PresentValueOfTerminal) + ")",
			"Enterprise value: " + b.f.Money(r.EnterpriseValue),
		},
	}
}

func (b builder) perpetuity() Section {
	d := b.c.Diagnostics
	p := b.c.Params
	return Section{
		Heading:    HeadingPerpetuity,
		Paragraphs: []string{"The naive model adds the average synergy to the final-year cash flow, so the terminal value assumes synergies continue forever."},
		Formulas:   []string{"Terminal Value = (FCF + Synergy) × (1+g) / (WACC-g)"},
		Bullets: []string{
			"Synergy per year: ~" + b.f.Money(d.AverageAnnualSynergy),
			fmt.Sprintf("PV of %d years: %s", p.SynergyAnnuityPeriods, b.f.Money(d.SynergyPVForecast)),
			"Perpetuity value at the horizon: " + b.f.Money(d.SynergyPerpetuity),
			"Value in terminal (forever): " + b.f.Money(d.SynergyPVTerminal),
			"Total synergy value added: " + b.f.Money(d.TotalSynergyValue),
		},
		Numbered: []string{
			"Exclude synergies from terminal value: TV = (FCF_base × (1+g)) / (WACC-g)",
			fmt.Sprintf("Decay synergies to zero over %d years: Synergy_t = MaxSynergy × (1 - t/%d)", p.SynergyDecayYears, p.SynergyDecayYears),
		},
	}
}

func (b builder) integration() Section {
	d := b.c.Diagnostics
	ratio := "Ratio: undefined (no integration cost entered)"
	if !math.IsNaN(d.SynergyToIntegration) {
		ratio = "Ratio: " + Multiple(d.SynergyToIntegration) + " more value from synergies than cost"
	}
	phasing := ""
	for i, share := range b.c.Params.IntegrationPhasing {
		if i > 0 {
			phasing += ", "
		}
		phasing += fmt.Sprintf("Year %d = %s", i+1, Percent(share*100))
	}
	return Section{
		Heading: HeadingIntegration,
		Bullets: []string{
			"Integration cost (year 1 only): " + b.f.Money(b.c.Assumptions.IntegrationCost),
			"Total synergy value: " + b.f.Money(d.TotalSynergyValue),
			ratio,
		},
		Paragraphs: []string{
			fmt.Sprintf("Integration should span several years and total about %sx the annual synergy (%s). Phased: %s.",
				decimalString(b.c.Params.IntegrationToSynergy), b.f.Money(b.c.Ceiling.IntegrationTotal), phasing),
		},
	}
}

func (b builder) capture() Section {
	a := b.c.Assumptions
	p := b.c.Params
	implied := math.NaN()
	if a.MaxSynergy != 0 {
		implied = b.c.Diagnostics.AverageAnnualSynergy / a.MaxSynergy * 100
	}
	cc := p.CaptureCases
	return Section{
		Heading: HeadingCapture,
		Formulas: []string{fmt.Sprintf("Synergy = MaxSynergy × %s × %s × (1 - %s)",
			decimalString(p.RampFactor), decimalString(p.RealizationFactor), Percent(a.SynergyRiskDiscount))},
		Paragraphs: []string{fmt.Sprintf("The model still assumes %s of maximum synergies are captured. Studies show only 30-50%% are realized.",
			Percent(implied))},
		Bullets: []string{
			fmt.Sprintf("Conservative case: %s of max synergies", Percent(cc.Bear*100)),
			fmt.Sprintf("Base case: %s of max synergies", Percent(cc.Base*100)),
			fmt.Sprintf("Optimistic case: %s of max synergies", Percent(cc.Bull*100)),
		},
	}
}

func (b builder) rate() Section {
	return Section{
		Heading: HeadingRate,
		Paragraphs: []string{fmt.Sprintf("Synergies are discounted at the same WACC (%s) as base cash flows, although they depend on successful integration.",
			Percent(b.c.Assumptions.WACC))},
		Formulas: []string{fmt.Sprintf("Synergy Discount Rate = WACC + %s = %s",
			Percent(b.c.Params.SynergyRiskPremium), Percent(b.c.Ceiling.SynergyDiscountRate))},
	}
}

func (b builder) tailRisk() Section {
	p := b.c.Params
	w := p.ScenarioWeights
	return Section{
		Heading: HeadingTailRisk,
		Paragraphs: []string{
			fmt.Sprintf("The full value is computed first and then cut by %s at the end. Risk belongs in the discount rate or the scenarios, not in a closing haircut.",
				Percent(p.TailRiskHaircut)),
		},
		Formulas: []string{
			fmt.Sprintf("EV_tail = EV × (1 - %s)", Percent(p.TailRiskHaircut)),
			fmt.Sprintf("EV = (%s × EV_bear) + (%s × EV_base) + (%s × EV_bull)", Percent(w.Bear*100), Percent(w.Base*100), Percent(w.Bull*100)),
		},
		Bullets: []string{
			"Haircut synergy-adjusted value: " + b.f.Money(b.c.TailAdjustedEV),
			"Scenario-weighted corrected value: " + b.f.Money(b.c.Weighted.EnterpriseValue),
		},
		Numbered: []string{
			"Increase WACC to reflect acquisition risk (add 2-3%)",
			"Or weight the bear, base and bull capture cases by probability",
			"Do not combine a higher WACC with a tail haircut (double counting)",
		},
	}
}

func (b builder) corrected() Section {
	cb := b.c.Ceiling
	p := b.c.Params
	t := &Table{Header: []string{"Case", "Capture", "Weight", "Synergy tail PV", "Enterprise value"}}
	for _, sv := range b.c.Weighted.Cases {
		t.Rows = append(t.Rows, []string{sv.Case, Percent(sv.Capture * 100), Percent(sv.Weight * 100),
			b.f.Money(sv.Result.PresentValueOfSynergyTail), b.f.Money(sv.Result.EnterpriseValue)})
	}
	t.Rows = append(t.Rows, []string{"weighted", "", "", "", b.f.Money(b.c.Weighted.EnterpriseValue)})

	return Section{
		Heading: HeadingCorrected,
		Bullets: []string{
			"Base DCF (no synergies): " + b.f.Money(cb.BaselineEV),
			fmt.Sprintf("Conservative synergies: %s × %s = %s", b.f.Money(b.c.Assumptions.MaxSynergy), Percent(p.ConservativeCapture*100), b.f.Money(cb.ConservativeSynergy)),
			fmt.Sprintf("PV of synergies (annuity factor %s at %s): ~%s", decimalString(p.CeilingAnnuityFactor), Percent(cb.SynergyDiscountRate), b.f.Signed(cb.SynergyValue)),
			fmt.Sprintf("Integration: %s × %s = %s, discounted ~%s", decimalString(p.IntegrationToSynergy), b.f.Money(b.c.Assumptions.MaxSynergy), b.f.Money(cb.IntegrationTotal), b.f.Signed(-cb.IntegrationPV)),
			"Maximum price: " + b.f.Money(cb.Ceiling),
		},
		Table: t,
	}
}

func (b builder) bottomLine() Section {
	return Section{
		Heading: HeadingBottomLine,
		Bullets: []string{
			"Synergy-adjusted model (overvalued): " + b.f.Money(b.c.Adjusted.EnterpriseValue),
			"Traditional DCF (floor value): " + b.f.Money(b.c.Baseline.EnterpriseValue),
			"Corrected approach (realistic ceiling): " + b.f.Money(b.c.Ceiling.Ceiling),
			"Scenario-weighted corrected model: " + b.f.Money(b.c.Weighted.EnterpriseValue),
		},
	}
}

func (b builder) takeaways() Section {
	d := b.c.Diagnostics
	return Section{
		Heading: HeadingTakeaways,
		Numbered: []string{
			"Never include synergies in terminal value. They are finite gains, not perpetual growth. This alone adds " + b.f.Money(d.SynergyPVTerminal) + ".",
			"Integration costs should be 1.5-2x annual synergy, not " + b.f.Money(b.c.Assumptions.IntegrationCost) + " against synergies worth " + b.f.Money(d.TotalSynergyValue) + ".",
			"Assume 30-50% synergy capture, not 70-80%.",
			"Discount synergies at a higher rate: WACC + 3-8% depending on risk.",
			"Build risk into the model instead of applying haircuts at the end.",
		},
	}
}

func decimalString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
