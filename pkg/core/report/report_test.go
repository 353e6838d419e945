package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synergy_valuation/pkg/core/valuation"
)

func referenceComparison(t *testing.T) *valuation.Comparison {
	t.Helper()
	c, err := valuation.Default().Compare(valuation.DefaultAssumptions())
	require.NoError(t, err)
	return c
}

func TestFormatter_Money(t *testing.T) {
	f := DefaultFormatter()

	tests := []struct {
		in   float64
		want string
	}{
		{101_252_887.254, "$101,252,887"},
		{1234.5, "$1,235"},
		{-1234.5, "-$1,235"},
		{0.4, "$0"},
		{-0.4, "$0"},
		{math.NaN(), NotAvailable},
		{math.Inf(1), NotAvailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Money(tt.in), "Money(%v)", tt.in)
	}

	assert.Equal(t, "+$5", f.Signed(5))
	assert.Equal(t, "-$5", f.Signed(-5))
	assert.Equal(t, "0.9091", f.Number(1/1.1, 4))
}

func TestFormatter_Locale(t *testing.T) {
	f, err := NewFormatter("de-DE", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", f.Currency())

	s := f.Money(1_234_567)
	assert.Contains(t, s, "1.234.567")
	assert.Contains(t, s, "€")

	f, err = NewFormatter("en-GB", "")
	require.NoError(t, err)
	assert.Equal(t, "GBP", f.Currency())
}

func TestNewFormatter_Errors(t *testing.T) {
	_, err := NewFormatter("not a locale!", "USD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse locale")

	_, err = NewFormatter("en-US", "QQQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse currency")
}

func TestPercentAndMultiple(t *testing.T) {
	assert.Equal(t, "30.9%", Percent(30.888))
	assert.Equal(t, "-2.5%", Percent(-2.5))
	assert.Equal(t, NotAvailable, Percent(math.NaN()))
	assert.Equal(t, "17.3x", Multiple(17.269))
	assert.Equal(t, NotAvailable, Multiple(math.NaN()))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":         FormatText,
		"TXT":      FormatText,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"html":     FormatHTML,
		" json ":   FormatJSON,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	tbl := &Table{
		Header: []string{"Case", "EV"},
		Rows: [][]string{
			{"bear", "$1"},
			{"a|b", "$100"},
			{"short"},
		},
	}

	md := tbl.Markdown()
	assert.Equal(t, "| Case | EV |\n| --- | ---: |\n| bear | $1 |\n| a&#124;b | $100 |\n| short |   |\n", md)

	txt := tbl.Text()
	lines := strings.Split(strings.TrimRight(txt, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Case     EV", lines[0])
	assert.Equal(t, "-----------", lines[1])
	assert.Equal(t, "bear     $1", lines[2])
	assert.Equal(t, "a|b    $100", lines[3])
	assert.Equal(t, "short", lines[4])
}

func TestBuild_ReferenceDeal(t *testing.T) {
	c := referenceComparison(t)
	doc := Build(c, nil)

	summary, ok := doc.Section(HeadingSummary)
	require.True(t, ok)
	assert.Contains(t, summary.Bullets[0], "$101,252,887")
	assert.Contains(t, summary.Bullets[1], "$132,528,339")
	assert.Contains(t, summary.Paragraphs[0], "$31,275,452 HIGHER")
	assert.Contains(t, summary.Paragraphs[0], "30.9%")
	require.Len(t, summary.Paragraphs, 2)

	perp, ok := doc.Section(HeadingPerpetuity)
	require.True(t, ok)
	assert.Contains(t, strings.Join(perp.Bullets, "\n"), "$2,560,000")
	assert.Contains(t, strings.Join(perp.Bullets, "\n"), "PV of 6 years: $11,149,467")
	assert.Contains(t, strings.Join(perp.Bullets, "\n"), "$23,389,219")
	assert.Contains(t, strings.Join(perp.Bullets, "\n"), "$34,538,687")

	integ, ok := doc.Section(HeadingIntegration)
	require.True(t, ok)
	assert.Contains(t, integ.Bullets[2], "17.3x")

	tail, ok := doc.Section(HeadingTailRisk)
	require.True(t, ok)
	assert.Equal(t, "EV_tail = EV × (1 - 15.0%)", tail.Formulas[0])
	assert.Equal(t, "EV = (30.0% × EV_bear) + (50.0% × EV_base) + (20.0% × EV_bull)", tail.Formulas[1])
	assert.Equal(t, "Haircut synergy-adjusted value: $112,649,088", tail.Bullets[0])
	assert.Contains(t, tail.Bullets[1], DefaultFormatter().Money(c.Weighted.EnterpriseValue))
	assert.Len(t, tail.Numbered, 3)

	corrected, ok := doc.Section(HeadingCorrected)
	require.True(t, ok)
	assert.Contains(t, strings.Join(corrected.Bullets, "\n"), "Maximum price: $98,627,887")
	require.NotNil(t, corrected.Table)
	assert.Len(t, corrected.Table.Rows, 4)
	assert.Equal(t, "Synergy tail PV", corrected.Table.Header[3])
	assert.NotEqual(t, "$0", corrected.Table.Rows[1][3])

	baseline, ok := doc.Section(HeadingBaseline)
	require.True(t, ok)
	require.NotNil(t, baseline.Table)
	assert.Len(t, baseline.Table.Rows, 5)
}

func TestBuild_ZeroIntegrationCost(t *testing.T) {
	a := valuation.DefaultAssumptions()
	a.IntegrationCost = 0
	c, err := valuation.Default().Compare(a)
	require.NoError(t, err)

	integ, ok := Build(c, nil).Section(HeadingIntegration)
	require.True(t, ok)
	assert.Contains(t, integ.Bullets[2], "undefined")
}

func TestMarkdown_TakeawaysOnce(t *testing.T) {
	md := Markdown(Build(referenceComparison(t), nil))

	assert.True(t, strings.HasPrefix(md, "# Merger Valuation Review\n"))
	assert.Equal(t, 1, strings.Count(md, "## "+HeadingTakeaways))
	assert.Equal(t, 1, strings.Count(md, "Never include synergies in terminal value"))
	assert.Contains(t, md, "| Year | Revenue |")
	assert.Contains(t, md, "```\nTerminal Value = (FCF + Synergy) × (1+g) / (WACC-g)\n```")
}

func TestText(t *testing.T) {
	txt := Text(Build(referenceComparison(t), nil))

	assert.True(t, strings.HasPrefix(txt, "MERGER VALUATION REVIEW\n=======================\n"))
	assert.Contains(t, txt, "\nSummary\n-------\n")
	assert.Contains(t, txt, "  • Traditional DCF enterprise value: $101,252,887")
	assert.Contains(t, txt, "  1. Never include synergies")
	assert.Equal(t, 1, strings.Count(txt, HeadingTakeaways))
}

func TestHTML(t *testing.T) {
	doc := &Document{
		Title: "A & B",
		Sections: []Section{{
			Heading: "Cases",
			Table: &Table{
				Header: []string{"Case", "EV"},
				Rows:   [][]string{{"bear", "-$5"}, {"base", NotAvailable}, {"bull", "$7"}},
			},
		}},
	}

	page, err := HTML(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>\n<html>"))

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "A & B", parsed.Find("title").Text())
	assert.Equal(t, "A & B", parsed.Find("h1").Text())
	assert.Equal(t, 1, parsed.Find("table.valuation").Length())
	assert.Equal(t, "-$5", parsed.Find("td.negative").Text())
	assert.Equal(t, NotAvailable, parsed.Find("td.na").Text())
	assert.Equal(t, 6, parsed.Find("td").Length())
	id, ok := parsed.Find("h2").Attr("id")
	assert.True(t, ok)
	assert.Equal(t, "cases", id)
}

func TestHTML_ReferenceDeal(t *testing.T) {
	page, err := HTML(Build(referenceComparison(t), nil))
	require.NoError(t, err)

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Find("table.valuation").Length())
	assert.Equal(t, len(Build(referenceComparison(t), nil).Sections), parsed.Find("h2").Length())
}

func TestJSON(t *testing.T) {
	a := valuation.DefaultAssumptions()
	a.IntegrationCost = 0
	c, err := valuation.Default().Compare(a)
	require.NoError(t, err)

	data, err := JSON(c, nil)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "USD", decoded["currency"])

	summary := decoded["summary"].(map[string]interface{})
	assert.Equal(t, "$101,252,887", summary["baseline_ev"])

	result := decoded["result"].(map[string]interface{})
	diag := result["diagnostics"].(map[string]interface{})
	v, present := diag["synergy_to_integration"]
	assert.True(t, present)
	assert.Nil(t, v)
	assert.InDelta(t, 2_560_000.0, diag["average_annual_synergy"], 1e-6)
	assert.NotNil(t, diag["percent_difference"])

	baseline := result["baseline"].(map[string]interface{})
	assert.InDelta(t, 101_252_887.254, baseline["enterprise_value"], 1e-3)
}

func TestRender(t *testing.T) {
	c := referenceComparison(t)
	for _, format := range Formats {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, format, c, DefaultFormatter()), format)
		assert.NotEmpty(t, buf.String(), format)
	}

	var buf bytes.Buffer
	assert.Error(t, Render(&buf, Format("pdf"), c, nil))
}
