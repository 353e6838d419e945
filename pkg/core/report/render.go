// Package report explains a valuation.Comparison in plain text, Markdown,
// HTML or JSON. Amounts are formatted per locale; the engine never formats.
package report

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"synergy_valuation/pkg/core/valuation"
)

// Format selects an output renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats lists the accepted values of ParseFormat.
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON}

// ParseFormat accepts a format name or a common alias ("md", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", eris.Errorf("report: unknown format %q", s)
}

// Render writes c to w in the requested format.
func Render(w io.Writer, format Format, c *valuation.Comparison, f *Formatter) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatText:
		out = []byte(Text(Build(c, f)))
	case FormatMarkdown:
		out = []byte(Markdown(Build(c, f)))
	case FormatHTML:
		var html string
		html, err = HTML(Build(c, f))
		out = []byte(html)
	case FormatJSON:
		out, err = JSON(c, f)
	default:
		err = eris.Errorf("report: unknown format %q", format)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return eris.Wrap(err, "report: write")
	}
	return nil
}

// Markdown renders d as CommonMark with GFM tables.
func Markdown(d *Document) string {
	var sb strings.Builder
	sb.WriteString("# " + d.Title + "\n")
	for _, s := range d.Sections {
		sb.WriteString("\n## " + s.Heading + "\n")
		for _, p := range s.Paragraphs {
			sb.WriteString("\n" + p + "\n")
		}
		if len(s.Formulas) > 0 {
			sb.WriteString("\n```\n")
			for _, f := range s.Formulas {
				sb.WriteString(f + "\n")
			}
			sb.WriteString("```\n")
		}
		if len(s.Bullets) > 0 {
			sb.WriteString("\n")
			for _, b := range s.Bullets {
				sb.WriteString("- " + b + "\n")
			}
		}
		if len(s.Numbered) > 0 {
			sb.WriteString("\n")
			for i, n := range s.Numbered {
				sb.WriteString(strconv.Itoa(i+1) + ". " + n + "\n")
			}
		}
		if s.Table != nil {
			sb.WriteString("\n" + s.Table.Markdown())
		}
	}
	return sb.String()
}

// Text renders d for a terminal.
func Text(d *Document) string {
	var sb strings.Builder
	title := strings.ToUpper(d.Title)
	sb.WriteString(title + "\n" + strings.Repeat("=", len(title)) + "\n")
	for _, s := range d.Sections {
		sb.WriteString("\n" + s.Heading + "\n" + strings.Repeat("-", len([]rune(s.Heading))) + "\n")
		for _, p := range s.Paragraphs {
			sb.WriteString(p + "\n")
		}
		for _, f := range s.Formulas {
			sb.WriteString("    " + f + "\n")
		}
		for _, b := range s.Bullets {
			sb.WriteString("  • " + b + "\n")
		}
		for i, n := range s.Numbered {
			sb.WriteString("  " + strconv.Itoa(i+1) + ". " + n + "\n")
		}
		if s.Table != nil {
			sb.WriteString("\n" + s.Table.Text())
		}
	}
	return sb.String()
}

// jsonDiagnostics shadows the NaN-capable fields with pointers; JSON has no
// NaN, so those sentinels encode as null.
type jsonDiagnostics struct {
	valuation.Diagnostics
	PercentDifference    *float64 `json:"percent_difference"`
	SynergyToIntegration *float64 `json:"synergy_to_integration"`
}

type jsonComparison struct {
	*valuation.Comparison
	Diagnostics jsonDiagnostics `json:"diagnostics"`
}

// JSON encodes c with a formatted headline summary.
func JSON(c *valuation.Comparison, f *Formatter) ([]byte, error) {
	if f == nil {
		f = DefaultFormatter()
	}
	out := struct {
		Currency string            `json:"currency"`
		Summary  map[string]string `json:"summary"`
		Result   jsonComparison    `json:"result"`
	}{
		Currency: f.Currency(),
		Summary: map[string]string{
			"baseline_ev":        f.Money(c.Baseline.EnterpriseValue),
			"adjusted_ev":        f.Money(c.Adjusted.EnterpriseValue),
			"difference":         f.Money(c.Diagnostics.AbsoluteDifference),
			"percent_difference": Percent(c.Diagnostics.PercentDifference),
			"ceiling":            f.Money(c.Ceiling.Ceiling),
			"weighted_ev":        f.Money(c.Weighted.EnterpriseValue),
		},
		Result: jsonComparison{
			Comparison: c,
			Diagnostics: jsonDiagnostics{
				Diagnostics:          c.Diagnostics,
				PercentDifference:    finite(c.Diagnostics.PercentDifference),
				SynergyToIntegration: finite(c.Diagnostics.SynergyToIntegration),
			},
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "report: encode json")
	}
	return append(data, '\n'), nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
