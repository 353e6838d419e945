package report

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"synergy_valuation/pkg/core/valuation"
)

// SensitivityTable lays out one EV per (WACC, g) cell: WACC down the rows,
// terminal growth across the columns. Cells with WACC <= g print as n/a.
func SensitivityTable(g *valuation.SensitivityGrid, f *Formatter, adjusted bool) *Table {
	if f == nil {
		f = DefaultFormatter()
	}
	t := &Table{Header: []string{"WACC \\ g"}}
	for _, growth := range g.Growths {
		t.Header = append(t.Header, Percent(growth))
	}
	for i, wacc := range g.WACCs {
		row := []string{Percent(wacc)}
		for _, cell := range g.Cells[i] {
			switch {
			case !cell.Valid:
				row = append(row, NotAvailable)
			case adjusted:
				row = append(row, f.Money(cell.AdjustedEV))
			default:
				row = append(row, f.Money(cell.BaselineEV))
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// SensitivityDocument wraps both grids as a Document.
func SensitivityDocument(g *valuation.SensitivityGrid, f *Formatter) *Document {
	return &Document{
		Title: "Sensitivity of Enterprise Value",
		Sections: []Section{
			{Heading: "Traditional DCF", Table: SensitivityTable(g, f, false)},
			{Heading: "Synergy-adjusted model", Table: SensitivityTable(g, f, true)},
		},
	}
}

// RenderSensitivity writes g to w in the requested format.
func RenderSensitivity(w io.Writer, format Format, g *valuation.SensitivityGrid, f *Formatter) error {
	var (
		out string
		err error
	)
	switch format {
	case FormatText:
		out = Text(SensitivityDocument(g, f))
	case FormatMarkdown:
		out = Markdown(SensitivityDocument(g, f))
	case FormatHTML:
		out, err = HTML(SensitivityDocument(g, f))
	case FormatJSON:
		var data []byte
		data, err = json.MarshalIndent(g, "", "  ")
		out = string(data) + "\n"
	default:
		err = eris.Errorf("report: unknown format %q", format)
	}
	if err != nil {
		return eris.Wrap(err, "report: sensitivity")
	}
	if _, err := io.WriteString(w, out); err != nil {
		return eris.Wrap(err, "report: write")
	}
	return nil
}
