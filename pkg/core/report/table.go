package report

import (
	"strings"
	"unicode/utf8"
)

// Table is a header row plus body rows of preformatted cells.
// Every column except the first is right aligned.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t *Table) width() int {
	n := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func (t *Table) cell(row []string, col int) string {
	if col >= len(row) || row[col] == "" {
		return " "
	}
	return strings.ReplaceAll(row[col], "|", "&#124;")
}

// Markdown renders a pipe table.
func (t *Table) Markdown() string {
	cols := t.width()
	var sb strings.Builder

	writeRow := func(row []string) {
		sb.WriteString("|")
		for c := 0; c < cols; c++ {
			sb.WriteString(" " + t.cell(row, c) + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(t.Header)
	sb.WriteString("|")
	for c := 0; c < cols; c++ {
		if c == 0 {
			sb.WriteString(" --- |")
		} else {
			sb.WriteString(" ---: |")
		}
	}
	sb.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}

// Text renders fixed-width columns separated by two spaces.
func (t *Table) Text() string {
	cols := t.width()
	widths := make([]int, cols)
	all := append([][]string{t.Header}, t.Rows...)
	for _, row := range all {
		for c := 0; c < cols && c < len(row); c++ {
			if n := utf8.RuneCountInString(row[c]); n > widths[c] {
				widths[c] = n
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		var line strings.Builder
		for c := 0; c < cols; c++ {
			v := ""
			if c < len(row) {
				v = row[c]
			}
			pad := strings.Repeat(" ", widths[c]-utf8.RuneCountInString(v))
			if c > 0 {
				line.WriteString("  ")
				line.WriteString(pad + v)
			} else {
				line.WriteString(v + pad)
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}

	writeRow(t.Header)
	total := 0
	for c, w := range widths {
		total += w
		if c > 0 {
			total += 2
		}
	}
	sb.WriteString(strings.Repeat("-", total) + "\n")
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}
