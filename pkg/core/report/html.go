package report

import (
	"bytes"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

const stylesheet = `body{font-family:sans-serif;max-width:72rem;margin:2rem auto;line-height:1.5}
table.valuation{border-collapse:collapse;margin:1rem 0}
table.valuation td,table.valuation th{border:1px solid #ccc;padding:.25rem .5rem}
td.negative{color:#b00020}
td.na{color:#888}`

// HTML renders d as a standalone page. The Markdown rendering goes through
// goldmark; tables are then tagged so negative and missing amounts can be styled.
func HTML(d *Document) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(d)), &body); err != nil {
		return "", eris.Wrap(err, "report: render markdown")
	}

	doc, err := goquery.NewDocumentFromReader(&body)
	if err != nil {
		return "", eris.Wrap(err, "report: parse html")
	}

	doc.Find("head").AppendHtml(`<meta charset="utf-8"><title>` + html.EscapeString(d.Title) + `</title><style>` + stylesheet + `</style>`)
	doc.Find("table").AddClass("valuation")
	doc.Find("td").Each(func(_ int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		switch {
		case text == NotAvailable:
			cell.AddClass("na")
		case len(text) > 1 && strings.HasPrefix(text, "-"):
			cell.AddClass("negative")
		}
	})

	page, err := doc.Html()
	if err != nil {
		return "", eris.Wrap(err, "report: serialize html")
	}
	return "<!DOCTYPE html>\n" + page + "\n", nil
}
