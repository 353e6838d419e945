package report

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is printed for NaN sentinels.
const NotAvailable = "n/a"

// Formatter renders amounts for one locale and currency.
// Amounts are rounded half away from zero to whole currency units.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	printer *message.Printer
	symbol  string
}

// NewFormatter parses a BCP 47 locale and an ISO 4217 code. An empty code
// selects the locale's own currency.
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, eris.Wrapf(err, "report: parse locale %q", locale)
	}

	var unit currency.Unit
	if code == "" {
		var conf language.Confidence
		unit, conf = currency.FromTag(tag)
		if conf == language.No {
			return nil, eris.Errorf("report: no currency for locale %q", locale)
		}
	} else {
		unit, err = currency.ParseISO(code)
		if err != nil {
			return nil, eris.Wrapf(err, "report: parse currency %q", code)
		}
	}

	p := message.NewPrinter(tag)
	return &Formatter{
		tag:     tag,
		unit:    unit,
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
	}, nil
}

// DefaultFormatter formats US dollars for en-US.
func DefaultFormatter() *Formatter {
	f, _ := NewFormatter("en-US", "USD")
	return f
}

// Currency returns the ISO code in use.
func (f *Formatter) Currency() string { return f.unit.String() }

// Round returns v rounded to whole units.
func Round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(0)
}

// Money formats v as "$101,252,887". Negative amounts are "-$1,234".
func (f *Formatter) Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	d := Round(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + f.symbol + f.printer.Sprint(number.Decimal(d.IntPart()))
}

// Signed is Money with an explicit "+" on non-negative amounts.
func (f *Formatter) Signed(v float64) string {
	s := f.Money(v)
	if s != NotAvailable && !Round(v).IsNegative() {
		return "+" + s
	}
	return s
}

// Number formats v with locale grouping and the given number of decimals.
func (f *Formatter) Number(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return f.printer.Sprint(number.Decimal(v, number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)))
}

// Percent formats a value already expressed in percent, e.g. 30.9 → "30.9%".
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// Multiple formats a ratio as "17.3x".
func Multiple(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(1) + "x"
}

func (f *Formatter) String() string {
	return fmt.Sprintf("%s/%s", f.tag, f.unit)
}
