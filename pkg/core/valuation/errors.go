package valuation

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError reports inputs or parameters for which a formula has no
// economically meaningful result (e.g. WACC <= terminal growth).
type DomainError struct {
	Field  string
	Reason string
	Values []float64
}

func (e *DomainError) Error() string {
	if len(e.Values) == 0 {
		return fmt.Sprintf("valuation: %s %s", e.Field, e.Reason)
	}
	vals := make([]string, len(e.Values))
	for i, v := range e.Values {
		vals[i] = fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("valuation: %s %s (got %s)", e.Field, e.Reason, strings.Join(vals, ", "))
}

// UndefinedRatioError reports a ratio whose denominator is zero.
type UndefinedRatioError struct {
	Numerator   string
	Denominator string
}

func (e *UndefinedRatioError) Error() string {
	return fmt.Sprintf("valuation: %s / %s is undefined (denominator is zero)", e.Numerator, e.Denominator)
}

// IsDomainError reports whether err (or anything it wraps) is a *DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// IsUndefinedRatio reports whether err (or anything it wraps) is an *UndefinedRatioError.
func IsUndefinedRatio(err error) bool {
	var ue *UndefinedRatioError
	return errors.As(err, &ue)
}
