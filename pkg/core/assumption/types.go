// Package assumption implements the form-side state container for deal inputs.
// It owns coercion of raw field text (anything unparseable becomes zero),
// millions-to-units scaling of currency fields, and snapshotting into an
// immutable valuation.Assumptions record. The engine never sees raw input.
package assumption

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"synergy_valuation/pkg/core/valuation"
)

// =============================================================================
// FIELD REGISTRY
// =============================================================================

// Unit describes how a field is displayed in the form.
type Unit string

const (
	UnitCurrency Unit = "$"
	UnitMillions Unit = "$M"
	UnitPercent  Unit = "%"
)

const millionsScale = 1_000_000

// Field describes one input of the assumptions form.
type Field struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Unit  Unit   `json:"unit"`
	// Scale converts a displayed value into units (1e6 for $M fields).
	Scale float64 `json:"scale"`

	get func(*valuation.Assumptions) *float64
}

// Fields lists the form inputs in display order.
var Fields = []Field{
	{ID: "revenue", Label: "Revenue", Unit: UnitMillions, Scale: millionsScale, get: func(a *valuation.Assumptions) *float64 { return &a.Revenue }},
	{ID: "ebitdaMargin", Label: "EBITDA Margin", Unit: UnitPercent, Scale: 1, get: func(a *valuation.Assumptions) *float64 { return &a.EBITDAMargin }},
	{ID: "revenueGrowth", Label: "Revenue Growth", Unit: UnitPercent, Scale: 1, get: func(a *valuation.Assumptions) *float64 { return &a.RevenueGrowth }},
	{ID: "wacc", Label: "WACC", Unit: UnitPercent, Scale: 1, get: func(a *valuation.Assumptions) *float64 { return &a.WACC }},
	{ID: "terminalGrowth", Label: "Terminal Growth", Unit: UnitPercent, Scale: 1, get: func(a *valuation.Assumptions) *float64 { return &a.TerminalGrowth }},
	{ID: "taxRate", Label: "Tax Rate", Unit: UnitPercent, Scale: 1, get: func(a *valuation.Assumptions) *float64 { return &a.TaxRate }},
	{ID: "capex", Label: "Capex", Unit: UnitCurrency, Scale: 1, get: func(a *valuation.Assumptions) *float64 { return &a.Capex }},
	{ID: "deltaWC", Label: "Change in Working Capital", Unit: UnitCurrency, Scale: 1, get: func(a *valuation.Assumptions) *float64 { return &a.DeltaWC }},
	{ID: "maxSynergy", Label: "Max Synergy", Unit: UnitMillions, Scale: millionsScale, get: func(a *valuation.Assumptions) *float64 { return &a.MaxSynergy }},
	{ID: "integrationCost", Label: "Integration Cost", Unit: UnitMillions, Scale: millionsScale, get: func(a *valuation.Assumptions) *float64 { return &a.IntegrationCost }},
	{ID: "synergyRiskDiscount", Label: "Synergy Risk Discount", Unit: UnitPercent, Scale: 1, get: func(a *valuation.Assumptions) *float64 { return &a.SynergyRiskDiscount }},
}

// Lookup finds a field by ID.
func Lookup(id string) (Field, bool) {
	for _, f := range Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// =============================================================================
// COERCION
// =============================================================================

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Coerce parses the leading number of raw, ignoring surrounding whitespace and
// trailing garbage ("12.5%" -> 12.5). Empty or non-numeric input yields 0.
func Coerce(raw string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Only overflow reaches here.
		return 0
	}
	return v
}

// CoerceWhole parses the whole trimmed raw as a number. Anything else,
// including trailing text ("5M", "1,000"), yields 0. Scaled fields use it
// because their text is converted to a number before parsing.
func CoerceWhole(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// =============================================================================
// ASSUMPTION SET (Form State)
// =============================================================================

// AssumptionSet holds the current form values for one case/scenario.
// Values are stored in units. Not safe for concurrent use.
type AssumptionSet struct {
	CaseID     string             `json:"case_id"`
	ScenarioID string             `json:"scenario_id"`
	Values     map[string]float64 `json:"values"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAssumptionSet creates a set pre-filled with the reference deal.
func NewAssumptionSet(scenarioID string) *AssumptionSet {
	return FromAssumptions(scenarioID, valuation.DefaultAssumptions())
}

// FromAssumptions creates a set holding a.
func FromAssumptions(scenarioID string, a valuation.Assumptions) *AssumptionSet {
	now := time.Now()
	as := &AssumptionSet{
		CaseID:     uuid.NewString(),
		ScenarioID: scenarioID,
		Values:     make(map[string]float64, len(Fields)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, f := range Fields {
		as.Values[f.ID] = *f.get(&a)
	}
	return as
}

// Set applies raw form text for a field, scaling display units to units.
// Scaled fields only accept a whole number; others take its leading number.
func (as *AssumptionSet) Set(id, raw string) error {
	f, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("unknown field '%s'", id)
	}
	if f.Scale != 1 {
		return as.SetValue(id, CoerceWhole(raw)*f.Scale)
	}
	return as.SetValue(id, Coerce(raw))
}

// SetValue stores a value already expressed in units.
func (as *AssumptionSet) SetValue(id string, v float64) error {
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("unknown field '%s'", id)
	}
	as.Values[id] = v
	as.UpdatedAt = time.Now()
	return nil
}

// Value returns a field in units.
func (as *AssumptionSet) Value(id string) (float64, error) {
	if _, ok := Lookup(id); !ok {
		return 0, fmt.Errorf("unknown field '%s'", id)
	}
	return as.Values[id], nil
}

// Display returns a field in its form unit ($M fields divided by one million).
func (as *AssumptionSet) Display(id string) (float64, error) {
	f, ok := Lookup(id)
	if !ok {
		return 0, fmt.Errorf("unknown field '%s'", id)
	}
	return as.Values[id] / f.Scale, nil
}

// Assumptions snapshots the form into the engine's input record.
// Missing fields are zero.
func (as *AssumptionSet) Assumptions() valuation.Assumptions {
	var a valuation.Assumptions
	for _, f := range Fields {
		*f.get(&a) = as.Values[f.ID]
	}
	return a
}

// ToJSON serializes the set, e.g. to save form state between runs.
func (as *AssumptionSet) ToJSON() ([]byte, error) {
	return json.Marshal(as)
}

// FromJSON deserializes a set, rejecting unknown field IDs.
func FromJSON(data []byte) (*AssumptionSet, error) {
	var as AssumptionSet
	if err := json.Unmarshal(data, &as); err != nil {
		return nil, err
	}
	if as.Values == nil {
		as.Values = make(map[string]float64, len(Fields))
	}
	for id := range as.Values {
		if _, ok := Lookup(id); !ok {
			return nil, fmt.Errorf("unknown field '%s'", id)
		}
	}
	return &as, nil
}
