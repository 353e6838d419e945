package assumption

import (
	"testing"

	"synergy_valuation/pkg/core/valuation"
)

func TestNewAssumptionSet(t *testing.T) {
	as := NewAssumptionSet("base")

	if as.CaseID == "" {
		t.Error("CaseID should be generated")
	}
	if as.ScenarioID != "base" {
		t.Errorf("expected scenario ID 'base', got '%s'", as.ScenarioID)
	}
	if len(as.Values) != len(Fields) {
		t.Errorf("expected %d values, got %d", len(Fields), len(as.Values))
	}
	if as.Assumptions() != valuation.DefaultAssumptions() {
		t.Error("new set should hold the reference deal")
	}
}

func TestNewAssumptionSet_UniqueCaseIDs(t *testing.T) {
	a := NewAssumptionSet("base")
	b := NewAssumptionSet("base")
	if a.CaseID == b.CaseID {
		t.Errorf("expected distinct case IDs, both were '%s'", a.CaseID)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"12.5", 12.5},
		{"  8 ", 8},
		{"20%", 20},
		{"-3", -3},
		{".5", 0.5},
		{"1e3", 1000},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"$50", 0},
	}

	for _, tt := range tests {
		if got := Coerce(tt.raw); got != tt.want {
			t.Errorf("Coerce(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestCoerceWhole(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"5", 5},
		{" 2.5 ", 2.5},
		{"-1", -1},
		{"1e1", 10},
		{"5M", 0},
		{"1,000", 0},
		{"20%", 0},
		{"", 0},
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, tt := range tests {
		if got := CoerceWhole(tt.raw); got != tt.want {
			t.Errorf("CoerceWhole(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestAssumptionSet_SetMillionsRejectsTrailingText(t *testing.T) {
	as := NewAssumptionSet("base")

	for _, raw := range []string{"5M", "1,000", "3 million"} {
		if err := as.Set("maxSynergy", raw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := as.Assumptions().MaxSynergy; got != 0 {
			t.Errorf("Set(maxSynergy, %q): expected 0, got %v", raw, got)
		}
	}

	// Unscaled fields keep the leading-number parse.
	if err := as.Set("taxRate", "25%"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := as.Assumptions().TaxRate; got != 25 {
		t.Errorf("expected TaxRate 25, got %v", got)
	}
}

func TestAssumptionSet_SetScalesMillions(t *testing.T) {
	as := NewAssumptionSet("base")

	if err := as.Set("revenue", "75"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := as.Value("revenue"); got != 75_000_000 {
		t.Errorf("expected revenue 75,000,000, got %.0f", got)
	}
	if got, _ := as.Display("revenue"); got != 75 {
		t.Errorf("expected display 75, got %v", got)
	}

	if err := as.Set("wacc", "12"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if as.Assumptions().WACC != 12 {
		t.Errorf("expected WACC 12, got %v", as.Assumptions().WACC)
	}
}

func TestAssumptionSet_SetGarbageIsZero(t *testing.T) {
	as := NewAssumptionSet("base")
	before := as.UpdatedAt

	if err := as.Set("maxSynergy", "lots"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if as.Assumptions().MaxSynergy != 0 {
		t.Errorf("expected MaxSynergy 0, got %v", as.Assumptions().MaxSynergy)
	}
	if as.UpdatedAt.Before(before) {
		t.Error("UpdatedAt should not move backwards")
	}
}

func TestAssumptionSet_UnknownField(t *testing.T) {
	as := NewAssumptionSet("base")

	if err := as.Set("ebit", "5"); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if err := as.SetValue("ebit", 5); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if _, err := as.Value("ebit"); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if _, err := as.Display("ebit"); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("integrationCost")
	if !ok {
		t.Fatal("integrationCost should be registered")
	}
	if f.Unit != UnitMillions {
		t.Errorf("expected unit $M, got %s", f.Unit)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("unexpected field 'nope'")
	}
}

func TestAssumptionSet_ToFromJSON(t *testing.T) {
	as := NewAssumptionSet("base")
	_ = as.Set("taxRate", "25")

	data, err := as.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}

	restored, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON error: %v", err)
	}
	if restored.CaseID != as.CaseID {
		t.Errorf("expected case ID '%s', got '%s'", as.CaseID, restored.CaseID)
	}
	if restored.Assumptions() != as.Assumptions() {
		t.Error("round trip changed assumptions")
	}
}

func TestFromJSON_RejectsUnknownField(t *testing.T) {
	_, err := FromJSON([]byte(`{"case_id":"x","values":{"ebit":1}}`))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestFromJSON_MissingValues(t *testing.T) {
	as, err := FromJSON([]byte(`{"case_id":"x"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if as.Assumptions() != (valuation.Assumptions{}) {
		t.Error("missing values should snapshot as zero")
	}
}
