package main

import (
	"os"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"synergy_valuation/pkg/core/assumption"
	"synergy_valuation/pkg/core/scenario"
	"synergy_valuation/pkg/core/valuation"
)

// flagName turns a field ID into a flag name: "ebitdaMargin" -> "ebitda-margin",
// "deltaWC" -> "delta-wc".
func flagName(id string) string {
	var sb strings.Builder
	prevLower := false
	for _, r := range id {
		if unicode.IsUpper(r) {
			if prevLower {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			prevLower = false
			continue
		}
		sb.WriteRune(r)
		prevLower = true
	}
	return sb.String()
}

// addInputFlags registers --scenario, --inputs and one flag per form field.
func addInputFlags(f *pflag.FlagSet) {
	f.String("scenario", "", "scenario file (.yaml, .json, .hjson, .hcl)")
	f.String("inputs", "", "saved form state (JSON) to start from")
	for _, field := range assumption.Fields {
		f.String(flagName(field.ID), "", field.Label+" ("+string(field.Unit)+")")
	}
}

// inputs is the resolved engine input for one command run.
type inputs struct {
	Name   string
	Params valuation.Params
	Form   *assumption.AssumptionSet
}

// resolveInputs layers config, then --scenario or --inputs, then field flags.
func resolveInputs(f *pflag.FlagSet) (*inputs, error) {
	in := &inputs{Name: "config", Params: cfg.Params}
	a := cfg.Assumptions

	if path, _ := f.GetString("scenario"); path != "" {
		s, err := scenario.Load(path, cfg.Params)
		if err != nil {
			return nil, err
		}
		in.Name, in.Params, a = s.Name, s.Params, s.Assumptions
	}
	in.Form = assumption.FromAssumptions(in.Name, a)

	if path, _ := f.GetString("inputs"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "read inputs %s", path)
		}
		form, err := assumption.FromJSON(data)
		if err != nil {
			return nil, eris.Wrapf(err, "decode inputs %s", path)
		}
		in.Form = form
	}

	for _, field := range assumption.Fields {
		name := flagName(field.ID)
		if !f.Changed(name) {
			continue
		}
		raw, _ := f.GetString(name)
		if err := in.Form.Set(field.ID, raw); err != nil {
			return nil, eris.Wrap(err, "apply flag")
		}
		zap.L().Debug("assumption overridden", zap.String("field", field.ID), zap.String("raw", raw))
	}
	return in, nil
}
