package scenario

import (
	"encoding/json"
	"path/filepath"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsimple"
	hjson "github.com/hjson/hjson-go/v4"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"synergy_valuation/pkg/core/valuation"
)

func decodeYAML(data []byte, s *Scenario) error {
	if err := yaml.Unmarshal(data, s); err != nil {
		return eris.Wrap(err, "yaml")
	}
	return nil
}

// decodeJSON tries strict JSON first, then a repaired copy (trailing commas,
// single quotes, comments, unclosed braces), then Hjson as the most lenient.
func decodeJSON(data []byte, s *Scenario) error {
	strictErr := json.Unmarshal(data, s)
	if strictErr == nil {
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(string(data))
	if err == nil {
		if err := json.Unmarshal([]byte(repaired), s); err == nil {
			zap.L().Warn("scenario JSON was malformed and has been repaired", zap.Error(strictErr))
			return nil
		}
	}

	if err := decodeHJSON(data, s); err == nil {
		zap.L().Warn("scenario JSON parsed as Hjson", zap.Error(strictErr))
		return nil
	}
	return eris.Wrap(strictErr, "json")
}

// decodeHJSON converts Hjson to standard JSON so the json struct tags apply.
func decodeHJSON(data []byte, s *Scenario) error {
	var generic interface{}
	if err := hjson.Unmarshal(data, &generic); err != nil {
		return eris.Wrap(err, "hjson")
	}
	normalized, err := json.Marshal(generic)
	if err != nil {
		return eris.Wrap(err, "hjson: normalize")
	}
	if err := json.Unmarshal(normalized, s); err != nil {
		return eris.Wrap(err, "hjson")
	}
	return nil
}

// hclFile mirrors Scenario with HCL blocks:
//
//	name = "Reference deal"
//	assumptions {
//	  revenue = 50000000
//	  wacc    = 10
//	}
//	params {
//	  ramp_factor = 0.8
//	  capture_cases {
//	    bear = 0.3
//	    base = 0.5
//	    bull = 0.7
//	  }
//	}
type hclFile struct {
	ID          string                 `hcl:"id,optional"`
	Name        string                 `hcl:"name,optional"`
	Description string                 `hcl:"description,optional"`
	Assumptions *valuation.Assumptions `hcl:"assumptions,block"`
	Params      *hclParams             `hcl:"params,block"`
}

type hclParams struct {
	CaptureCases    *valuation.CaseRates `hcl:"capture_cases,block"`
	ScenarioWeights *valuation.CaseRates `hcl:"scenario_weights,block"`
	Remain          hcl.Body             `hcl:",remain"`
}

func decodeHCL(name string, data []byte, s *Scenario) error {
	// hclsimple picks the syntax from the file extension.
	if filepath.Ext(name) != ".hcl" {
		name += ".hcl"
	}

	var f hclFile
	if err := hclsimple.Decode(name, data, nil, &f); err != nil {
		return eris.Wrap(err, "hcl")
	}

	s.ID, s.Name, s.Description = f.ID, f.Name, f.Description
	if f.Assumptions != nil {
		s.Assumptions = *f.Assumptions
	}
	if f.Params == nil {
		return nil
	}
	if diags := gohcl.DecodeBody(f.Params.Remain, nil, &s.Params); diags.HasErrors() {
		return eris.Wrap(diags, "hcl: params")
	}
	if f.Params.CaptureCases != nil {
		s.Params.CaptureCases = *f.Params.CaptureCases
	}
	if f.Params.ScenarioWeights != nil {
		s.Params.ScenarioWeights = *f.Params.ScenarioWeights
	}
	return nil
}
