// Package scenario loads named deal scenarios (assumptions plus parameter
// overrides) from local files. Supported formats are YAML, JSON (malformed
// JSON is repaired), Hjson and HCL.
package scenario

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"synergy_valuation/pkg/core/valuation"
)

// Scenario is one deal case read from disk.
// Assumption fields missing from the file are zero; Params fields missing
// from the file keep the base values passed to the loader.
type Scenario struct {
	ID          string                `json:"id" yaml:"id"`
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description" yaml:"description"`
	Assumptions valuation.Assumptions `json:"assumptions" yaml:"assumptions"`
	Params      valuation.Params      `json:"params" yaml:"params"`

	// Source is the file the scenario was read from.
	Source string `json:"-" yaml:"-"`
}

// Engine builds a valuation engine from the scenario's parameters.
func (s *Scenario) Engine() (*valuation.Engine, error) {
	e, err := valuation.NewEngine(s.Params)
	if err != nil {
		return nil, eris.Wrapf(err, "scenario: %s params", s.Name)
	}
	return e, nil
}

// Format identifies a scenario file encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatHJSON Format = "hjson"
	FormatHCL   Format = "hcl"
)

// FormatFor maps a file extension to a Format.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".hjson":
		return FormatHJSON, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", eris.Errorf("scenario: unsupported file extension %q", filepath.Ext(path))
}

// Load reads and decodes the scenario at path.
func Load(path string, base valuation.Params) (*Scenario, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scenario: read %s", path)
	}

	s, err := Decode(format, filepath.Base(path), data, base)
	if err != nil {
		return nil, err
	}
	s.Source = path

	zap.L().Debug("scenario loaded",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.String("id", s.ID),
	)
	return s, nil
}

// Decode parses data in the given format. name is used for diagnostics and
// as the default scenario name.
func Decode(format Format, name string, data []byte, base valuation.Params) (*Scenario, error) {
	s := &Scenario{Params: base}
	s.Params.IntegrationPhasing = append([]float64(nil), base.IntegrationPhasing...)

	var err error
	switch format {
	case FormatYAML:
		err = decodeYAML(data, s)
	case FormatJSON:
		err = decodeJSON(data, s)
	case FormatHJSON:
		err = decodeHJSON(data, s)
	case FormatHCL:
		err = decodeHCL(name, data, s)
	default:
		err = eris.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "scenario: decode %s", name)
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return s, nil
}
