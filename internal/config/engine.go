package config

import (
	"os"

	"sigs.k8s.io/yaml"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
	"github.com/GriffinCanCode/phash/pkg/filter"
	"github.com/GriffinCanCode/phash/pkg/hashing"
)

// Engine builds an unlocked hash engine, from EngineFile when set and from
// Algorithm, Resolution and Filters otherwise.
func (c *Config) Engine() (*hashing.Engine, error) {
	if c.EngineFile != "" {
		hc, err := ReadEngineFile(c.EngineFile)
		if err != nil {
			return nil, err
		}
		return hashing.Restore(hc)
	}

	enc, err := hashing.EncoderFor(hashing.Kind(c.Algorithm))
	if err != nil {
		return nil, err
	}
	e, err := hashing.NewEngine(enc, c.Resolution)
	if err != nil {
		return nil, err
	}
	filters, err := filter.ParseList(c.Filters)
	if err != nil {
		return nil, err
	}
	for _, f := range filters {
		if err := e.AddFilter(f); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ReadEngineFile loads an exported engine config. YAML and JSON are both accepted.
func ReadEngineFile(path string) (hashing.Config, error) {
	var hc hashing.Config
	data, err := os.ReadFile(path)
	if err != nil {
		return hc, apperrors.Wrapf(err, apperrors.CodeNotFound, "read engine file %s", path)
	}
	if err := yaml.Unmarshal(data, &hc); err != nil {
		return hc, apperrors.Wrapf(err, apperrors.CodeInvalidArgument, "parse engine file %s", path)
	}
	return hc, nil
}

// MarshalEngine renders an engine config as YAML.
func MarshalEngine(hc hashing.Config) ([]byte, error) {
	return yaml.Marshal(hc)
}

// WriteEngineFile writes hc to path as YAML.
func WriteEngineFile(path string, hc hashing.Config) error {
	data, err := MarshalEngine(hc)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "encode engine config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.Wrapf(err, apperrors.CodeInternal, "write engine file %s", path)
	}
	return nil
}
