package hashing

import (
	"github.com/hashicorp/go-multierror"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
	"github.com/GriffinCanCode/phash/pkg/filter"
)

// Config is the exported configuration of an engine. Restoring it yields an
// engine with the same AlgorithmID and the same fingerprints.
type Config struct {
	Version    int                 `json:"version"`
	Kind       Kind                `json:"kind"`
	Resolution int                 `json:"resolution"`
	Filters    []filter.Descriptor `json:"filters,omitempty"`
}

// Config exports the engine configuration. It does not lock the engine.
func (e *Engine) Config() Config {
	var descs []filter.Descriptor
	e.filters.Read(func(fs []filter.Filter) {
		for _, f := range fs {
			descs = append(descs, f.Descriptor())
		}
	})
	return Config{
		Version:    ConfigVersion,
		Kind:       e.Kind(),
		Resolution: e.resolution,
		Filters:    descs,
	}
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.Version != ConfigVersion {
		result = multierror.Append(result, apperrors.Newf(apperrors.CodeInvalidArgument, "unsupported config version %d", c.Version))
	}
	if _, err := EncoderFor(c.Kind); err != nil {
		result = multierror.Append(result, err)
	}
	if err := checkResolution(c.Resolution); err != nil {
		result = multierror.Append(result, err)
	}
	for i, d := range c.Filters {
		if _, err := filter.FromDescriptor(d); err != nil {
			result = multierror.Append(result, apperrors.Wrapf(err, apperrors.CodeInvalidFilter, "filter %d", i))
		}
	}
	return result.ErrorOrNil()
}

// Restore builds an unlocked engine from an exported configuration.
func Restore(c Config) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	enc, err := EncoderFor(c.Kind)
	if err != nil {
		return nil, err
	}
	e, err := NewEngine(enc, c.Resolution)
	if err != nil {
		return nil, err
	}
	for _, d := range c.Filters {
		f, err := filter.FromDescriptor(d)
		if err != nil {
			return nil, err
		}
		if err := e.AddFilter(f); err != nil {
			return nil, err
		}
	}
	return e, nil
}
