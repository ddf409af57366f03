package config

import (
	"fmt"
	"math"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gdesim/internal/field"
)

const (
	DefaultDt    = 0.01
	DefaultCoeff = 1.0
	DefaultTime  = 1.0
	DefaultMode  = "constant"

	DefaultInput           = "x.r"
	DefaultCoefficientFile = "D.r"
	DefaultOutput          = "X.r"

	// CoeffScale converts the coeff option from Å²/s to m²/s.
	CoeffScale = 1e-20
)

type Config struct {
	Mode            string         `yaml:"mode"`
	Dt              float64        `yaml:"dt"`
	Coeff           float64        `yaml:"coeff"`
	Time            float64        `yaml:"time"`
	Input           string         `yaml:"input"`
	CoefficientFile string         `yaml:"coefficient_file"`
	Output          string         `yaml:"output"`
	SnapshotEvery   int            `yaml:"snapshot_every"`
	Params          map[string]any `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:            DefaultMode,
		Dt:              DefaultDt,
		Coeff:           DefaultCoeff,
		Time:            DefaultTime,
		Input:           DefaultInput,
		CoefficientFile: DefaultCoefficientFile,
		Output:          DefaultOutput,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Keys the file omits keep their base
// values; params are merged key by key.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &field.InputFileError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", field.ErrConfiguration, path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// D0 is the constant diffusion coefficient in m²/s.
func (c *Config) D0() float64 {
	return c.Coeff * CoeffScale
}

func (c *Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", field.ErrConfiguration, c.Dt)
	}
	if math.IsNaN(c.Time) || math.IsInf(c.Time, 0) {
		return fmt.Errorf("%w: end time must be finite, got %g", field.ErrConfiguration, c.Time)
	}
	if c.Coeff < 0 {
		return fmt.Errorf("%w: coeff must be non-negative, got %g", field.ErrConfiguration, c.Coeff)
	}
	if c.SnapshotEvery < 0 {
		return fmt.Errorf("%w: snapshot_every must not be negative, got %d", field.ErrConfiguration, c.SnapshotEvery)
	}
	if c.Input == "" {
		return fmt.Errorf("%w: no input table given", field.ErrConfiguration)
	}
	return nil
}

// MergeParams overlays src on the model parameters and returns c.
func (c *Config) MergeParams(src map[string]any) *Config {
	if len(src) == 0 {
		return c
	}
	if c.Params == nil {
		c.Params = make(map[string]any, len(src))
	}
	for k, v := range src {
		c.Params[k] = v
	}
	return c
}

// DecodeParams fills out from a free-form parameter map. Values may be given
// as strings or numbers; unknown keys are rejected.
func DecodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
		TagName:          "param",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%w: %v", field.ErrConfiguration, err)
	}
	return nil
}
