package config

import "sort"

var Presets = map[string]map[string]*Config{
	"constant": {
		"quick": {
			Mode: "constant", Dt: 0.01, Coeff: 1.0, Time: 1.0,
		},
		"anneal": {
			Mode: "constant", Dt: 0.01, Coeff: 1.0, Time: 60.0,
		},
	},
	"concentration-dependent": {
		"slow": {
			Mode: "concentration-dependent", Dt: 0.01, Time: 10.0,
			Params: map[string]any{"k": 1e-21},
		},
		"fast": {
			Mode: "concentration-dependent", Dt: 0.001, Time: 10.0,
			Params: map[string]any{"k": 1e-19},
		},
	},
	"depth-dependent": {
		"qwwad": {
			Mode: "depth-dependent", Dt: 0.01, Time: 1.0,
			Params: map[string]any{"d0": 10e-20, "z0": 1800e-10, "sigma": 600e-10},
		},
		"narrow": {
			Mode: "depth-dependent", Dt: 0.01, Time: 1.0,
			Params: map[string]any{"d0": 10e-20, "z0": 1800e-10, "sigma": 200e-10},
		},
	},
	"time": {
		"static": {
			Mode: "time", Dt: 0.01, Time: 1.0,
			Params: map[string]any{"law": "static"},
		},
		"relax": {
			Mode: "time", Dt: 0.01, Time: 1.0,
			Params: map[string]any{"law": "relax", "k": 1e-20, "rate": 0.1},
		},
		"decay": {
			Mode: "time", Dt: 0.01, Time: 10.0,
			Params: map[string]any{"law": "decay", "rate": 0.5},
		},
	},
}

// GetPreset returns a copy of the named preset with the file defaults filled
// in, or nil.
func GetPreset(mode, preset string) *Config {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	p, ok := modePresets[preset]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Mode = p.Mode
	cfg.Dt = p.Dt
	cfg.Time = p.Time
	if p.Coeff != 0 {
		cfg.Coeff = p.Coeff
	}
	cfg.MergeParams(p.Params)
	return cfg
}

func ListPresets(mode string) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
