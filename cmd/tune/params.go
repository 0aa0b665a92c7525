package main

import "github.com/pthm-cable/driftleaf/config"

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string
	Path    string // Config path for logging
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of tunable autopilot parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the autopilot parameter set, with defaults taken
// from cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	a := cfg.Autopilot
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "lookahead", Path: "autopilot.lookahead", Min: 40, Max: 400, Default: a.Lookahead},
			{Name: "margin", Path: "autopilot.margin", Min: 0, Max: 30, Default: a.Margin},
			{Name: "centre_band", Path: "autopilot.centre_band", Min: 0, Max: 0.45, Default: a.CentreBand},
			{Name: "max_drift", Path: "autopilot.max_drift", Min: 5, Max: 200, Default: a.MaxDrift},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the default values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize maps raw values into [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize maps [0,1] values back to raw values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp bounds every value to its spec.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return out
}

// ApplyToConfig writes clamped values into cfg. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Autopilot = config.AutopilotConfig{
		Lookahead:  c[0],
		Margin:     c[1],
		CentreBand: c[2],
		MaxDrift:   c[3],
	}
}
