package main

import (
	"math"

	"github.com/pthm-cable/agesim/config"
)

// ParamSpec defines a single optimizable parameter. Log parameters are
// searched over log10 of the value.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound (search space)
	Max     float64 // Upper bound (search space)
	Default float64 // Default value (search space)
	Log     bool
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector(base *config.Config) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "mutation_rate", Path: "settings.mutation_rate",
				Min: -6, Max: -2, Default: math.Log10(base.Settings.MutationRate), Log: true,
			},
			{
				Name: "growth_rate", Path: "settings.growth_rate",
				Min: -4, Max: -0.5, Default: math.Log10(base.Settings.GrowthRate), Log: true,
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return pv.Clamp(v)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// Values converts search-space values to config values.
func (pv *ParamVector) Values(v []float64) []float64 {
	clamped := pv.Clamp(v)
	out := make([]float64, len(clamped))
	for i, spec := range pv.Specs {
		out[i] = clamped[i]
		if spec.Log {
			out[i] = math.Pow(10, clamped[i])
		}
	}
	return out
}

// ApplyToConfig applies search-space values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, v []float64) {
	values := pv.Values(v)
	cfg.Settings.MutationRate = values[0]
	cfg.Settings.GrowthRate = values[1]
}
