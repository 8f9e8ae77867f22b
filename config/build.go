// Copyright (C) 2024 the gammatrace authors.
// This file is part of gammatrace.
//
// gammatrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gammatrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with gammatrace.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"strings"

	"github.com/gammatrace/transport/atomic"
	"github.com/gammatrace/transport/density"
	"github.com/gammatrace/transport/engine"
	"github.com/gammatrace/transport/gammaerr"
	"github.com/gammatrace/transport/geometry"
	"github.com/gammatrace/transport/process"
	"github.com/gammatrace/transport/prng"
	"github.com/gammatrace/transport/spectrum"
	"github.com/gammatrace/transport/xsect"
)

// Assembled holds the components a scenario builds: the engine itself
// plus the spectrum used to seed source energies and weights.
type Assembled struct {
	Engine   *engine.Engine
	Spectrum *spectrum.DiscreteSpectrum
	Mode     process.ComptonMode
}

// Build resolves a ScenarioConfig into a ready-to-run Engine: it
// registers and compiles every material, constructs the configured
// geometry and Compton sampler, and wraps the spectrum priors.
func (c *ScenarioConfig) Build() (*Assembled, error) {
	reg := xsect.NewRegistry()
	sectorMaterial := make([]string, 0, len(c.Materials))
	for _, m := range c.Materials {
		def, err := buildMaterial(m)
		if err != nil {
			return nil, err
		}
		reg.Register(def)
		sectorMaterial = append(sectorMaterial, def.Name)
		if err := reg.Compile(def.Name); err != nil {
			return nil, err
		}
	}

	geo, err := c.Geometry.build(sectorMaterial, c.Materials)
	if err != nil {
		return nil, err
	}

	mode, err := parseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	method, err := parseMethod(c.ComptonMethod)
	if err != nil {
		return nil, err
	}
	model, err := parseModel(c.ComptonModel)
	if err != nil {
		return nil, err
	}
	compton, err := process.NewComptonProcess(method, mode, model, c.Precision)
	if err != nil {
		return nil, err
	}

	spec, err := spectrum.New(c.Spectrum.Energies, c.Spectrum.Intensities, c.Spectrum.BackgroundFraction, c.Spectrum.EMin)
	if err != nil {
		return nil, err
	}

	stream := prng.NewStream(c.Seed0, c.Seed1)
	eng, err := engine.NewEngine(reg, geo, sectorMaterial, stream, compton, process.NewRayleighProcess(c.Precision), mode, c.EnergyMin, c.MaxSteps)
	if err != nil {
		return nil, err
	}

	return &Assembled{Engine: eng, Spectrum: spec, Mode: mode}, nil
}

func buildMaterial(m MaterialConfig) (atomic.MaterialDefinition, error) {
	if m.Formula != "" {
		return atomic.NewFromFormula(m.Name, m.Formula)
	}
	if len(m.MassFractions) > 0 {
		fractions := make(map[int]float64, len(m.MassFractions))
		for symbol, frac := range m.MassFractions {
			el, ok := atomic.BySymbol[symbol]
			if !ok {
				return atomic.MaterialDefinition{}, fmt.Errorf("config: material %q: %w: %s", m.Name, gammaerr.ErrUnknownElement, symbol)
			}
			fractions[el.Z] = frac
		}
		return atomic.NewFromMassFractions(m.Name, fractions)
	}
	return atomic.MaterialDefinition{}, fmt.Errorf("config: material %q: %w: neither formula nor mass fractions given", m.Name, gammaerr.ErrBadComposition)
}

func buildDensityField(d DensityConfig) (density.Field, error) {
	switch strings.ToLower(d.Kind) {
	case "", "uniform":
		if !(d.Rho0 > 0) {
			return nil, fmt.Errorf("config: uniform density Rho0 must be positive, got %g", d.Rho0)
		}
		return density.Uniform{Rho0: d.Rho0}, nil
	case "gradient":
		if !(d.Rho0 > 0) || !(d.ScaleHeight > 0) {
			return nil, fmt.Errorf("config: gradient density requires positive Rho0 and ScaleHeight")
		}
		return density.Gradient{Rho0: d.Rho0, H: d.ScaleHeight, Axis: d.Axis}, nil
	default:
		return nil, fmt.Errorf("config: unknown density kind %q", d.Kind)
	}
}

func (g GeometryConfig) build(sectorMaterial []string, materials []MaterialConfig) (geometry.Geometry, error) {
	switch strings.ToLower(g.Kind) {
	case "sphere":
		field, err := buildDensityField(g.Sphere.Density)
		if err != nil {
			return nil, err
		}
		if !(g.Sphere.Radius > 0) {
			return nil, fmt.Errorf("config: sphere geometry requires a positive radius")
		}
		return geometry.Sphere{Center: g.Sphere.Center, Radius: g.Sphere.Radius, Field: field}, nil
	case "slab":
		if len(g.Slab.Densities) != len(sectorMaterial) {
			return nil, fmt.Errorf("config: slab geometry needs one density per material, got %d densities and %d materials", len(g.Slab.Densities), len(sectorMaterial))
		}
		fields := make([]density.Field, len(g.Slab.Densities))
		for i, d := range g.Slab.Densities {
			f, err := buildDensityField(d)
			if err != nil {
				return nil, err
			}
			fields[i] = f
		}
		return geometry.NewSlab(g.Slab.Axis, g.Slab.Min, g.Slab.Max, g.Slab.Boundaries, fields), nil
	default:
		return nil, fmt.Errorf("config: unknown geometry kind %q", g.Kind)
	}
}

func parseMode(s string) (process.ComptonMode, error) {
	switch strings.ToLower(s) {
	case "", "forward":
		return process.Direct, nil
	case "backward":
		return process.Adjoint, nil
	default:
		return 0, fmt.Errorf("config: unknown transport mode %q", s)
	}
}

func parseMethod(s string) (process.ComptonMethod, error) {
	switch strings.ToLower(s) {
	case "", "rejection-sampling", "rejectionsampling":
		return process.RejectionSampling, nil
	case "inverse-transform", "inversetransform":
		return process.InverseTransform, nil
	default:
		return 0, fmt.Errorf("config: unknown Compton method %q", s)
	}
}

func parseModel(s string) (process.ComptonModel, error) {
	switch strings.ToLower(s) {
	case "", "klein-nishina", "kleinnishina":
		return process.KleinNishina, nil
	case "scattering-function", "scatteringfunction":
		return process.ScatteringFunction, nil
	case "penelope":
		return process.Penelope, nil
	default:
		return 0, fmt.Errorf("config: unknown Compton model %q", s)
	}
}
