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

	"github.com/spf13/viper"
)

// MaterialConfig describes one registered material, either by chemical
// formula or by elemental mass fractions (symbol -> fraction).
type MaterialConfig struct {
	Name          string
	Formula       string
	MassFractions map[string]float64
}

// DensityConfig describes a sector's density field: Uniform (Rho0 only)
// or Gradient (Rho0, ScaleHeight, Axis).
type DensityConfig struct {
	Kind        string // "uniform" or "gradient"
	Rho0        float64
	ScaleHeight float64
	Axis        [3]float64
}

// SphereConfig describes geometry.Sphere.
type SphereConfig struct {
	Center  [3]float64
	Radius  float64
	Density DensityConfig
}

// SlabConfig describes geometry.Slab.
type SlabConfig struct {
	Axis       [3]float64
	Min, Max   float64
	Boundaries []float64
	Densities  []DensityConfig
}

// GeometryConfig selects and configures one geometry kind. Exactly one
// of Sphere or Slab should be set, matching Kind.
type GeometryConfig struct {
	Kind   string // "sphere" or "slab"
	Sphere SphereConfig
	Slab   SlabConfig
}

// SpectrumConfig mirrors spectrum.New's parameters.
type SpectrumConfig struct {
	Energies           []float64
	Intensities        []float64
	BackgroundFraction float64
	EMin               float64
}

// ScenarioConfig is a complete, loadable transport scenario.
type ScenarioConfig struct {
	Materials []MaterialConfig
	Geometry  GeometryConfig
	Spectrum  SpectrumConfig

	Seed0, Seed1 uint64
	BatchSize    int

	Mode          string // "forward" or "backward"
	ComptonModel  string // "klein-nishina", "scattering-function", "penelope"
	ComptonMethod string // "rejection-sampling" or "inverse-transform"
	Precision     float64
	EnergyMin     float64
	MaxSteps      int

	// TargetEnergy is loaded with the scenario but read by neither Build
	// nor the run command, which take backward-mode source-energy targets
	// from spectrum.DiscreteSpectrum.SampleBackward.
	TargetEnergy float64
}

// Load reads a scenario from a configuration file (any format viper
// supports: YAML, TOML, JSON) at path into a single typed struct,
// populated in one pass via viper's Unmarshal.
func Load(path string) (*ScenarioConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := defaultScenario()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// defaultScenario returns a ScenarioConfig with the ambient defaults a
// scenario file may omit.
func defaultScenario() *ScenarioConfig {
	return &ScenarioConfig{
		BatchSize:     1000,
		Mode:          "forward",
		ComptonModel:  "klein-nishina",
		ComptonMethod: "rejection-sampling",
		Precision:     1.0,
		EnergyMin:     1e-3,
		MaxSteps:      100000,
	}
}
