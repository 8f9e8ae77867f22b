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

// Package xsect compiles per-element atomic cross sections into
// per-material total and differential cross-section tables, sampled on a
// shared log-energy grid and interpolated in log-log space. Compiled
// tables are immutable; building them is the explicit, idempotent
// Registry.Compile step.
package xsect

import "math"

// Process names an interaction channel with its own cross section.
type Process int

const (
	Photoelectric Process = iota
	Compton
	Rayleigh

	numProcesses = 3
)

// String names the process for logging.
func (p Process) String() string {
	switch p {
	case Photoelectric:
		return "photoelectric"
	case Compton:
		return "compton"
	case Rayleigh:
		return "rayleigh"
	default:
		return "unknown"
	}
}

// Energy grid bounds and node count: 256 log-spaced nodes covering
// 1 keV to 10 MeV.
const (
	EMin  = 1e-3 // MeV
	EMax  = 10.0 // MeV
	NumE  = 256
	eSafe = 1e-10 // MeV; same value as the engine's energyFloor, below which a state ends with TransportError
)

// logEnergyGrid returns the shared log-spaced energy grid in MeV.
func logEnergyGrid() []float64 {
	grid := make([]float64, NumE)
	lo, hi := math.Log(EMin), math.Log(EMax)
	for i := range grid {
		frac := float64(i) / float64(NumE-1)
		grid[i] = math.Exp(lo + frac*(hi-lo))
	}
	return grid
}

// classicalElectronRadiusSquared is r_e^2 in cm^2 (Thomson cross section
// unit), the natural scale for every process's atomic cross section.
const classicalElectronRadiusSquared = 7.9406e-26 // cm^2

// KleinNishinaTotal returns the total Klein-Nishina cross section per
// free electron, in cm^2, for incident energy E (MeV). Exported so
// package process can calibrate its own Compton-shape integrals
// against the same exact closed form this package uses to build its
// per-material Compton tables.
func KleinNishinaTotal(E float64) float64 {
	return kleinNishinaTotal(E)
}

// kleinNishinaTotal returns the total Klein-Nishina cross section per
// free electron, in cm^2, for incident energy E (MeV).
func kleinNishinaTotal(E float64) float64 {
	const mec2 = 0.5109989 // electron rest mass energy, MeV
	a := E / mec2
	if a <= 0 {
		return 0
	}
	onePlus2a := 1 + 2*a
	term1 := (1 + a) / (a * a) * (2 * (1 + a) / onePlus2a - math.Log(onePlus2a)/a)
	term2 := math.Log(onePlus2a) / (2 * a)
	term3 := -(1 + 3*a) / (onePlus2a * onePlus2a)
	return 2 * math.Pi * classicalElectronRadiusSquared * (term1 + term2 + term3)
}

// atomicCompton returns the atomic incoherent (Compton) cross section
// for element Z at energy E (MeV): Z free electrons times the
// Klein-Nishina total. The incoherent scattering function correction at
// low energy/high Z is applied in the process package's Scattering
// Function sampler, not baked into this table, since it also shapes the
// *differential* (outgoing-angle) distribution and not just the total.
func atomicCompton(z int, E float64) float64 {
	return float64(z) * kleinNishinaTotal(E)
}

// atomicPhotoelectric is an empirical Z^n/E^m parameterization of the
// photoelectric cross section, tapering the exponent of E from ~3 below
// the K-shell-dominated regime to ~1 near 10 MeV, which reproduces the
// broad shape (steep low-energy falloff, weak high-energy falloff, steep
// Z dependence) without requiring a shell-by-shell tabulation. The
// absolute normalization (scalePE) is implementation-defined, standing
// in for a real physics data file.
func atomicPhotoelectric(z int, E float64) float64 {
	const scalePE = 1.34e-30 // cm^2, normalizes to ~barns at E~0.1 MeV, Z~30
	n := 4.5
	m := 3.0 - 2.0*clamp((E-0.1)/4.9, 0, 1) // 3.0 at E<=0.1 MeV, 1.0 at E>=5 MeV
	return scalePE * math.Pow(float64(z), n) / math.Pow(E, m)
}

// atomicRayleigh is an empirical, atomic-form-factor-inspired
// approximation: strongly forward-peaked coherent scattering whose total
// cross section grows faster than linearly in Z and falls off roughly
// as E^-2, consistent with the long-wavelength (Thomson) limit of the
// atomic form factor.
func atomicRayleigh(z int, E float64) float64 {
	const scaleRay = 2.8e-27 // cm^2
	return scaleRay * math.Pow(float64(z), 2.5) / (E * E)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// atomicCrossSection dispatches to the per-process atomic formula. It is
// the single point other packages would touch to swap in a real physics
// data file instead of the parameterized fits above.
func atomicCrossSection(p Process, z int, E float64) float64 {
	switch p {
	case Photoelectric:
		return atomicPhotoelectric(z, E)
	case Compton:
		return atomicCompton(z, E)
	case Rayleigh:
		return atomicRayleigh(z, E)
	default:
		return 0
	}
}
