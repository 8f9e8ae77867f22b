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

package xsect

import (
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/gammatrace/transport/atomic"
)

// numKappaNodes is the number of outgoing-energy-ratio intervals per
// energy row at which comptonEnvelopeMax evaluates the Compton shape;
// only the resulting maximum is stored, not the shape or its CDF.
const numKappaNodes = 64

// Table is a compiled, immutable cross-section table for one process and
// one material: total cross section per unit mass (cm^2/g) sampled on
// the shared log-energy grid and interpolated in log-log space, plus,
// for Compton, the per-row rejection envelope used by the direct
// Klein-Nishina sampler in package process (on which its Scattering
// Function and Penelope samplers build).
type Table struct {
	process Process

	logE     []float64 // log(E), MeV
	logSigma []float64 // log(sigma), cm^2/g
	interp   interp.PiecewiseLinear

	// envelopeMax[i] is the maximum of the dSigma/dKappa shape over the
	// row at logE[i], used as the rejection ceiling for Compton sampling.
	// Empty for non-Compton tables.
	envelopeMax []float64
}

// Process returns the interaction channel this table covers.
func (t *Table) Process() Process { return t.process }

// Evaluate returns the per-mass total cross section (cm^2/g) at energy E
// (MeV), via linear interpolation in log-log space, clamped to the
// table's energy range.
func (t *Table) Evaluate(E float64) float64 {
	logE := math.Log(clampEnergy(E))
	logSigma := t.interp.Predict(logE)
	return math.Exp(logSigma)
}

// EvaluateBatch fills out[i] = Evaluate(Es[i]) for a batch of energies,
// reusing the same interpolator (O(N log N_E) via per-call binary
// search inside gonum/interp).
func (t *Table) EvaluateBatch(Es []float64, out []float64) {
	for i, E := range Es {
		out[i] = t.Evaluate(E)
	}
}

// EnvelopeMax returns the Compton rejection-envelope ceiling at energy E,
// interpolated linearly in log(E) between the nearest grid rows. Only meaningful
// for a Compton table.
func (t *Table) EnvelopeMax(E float64) float64 {
	if len(t.envelopeMax) == 0 {
		return 0
	}
	logE := math.Log(clampEnergy(E))
	i := upperBound(t.logE, logE)
	if i <= 0 {
		return t.envelopeMax[0]
	}
	if i >= len(t.logE) {
		return t.envelopeMax[len(t.envelopeMax)-1]
	}
	lo, hi := t.logE[i-1], t.logE[i]
	frac := (logE - lo) / (hi - lo)
	return t.envelopeMax[i-1] + frac*(t.envelopeMax[i]-t.envelopeMax[i-1])
}

func clampEnergy(E float64) float64 {
	if E < EMin {
		return EMin
	}
	if E > EMax {
		return EMax
	}
	return E
}

// upperBound returns the index of the first element of sorted > x (the
// C++ std::upper_bound convention), via binary search.
func upperBound(sorted []float64, x float64) int {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		if sorted[mid] <= x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// buildTable compiles a Table for the given process and element mole
// fractions, relying on additivity of cross sections over elements.
// moleFractions maps Z to its mole fraction in the material (already
// normalized).
func buildTable(p Process, moleFractions map[int]float64) *Table {
	grid := logEnergyGrid()
	logE := make([]float64, len(grid))
	logSigma := make([]float64, len(grid))

	// avogadro/molarMass converts a mole-fraction-weighted sum of atomic
	// cross sections (cm^2 per "representative atom") into a per-mass
	// total (cm^2/g): sigma_mass(E) = (N_A / M) * sum_i x_i sigma_i(E).
	const avogadro = 6.02214076e23
	molarMass := 0.0
	for z, x := range moleFractions {
		molarMass += x * elementMolarMass(z)
	}
	if molarMass <= 0 {
		molarMass = 1 // buildTable is only called with validated, normalized compositions
	}

	var envelope []float64
	if p == Compton {
		envelope = make([]float64, len(grid))
	}

	for i, E := range grid {
		var atomicSum float64
		for z, x := range moleFractions {
			atomicSum += x * atomicCrossSection(p, z, E)
		}
		sigmaMass := atomicSum * avogadro / molarMass
		if sigmaMass <= 0 {
			sigmaMass = 1e-300 // guard against log(0)
		}
		logE[i] = math.Log(E)
		logSigma[i] = math.Log(sigmaMass)
		if p == Compton {
			envelope[i] = comptonEnvelopeMax(E)
		}
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(logE, logSigma); err != nil {
		// logE is strictly increasing by construction (logEnergyGrid is
		// monotone), so Fit cannot fail; a failure here means the grid
		// itself is broken, which is a programmer error, not a runtime
		// condition callers can recover from.
		panic("xsect: invalid energy grid: " + err.Error())
	}

	return &Table{
		process:     p,
		logE:        logE,
		logSigma:    logSigma,
		interp:      pl,
		envelopeMax: envelope,
	}
}

// comptonEnvelopeMax returns an upper bound on dSigma/dKappa (the
// Klein-Nishina differential cross section in the outgoing-energy ratio
// kappa = E'/E, up to its prefactor) over kappa in [kappaMin(E), 1],
// used as the rejection ceiling by the direct Klein-Nishina sampler.
// The Klein-Nishina differential is maximized either at kappa=1 (forward
// scatter) or at kappa=kappaMin (backscatter); we bound by evaluating
// both and the evenly spaced interior nodes between them, which is
// conservative but cheap since it only runs once per table compile.
func comptonEnvelopeMax(E float64) float64 {
	const mec2 = 0.5109989
	a := E / mec2
	kappaMin := 1.0 / (1.0 + 2.0*a)

	kleinNishinaDKappa := func(kappa float64) float64 {
		// d(sigma)/d(kappa) up to the shared prefactor (pi r_e^2 / a),
		// which cancels when we only need the *shape* for envelope
		// comparison across kappa at fixed E.
		cosTheta := 1 - (1/kappa-1)/a
		return kappa + 1/kappa - (1 - cosTheta*cosTheta)
	}

	var maxVal float64
	for i := 0; i <= numKappaNodes; i++ {
		frac := float64(i) / float64(numKappaNodes)
		kappa := kappaMin + frac*(1-kappaMin)
		v := kleinNishinaDKappa(kappa)
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal * 1.05 // small safety margin above the sampled maximum
}

func elementMolarMass(z int) float64 {
	el, ok := atomic.Element(z)
	if !ok {
		return 0
	}
	return el.MolarMass
}
