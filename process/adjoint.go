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

package process

import (
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/gammatrace/transport/prng"
	"github.com/gammatrace/transport/xsect"
)

// quadratureNodes is the fixed Gauss-Legendre node count used to
// normalize this package's Compton shape integrals.
const quadratureNodes = 24

// adjointKappaBounds returns the valid range of kappa = Ep/E (Ep the
// fixed outgoing/current energy, E the sampled incoming energy) for the
// adjoint Compton step, derived from the forward kinematic constraint
// kappa >= kappaMin(E): solving kappa >= 1/(1+2E/mec2) with E = Ep/kappa
// gives kappa >= 1 - 2*Ep/mec2. emax additionally bounds how far back in
// energy the sampler is willing to reach (the compiled table's energy
// ceiling), since E = Ep/kappa must not exceed it.
func adjointKappaBounds(Ep, emax float64) (lo, hi float64) {
	lo = 1 - 2*Ep/mec2
	if floor := Ep / emax; floor > lo {
		lo = floor
	}
	const epsilon = 1e-6
	if lo < epsilon {
		lo = epsilon
	}
	return lo, 1
}

// forwardShapeIntegral is the per-electron Compton shape (comptonShape)
// integrated over its full valid kappa range at incident energy E.
// Calibrating it against xsect.KleinNishinaTotal(E) gives the
// proportionality constant between the shape, which omits its
// energy-dependent prefactor, and the exact closed-form total.
func forwardShapeIntegral(E float64) float64 {
	alpha := E / mec2
	kappaMin := kappaMinForward(E)
	return quad.Fixed(func(k float64) float64 { return comptonShape(alpha, k) }, kappaMin, 1, quadratureNodes, quad.Legendre{}, 0)
}

// compositionPrefactor returns the calibration constant such that
// prefactor(E) * comptonShape(E/mec2, kappa), integrated over kappa,
// reproduces xsect.KleinNishinaTotal(E) exactly.
func compositionPrefactor(E float64) float64 {
	integral := forwardShapeIntegral(E)
	if integral <= 0 {
		return 0
	}
	return xsect.KleinNishinaTotal(E) / integral
}

// adjointShape returns the calibrated adjoint kernel density in kappa at
// fixed outgoing energy Ep, in per-free-electron cm^2 units: the
// Jacobian-weighted forward differential K(E->Ep)*E^2/Ep^2, expressed in
// terms of kappa via E = Ep/kappa.
func adjointShape(kappa, Ep float64) float64 {
	E := Ep / kappa
	alpha := E / mec2
	return compositionPrefactor(E) * comptonShape(alpha, kappa) * E / (kappa * Ep)
}

// adjointEnvelopeMax estimates the rejection ceiling for adjointShape
// over [lo, hi] by sampling a fixed grid of interior nodes, mirroring
// xsect's comptonEnvelopeMax.
func adjointEnvelopeMax(lo, hi, Ep float64) float64 {
	const nodes = 48
	var maxVal float64
	for i := 0; i <= nodes; i++ {
		frac := float64(i) / float64(nodes)
		kappa := lo + frac*(hi-lo)
		v := adjointShape(kappa, Ep)
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal * 1.05
}

// sampleAdjointScatteringFunction draws an incoming energy E > Ep from
// the adjoint kernel K~(Ep->E) = K(E->Ep)*E^2/Ep^2 by rejection, and
// returns the multiplicative weight correction
// sigma_total(Ep,m)/sigma_tilde_total(Ep,m) that keeps the expected
// backward tally matching the forward estimator. sigma_total is
// the material's compiled (per-mass) Compton table evaluated at Ep;
// sigma_tilde_total is the adjoint kernel's own (per-mass) normalization,
// obtained by converting the per-electron calibrated shape integral via
// electronsPerMass, the same conversion xsect.buildTable uses to turn
// per-electron cross sections into per-mass ones.
func sampleAdjointScatteringFunction(Ep, emax, electronsPerMass float64, table *xsect.Table, stream *prng.Stream, maxIter int) (energy, cosTheta, weight float64) {
	lo, hi := adjointKappaBounds(Ep, emax)
	envelope := adjointEnvelopeMax(lo, hi, Ep)

	kappa := lo
	for i := 0; i < maxIter; i++ {
		u1, u2 := stream.Float64(), stream.Float64()
		candidate := lo + u1*(hi-lo)
		if u2*envelope <= adjointShape(candidate, Ep) {
			kappa = candidate
			break
		}
	}

	E := Ep / kappa
	sigmaTotal := table.Evaluate(Ep)

	shapeIntegral := quad.Fixed(func(k float64) float64 { return adjointShape(k, Ep) }, lo, hi, quadratureNodes, quad.Legendre{}, 0)
	sigmaTildeTotal := shapeIntegral * electronsPerMass
	if sigmaTildeTotal <= 0 {
		sigmaTildeTotal = sigmaTotal
	}

	return E, cosThetaFromKappa(E, kappa), sigmaTotal / sigmaTildeTotal
}

// sampleAdjointInverseTransform inverts the adjoint CDF for the
// Klein-Nishina restriction (ScatteringFunction reduces to it when the
// scattering-function correction is dropped) by bisecting the
// quadrature-evaluated cumulative shape integral against a uniform
// target. Its weight factor is exactly 1: an
// exact inversion needs no importance-sampling correction.
func sampleAdjointInverseTransform(Ep, emax float64, stream *prng.Stream) (energy, cosTheta, weight float64) {
	lo, hi := adjointKappaBounds(Ep, emax)
	total := quad.Fixed(func(k float64) float64 { return adjointShape(k, Ep) }, lo, hi, quadratureNodes, quad.Legendre{}, 0)
	if total <= 0 {
		kappa := 0.5 * (lo + hi)
		E := Ep / kappa
		return E, cosThetaFromKappa(E, kappa), 1
	}

	target := stream.Float64() * total
	cdf := func(k float64) float64 {
		return quad.Fixed(func(x float64) float64 { return adjointShape(x, Ep) }, lo, k, quadratureNodes, quad.Legendre{}, 0)
	}

	a, b := lo, hi
	const iterations = 40
	for i := 0; i < iterations; i++ {
		mid := 0.5 * (a + b)
		if cdf(mid) < target {
			a = mid
		} else {
			b = mid
		}
	}
	kappa := 0.5 * (a + b)
	E := Ep / kappa
	return E, cosThetaFromKappa(E, kappa), 1
}

// SampleAdjoint draws a backward Compton step given the current energy
// Ep, returning the (larger) sampled source-side energy, the scattering
// cosine, and the multiplicative weight correction that must be applied
// to the state's running weight. electronsPerMass is the transporting
// material's atomic.MaterialDefinition.ElectronsPerMass(), needed to put
// the adjoint kernel's normalization on the same per-mass footing as the
// compiled cross-section table.
func (cp *ComptonProcess) SampleAdjoint(Ep, emax, electronsPerMass float64, table *xsect.Table, stream *prng.Stream) Outcome {
	maxIter := cp.maxRejectionIterations()
	var energy, cosTheta, weight float64
	if cp.Method == InverseTransform {
		energy, cosTheta, weight = sampleAdjointInverseTransform(Ep, emax, stream)
	} else {
		energy, cosTheta, weight = sampleAdjointScatteringFunction(Ep, emax, electronsPerMass, table, stream, maxIter)
	}
	return Outcome{Energy: energy, CosTheta: cosTheta, WeightFactor: weight}
}
