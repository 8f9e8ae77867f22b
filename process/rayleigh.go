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
	"math"

	"github.com/gammatrace/transport/prng"
)

// RayleighProcess samples coherent (Rayleigh) scattering: purely
// deflective, energy-preserving, and symmetric under time reversal, so
// the same sampler serves both Direct and Adjoint transport modes.
type RayleighProcess struct {
	Precision float64
}

// NewRayleighProcess returns a Rayleigh sampler; Precision scales the
// rejection-loop iteration budget, mirroring ComptonProcess.
func NewRayleighProcess(precision float64) *RayleighProcess {
	if !(precision > 0) {
		precision = 1
	}
	return &RayleighProcess{Precision: precision}
}

// formFactorShape approximates the squared atomic form factor's angular
// dependence at effective atomic number zEff: strongly forward-peaked,
// narrowing with increasing zEff (heavier atoms scatter more coherently
// at small angles). This is the differential counterpart of
// xsect/grid.go's atomicRayleigh total cross-section fit, and like it,
// is a placeholder for a tabulated atomic form factor.
func formFactorShape(cosTheta, zEff float64) float64 {
	width := 1.0 / (1.0 + 0.05*zEff)
	return math.Exp(-(1 - cosTheta) / width) * (1 + cosTheta*cosTheta)
}

// Sample draws a scattering-angle cosine for Rayleigh scattering off a
// material with mean atomic number zEff, by rejection against the
// forward-peaked form-factor shape. The photon's energy is unchanged.
func (rp *RayleighProcess) Sample(zEff float64, stream *prng.Stream) (cosTheta float64) {
	envelope := formFactorShape(1, zEff) // the shape peaks at cosTheta=1
	maxIter := int(64 * rp.Precision)
	if maxIter < 16 {
		maxIter = 16
	}
	for i := 0; i < maxIter; i++ {
		u1, u2 := stream.Float64(), stream.Float64()
		candidate := -1 + 2*u1
		if u2*envelope <= formFactorShape(candidate, zEff) {
			return candidate
		}
	}
	return -1 + 2*stream.Float64()
}
