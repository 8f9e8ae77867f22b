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

package density

import "gonum.org/v1/gonum/integrate/quad"

// quadratureNodes is the fixed Gauss-Legendre node count used for
// Functor's numerical column-density integral. 32 nodes is ample for the
// smooth, slowly-varying density profiles that are continuous along
// ray paths except possibly at surfaces.
const quadratureNodes = 32

// Functor is a user-supplied density field with no analytic column
// integral; ColumnDensity falls back to fixed-order Gauss-Legendre
// quadrature via gonum.org/v1/gonum/integrate/quad, the same
// "prefer a library over hand-rolled numerics" choice xsect makes for
// log-log interpolation.
type Functor struct {
	// Rho evaluates the density at a position, in g/cm^3. Must be
	// strictly positive and finite wherever it is called.
	Rho func(x [3]float64) float64
}

// Density calls the user-supplied callback directly.
func (f Functor) Density(x [3]float64) float64 {
	return f.Rho(x)
}

// ColumnDensity numerically integrates Rho along the ray x + s*d for s
// in [0, t] using fixed-order Gauss-Legendre quadrature.
func (f Functor) ColumnDensity(x, d [3]float64, t float64) float64 {
	if t <= 0 {
		return 0
	}
	integrand := func(s float64) float64 {
		p := [3]float64{x[0] + s*d[0], x[1] + s*d[1], x[2] + s*d[2]}
		return f.Rho(p)
	}
	return quad.Fixed(integrand, 0, t, quadratureNodes, quad.Legendre{}, 0)
}
