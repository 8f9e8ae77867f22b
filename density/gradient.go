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

import "math"

// Gradient is an exponential density gradient along a fixed axis:
// rho(x) = Rho0 * exp(-(x . Axis) / H), modelling e.g. a barometric air
// column. Axis need not be a unit vector; the projection is always
// (x . Axis), so callers choosing a unit Axis get H in length units
// directly comparable to the geometry's own coordinates.
type Gradient struct {
	Rho0 float64    // g/cm^3, density at the Axis-projection origin
	H    float64    // scale height, same length units as position; must be > 0
	Axis [3]float64 // projection axis, typically a unit vector
}

// Density evaluates rho0 * exp(-(x . Axis) / H).
func (g Gradient) Density(x [3]float64) float64 {
	return g.Rho0 * math.Exp(-dot(x, g.Axis)/g.H)
}

// ColumnDensity uses the analytic exponential integral:
//
//	integral_0^t rho0 exp(-(x0 + s*d).Axis / H) ds
//	  = rho0 * H * [exp(-s0/H) - exp(-s1/H)] / (d . Axis)
//
// where s0 = x.Axis, s1 = (x + t*d).Axis. When d.Axis is (numerically)
// zero, the ray runs perpendicular to the gradient and the density is
// constant along it, so the integral reduces to Density(x) * t.
func (g Gradient) ColumnDensity(x, d [3]float64, t float64) float64 {
	s0 := dot(x, g.Axis)
	dDotAxis := dot(d, g.Axis)

	const epsilon = 1e-12
	if math.Abs(dDotAxis) < epsilon {
		return g.Density(x) * t
	}

	s1 := s0 + t*dDotAxis
	return g.Rho0 * g.H * (math.Exp(-s0/g.H) - math.Exp(-s1/g.H)) / dDotAxis
}
