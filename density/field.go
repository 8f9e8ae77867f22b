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

// Package density implements the scalar density fields a geometry sector
// carries: Density(x) and its line-integral ColumnDensity(x, d, t),
// preferring an analytic closed form whenever the field admits one, and
// falling back to numerical quadrature only for a user-supplied Functor.
package density

// Field is a scalar density field within a single geometry sector.
// Density must be strictly positive and finite everywhere the field is
// evaluated; callers are responsible for only evaluating a Field within
// the sector it models.
type Field interface {
	// Density returns rho(x) in g/cm^3 at position x.
	Density(x [3]float64) float64

	// ColumnDensity returns the line integral of rho along the ray
	// x + s*d for s in [0, t], in g/cm^2. d need not be a unit vector;
	// the integral is over the parameter s, not arc length, matching the
	// convention geometry.Geometry uses for its own t parameter.
	ColumnDensity(x, d [3]float64, t float64) float64
}

// dot is the 3-vector inner product, used throughout density and
// geometry for projecting a ray onto a gradient axis.
func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
