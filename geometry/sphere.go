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

package geometry

import (
	"math"

	"github.com/gammatrace/transport/density"
)

// Sphere is a single spherical sector (index 0) embedded in vacuum,
// modelling scenario 1's 1 cm H2O sphere: a photon sourced at the center
// traverses a short, mostly-transparent path before exiting to vacuum.
type Sphere struct {
	Center [3]float64
	Radius float64
	Field  density.Field
}

const sphereSector = 0

// Locate returns sphereSector if x lies within Radius of Center, else
// OutsideSector.
func (s Sphere) Locate(x [3]float64) int {
	oc := [3]float64{x[0] - s.Center[0], x[1] - s.Center[1], x[2] - s.Center[2]}
	if dot(oc, oc) <= s.Radius*s.Radius {
		return sphereSector
	}
	return OutsideSector
}

// Trace returns the sector entered after a small step from x along d, and
// the distance to the sphere boundary along d: the entry distance if that
// sector is outside and the ray hits the sphere, the exit distance if it
// is inside, or NoBoundary if the ray never crosses the sphere ahead.
func (s Sphere) Trace(x, d [3]float64) (int, float64) {
	unitD, norm := normalize(d)
	if norm == 0 {
		return s.Locate(x), NoBoundary
	}
	const stepEps = 1e-9
	sector := s.Locate(add(x, stepEps, unitD))

	oc := [3]float64{x[0] - s.Center[0], x[1] - s.Center[1], x[2] - s.Center[2]}
	h := dot(oc, unitD)
	c := dot(oc, oc) - s.Radius*s.Radius
	disc := h*h - c
	if disc < 0 {
		return sector, NoBoundary
	}
	sqrtDisc := math.Sqrt(disc)
	t1 := -h - sqrtDisc
	t2 := -h + sqrtDisc

	if sector == OutsideSector {
		const eps = 1e-12
		if t1 > eps {
			return sector, t1
		}
		return sector, NoBoundary
	}
	return sector, t2
}

// ColumnDensity integrates the sphere's field along x + s*d for s in
// [0, t], or returns 0 if x is outside the sphere (vacuum).
func (s Sphere) ColumnDensity(x, d [3]float64, t float64) float64 {
	if s.Locate(x) == OutsideSector {
		return 0
	}
	return s.Field.ColumnDensity(x, d, t)
}

// InverseColumn inverts ColumnDensity within the sphere, bounded by the
// distance to the exit boundary.
func (s Sphere) InverseColumn(x, d [3]float64, lambda float64) float64 {
	if s.Locate(x) == OutsideSector {
		return NoInverse
	}
	_, tMax := s.Trace(x, d)
	if tMax == NoBoundary {
		tMax = 2 * s.Radius // a ray from inside always exits within 2*Radius
	}
	return invertColumnBisection(s.Field, x, d, lambda, tMax)
}
