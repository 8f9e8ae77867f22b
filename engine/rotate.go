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

package engine

import "math"

// rotateDirection rotates unit vector d by polar angle theta (given as
// cosTheta, sinTheta derived from it) and azimuth phi about d itself,
// the standard scattering-direction update: build an orthonormal basis
// (d, u, v) and return cosTheta*d + sinTheta*(cos(phi)*u + sin(phi)*v).
func rotateDirection(d [3]float64, cosTheta, phi float64) [3]float64 {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))

	// Pick the basis vector least aligned with d to avoid a degenerate
	// cross product.
	var ref [3]float64
	if math.Abs(d[0]) <= math.Abs(d[1]) && math.Abs(d[0]) <= math.Abs(d[2]) {
		ref = [3]float64{1, 0, 0}
	} else if math.Abs(d[1]) <= math.Abs(d[2]) {
		ref = [3]float64{0, 1, 0}
	} else {
		ref = [3]float64{0, 0, 1}
	}

	u := cross(d, ref)
	u = scaleToUnit(u)
	v := cross(d, u)

	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	return [3]float64{
		cosTheta*d[0] + sinTheta*(cosPhi*u[0]+sinPhi*v[0]),
		cosTheta*d[1] + sinTheta*(cosPhi*u[1]+sinPhi*v[1]),
		cosTheta*d[2] + sinTheta*(cosPhi*u[2]+sinPhi*v[2]),
	}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func scaleToUnit(v [3]float64) [3]float64 {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n < 1e-300 {
		return v
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

func advance(x [3]float64, t float64, d [3]float64) [3]float64 {
	return [3]float64{x[0] + t*d[0], x[1] + t*d[1], x[2] + t*d[2]}
}
