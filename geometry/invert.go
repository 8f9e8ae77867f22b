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

import "github.com/gammatrace/transport/density"

// invertColumnBisection inverts ColumnDensity(x, d, t) == lambda by
// bisection on [0, tMax], relying on density being strictly positive so
// the column density is strictly increasing in t. Used by every
// Geometry implementation as the generic fallback for InverseColumn,
// since density.Field does not (and should not) know about sector
// boundaries; it is always sufficient because Uniform and Gradient admit
// closed forms for ColumnDensity itself, and a closed-form inverse of
// those is a minor optimization over a few dozen bisection iterations.
func invertColumnBisection(f density.Field, x, d [3]float64, lambda, tMax float64) float64 {
	if lambda <= 0 {
		return 0
	}
	total := f.ColumnDensity(x, d, tMax)
	if lambda > total {
		return NoInverse
	}

	lo, hi := 0.0, tMax
	const iterations = 60 // ample for double precision given a bounded domain
	for i := 0; i < iterations; i++ {
		mid := 0.5 * (lo + hi)
		if f.ColumnDensity(x, d, mid) < lambda {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}
