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

// Slab is a stack of parallel-plane sectors along a fixed axis, bounded
// by [Min, Max] along that axis; positions whose axis projection falls
// outside [Min, Max] are OUTSIDE. It models scenario 2's 200 m air
// column (a single sector with a Gradient field) as well as multi-layer
// absorber-slab boundary scenarios (several Uniform-field sectors in
// sequence).
type Slab struct {
	Axis [3]float64 // need not be unit length; normalized at construction

	Min, Max float64 // extent along Axis; callers choose units (cm)

	// Boundaries are the interior sector boundaries along Axis, strictly
	// increasing and strictly within (Min, Max). len(Fields) must equal
	// len(Boundaries)+1.
	Boundaries []float64
	Fields     []density.Field
}

// NewSlab validates and constructs a Slab, normalizing Axis.
func NewSlab(axis [3]float64, min, max float64, boundaries []float64, fields []density.Field) Slab {
	unitAxis, _ := normalize(axis)
	return Slab{Axis: unitAxis, Min: min, Max: max, Boundaries: boundaries, Fields: fields}
}

// sectorAt classifies an axis projection s into one of len(Boundaries)+1
// interior sectors, or OutsideSector if s falls outside [Min, Max].
func (s Slab) sectorAt(proj float64) int {
	if proj < s.Min || proj > s.Max {
		return OutsideSector
	}
	idx := 0
	for idx < len(s.Boundaries) && proj >= s.Boundaries[idx] {
		idx++
	}
	return idx
}

// Locate returns the sector containing x, or OutsideSector.
func (s Slab) Locate(x [3]float64) int {
	return s.sectorAt(dot(x, s.Axis))
}

// Trace returns the sector at x (robust to x lying on a boundary, using
// an infinitesimal step in direction d to break the tie) and the
// distance to the next sector change, or NoBoundary.
func (s Slab) Trace(x, d [3]float64) (int, float64) {
	unitD, norm := normalize(d)
	if norm == 0 {
		return s.Locate(x), NoBoundary
	}

	proj := dot(x, s.Axis)
	dAxis := dot(unitD, s.Axis)

	const eps = 1e-9
	currentSector := s.sectorAt(proj + eps*dAxis)

	if math.Abs(dAxis) < 1e-15 {
		// Ray runs perpendicular to the axis: the sector never changes.
		return currentSector, NoBoundary
	}

	// Collect every boundary (interior plus the two outer faces) and
	// find the nearest one strictly ahead along unitD.
	allBoundaries := make([]float64, 0, len(s.Boundaries)+2)
	allBoundaries = append(allBoundaries, s.Min, s.Max)
	allBoundaries = append(allBoundaries, s.Boundaries...)

	best := NoBoundary
	for _, b := range allBoundaries {
		t := (b - proj) / dAxis
		if t > 1e-12 && t < best {
			best = t
		}
	}
	return currentSector, best
}

// ColumnDensity integrates the density of the sector containing x along
// x + s*d for s in [0, t].
func (s Slab) ColumnDensity(x, d [3]float64, t float64) float64 {
	sector := s.Locate(x)
	if sector == OutsideSector {
		return 0
	}
	return s.Fields[sector].ColumnDensity(x, d, t)
}

// InverseColumn inverts ColumnDensity within the sector containing x,
// bounded by the distance to the next sector change.
func (s Slab) InverseColumn(x, d [3]float64, lambda float64) float64 {
	sector := s.Locate(x)
	if sector == OutsideSector {
		return NoInverse
	}
	_, tMax := s.Trace(x, d)
	if tMax == NoBoundary {
		tMax = 1e12 // effectively unbounded; ample for any physical column
	}
	return invertColumnBisection(s.Fields[sector], x, d, lambda, tMax)
}
