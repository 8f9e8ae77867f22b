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
	"fmt"

	"github.com/gammatrace/transport/gammaerr"
)

// ExternalSectorSource is the narrow interface an externally supplied
// geometry implements: the four geometry operations plus a sector count
// and human-readable description, mirroring a plug-in ABI for a shared
// library exposing locate/trace/column_density/inverse_column/
// sector_count/sector_description through plain-C pointers to doubles
// and integer status codes. A pure-Go module has no use for
// the actual C calling convention, so External stands in for that ABI as
// a regular Go interface: a real cgo or plugin-loaded implementation
// would satisfy this interface by marshalling to and from the C
// signature
//
//	int locate(const double x[3]);
//	int trace(const double x[3], const double d[3], double *distance);
//	double column_density(const double x[3], const double d[3], double t);
//	double inverse_column(const double x[3], const double d[3], double lambda, int *found);
//	int sector_count(void);
//	const char *sector_description(int sector);
type ExternalSectorSource interface {
	Locate(x [3]float64) int
	Trace(x, d [3]float64) (sector int, distance float64)
	ColumnDensity(x, d [3]float64, t float64) float64
	InverseColumn(x, d [3]float64, lambda float64) float64
	SectorCount() int
	SectorDescription(sector int) string
}

// External adapts an ExternalSectorSource to the Geometry interface. Its
// Geometry methods pass the plug-in's results through unchanged;
// Validate is a separate range check of a sector index, and distances
// are not checked. The engine never otherwise inspects sector geometry.
type External struct {
	Source ExternalSectorSource
}

// Locate delegates to the plug-in.
func (e External) Locate(x [3]float64) int {
	return e.Source.Locate(x)
}

// Trace delegates to the plug-in.
func (e External) Trace(x, d [3]float64) (int, float64) {
	return e.Source.Trace(x, d)
}

// ColumnDensity delegates to the plug-in.
func (e External) ColumnDensity(x, d [3]float64, t float64) float64 {
	return e.Source.ColumnDensity(x, d, t)
}

// InverseColumn delegates to the plug-in.
func (e External) InverseColumn(x, d [3]float64, lambda float64) float64 {
	return e.Source.InverseColumn(x, d, lambda)
}

// Validate checks that a sector index returned by the plug-in lies
// within [OutsideSector, SectorCount()), returning gammaerr.ErrGeometry
// otherwise. Package engine does not call it; there, a sector index with
// no compiled material in Engine.SectorMaterial ends the state with
// TransportError.
func (e External) Validate(sector int) error {
	if sector == OutsideSector {
		return nil
	}
	if sector < 0 || sector >= e.Source.SectorCount() {
		return fmt.Errorf("geometry: external plug-in returned sector %d outside [0, %d): %w",
			sector, e.Source.SectorCount(), gammaerr.ErrGeometry)
	}
	return nil
}
