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

// Uniform is a constant-density field: rho(x) = Rho0 everywhere.
type Uniform struct {
	Rho0 float64 // g/cm^3, must be strictly positive
}

// Density returns Rho0, independent of position.
func (u Uniform) Density([3]float64) float64 { return u.Rho0 }

// ColumnDensity is the trivial closed form rho0 * t.
func (u Uniform) ColumnDensity(_, _ [3]float64, t float64) float64 {
	return u.Rho0 * t
}
