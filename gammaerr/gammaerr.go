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

// Package gammaerr defines the error-kind taxonomy shared by every
// gammatrace component, following construction-time errors that abort
// the call and per-state errors that are recorded on a particle's status
// only.
package gammaerr

import "errors"

// Sentinel error kinds. Wrap these with fmt.Errorf("...: %w", Err...) so
// that callers can recover the kind with errors.Is.
var (
	// ErrUnknownElement is returned when a formula or composition
	// references an atomic symbol that is not in the periodic table.
	ErrUnknownElement = errors.New("unknown element")

	// ErrBadZ is returned when an atomic number falls outside [1, 118].
	ErrBadZ = errors.New("atomic number out of range")

	// ErrBadComposition is returned when a material composition has a
	// non-positive fraction or normalizes to a zero sum.
	ErrBadComposition = errors.New("bad composition")

	// ErrBadSampling is returned when a ComptonProcess method/mode/model
	// triple has no supported sampler (e.g. Penelope + Adjoint).
	ErrBadSampling = errors.New("bad sampling")

	// ErrBadEnergy is returned when an energy is non-finite or <= 0.
	ErrBadEnergy = errors.New("bad energy")

	// ErrGeometry is returned when a geometry (or external plug-in)
	// returns an inconsistent sector index or distance.
	ErrGeometry = errors.New("geometry error")

	// ErrNumerical is returned for log/exp overflow or a column density
	// that is negative beyond tolerance.
	ErrNumerical = errors.New("numerical error")

	// ErrNotCompiled is returned when an engine is built against a
	// material registry in which a sector's material has not had Compile
	// called on it.
	ErrNotCompiled = errors.New("registry not compiled")
)
