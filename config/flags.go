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

// Package config loads a transport scenario (materials, geometry,
// spectrum, RNG seed, batch size, transport mode) from a file and
// assembles the engine components wired to it.
package config

import (
	"fmt"
	"strings"

	"github.com/gammatrace/transport/process"
)

// TransportModeFlag is a pflag.Value wrapping process.ComptonMode so the
// CLI can bind "--mode forward|backward" directly to the transport
// direction.
type TransportModeFlag struct {
	Mode process.ComptonMode
}

// String implements pflag.Value.
func (f *TransportModeFlag) String() string {
	if f.Mode == process.Adjoint {
		return "backward"
	}
	return "forward"
}

// Set implements pflag.Value.
func (f *TransportModeFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "forward":
		f.Mode = process.Direct
	case "backward":
		f.Mode = process.Adjoint
	default:
		return fmt.Errorf("config: unknown transport mode %q (want forward or backward)", s)
	}
	return nil
}

// Type implements pflag.Value.
func (f *TransportModeFlag) Type() string { return "transportMode" }

// ComptonModelFlag is a pflag.Value wrapping process.ComptonModel.
type ComptonModelFlag struct {
	Model process.ComptonModel
}

// String implements pflag.Value.
func (f *ComptonModelFlag) String() string {
	return f.Model.String()
}

// Set implements pflag.Value.
func (f *ComptonModelFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "klein-nishina", "kleinnishina", "kn":
		f.Model = process.KleinNishina
	case "scattering-function", "scatteringfunction", "sf":
		f.Model = process.ScatteringFunction
	case "penelope":
		f.Model = process.Penelope
	default:
		return fmt.Errorf("config: unknown Compton model %q", s)
	}
	return nil
}

// Type implements pflag.Value.
func (f *ComptonModelFlag) Type() string { return "comptonModel" }
