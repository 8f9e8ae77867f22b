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

// Package process implements the per-interaction samplers the transport
// engine dispatches to once a step has selected a channel: Compton
// scattering (direct and adjoint, across three physics models), Rayleigh
// scattering, and photoelectric absorption (terminal, no sampling).
package process

import (
	"fmt"

	"github.com/gammatrace/transport/gammaerr"
)

// ComptonMethod selects how a sampler inverts its target distribution.
type ComptonMethod int

const (
	// RejectionSampling draws from a proposal distribution and accepts
	// with a computed probability; used by every supported combination
	// except the adjoint Klein-Nishina restriction.
	RejectionSampling ComptonMethod = iota
	// InverseTransform inverts the CDF numerically, by bisection on a
	// quadrature-evaluated cumulative integral (not a closed-form
	// inverse); only available for the adjoint Klein-Nishina restriction.
	InverseTransform
)

func (m ComptonMethod) String() string {
	switch m {
	case RejectionSampling:
		return "rejection-sampling"
	case InverseTransform:
		return "inverse-transform"
	default:
		return "unknown"
	}
}

// ComptonMode selects the transport direction a sampler serves.
type ComptonMode int

const (
	// Direct samples a physical, forward-in-time scattering event.
	Direct ComptonMode = iota
	// Adjoint samples the reversed, backward-in-time scattering event.
	Adjoint
)

func (m ComptonMode) String() string {
	switch m {
	case Direct:
		return "direct"
	case Adjoint:
		return "adjoint"
	default:
		return "unknown"
	}
}

// ComptonModel selects the physics approximation used to shape the
// scattering distribution beyond the bare free-electron cross section.
type ComptonModel int

const (
	// KleinNishina treats electrons as free and at rest.
	KleinNishina ComptonModel = iota
	// ScatteringFunction corrects Klein-Nishina by the incoherent
	// scattering function S(q, Z_eff), suppressing small-angle
	// scattering off tightly bound electrons.
	ScatteringFunction
	// Penelope applies the impulse approximation: atomic binding and
	// Doppler broadening of the outgoing energy.
	Penelope
)

func (m ComptonModel) String() string {
	switch m {
	case KleinNishina:
		return "klein-nishina"
	case ScatteringFunction:
		return "scattering-function"
	case Penelope:
		return "penelope"
	default:
		return "unknown"
	}
}

// mec2 is the electron rest mass energy in MeV, the natural energy unit
// for every Compton sampler.
const mec2 = 0.5109989

// ComptonProcess is a validated (method, mode, model) sampler
// configuration, constructed once per engine and reused across every
// state in a batch. Only five (mode, model, method) combinations have a
// defined sampler; every other combination — notably Penelope+Adjoint
// and any Penelope+InverseTransform pairing — is rejected at
// construction time so that invalid configuration is reported before
// any physics runs.
type ComptonProcess struct {
	Method    ComptonMethod
	Mode      ComptonMode
	Model     ComptonModel
	Precision float64 // scales the rejection-loop iteration budget
}

// NewComptonProcess validates the (method, mode, model) triple and
// returns a ready-to-use sampler. Precision must be strictly positive;
// it scales the maximum rejection-sampling iteration budget. The
// quadrature order of the adjoint samplers' internal normalization is
// fixed (quadratureNodes) and does not depend on it.
func NewComptonProcess(method ComptonMethod, mode ComptonMode, model ComptonModel, precision float64) (*ComptonProcess, error) {
	if !(precision > 0) {
		return nil, fmt.Errorf("process: precision must be positive, got %g: %w", precision, gammaerr.ErrBadSampling)
	}
	if err := validateTriple(method, mode, model); err != nil {
		return nil, err
	}
	return &ComptonProcess{Method: method, Mode: mode, Model: model, Precision: precision}, nil
}

func validateTriple(method ComptonMethod, mode ComptonMode, model ComptonModel) error {
	switch {
	case model == Penelope && mode == Adjoint:
		return fmt.Errorf("process: Penelope model has no adjoint sampler: %w", gammaerr.ErrBadSampling)
	case model == Penelope && method == InverseTransform:
		return fmt.Errorf("process: Penelope model has no inverse-transform sampler: %w", gammaerr.ErrBadSampling)
	case mode == Direct && (model == KleinNishina || model == ScatteringFunction || model == Penelope) && method == RejectionSampling:
		return nil
	case mode == Adjoint && model == ScatteringFunction && method == RejectionSampling:
		return nil
	case mode == Adjoint && model == KleinNishina && method == InverseTransform:
		return nil
	default:
		return fmt.Errorf("process: no sampler for mode=%s model=%s method=%s: %w", mode, model, method, gammaerr.ErrBadSampling)
	}
}

// kappaMinForward returns the smallest achievable outgoing-energy ratio
// kappa = E'/E at incident energy E (backscatter limit).
func kappaMinForward(E float64) float64 {
	alpha := E / mec2
	return 1.0 / (1.0 + 2.0*alpha)
}

// comptonShape is the Klein-Nishina differential cross section in kappa,
// kappa + 1/kappa - sin^2(theta), up to the prefactor pi*r_e^2/alpha
// that depends only on E. Calibrating this shape's integral over its
// valid kappa range to the exact closed-form total (kleinNishinaTotal in
// package xsect's grid.go) gives a properly normalized density — see
// the shape calibration paragraph of DESIGN.md's process section.
func comptonShape(alpha, kappa float64) float64 {
	cosTheta := 1 - (1/kappa-1)/alpha
	return kappa + 1/kappa - (1 - cosTheta*cosTheta)
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}

// cosThetaFromKappa returns the scattering-angle cosine implied by the
// free-electron Compton relation for outgoing ratio kappa at incident
// energy E.
func cosThetaFromKappa(E, kappa float64) float64 {
	alpha := E / mec2
	return clampUnit(1 - (1/kappa-1)/alpha)
}
