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

// Package spectrum implements discrete source-energy priors: forward
// sampling of an emitted line, and backward splitting of a detector
// observation into a photo-peak or Compton-continuum background origin
// with the source-energy target the engine's adjoint transport needs.
package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gammatrace/transport/gammaerr"
	"github.com/gammatrace/transport/prng"
)

// DiscreteSpectrum is an intensity-weighted set of source energy lines
// plus the photo-peak/background split backward sampling needs.
type DiscreteSpectrum struct {
	Energies    []float64 // MeV, strictly positive
	Intensities []float64 // relative weights, strictly positive

	// BackgroundFraction is alpha: the probability, in backward mode,
	// that an observed count originated in the photo-peak rather than
	// the Compton continuum below it.
	BackgroundFraction float64

	// EMin is the lower energy cutoff for the log-uniform background
	// branch.
	EMin float64

	cumulative []float64 // cumulative intensity, for forward sampling
	total      float64
}

// New validates and constructs a DiscreteSpectrum. Energies and
// Intensities must be the same non-zero length, all strictly positive;
// BackgroundFraction must lie in (0, 1]; EMin must be strictly positive
// and no larger than the smallest energy line.
func New(energies, intensities []float64, backgroundFraction, eMin float64) (*DiscreteSpectrum, error) {
	if len(energies) == 0 || len(energies) != len(intensities) {
		return nil, fmt.Errorf("spectrum: energies and intensities must be equal-length and non-empty: %w", gammaerr.ErrBadComposition)
	}
	if !(backgroundFraction > 0 && backgroundFraction <= 1) {
		return nil, fmt.Errorf("spectrum: background_fraction must be in (0, 1], got %g: %w", backgroundFraction, gammaerr.ErrBadSampling)
	}
	if !(eMin > 0) {
		return nil, fmt.Errorf("spectrum: E_min must be positive, got %g: %w", eMin, gammaerr.ErrBadEnergy)
	}

	cumulative := make([]float64, len(energies))
	var total float64
	for i, E := range energies {
		if !(E > 0) {
			return nil, fmt.Errorf("spectrum: energy at index %d must be positive, got %g: %w", i, E, gammaerr.ErrBadEnergy)
		}
		if E < eMin {
			return nil, fmt.Errorf("spectrum: energy at index %d (%g) is below E_min (%g): %w", i, E, eMin, gammaerr.ErrBadEnergy)
		}
		if !(intensities[i] > 0) {
			return nil, fmt.Errorf("spectrum: intensity at index %d must be positive, got %g: %w", i, intensities[i], gammaerr.ErrBadComposition)
		}
		total += intensities[i]
		cumulative[i] = total
	}

	return &DiscreteSpectrum{
		Energies:           append([]float64(nil), energies...),
		Intensities:        append([]float64(nil), intensities...),
		BackgroundFraction: backgroundFraction,
		EMin:               eMin,
		cumulative:         cumulative,
		total:              total,
	}, nil
}

// SampleForward draws n source energies by the intensity-weighted
// discrete distribution, for forward transport.
func (s *DiscreteSpectrum) SampleForward(n int, stream *prng.Stream) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.drawLine(stream)
	}
	return out
}

func (s *DiscreteSpectrum) drawLine(stream *prng.Stream) float64 {
	u := stream.Float64() * s.total
	idx := upperBound(s.cumulative, u)
	if idx >= len(s.Energies) {
		idx = len(s.Energies) - 1
	}
	return s.Energies[idx]
}

func upperBound(sorted []float64, x float64) int {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		if sorted[mid] <= x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// BackwardSample is one backward-mode observation: the source-energy
// target the engine's adjoint transport must reach, plus the state's
// initial (final, in forward-time sense) energy and weight.
type BackwardSample struct {
	SourceEnergy float64
	FinalEnergy  float64
	Weight       float64
}

// SampleBackward draws n backward observations: with
// probability alpha ("photo-peak"), the final energy equals the source
// line and weight is 1/alpha; otherwise ("background"), the final
// energy is drawn log-uniformly on [EMin, source energy] and weight is
// log(source/EMin)*final / (1-alpha). The returned SourceEnergy values
// are the targets passed verbatim to the engine's backward transport.
func (s *DiscreteSpectrum) SampleBackward(n int, stream *prng.Stream) []BackwardSample {
	out := make([]BackwardSample, n)
	for i := range out {
		source := s.drawLine(stream)
		if stream.Float64() < s.BackgroundFraction {
			out[i] = BackwardSample{
				SourceEnergy: source,
				FinalEnergy:  source,
				Weight:       1 / s.BackgroundFraction,
			}
			continue
		}

		logUniform := distuv.Uniform{Min: math.Log(s.EMin), Max: math.Log(source), Src: prng.AsSource(stream)}
		final := math.Exp(logUniform.Rand())
		weight := math.Log(source/s.EMin) * final / (1 - s.BackgroundFraction)
		out[i] = BackwardSample{SourceEnergy: source, FinalEnergy: final, Weight: weight}
	}
	return out
}
