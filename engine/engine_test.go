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

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammatrace/transport/atomic"
	"github.com/gammatrace/transport/density"
	"github.com/gammatrace/transport/engine"
	"github.com/gammatrace/transport/geometry"
	"github.com/gammatrace/transport/process"
	"github.com/gammatrace/transport/prng"
	"github.com/gammatrace/transport/xsect"
)

func waterRegistry(t *testing.T) *xsect.Registry {
	t.Helper()
	def, err := atomic.NewFromFormula("water", "H2O")
	require.NoError(t, err)
	reg := xsect.NewRegistry()
	reg.Register(def)
	require.NoError(t, reg.Compile("water"))
	return reg
}

func directCompton(t *testing.T) *process.ComptonProcess {
	t.Helper()
	cp, err := process.NewComptonProcess(process.RejectionSampling, process.Direct, process.KleinNishina, 1.0)
	require.NoError(t, err)
	return cp
}

func adjointCompton(t *testing.T) *process.ComptonProcess {
	t.Helper()
	cp, err := process.NewComptonProcess(process.RejectionSampling, process.Adjoint, process.ScatteringFunction, 1.0)
	require.NoError(t, err)
	return cp
}

func freshState(idx uint64) engine.ParticleState {
	return engine.ParticleState{
		Energy:       1.0,
		Position:     [3]float64{0, 0, 0},
		Direction:    [3]float64{0, 0, 1},
		Weight:       1,
		RandomStream: idx,
	}
}

// TestDeterminismSameSeedSameBatch covers scenario 8's determinism
// property: identical seed, batch, and geometry must reproduce the same
// terminal status for every state.
func TestDeterminismSameSeedSameBatch(t *testing.T) {
	reg := waterRegistry(t)
	geo := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1.0, Field: density.Uniform{Rho0: 1.0}}

	build := func() engine.Result {
		e, err := engine.NewEngine(reg, geo, []string{"water"}, prng.NewStream(42, 7), directCompton(t), nil, process.Direct, 1e-3, 10000)
		require.NoError(t, err)
		states := make([]engine.ParticleState, 200)
		for i := range states {
			states[i] = freshState(uint64(i))
		}
		return e.TransportBatch(states, nil)
	}

	r1 := build()
	r2 := build()
	require.Equal(t, len(r1.Statuses), len(r2.Statuses))
	for i := range r1.Statuses {
		assert.Equal(t, r1.Statuses[i], r2.Statuses[i])
	}
}

// TestNullGeometryExitsImmediately covers the all-vacuum boundary
// scenario: a photon with no enclosing sector exits immediately with
// unchanged weight.
func TestNullGeometryExitsImmediately(t *testing.T) {
	reg := waterRegistry(t)
	geo := geometry.Sphere{Center: [3]float64{1000, 1000, 1000}, Radius: 1.0, Field: density.Uniform{Rho0: 1.0}}
	e, err := engine.NewEngine(reg, geo, []string{"water"}, prng.NewStream(1, 1), directCompton(t), nil, process.Direct, 1e-3, 1000)
	require.NoError(t, err)

	state := freshState(0)
	status := e.TransportOne(&state, 0)
	assert.Equal(t, engine.Exit, status)
	assert.Equal(t, 1.0, state.Weight)
}

// TestWaterSphereMostlyExits covers scenario 1: a 1 cm H2O sphere at
// E = 1 MeV should let the large majority of a batch exit without
// absorption, since the mean free path is much larger than 1 cm.
func TestWaterSphereMostlyExits(t *testing.T) {
	reg := waterRegistry(t)
	geo := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1.0, Field: density.Uniform{Rho0: 1.0}}
	e, err := engine.NewEngine(reg, geo, []string{"water"}, prng.NewStream(5, 9), directCompton(t), nil, process.Direct, 1e-3, 10000)
	require.NoError(t, err)

	const n = 2000
	states := make([]engine.ParticleState, n)
	for i := range states {
		states[i] = freshState(uint64(i))
	}
	result := e.TransportBatch(states, nil)

	exits := result.CountsByStatus()[engine.Exit]
	assert.Greater(t, float64(exits)/float64(n), 0.5)
}

// TestForwardEnergyNeverIncreases covers scenario 8's forward monotone
// invariant: forward-mode energy must never increase across a
// trajectory's Compton events.
func TestForwardEnergyNeverIncreases(t *testing.T) {
	reg := waterRegistry(t)
	geo := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 50.0, Field: density.Uniform{Rho0: 3.0}}
	e, err := engine.NewEngine(reg, geo, []string{"water"}, prng.NewStream(3, 3), directCompton(t), nil, process.Direct, 1e-3, 10000)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		state := freshState(uint64(i))
		initial := state.Energy
		status := e.TransportOne(&state, 0)
		assert.LessOrEqual(t, state.Energy, initial+1e-9)
		assert.Contains(t, []engine.TransportStatus{engine.Exit, engine.Absorption, engine.EnergyMin, engine.StepMax}, status)
	}
}

// TestBackwardEnergyNeverDecreasesAndReachesTarget covers scenario 8's
// backward monotone invariant and stop rule: backward-mode energy must
// never decrease, and the trajectory must terminate either at
// EnergyConstraint (having reached the target) or a non-energy
// terminal.
func TestBackwardEnergyNeverDecreasesAndReachesTarget(t *testing.T) {
	reg := waterRegistry(t)
	geo := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 50.0, Field: density.Uniform{Rho0: 3.0}}
	e, err := engine.NewEngine(reg, geo, []string{"water"}, prng.NewStream(11, 13), adjointCompton(t), nil, process.Adjoint, 1e-3, 10000)
	require.NoError(t, err)

	const target = 1.0
	reached := 0
	const n = 300
	for i := 0; i < n; i++ {
		state := freshState(uint64(i))
		state.Energy = 0.1
		initial := state.Energy
		status := e.TransportOne(&state, target)
		assert.GreaterOrEqual(t, state.Energy, initial-1e-9)
		if status == engine.EnergyConstraint {
			reached++
			assert.GreaterOrEqual(t, state.Energy, target*(1-1e-6))
		}
	}
	assert.Greater(t, reached, 0)
}

// TestExternalHalfSpaceRecordsSectorChangeWithoutInteraction covers
// scenario 6: a plug-in half-space geometry records a sector change at
// the boundary without an interaction, when the boundary descriptor
// names the entered sector.
func TestExternalHalfSpaceRecordsSectorChangeWithoutInteraction(t *testing.T) {
	reg := waterRegistry(t)
	halfSpace := &halfSpaceSource{}
	geo := geometry.External{Source: halfSpace}
	e, err := engine.NewEngine(reg, geo, []string{"water", "water"}, prng.NewStream(2, 2), directCompton(t), nil, process.Direct, 1e-3, 1000)
	require.NoError(t, err)
	e.Boundary = engine.SectorBoundary{Sector: 1}

	// Start a hair above the interface so the column density available
	// before the crossing is negligible, making an interaction before
	// the boundary is reached statistically impossible.
	state := freshState(0)
	state.Position = [3]float64{0, 0, 1e-6}
	state.Direction = [3]float64{0, 0, -1}
	status := e.TransportOne(&state, 0)
	assert.Equal(t, engine.BoundaryHit, status)
}

// halfSpaceSource implements geometry.ExternalSectorSource as the
// literal z>0 / z<0 half-space plug-in scenario 6 describes.
type halfSpaceSource struct{}

func (h *halfSpaceSource) Locate(x [3]float64) int {
	if x[2] > 0 {
		return 0
	}
	return 1
}

func (h *halfSpaceSource) Trace(x, d [3]float64) (int, float64) {
	sector := h.Locate(x)
	if d[2] == 0 {
		return sector, geometry.NoBoundary
	}
	t := -x[2] / d[2]
	if t <= 1e-12 {
		return sector, geometry.NoBoundary
	}
	return sector, t
}

func (h *halfSpaceSource) ColumnDensity(x, d [3]float64, t float64) float64 {
	return t // unit density for this test fixture
}

func (h *halfSpaceSource) InverseColumn(x, d [3]float64, lambda float64) float64 {
	_, tBoundary := h.Trace(x, d)
	if lambda >= tBoundary {
		return geometry.NoInverse
	}
	return lambda
}

func (h *halfSpaceSource) SectorCount() int { return 2 }

func (h *halfSpaceSource) SectorDescription(sector int) string {
	if sector == 0 {
		return "z>0"
	}
	return "z<0"
}
