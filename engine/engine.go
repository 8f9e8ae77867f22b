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

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/gammatrace/transport/gammaerr"
	"github.com/gammatrace/transport/geometry"
	"github.com/gammatrace/transport/process"
	"github.com/gammatrace/transport/prng"
	"github.com/gammatrace/transport/xsect"
)

// energyFloor is the absolute energy below which a state is treated as
// a numerical failure rather than a physical cutoff.
const energyFloor = 1e-10 // MeV

// energyConstraintTolerance is epsilon_E in the backward stop rule.
const energyConstraintTolerance = 1e-6

// columnTieTolerance is how close the drawn column density may come to
// the boundary's column density before a would-be interaction is instead
// treated as a boundary crossing, avoiding an ambiguous sector
// assignment exactly on a surface.
const columnTieTolerance = 1e-12

// Engine holds everything a transport step needs: the compiled material
// tables, the geometry, the process samplers, and the random stream each
// state's substream is split from. A Engine's fields are read-only
// during TransportBatch; the state batch passed in is the only mutable
// data.
type Engine struct {
	Registry *xsect.Registry
	Geometry geometry.Geometry

	// SectorMaterial maps a sector index (as returned by Geometry) to
	// the material name registered in Registry.
	SectorMaterial []string

	Stream   prng.Stream
	Compton  *process.ComptonProcess
	Rayleigh *process.RayleighProcess
	Mode     process.ComptonMode

	// Boundary is the explicit stopping condition checked ahead of EXIT
	// and INTERACT on every step. Nil disables it.
	Boundary Boundary

	// EnergyMin is the forward-mode cutoff below which a state
	// terminates with EnergyMin rather than TransportError (must be
	// comfortably above energyFloor).
	EnergyMin float64

	// MaxSteps bounds a single state's trajectory; exhausting it
	// terminates with StepMax.
	MaxSteps int

	Metrics *Metrics
	Logger  *ProgressLogger
}

// NewEngine validates and constructs an Engine.
func NewEngine(reg *xsect.Registry, geo geometry.Geometry, sectorMaterial []string, stream prng.Stream, compton *process.ComptonProcess, rayleigh *process.RayleighProcess, mode process.ComptonMode, energyMin float64, maxSteps int) (*Engine, error) {
	if reg == nil || geo == nil {
		return nil, fmt.Errorf("engine: registry and geometry are required: %w", gammaerr.ErrBadComposition)
	}
	for _, name := range sectorMaterial {
		if rec, ok := reg.Get(name); !ok || !rec.Compiled {
			return nil, fmt.Errorf("engine: material %q is not registered and compiled: %w", name, gammaerr.ErrNotCompiled)
		}
	}
	if compton == nil {
		return nil, fmt.Errorf("engine: a Compton sampler is required: %w", gammaerr.ErrBadSampling)
	}
	if !(energyMin > energyFloor) {
		return nil, fmt.Errorf("engine: EnergyMin must exceed %g MeV, got %g: %w", energyFloor, energyMin, gammaerr.ErrBadEnergy)
	}
	if maxSteps <= 0 {
		return nil, fmt.Errorf("engine: MaxSteps must be positive, got %d: %w", maxSteps, gammaerr.ErrBadSampling)
	}
	if rayleigh == nil {
		rayleigh = process.NewRayleighProcess(1.0)
	}
	return &Engine{
		Registry:       reg,
		Geometry:       geo,
		SectorMaterial: sectorMaterial,
		Stream:         stream,
		Compton:        compton,
		Rayleigh:       rayleigh,
		Mode:           mode,
		EnergyMin:      energyMin,
		MaxSteps:       maxSteps,
	}, nil
}

// materialAt resolves the compiled record for a sector index.
func (e *Engine) materialAt(sector int) (*xsect.MaterialRecord, bool) {
	if sector < 0 || sector >= len(e.SectorMaterial) {
		return nil, false
	}
	rec, ok := e.Registry.Get(e.SectorMaterial[sector])
	if !ok || !rec.Compiled {
		return nil, false
	}
	return rec, true
}

// TransportOne runs state's full trajectory: LOCATE, DRAW_STEP,
// TRANSPORT, CHECK_BOUNDARY, INTERACT, BACKWARD_WEIGHT, CHECK_ENERGY,
// STEP_LIMITS, looping until a terminal status is reached. target is the
// source-energy stop condition in backward mode (ignored in forward
// mode). state is mutated in place; its final Status is also returned.
func (e *Engine) TransportOne(state *ParticleState, target float64) TransportStatus {
	backward := e.Mode == process.Adjoint
	stream := e.Stream.Split(state.RandomStream)
	state.NormalizeDirection()

	terminate := func(status TransportStatus) TransportStatus {
		state.Status = status
		e.Metrics.recordTermination(status, state.Length)
		return status
	}

	for step := 0; step < e.MaxSteps; step++ {
		e.Metrics.recordStep()

		// 1. LOCATE
		sector := e.Geometry.Locate(state.Position)
		if sector == geometry.OutsideSector {
			return terminate(Exit)
		}
		rec, ok := e.materialAt(sector)
		if !ok {
			return terminate(TransportError)
		}

		sigmaTot := rec.Total(state.Energy)
		if !(sigmaTot > 0) || math.IsNaN(sigmaTot) || math.IsInf(sigmaTot, 0) {
			if e.Logger != nil {
				e.Logger.NumericalWarning(int(state.RandomStream), state.Energy, sector, "non-positive total cross section")
			}
			return terminate(TransportError)
		}

		// 2. DRAW_STEP
		u := stream.Float64()
		for u <= 0 {
			u = stream.Float64()
		}
		lambdaTarget := -math.Log(u) / sigmaTot

		// 3. TRANSPORT
		traceSector, tBoundary := e.Geometry.Trace(state.Position, state.Direction)
		if traceSector == geometry.OutsideSector {
			// On the outer surface and heading out of the geometry.
			return terminate(Exit)
		}
		lambdaBoundary := math.Inf(1)
		if tBoundary != geometry.NoBoundary {
			lambdaBoundary = e.Geometry.ColumnDensity(state.Position, state.Direction, tBoundary)
			if lambdaBoundary < 0 {
				if e.Logger != nil {
					e.Logger.NumericalWarning(int(state.RandomStream), state.Energy, sector, "negative column density clamped to zero")
				}
				lambdaBoundary = 0
			}
		}

		interacted := lambdaTarget < lambdaBoundary-columnTieTolerance*math.Max(1, lambdaBoundary)
		var stepDistance float64
		if interacted {
			t := e.Geometry.InverseColumn(state.Position, state.Direction, lambdaTarget)
			if t == geometry.NoInverse {
				interacted = false
				stepDistance = tBoundary
			} else {
				stepDistance = t
			}
		} else {
			stepDistance = tBoundary
		}

		before := *state
		state.Position = advance(state.Position, stepDistance, state.Direction)
		state.Length += stepDistance

		// 4. CHECK_BOUNDARY
		nextSector := sector
		if !interacted {
			nextSector, _ = e.Geometry.Trace(state.Position, state.Direction)
		}
		if e.Boundary != nil && e.Boundary.Enters(before, *state, nextSector) {
			return terminate(BoundaryHit)
		}
		if !interacted {
			continue
		}

		// 5. INTERACT
		oldEnergy := state.Energy
		channel := process.SelectChannel(rec, state.Energy, &stream)
		switch channel {
		case xsect.Photoelectric:
			return terminate(Absorption)
		case xsect.Rayleigh:
			cosTheta := e.Rayleigh.Sample(rec.Definition.MeanZ(), &stream)
			phi := stream.Float64() * 2 * math.Pi
			state.Direction = rotateDirection(state.Direction, cosTheta, phi)
		case xsect.Compton:
			comptonTable := rec.Tables[xsect.Compton]
			var outcome process.Outcome
			if backward {
				outcome = e.Compton.SampleAdjoint(state.Energy, xsect.EMax, rec.Definition.ElectronsPerMass(), comptonTable, &stream)
			} else {
				outcome = e.Compton.SampleDirect(state.Energy, rec.Definition.MeanZ(), comptonTable, &stream)
			}
			phi := stream.Float64() * 2 * math.Pi
			state.Direction = rotateDirection(state.Direction, outcome.CosTheta, phi)
			state.Energy = outcome.Energy

			// 6. BACKWARD_WEIGHT
			if backward {
				state.Weight *= outcome.WeightFactor
			}
		}

		if state.Energy < energyFloor {
			return terminate(TransportError)
		}

		// 7. CHECK_ENERGY
		if !backward {
			if state.Energy < e.EnergyMin {
				return terminate(EnergyMin)
			}
		} else if state.Energy >= target*(1-energyConstraintTolerance) {
			state.Weight = lastStepWeightCorrection(oldEnergy, state.Energy, target, state.Weight)
			return terminate(EnergyConstraint)
		}
	}

	// 8. STEP_LIMITS exhausted
	return terminate(StepMax)
}

// lastStepWeightCorrection implements the backward stop rule's overshoot
// correction: when the sampled Compton step carries the energy past the
// target, the event is accepted but its weight is scaled by the linear
// fraction of the [oldEnergy, newEnergy) interval actually needed to
// reach target, treating the crossing probability density as uniform
// over that last step.
func lastStepWeightCorrection(oldEnergy, newEnergy, target, weight float64) float64 {
	span := newEnergy - oldEnergy
	if span <= 0 {
		return weight
	}
	frac := (target - oldEnergy) / span
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return weight * frac
}

// TransportBatch runs every state's trajectory to completion, splitting
// the engine's random stream by each state's RandomStream index and
// processing states across a goroutine pool sized to GOMAXPROCS, each
// worker walking a strided slice of the batch so no state's memory is
// touched by more than one goroutine. targets supplies the backward
// source-energy stop condition per state (ignored, and may be nil, in
// forward mode).
func (e *Engine) TransportBatch(states []ParticleState, targets []float64) Result {
	runID := uuid.NewString()
	if e.Logger != nil {
		e.Logger.BatchStarted(runID, len(states))
	}

	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for worker := 0; worker < nprocs; worker++ {
		go func(worker int) {
			defer wg.Done()
			for i := worker; i < len(states); i += nprocs {
				var target float64
				if targets != nil {
					target = targets[i]
				}
				e.TransportOne(&states[i], target)
			}
		}(worker)
	}
	wg.Wait()

	result := summarize(states)
	result.RunID = runID
	if e.Logger != nil {
		e.Logger.BatchFinished(result.RunID, len(states), result.CountsByStatus())
	}
	return result
}
