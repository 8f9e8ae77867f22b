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
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Result is the outcome of one TransportBatch call: the terminal status
// of every state, plus run-level summary statistics correlated to a run
// ID so that log lines from a single batch can be grouped, the way the
// teacher correlates a distributed job's log lines by id.
type Result struct {
	RunID      string
	Statuses   []TransportStatus
	MeanEnergy float64
	MeanWeight float64
	// WeightVariance is the sample variance of final weights, the
	// quantity scenario 8's forward/backward collection-rate agreement
	// check divides by to form a combined statistical uncertainty.
	WeightVariance float64
}

// summarize builds a Result from the final states of a batch.
func summarize(states []ParticleState) Result {
	energies := make([]float64, len(states))
	weights := make([]float64, len(states))
	statuses := make([]TransportStatus, len(states))
	for i, s := range states {
		energies[i] = s.Energy
		weights[i] = s.Weight
		statuses[i] = s.Status
	}

	res := Result{RunID: uuid.NewString(), Statuses: statuses}
	if len(states) == 0 {
		return res
	}
	res.MeanEnergy = floats.Sum(energies) / float64(len(energies))
	res.MeanWeight = stat.Mean(weights, nil)
	res.WeightVariance = stat.Variance(weights, nil)
	return res
}

// CountsByStatus tallies the terminal status distribution, the shape
// ProgressLogger.BatchFinished and tests both want.
func (r Result) CountsByStatus() map[TransportStatus]int {
	counts := make(map[TransportStatus]int)
	for _, s := range r.Statuses {
		counts[s]++
	}
	return counts
}
