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

package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gammatrace/transport/config"
	"github.com/gammatrace/transport/engine"
	"github.com/gammatrace/transport/prng"
	"github.com/gammatrace/transport/process"
)

var metricsOn bool

func init() {
	runCmd.PersistentFlags().BoolVar(&metricsOn, "metrics", false,
		"register Prometheus counters/histograms for the run (terminations, steps, path length)")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a transport batch from the loaded scenario.",
	Long: "run builds the engine and spectrum described by the scenario " +
		"file and transports one batch of photons, reporting summary statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(Run(scenario, metricsOn))
	},
}

// Run builds the engine described by cfg and transports BatchSize
// photons, logging the resulting per-status counts and summary
// statistics.
func Run(cfg *config.ScenarioConfig, enableMetrics bool) error {
	assembled, err := cfg.Build()
	if err != nil {
		return err
	}
	eng := assembled.Engine
	if enableMetrics {
		eng.Metrics = engine.NewMetrics(prometheus.DefaultRegisterer)
	}
	eng.Logger = engine.NewProgressLogger(logger)

	sourceStream := prng.NewStream(cfg.Seed0^0xA5A5A5A5A5A5A5A5, cfg.Seed1)
	states := make([]engine.ParticleState, cfg.BatchSize)
	targets := make([]float64, cfg.BatchSize)

	if assembled.Mode == process.Adjoint {
		samples := assembled.Spectrum.SampleBackward(cfg.BatchSize, &sourceStream)
		for i, s := range samples {
			states[i] = engine.ParticleState{
				Energy:       s.FinalEnergy,
				Direction:    [3]float64{0, 0, 1},
				Weight:       s.Weight,
				RandomStream: uint64(i),
			}
			targets[i] = s.SourceEnergy
		}
	} else {
		energies := assembled.Spectrum.SampleForward(cfg.BatchSize, &sourceStream)
		for i, e := range energies {
			states[i] = engine.ParticleState{
				Energy:       e,
				Direction:    [3]float64{0, 0, 1},
				Weight:       1,
				RandomStream: uint64(i),
			}
		}
	}

	result := eng.TransportBatch(states, targets)

	fmt.Printf("run %s: %d photons transported\n", result.RunID, len(states))
	fmt.Printf("  mean energy:   %.6g MeV\n", result.MeanEnergy)
	fmt.Printf("  mean weight:   %.6g\n", result.MeanWeight)
	fmt.Printf("  weight var:    %.6g\n", result.WeightVariance)
	for status, count := range result.CountsByStatus() {
		fmt.Printf("  %-16s %d\n", status.String()+":", count)
	}
	return nil
}
