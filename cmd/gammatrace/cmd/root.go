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

// Package cmd contains the gammatrace command-line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	gammatrace "github.com/gammatrace/transport"
	"github.com/gammatrace/transport/config"
)

var (
	scenarioFile string
	verbose      bool

	// scenario holds the loaded configuration for the running command.
	scenario *config.ScenarioConfig

	// logger is the process-wide structured logger, built once in
	// Startup from the verbose flag.
	logger *zap.Logger
)

// RootCmd is the gammatrace CLI's entry point.
var RootCmd = &cobra.Command{
	Use:   "gammatrace",
	Short: "A Monte Carlo gamma-photon transport engine.",
	Long: `gammatrace transports low-energy gamma photons through
heterogeneous material volumes, in either forward (source-to-detector)
or backward (adjoint, detector-to-source) mode.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(Startup(scenarioFile, verbose))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		completedMessage()
	},
}

// Startup loads the scenario file and builds the process logger.
func Startup(scenarioFile string, verbose bool) error {
	var err error
	scenario, err = config.Load(scenarioFile)
	if err != nil {
		return err
	}

	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("cmd: building logger: %w", err)
	}

	logger.Sugar().Infow("gammatrace starting",
		"version", gammatrace.Version, "scenario", scenarioFile, "mode", scenario.Mode)
	return nil
}

func completedMessage() {
	if logger != nil {
		logger.Sugar().Info("gammatrace run complete")
	}
}

func labelErr(err error) error {
	if err != nil {
		return fmt.Errorf("gammatrace: %w", err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(runCmd)

	RootCmd.PersistentFlags().StringVar(&scenarioFile, "config", "./scenario.yaml", "scenario configuration file location")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development-mode (human-readable) logging")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gammatrace v%s\n", gammatrace.Version)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	PersistentPostRun: func(cmd *cobra.Command, args []string) {},
}
