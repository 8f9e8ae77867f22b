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

package process_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammatrace/transport/atomic"
	"github.com/gammatrace/transport/prng"
	"github.com/gammatrace/transport/process"
	"github.com/gammatrace/transport/xsect"
)

func TestAdjointScatteringFunctionIncreasesEnergy(t *testing.T) {
	table := waterComptonTable(t)
	def, err := atomic.NewFromFormula("water", "H2O")
	require.NoError(t, err)
	electronsPerMass := def.ElectronsPerMass()

	cp, err := process.NewComptonProcess(process.RejectionSampling, process.Adjoint, process.ScatteringFunction, 1.0)
	require.NoError(t, err)

	stream := prng.NewStream(11, 12)
	const Ep = 0.1
	for i := 0; i < 500; i++ {
		outcome := cp.SampleAdjoint(Ep, xsect.EMax, electronsPerMass, table, &stream)
		assert.GreaterOrEqual(t, outcome.Energy, Ep-1e-9)
		assert.Greater(t, outcome.WeightFactor, 0.0)
	}
}

func TestAdjointInverseTransformIncreasesEnergyWeightOne(t *testing.T) {
	table := waterComptonTable(t)
	def, err := atomic.NewFromFormula("water", "H2O")
	require.NoError(t, err)
	electronsPerMass := def.ElectronsPerMass()

	cp, err := process.NewComptonProcess(process.InverseTransform, process.Adjoint, process.KleinNishina, 1.0)
	require.NoError(t, err)

	stream := prng.NewStream(13, 14)
	const Ep = 0.2
	for i := 0; i < 500; i++ {
		outcome := cp.SampleAdjoint(Ep, xsect.EMax, electronsPerMass, table, &stream)
		assert.GreaterOrEqual(t, outcome.Energy, Ep-1e-9)
		assert.InDelta(t, 1.0, outcome.WeightFactor, 1e-9)
	}
}
