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

	"github.com/gammatrace/transport/process"
)

func TestNewComptonProcessRejectsPenelopeAdjoint(t *testing.T) {
	_, err := process.NewComptonProcess(process.RejectionSampling, process.Adjoint, process.Penelope, 1.0)
	require.Error(t, err)
}

func TestNewComptonProcessRejectsInverseTransformPenelope(t *testing.T) {
	_, err := process.NewComptonProcess(process.InverseTransform, process.Direct, process.Penelope, 1.0)
	require.Error(t, err)
}

func TestNewComptonProcessAcceptsDirectKleinNishina(t *testing.T) {
	cp, err := process.NewComptonProcess(process.RejectionSampling, process.Direct, process.KleinNishina, 1.0)
	require.NoError(t, err)
	assert.Equal(t, process.KleinNishina, cp.Model)
}

func TestNewComptonProcessAcceptsAdjointInverseTransform(t *testing.T) {
	cp, err := process.NewComptonProcess(process.InverseTransform, process.Adjoint, process.KleinNishina, 1.0)
	require.NoError(t, err)
	assert.Equal(t, process.Adjoint, cp.Mode)
}

func TestNewComptonProcessRejectsNonPositivePrecision(t *testing.T) {
	_, err := process.NewComptonProcess(process.RejectionSampling, process.Direct, process.KleinNishina, 0)
	require.Error(t, err)
}

func TestNewComptonProcessRejectsUnsupportedCombination(t *testing.T) {
	_, err := process.NewComptonProcess(process.RejectionSampling, process.Adjoint, process.KleinNishina, 1.0)
	require.Error(t, err)
}

func TestComptonMethodModeModelStringers(t *testing.T) {
	assert.Equal(t, "direct", process.Direct.String())
	assert.Equal(t, "adjoint", process.Adjoint.String())
	assert.Equal(t, "klein-nishina", process.KleinNishina.String())
	assert.Equal(t, "scattering-function", process.ScatteringFunction.String())
	assert.Equal(t, "penelope", process.Penelope.String())
	assert.Equal(t, "rejection-sampling", process.RejectionSampling.String())
	assert.Equal(t, "inverse-transform", process.InverseTransform.String())
}
