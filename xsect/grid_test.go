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

package xsect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEnergyGridBounds(t *testing.T) {
	grid := logEnergyGrid()
	assert.Len(t, grid, NumE)
	assert.InDelta(t, EMin, grid[0], 1e-9)
	assert.InDelta(t, EMax, grid[len(grid)-1], 1e-6)
}

func TestLogEnergyGridMonotonic(t *testing.T) {
	grid := logEnergyGrid()
	for i := 1; i < len(grid); i++ {
		assert.Greater(t, grid[i], grid[i-1])
	}
}

func TestKleinNishinaDecreasesWithEnergy(t *testing.T) {
	low := kleinNishinaTotal(0.01)
	high := kleinNishinaTotal(5.0)
	assert.Greater(t, low, high)
}

func TestKleinNishinaApproachesThomsonAtLowEnergy(t *testing.T) {
	thomson := 8.0 / 3.0 * math.Pi * classicalElectronRadiusSquared
	v := kleinNishinaTotal(1e-4)
	assert.InDelta(t, thomson, v, thomson*0.05)
}

func TestAtomicPhotoelectricGrowsWithZ(t *testing.T) {
	lowZ := atomicPhotoelectric(6, 0.05)
	highZ := atomicPhotoelectric(82, 0.05)
	assert.Greater(t, highZ, lowZ)
}

func TestAtomicCrossSectionDispatch(t *testing.T) {
	assert.Equal(t, atomicPhotoelectric(8, 0.1), atomicCrossSection(Photoelectric, 8, 0.1))
	assert.Equal(t, atomicCompton(8, 0.1), atomicCrossSection(Compton, 8, 0.1))
	assert.Equal(t, atomicRayleigh(8, 0.1), atomicCrossSection(Rayleigh, 8, 0.1))
}

func TestProcessString(t *testing.T) {
	assert.Equal(t, "photoelectric", Photoelectric.String())
	assert.Equal(t, "compton", Compton.String())
	assert.Equal(t, "rayleigh", Rayleigh.String())
}
