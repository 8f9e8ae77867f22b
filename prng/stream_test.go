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

package prng_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gammatrace/transport/prng"
)

func TestDeterministicGivenSameSeed(t *testing.T) {
	a := prng.NewStream(1, 2)
	b := prng.NewStream(1, 2)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := prng.NewStream(1, 2)
	b := prng.NewStream(1, 3)
	same := true
	for i := 0; i < 16; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestFloat64InUnitInterval(t *testing.T) {
	s := prng.NewStream(42, 1337)
	for i := 0; i < 100000; i++ {
		v := s.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestEquidistributedMean(t *testing.T) {
	s := prng.NewStream(7, 11)
	const n = 200000
	var sum float64
	for i := 0; i < n; i++ {
		sum += s.Float64()
	}
	mean := sum / n
	assert.InDelta(t, 0.5, mean, 0.01)
}

func TestSplitIsDeterministicPerIndex(t *testing.T) {
	parent := prng.NewStream(5, 9)
	a := parent.Split(3)
	b := parent.Split(3)
	assert.Equal(t, a.Float64(), b.Float64())

	c := parent.Split(4)
	assert.NotEqual(t, a.Float64(), c.Float64())
}

func TestFillMatchesFloat64Sequence(t *testing.T) {
	s1 := prng.NewStream(21, 22)
	s2 := s1
	buf := make([]float64, 50)
	s1.Fill(buf)
	for i := range buf {
		assert.Equal(t, s2.Float64(), buf[i])
	}
}

func TestSkipAdvancesCounter(t *testing.T) {
	a := prng.NewStream(1, 1)
	b := prng.NewStream(1, 1)
	a.Skip(10)
	for i := 0; i < 10; i++ {
		b.Float64()
	}
	assert.Equal(t, a.Float64(), b.Float64())
}

func TestStandardDeviationNearUniform(t *testing.T) {
	s := prng.NewStream(99, 100)
	const n = 100000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := s.Float64()
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	// Uniform(0,1) variance is 1/12.
	assert.InDelta(t, 1.0/12.0, variance, 0.005)
	assert.False(t, math.IsNaN(variance))
}
