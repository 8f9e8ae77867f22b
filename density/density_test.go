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

package density_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gammatrace/transport/density"
)

func TestUniformDensity(t *testing.T) {
	u := density.Uniform{Rho0: 1.0}
	assert.Equal(t, 1.0, u.Density([3]float64{5, -3, 1}))
}

func TestUniformColumnDensity(t *testing.T) {
	u := density.Uniform{Rho0: 2.5}
	x := [3]float64{0, 0, 0}
	d := [3]float64{0, 0, 1}
	assert.InDelta(t, 2.5*4.0, u.ColumnDensity(x, d, 4.0), 1e-12)
}

func TestGradientDensityAtOrigin(t *testing.T) {
	g := density.Gradient{Rho0: 1.225e-3, H: 8.5e5, Axis: [3]float64{0, 0, 1}}
	assert.InDelta(t, 1.225e-3, g.Density([3]float64{0, 0, 0}), 1e-12)
}

func TestGradientDensityDecaysUpward(t *testing.T) {
	g := density.Gradient{Rho0: 1.225e-3, H: 8.5e5, Axis: [3]float64{0, 0, 1}}
	low := g.Density([3]float64{0, 0, 0})
	high := g.Density([3]float64{0, 0, 8.5e5})
	assert.InDelta(t, low/math.E, high, low*1e-9)
}

func TestGradientColumnDensityMatchesAnalyticForm(t *testing.T) {
	g := density.Gradient{Rho0: 1.0, H: 100.0, Axis: [3]float64{0, 0, 1}}
	x := [3]float64{0, 0, 0}
	d := [3]float64{0, 0, 1}
	t0 := 50.0
	got := g.ColumnDensity(x, d, t0)
	want := g.Rho0 * g.H * (1 - math.Exp(-t0/g.H))
	assert.InDelta(t, want, got, want*1e-9)
}

func TestGradientColumnDensityPerpendicularRayIsUniform(t *testing.T) {
	g := density.Gradient{Rho0: 3.0, H: 10.0, Axis: [3]float64{0, 0, 1}}
	x := [3]float64{0, 0, 5}
	d := [3]float64{1, 0, 0} // perpendicular to the gradient axis
	got := g.ColumnDensity(x, d, 7.0)
	want := g.Density(x) * 7.0
	assert.InDelta(t, want, got, want*1e-9)
}

func TestFunctorDensityCallsCallback(t *testing.T) {
	f := density.Functor{Rho: func(x [3]float64) float64 { return 1 + x[2] }}
	assert.Equal(t, 3.0, f.Density([3]float64{0, 0, 2}))
}

func TestFunctorColumnDensityMatchesUniformSpecialCase(t *testing.T) {
	f := density.Functor{Rho: func([3]float64) float64 { return 4.0 }}
	x := [3]float64{0, 0, 0}
	d := [3]float64{0, 0, 1}
	got := f.ColumnDensity(x, d, 3.0)
	assert.InDelta(t, 12.0, got, 1e-9)
}

func TestFunctorColumnDensityMatchesGradientAnalyticForm(t *testing.T) {
	rho0, h := 2.0, 20.0
	f := density.Functor{Rho: func(x [3]float64) float64 {
		return rho0 * math.Exp(-x[2]/h)
	}}
	x := [3]float64{0, 0, 0}
	d := [3]float64{0, 0, 1}
	t0 := 15.0
	got := f.ColumnDensity(x, d, t0)
	want := rho0 * h * (1 - math.Exp(-t0/h))
	assert.InDelta(t, want, got, want*1e-6)
}

func TestFunctorColumnDensityZeroLength(t *testing.T) {
	f := density.Functor{Rho: func([3]float64) float64 { return 1.0 }}
	assert.Equal(t, 0.0, f.ColumnDensity([3]float64{}, [3]float64{0, 0, 1}, 0))
}
