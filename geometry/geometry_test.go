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

package geometry_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gammatrace/transport/density"
	"github.com/gammatrace/transport/geometry"
)

func TestSphereLocateInsideOutside(t *testing.T) {
	s := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1.0, Field: density.Uniform{Rho0: 1.0}}
	assert.Equal(t, 0, s.Locate([3]float64{0, 0, 0}))
	assert.Equal(t, 0, s.Locate([3]float64{0.5, 0, 0}))
	assert.Equal(t, geometry.OutsideSector, s.Locate([3]float64{2, 0, 0}))
}

func TestSphereTraceExitDistance(t *testing.T) {
	s := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1.0, Field: density.Uniform{Rho0: 1.0}}
	sector, dist := s.Trace([3]float64{0, 0, 0}, [3]float64{0, 0, 1})
	assert.Equal(t, 0, sector)
	assert.InDelta(t, 1.0, dist, 1e-9)
}

func TestSphereTraceEntryFromOutside(t *testing.T) {
	s := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1.0, Field: density.Uniform{Rho0: 1.0}}
	sector, dist := s.Trace([3]float64{-5, 0, 0}, [3]float64{1, 0, 0})
	assert.Equal(t, geometry.OutsideSector, sector)
	assert.InDelta(t, 4.0, dist, 1e-9)
}

func TestSphereTraceMisses(t *testing.T) {
	s := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1.0, Field: density.Uniform{Rho0: 1.0}}
	_, dist := s.Trace([3]float64{-5, 5, 0}, [3]float64{1, 0, 0})
	assert.Equal(t, geometry.NoBoundary, dist)
}

func TestSphereColumnDensityOutsideIsZero(t *testing.T) {
	s := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1.0, Field: density.Uniform{Rho0: 3.0}}
	got := s.ColumnDensity([3]float64{5, 0, 0}, [3]float64{0, 0, 1}, 10.0)
	assert.Equal(t, 0.0, got)
}

func TestSphereInverseColumnRoundTrip(t *testing.T) {
	s := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1.0, Field: density.Uniform{Rho0: 2.0}}
	x := [3]float64{0, 0, 0}
	d := [3]float64{0, 0, 1}
	lambda := 0.7
	tGot := s.InverseColumn(x, d, lambda)
	require.NotEqual(t, geometry.NoInverse, tGot)
	assert.InDelta(t, lambda, s.ColumnDensity(x, d, tGot), 1e-6)
}

func TestSphereInverseColumnExceedsAvailable(t *testing.T) {
	s := geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: 1.0, Field: density.Uniform{Rho0: 1.0}}
	got := s.InverseColumn([3]float64{0, 0, 0}, [3]float64{0, 0, 1}, 1000.0)
	assert.Equal(t, geometry.NoInverse, got)
}

func TestSlabLocateWithinBounds(t *testing.T) {
	s := geometry.NewSlab(
		[3]float64{0, 0, 1}, 0, 2e4,
		nil,
		[]density.Field{density.Gradient{Rho0: 1.225e-3, H: 1.04e6, Axis: [3]float64{0, 0, 1}}},
	)
	assert.Equal(t, 0, s.Locate([3]float64{0, 0, 100}))
	assert.Equal(t, geometry.OutsideSector, s.Locate([3]float64{0, 0, -1}))
	assert.Equal(t, geometry.OutsideSector, s.Locate([3]float64{0, 0, 2e4 + 1}))
}

func TestSlabTraceToOuterBoundary(t *testing.T) {
	s := geometry.NewSlab(
		[3]float64{0, 0, 1}, 0, 100,
		nil,
		[]density.Field{density.Uniform{Rho0: 1.0}},
	)
	sector, dist := s.Trace([3]float64{0, 0, 0}, [3]float64{0, 0, 1})
	assert.Equal(t, 0, sector)
	assert.InDelta(t, 100.0, dist, 1e-6)
}

func TestSlabTraceAcrossInteriorBoundary(t *testing.T) {
	s := geometry.NewSlab(
		[3]float64{0, 0, 1}, 0, 100,
		[]float64{40},
		[]density.Field{density.Uniform{Rho0: 1.0}, density.Uniform{Rho0: 2.0}},
	)
	sector, dist := s.Trace([3]float64{0, 0, 0}, [3]float64{0, 0, 1})
	assert.Equal(t, 0, sector)
	assert.InDelta(t, 40.0, dist, 1e-6)
}

func TestSlabColumnDensityMatchesUniform(t *testing.T) {
	s := geometry.NewSlab(
		[3]float64{0, 0, 1}, 0, 100,
		nil,
		[]density.Field{density.Uniform{Rho0: 1.5}},
	)
	got := s.ColumnDensity([3]float64{0, 0, 0}, [3]float64{0, 0, 1}, 10.0)
	assert.InDelta(t, 15.0, got, 1e-9)
}

func TestSlabInverseColumnRoundTrip(t *testing.T) {
	s := geometry.NewSlab(
		[3]float64{0, 0, 1}, 0, 100,
		nil,
		[]density.Field{density.Gradient{Rho0: 1.0, H: 50, Axis: [3]float64{0, 0, 1}}},
	)
	x := [3]float64{0, 0, 0}
	d := [3]float64{0, 0, 1}
	tGot := s.InverseColumn(x, d, 5.0)
	require.NotEqual(t, geometry.NoInverse, tGot)
	assert.InDelta(t, 5.0, s.ColumnDensity(x, d, tGot), 1e-6)
}

func TestBoxLocateInsideOutside(t *testing.T) {
	b := geometry.Box{
		MinX: -10, MaxX: 10, MinY: -10, MaxY: 10, MinZ: 0, MaxZ: 20,
		Fields: []density.Field{density.Uniform{Rho0: 1.0}},
	}
	assert.Equal(t, 0, b.Locate([3]float64{0, 0, 5}))
	assert.Equal(t, geometry.OutsideSector, b.Locate([3]float64{20, 0, 5}))
	assert.Equal(t, geometry.OutsideSector, b.Locate([3]float64{0, 0, -1}))
}

func TestBoxTraceLayerBoundary(t *testing.T) {
	b := geometry.Box{
		MinX: -10, MaxX: 10, MinY: -10, MaxY: 10, MinZ: 0, MaxZ: 20,
		LayerBoundaries: []float64{8},
		Fields:          []density.Field{density.Uniform{Rho0: 1.0}, density.Uniform{Rho0: 0.5}},
	}
	sector, dist := b.Trace([3]float64{0, 0, 0}, [3]float64{0, 0, 1})
	assert.Equal(t, 0, sector)
	assert.InDelta(t, 8.0, dist, 1e-6)
}

func TestBoxTraceSideFace(t *testing.T) {
	b := geometry.Box{
		MinX: -10, MaxX: 10, MinY: -10, MaxY: 10, MinZ: 0, MaxZ: 20,
		Fields: []density.Field{density.Uniform{Rho0: 1.0}},
	}
	sector, dist := b.Trace([3]float64{0, 0, 5}, [3]float64{1, 0, 0})
	assert.Equal(t, 0, sector)
	assert.InDelta(t, 10.0, dist, 1e-6)
}

func TestBoxInverseColumnRoundTrip(t *testing.T) {
	b := geometry.Box{
		MinX: -10, MaxX: 10, MinY: -10, MaxY: 10, MinZ: 0, MaxZ: 20,
		Fields: []density.Field{density.Uniform{Rho0: 2.0}},
	}
	x := [3]float64{0, 0, 0}
	d := [3]float64{0, 0, 1}
	tGot := b.InverseColumn(x, d, 4.0)
	require.NotEqual(t, geometry.NoInverse, tGot)
	assert.InDelta(t, 4.0, b.ColumnDensity(x, d, tGot), 1e-6)
}

type fakeExternal struct {
	sectors int
}

func (f fakeExternal) Locate(x [3]float64) int {
	if x[2] < 0 || x[2] > 1 {
		return geometry.OutsideSector
	}
	return 0
}
func (f fakeExternal) Trace(x, d [3]float64) (int, float64) {
	return f.Locate(x), 1.0
}
func (f fakeExternal) ColumnDensity(x, d [3]float64, t float64) float64 { return t }
func (f fakeExternal) InverseColumn(x, d [3]float64, lambda float64) float64 {
	return lambda
}
func (f fakeExternal) SectorCount() int             { return f.sectors }
func (f fakeExternal) SectorDescription(int) string { return "fake" }

func TestExternalDelegates(t *testing.T) {
	ext := geometry.External{Source: fakeExternal{sectors: 1}}
	assert.Equal(t, 0, ext.Locate([3]float64{0, 0, 0.5}))
	sector, dist := ext.Trace([3]float64{0, 0, 0.5}, [3]float64{0, 0, 1})
	assert.Equal(t, 0, sector)
	assert.Equal(t, 1.0, dist)
}

func TestExternalValidateDetectsOutOfRange(t *testing.T) {
	ext := geometry.External{Source: fakeExternal{sectors: 1}}
	assert.NoError(t, ext.Validate(0))
	assert.NoError(t, ext.Validate(geometry.OutsideSector))
	assert.Error(t, ext.Validate(5))
}

func TestNoBoundaryIsLargestFinite(t *testing.T) {
	assert.Equal(t, math.MaxFloat64, geometry.NoBoundary)
}
