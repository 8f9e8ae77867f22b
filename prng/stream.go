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

// Package prng implements the deterministic, seedable, skip-ahead
// uniform(0,1) random stream used by every sampler in gammatrace. The
// generator is counter-based, each draw a SplitMix64-style hash of seed
// and counter: state is a 128-bit seed plus a 64-bit counter, and
// drawing the n'th value never requires
// having drawn the first n-1. That makes Split (deriving an independent
// substream per particle index) an O(1) key-mix instead of a state walk,
// which is what reproducible per-batch-index random streams need.
package prng

import (
	"crypto/rand"
	"encoding/binary"
)

// weyl0 and weyl1 are odd Weyl-sequence increments (weyl0 is 2^64 over
// the golden ratio) that spread the draw counter and the Split index
// across the key; mul0 and mul1 are mix's multipliers.
const (
	weyl0 uint64 = 0x9E3779B97F4A7C15
	weyl1 uint64 = 0xBB67AE8584CAA73B
	mul0  uint64 = 0xD2B74407B1CE6E93
	mul1  uint64 = 0xCA5A826395121157
)

// Stream is a deterministic, counter-based uniform(0,1) generator. The
// zero value is not valid; use NewStream or NewStreamFromEntropy. A
// Stream is cheap to copy by value (it holds no pointers), but Uint64
// and Float64 mutate the counter, so a Stream used concurrently by two
// goroutines must be Split first.
type Stream struct {
	key0, key1 uint64 // 128-bit seed, fixed for the life of the stream
	ctr        uint64 // monotonically increasing draw counter
}

// NewStream returns a stream deterministically seeded from a 128-bit
// seed split across two uint64 words.
func NewStream(seed0, seed1 uint64) Stream {
	return Stream{key0: seed0, key1: seed1}
}

// NewStreamFromEntropy returns a stream seeded from OS entropy
// (crypto/rand), for callers that have no reproducibility requirement.
func NewStreamFromEntropy() (Stream, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return Stream{}, err
	}
	return NewStream(binary.LittleEndian.Uint64(buf[0:8]), binary.LittleEndian.Uint64(buf[8:16])), nil
}

// Split derives an independent substream for batch index idx by mixing
// the index into the stream's key. Two streams split from the same
// parent with different indices are, to the precision needed for Monte
// Carlo transport, statistically independent; the same index always
// yields the same substream, giving every per-state random draw a
// reproducible source.
func (s Stream) Split(idx uint64) Stream {
	k0 := s.key0 + idx*weyl0
	k1 := s.key1 + idx*weyl1
	return Stream{key0: mix(k0), key1: mix(k1)}
}

// mix is a SplitMix64-style finalizer: a small number of multiply-xor
// rounds that turn a weakly-perturbed key into a well-avalanched one.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= mul0
	x ^= x >> 27
	x *= mul1
	x ^= x >> 31
	return x
}

// Uint64 draws the next raw 64-bit value from the stream and advances
// the counter. Because the generator is counter-based, this is pure
// arithmetic on (key, counter) with no table lookups or internal state
// walk, so batch draws (Fill) parallelize trivially across states.
func (s *Stream) Uint64() uint64 {
	c := s.ctr
	s.ctr++
	lo := mix(s.key0 ^ (c * weyl0))
	hi := mix(s.key1 ^ (c*weyl1 + lo))
	return hi ^ (lo << 1) ^ (lo >> 1)
}

// Float64 draws a value in [0, 1) with 53 bits of precision
// (single-float equidistribution).
func (s *Stream) Float64() float64 {
	const bits53 = 1 << 53
	return float64(s.Uint64()>>11) / bits53
}

// Fill draws len(buf) uniform(0,1) values into a pre-allocated buffer,
// avoiding per-call allocation on the hot transport path.
func (s *Stream) Fill(buf []float64) {
	for i := range buf {
		buf[i] = s.Float64()
	}
}

// Skip advances the stream's counter by n draws without generating
// values, for callers that want to reserve a fixed-size block of draws
// per step ahead of time.
func (s *Stream) Skip(n uint64) {
	s.ctr += n
}

// uniformSource adapts *Stream to gonum.org/v1/gonum/stat/distuv's
// Source interface (a single Uint64() uint64 method), so distuv
// distributions can draw from a gammatrace stream without any of the
// process or spectrum packages hand-rolling inverse-CDF arithmetic for
// the plain uniform and log-uniform cases.
type uniformSource struct{ s *Stream }

// Uint64 implements golang.org/x/exp/rand.Source's Uint64 method, the
// interface gonum.org/v1/gonum/stat/distuv distributions expect for
// their Src field.
func (u uniformSource) Uint64() uint64 { return u.s.Uint64() }

// Seed is a no-op: a gammatrace Stream is already seeded at
// construction, and distuv only calls Seed when a caller asks a
// distribution to reseed itself, which gammatrace never does (reseeding
// would break per-state reproducibility).
func (u uniformSource) Seed(uint64) {}

// AsSource adapts s to gonum.org/v1/gonum/stat/distuv's Src interface,
// so process and spectrum can drive distuv distributions directly from
// a gammatrace stream instead of hand-rolling inverse-CDF arithmetic for
// the plain uniform and log-uniform cases.
func AsSource(s *Stream) interface {
	Uint64() uint64
	Seed(uint64)
} {
	return uniformSource{s: s}
}

