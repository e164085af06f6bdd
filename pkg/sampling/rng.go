// Package sampling provides the deterministic random sequences and the
// geometric samplers used by the renderer and the particle simulator.
package sampling

import (
	"math"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

// RNG is a PCG32 generator. The zero value is not usable; construct
// streams with NewRNG so every sequence is seeded the same way across
// runs and platforms.
type RNG struct {
	State uint64
	Inc   uint64
}

const pcgMult = 6364136223846793005

// Advance the generator and produce the next 32 random bits.
func (r *RNG) next() uint32 {
	old := r.State
	r.State = old*pcgMult + r.Inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// NewRNG seeds a generator on the given stream. Distinct seq values
// yield statistically independent sequences for the same seed.
func NewRNG(seed, seq uint64) RNG {
	r := RNG{State: 0, Inc: (seq << 1) | 1}
	r.next()
	r.State += seed
	r.next()
	return r
}

// Uint32 returns the next raw 32 bit value.
func (r *RNG) Uint32() uint32 {
	return r.next()
}

// Int returns a value in [0, n) by modulo reduction.
func (r *RNG) Int(n int) int {
	return int(r.next() % uint32(n))
}

// Float returns a value in [0, 1) with 23 bits of precision.
func (r *RNG) Float() float32 {
	return math.Float32frombits((r.next()>>9)|0x3f800000) - 1
}

// Float2 returns two successive Float draws as a vector.
func (r *RNG) Float2() geom.Vec2 {
	x := r.Float()
	y := r.Float()
	return geom.Vec2{x, y}
}
