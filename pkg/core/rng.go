package core

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strconv"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Uint64 returns the next raw 64-bit value.
func (r *RNG) Uint64() uint64 {
	return r.r.Uint64()
}

// Pool holds one independent stream per worker slot, all derived from a
// single seed. A stream must only ever be used by the worker that owns its
// index.
type Pool struct {
	seed    uint64
	streams []*RNG
}

// NewPool seeds a generator with seed and draws one sub-seed per stream from
// it, in stream order.
func NewPool(seed uint64, streams int) (*Pool, error) {
	if streams <= 0 {
		return nil, fmt.Errorf("%w: rng stream count %d must be positive", ErrConfig, streams)
	}
	gen := NewRNG(seed)
	p := &Pool{seed: seed, streams: make([]*RNG, streams)}
	for i := range p.streams {
		p.streams[i] = NewRNG(gen.Uint64())
	}
	return p, nil
}

// Stream returns the stream owned by worker i.
func (p *Pool) Stream(i int) *RNG { return p.streams[i] }

// Len reports the number of streams.
func (p *Pool) Len() int { return len(p.streams) }

// Seed returns the scalar the pool was derived from.
func (p *Pool) Seed() uint64 { return p.seed }

// SeedFromPassword folds a textual seed into a scalar by summing its bytes.
func SeedFromPassword(s string) uint64 {
	var sum uint64
	for i := 0; i < len(s); i++ {
		sum += uint64(s[i])
	}
	return sum
}

// RandomSeed draws a non-zero seed from the system entropy source. Runs
// started from it are not reproducible unless the value is recorded.
func RandomSeed() uint64 {
	var buf [8]byte
	for {
		if _, err := crand.Read(buf[:]); err != nil {
			return rand.Uint64() | 1
		}
		if v := binary.LittleEndian.Uint64(buf[:]); v != 0 {
			return v
		}
	}
}

// ParseSeed interprets user seed input: empty means random, digits are taken
// literally and anything else is treated as a password.
func ParseSeed(s string) uint64 {
	if s == "" {
		return RandomSeed()
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v
	}
	return SeedFromPassword(s)
}
