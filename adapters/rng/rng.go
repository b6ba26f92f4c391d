// Package rng provides RNGPort implementations: system-seeded streams for
// production and fixed-seed streams for reproducible runs.
package rng

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"

	"bootstrapstats/ports"
)

// SystemRNG seeds every stream from the operating system's entropy source
type SystemRNG struct{}

// NewSystemRNG creates a system-seeded RNG adapter
func NewSystemRNG() *SystemRNG {
	return &SystemRNG{}
}

// Stream returns a freshly seeded generator; name does not influence it
func (r *SystemRNG) Stream(ctx context.Context, name string) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Entropy unavailable; the clock still gives distinct streams per call
		return rand.New(rand.NewSource(time.Now().UnixNano())), nil
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(buf[:])))), nil
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *SystemRNG) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return seededStream(ctx, name, seed)
}

// FixedRNG derives every stream from one base seed so identical requests
// produce identical results
type FixedRNG struct {
	seed int64
}

// NewFixedRNG creates a deterministic RNG adapter
func NewFixedRNG(seed int64) *FixedRNG {
	return &FixedRNG{seed: seed}
}

// Seed returns the base seed
func (r *FixedRNG) Seed() int64 { return r.seed }

// Stream creates a deterministic stream keyed by name and the base seed
func (r *FixedRNG) Stream(ctx context.Context, name string) (*rand.Rand, error) {
	return seededStream(ctx, name, r.seed)
}

// SeededStream creates a deterministic random number generator for a named operation
func (r *FixedRNG) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return seededStream(ctx, name, seed)
}

// New picks the adapter for an optional configured seed
func New(seed *int64) ports.RNGPort {
	if seed != nil {
		return NewFixedRNG(*seed)
	}
	return NewSystemRNG()
}

func seededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rng stream %q: %w", name, err)
	}
	if name != "" {
		seed = int64(hashString(name)) + seed
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
