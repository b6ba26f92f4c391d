// Package testkit provides seeded fixtures for engine, service and server tests.
package testkit

import (
	"math"
	"math/rand"

	"bootstrapstats/adapters/rng"
	"bootstrapstats/ports"
)

// DefaultSeed keeps fixtures reproducible across runs
const DefaultSeed int64 = 42

// TestKit provides testing utilities and fixtures
type TestKit struct {
	seed int64
	rng  *rand.Rand
}

// NewTestKit creates a test kit seeded with DefaultSeed
func NewTestKit() *TestKit {
	return NewTestKitWithSeed(DefaultSeed)
}

// NewTestKitWithSeed creates a test kit with its own seed
func NewTestKitWithSeed(seed int64) *TestKit {
	return &TestKit{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the kit's seed
func (t *TestKit) Seed() int64 { return t.seed }

// RNGAdapter returns a fixed-seed RNG port sharing the kit's seed
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return rng.NewFixedRNG(t.seed)
}

// Normal draws n values from N(mean, sd^2)
func (t *TestKit) Normal(n int, mean, sd float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + t.rng.NormFloat64()*sd
	}
	return out
}

// Binary draws n Bernoulli(p) outcomes coded as 0/1
func (t *TestKit) Binary(n int, p float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		if t.rng.Float64() < p {
			out[i] = 1
		}
	}
	return out
}

// AR1 generates an autoregressive series x[i] = phi*x[i-1] + e[i] with
// e ~ N(0, sd^2). |phi| close to 1 produces strong local dependence.
func (t *TestKit) AR1(n int, phi, sd float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	// Start from the stationary distribution
	out[0] = t.rng.NormFloat64() * sd / math.Sqrt(1-math.Min(phi*phi, 0.999))
	for i := 1; i < n; i++ {
		out[i] = phi*out[i-1] + t.rng.NormFloat64()*sd
	}
	return out
}

// Linear returns y = slope*x + intercept + N(0, noise^2) for each x
func (t *TestKit) Linear(x []float64, slope, intercept, noise float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = slope*v + intercept + t.rng.NormFloat64()*noise
	}
	return out
}

// Sequence returns 1, 2, ..., n
func Sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// Constant returns n copies of v
func Constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
