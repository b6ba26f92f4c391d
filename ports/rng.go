package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides random number streams to the bootstrap engine
type RNGPort interface {
	// Stream creates the random source for one named analysis run
	Stream(ctx context.Context, name string) (*rand.Rand, error)

	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
