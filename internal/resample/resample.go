// Package resample implements the draw policies used by bootstrap procedures.
package resample

import (
	"fmt"

	"bootstrapstats/domain/core"
)

// DefaultBlockSize is the window length used by Block when none is configured
const DefaultBlockSize = 3

// Source is the random capability resamplers need. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// IID draws size elements uniformly with replacement from s.
// A size of zero or less means len(s).
func IID(src Source, s []float64, size int) ([]float64, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("iid resample: %w", core.ErrEmptySample)
	}
	if size <= 0 {
		size = len(s)
	}
	out := make([]float64, size)
	for i := range out {
		out[i] = s[src.Intn(len(s))]
	}
	return out, nil
}

// Indices draws size indices uniformly with replacement from [0, n)
func Indices(src Source, n, size int) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("index resample: %w", core.ErrEmptySample)
	}
	if size <= 0 {
		size = n
	}
	out := make([]int, size)
	for i := range out {
		out[i] = src.Intn(n)
	}
	return out, nil
}

// PairedIndex applies one shared index draw to both x and y so every
// drawn (x, y) pair is an original observation
func PairedIndex(src Source, x, y []float64, size int) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, core.NewLengthMismatchError(len(x), len(y))
	}
	idx, err := Indices(src, len(x), size)
	if err != nil {
		return nil, nil, err
	}
	outX := make([]float64, len(idx))
	outY := make([]float64, len(idx))
	for k, i := range idx {
		outX[k] = x[i]
		outY[k] = y[i]
	}
	return outX, outY, nil
}

// Block concatenates randomly chosen overlapping windows of blockSize
// consecutive observations and truncates the result to len(s)
func Block(src Source, s []float64, blockSize int) ([]float64, error) {
	if err := CheckBlockSize(len(s), blockSize); err != nil {
		return nil, err
	}
	n := len(s)
	numWindows := n - blockSize + 1
	numBlocks := (n + blockSize - 1) / blockSize

	out := make([]float64, 0, numBlocks*blockSize)
	for b := 0; b < numBlocks; b++ {
		start := src.Intn(numWindows)
		out = append(out, s[start:start+blockSize]...)
	}
	return out[:n], nil
}

// CheckBlockSize validates a block length against a series length
func CheckBlockSize(n, blockSize int) error {
	if n == 0 {
		return fmt.Errorf("block resample: %w", core.ErrEmptySample)
	}
	if blockSize < 1 {
		return core.NewInvalidInputError("block size", fmt.Sprintf("%d must be at least 1", blockSize))
	}
	if blockSize > n {
		return core.NewInvalidInputError("block size", fmt.Sprintf("%d exceeds series length %d", blockSize, n))
	}
	return nil
}
