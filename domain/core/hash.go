package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex characters for display
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// HashSamples fingerprints one or more numeric samples. Sample boundaries are
// part of the hash, so ([1,2],[3]) and ([1],[2,3]) differ.
func HashSamples(samples ...[]float64) Hash {
	buf := make([]byte, 0, 64)
	var word [8]byte
	for _, s := range samples {
		binary.LittleEndian.PutUint64(word[:], uint64(len(s)))
		buf = append(buf, word[:]...)
		for _, v := range s {
			binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
			buf = append(buf, word[:]...)
		}
	}
	return NewHash(buf)
}
