// Package input converts raw user text into numeric samples.
package input

import (
	"math"
	"strconv"
	"strings"
)

// Parsed holds the numbers recovered from free text plus the tokens that
// were dropped
type Parsed struct {
	Values  []float64
	Dropped []string
}

// ParseNumbers splits text on commas, trims each token and keeps the ones
// that parse as finite floats. Empty tokens are ignored silently.
func ParseNumbers(text string) Parsed {
	var p Parsed
	if strings.TrimSpace(text) == "" {
		return p
	}
	for _, raw := range strings.Split(text, ",") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			p.Dropped = append(p.Dropped, tok)
			continue
		}
		p.Values = append(p.Values, v)
	}
	return p
}

// Numbers is ParseNumbers without the dropped-token report
func Numbers(text string) []float64 {
	return ParseNumbers(text).Values
}
