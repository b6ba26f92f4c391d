// Package jsonsample extracts numeric samples from JSON documents with gjson
// path syntax, e.g. "orders.#.total".
package jsonsample

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Reader holds one JSON document
type Reader struct {
	body []byte
}

// NewReader wraps an in-memory document
func NewReader(body []byte) (*Reader, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON document")
	}
	return &Reader{body: body}, nil
}

// ReadFile loads a document from disk
func ReadFile(path string) (*Reader, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return NewReader(body)
}

// Sample returns the finite numbers found at path. The path must resolve to
// an array; numeric strings are accepted, anything else is skipped.
func (r *Reader) Sample(path string) ([]float64, error) {
	result := gjson.GetBytes(r.body, path)
	if !result.Exists() {
		return nil, fmt.Errorf("path %q not found", path)
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("path %q is %s, not an array", path, result.Type)
	}

	var values []float64
	result.ForEach(func(_, item gjson.Result) bool {
		if v, ok := number(item); ok {
			values = append(values, v)
		}
		return true
	})
	return values, nil
}

// Paired returns two arrays index-aligned, keeping only positions where
// both elements are numbers
func (r *Reader) Paired(first, second string) ([]float64, []float64, error) {
	a := gjson.GetBytes(r.body, first)
	b := gjson.GetBytes(r.body, second)
	for path, res := range map[string]gjson.Result{first: a, second: b} {
		if !res.IsArray() {
			return nil, nil, fmt.Errorf("path %q is not an array", path)
		}
	}

	as, bs := a.Array(), b.Array()
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	var xs, ys []float64
	for i := 0; i < n; i++ {
		x, okX := number(as[i])
		y, okY := number(bs[i])
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys, nil
}

func number(item gjson.Result) (float64, bool) {
	var v float64
	switch item.Type {
	case gjson.Number:
		v = item.Float()
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(item.Str), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
