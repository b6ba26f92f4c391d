package jsonsample

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{
  "orders": [
    {"total": 12.5, "items": 2},
    {"total": "7", "items": 1},
    {"total": null, "items": 4},
    {"total": 3, "items": "x"}
  ],
  "scores": [1, 2, "three", 4]
}`

func TestReader_Sample(t *testing.T) {
	r, err := NewReader([]byte(doc))
	require.NoError(t, err)

	totals, err := r.Sample("orders.#.total")
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5, 7, 3}, totals)

	scores, err := r.Sample("scores")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 4}, scores)
}

func TestReader_Paired(t *testing.T) {
	r, err := NewReader([]byte(doc))
	require.NoError(t, err)

	totals, items, err := r.Paired("orders.#.total", "orders.#.items")
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5, 7}, totals)
	assert.Equal(t, []float64{2, 1}, items)
}

func TestReader_Errors(t *testing.T) {
	_, err := NewReader([]byte("{not json"))
	assert.Error(t, err)

	r, err := NewReader([]byte(doc))
	require.NoError(t, err)

	_, err = r.Sample("missing")
	assert.ErrorContains(t, err, "not found")
	_, err = r.Sample("orders.0.total")
	assert.ErrorContains(t, err, "not an array")
	_, _, err = r.Paired("scores", "orders.1")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"x":[1,2,3]}`), 0o644))

	r, err := ReadFile(path)
	require.NoError(t, err)
	xs, err := r.Sample("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, xs)

	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
