package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		values  []float64
		dropped []string
	}{
		{"plain", "1, 2,3", []float64{1, 2, 3}, nil},
		{"decimals and signs", " -1.5 ,+2e3, .25", []float64{-1.5, 2000, 0.25}, nil},
		{"drops junk", "1, abc, 2, NaN, Inf", []float64{1, 2}, []string{"abc", "NaN", "Inf"}},
		{"trailing comma", "4,5,", []float64{4, 5}, nil},
		{"empty", "   ", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseNumbers(tt.text)
			assert.Equal(t, tt.values, p.Values)
			assert.Equal(t, tt.dropped, p.Dropped)
		})
	}
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, []float64{1.2, 3.4}, Numbers("1.2, 3.4, x"))
}
