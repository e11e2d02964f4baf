package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHollandCode(t *testing.T) {
	scores := map[string]float64{
		"investigative": 90,
		"realistic":     70,
		"conventional":  70,
		"artistic":      10,
		"social":        20,
		"enterprising":  30,
	}
	// R and C tie; R comes first in RIASEC order
	assert.Equal(t, "IRC", HollandCode(scores))
}

func TestHollandCode_NoScores(t *testing.T) {
	assert.Equal(t, "RIA", HollandCode(nil))
}

func TestCategoryForLetter(t *testing.T) {
	assert.Equal(t, "social", CategoryForLetter('s'))
	assert.Equal(t, "enterprising", CategoryForLetter('E'))
	assert.Equal(t, "", CategoryForLetter('X'))
}

func TestInterestFit(t *testing.T) {
	scores := map[string]float64{
		"realistic":     80,
		"investigative": 60,
		"conventional":  40,
	}
	tests := []struct {
		name string
		code string
		want float64
	}{
		{"three letters weighted 3/2/1", "RIC", 66.67},
		{"lower case code", "ric", 66.67},
		{"single letter", "I", 60},
		{"unknown letter skipped", "RXI", 72},
		{"unscored letter counts as zero", "SR", 32},
		{"unknown code", "X", 0},
		{"empty code", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, InterestFit(scores, tt.code), 0.001)
		})
	}
}
