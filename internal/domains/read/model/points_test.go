package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsFromFloat(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  Points
	}{
		{"whole points", 2.0, 200},
		{"half point", 0.5, 50},
		{"quarter point", 0.75, 75},
		{"rounds up", 1.006, 101},
		{"rounds down", 1.004, 100},
		{"negative rounds away from zero", -1.006, -101},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsFromFloat(tt.input))
		})
	}
}

func TestPointsFloat(t *testing.T) {
	assert.InDelta(t, 1.5, Points(150).Float(), 0.0001)
	assert.InDelta(t, 0.37, Points(37).Float(), 0.0001)
	assert.InDelta(t, 0.0, Points(0).Float(), 0.0001)
}

func TestApplyMultiplier(t *testing.T) {
	tests := []struct {
		name       string
		points     Points
		multiplier Points
		want       Points
	}{
		{"full multiplier is identity", 250, 100, 250},
		{"half multiplier", 250, 50, 125},
		{"half multiplier truncates", 75, 50, 37},
		{"zero multiplier", 250, 0, 0},
		{"odd value truncates not rounds", 99, 50, 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.points.ApplyMultiplier(tt.multiplier))
		})
	}
}

// Sums over the scaled type stay exact where float sums would drift.
func TestPointsSumIsExact(t *testing.T) {
	var total Points
	for i := 0; i < 1000; i++ {
		total += 10 // 0.1 point each
	}
	assert.Equal(t, Points(10000), total)
	assert.InDelta(t, 100.0, total.Float(), 0.0001)
}
