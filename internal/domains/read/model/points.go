package model

// Points is a fixed-point score scaled by 100 (150 = 1.50 points).
//
// All point arithmetic stays in integer space so that sums across hundreds
// of reads are exact and reproducible; conversion to float happens only at
// the JSON boundary via Float().
type Points int

// PointsFromFloat converts a display value to the scaled representation
// (1.5 -> 150). Rounds half away from zero.
func PointsFromFloat(f float64) Points {
	if f >= 0 {
		return Points(f*100 + 0.5)
	}
	return Points(f*100 - 0.5)
}

// Float converts the scaled representation to a display value (150 -> 1.5)
func (p Points) Float() float64 {
	return float64(p) / 100.0
}

// ApplyMultiplier multiplies by another scaled-by-100 factor using
// truncating integer division, preserving the x100 convention.
// Example: 250.ApplyMultiplier(50) = 125 (2.50 * 0.5 = 1.25).
func (p Points) ApplyMultiplier(multiplier Points) Points {
	return (p * multiplier) / 100
}
