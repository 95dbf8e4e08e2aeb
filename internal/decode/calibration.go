package decode

import "math"

// Sensitivity is the device calibration mode.
type Sensitivity string

const (
	SensitivityHigh Sensitivity = "high"
	SensitivityLow  Sensitivity = "low"
)

// Unit selects the physical unit of decoded acceleration values.
type Unit string

const (
	UnitMetersPerSecondSquared Unit = "m/s2"
	UnitG                      Unit = "g"
)

const standardGravity = 9.81

func (u Unit) factor() float64 {
	if u == UnitG {
		return 1.0
	}
	return standardGravity
}

// calibrationBucket holds the slope constants for one e-obs device generation.
// These are hardware calibration constants, not tunables.
type calibrationBucket struct {
	maxTagID int64 // inclusive
	high     float64
	low      float64
}

var calibrationBuckets = []calibrationBucket{
	// 1st generation
	{maxTagID: 2241, high: 0.001, low: 0.0027},
	// 2nd generation, no distinct low mode
	{maxTagID: 4117, high: 0.0022, low: 0.0022},
	// later generations
	{maxTagID: math.MaxInt64, high: 1.0 / 512, low: 1.0 / 512},
}

// SlopeFor returns the calibration slope for a tag serial and sensitivity mode.
// Every tag id resolves to exactly one generation bucket; any sensitivity other
// than low is treated as high.
func SlopeFor(tagID int64, sensitivity Sensitivity) float64 {
	for _, b := range calibrationBuckets {
		if tagID > b.maxTagID {
			continue
		}
		if sensitivity == SensitivityLow {
			return b.low
		}
		return b.high
	}
	last := calibrationBuckets[len(calibrationBuckets)-1]
	return last.high
}
