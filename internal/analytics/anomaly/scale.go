package anomaly

import (
	"math"
	"sort"
)

// madConsistency rescales the median absolute deviation to estimate the
// standard deviation of normally distributed data.
const madConsistency = 1.4826

// Scale returns the dispersion used to normalize residuals: the population
// standard deviation, or the MAD-based robust estimate when robust is set.
// A zero return value means the residuals carry no spread at all; see
// scoreResidual for how deviations are scored against it.
func Scale(residuals []float64, robust bool) float64 {
	if robust {
		return RobustScale(residuals)
	}
	return stdDev(residuals)
}

// RobustScale estimates dispersion as MAD * 1.4826. A degenerate MAD of zero
// (more than half the residuals identical) falls back to the population
// standard deviation so isolated outliers remain detectable.
func RobustScale(residuals []float64) float64 {
	mad := medianAbsoluteDeviation(residuals)
	if mad > 0 {
		return mad * madConsistency
	}
	return stdDev(residuals)
}

// medianAbsoluteDeviation computes the median of absolute deviations from the
// median. The input slice is not modified.
func medianAbsoluteDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	med := median(values)
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - med)
	}
	return median(deviations)
}

// median returns the middle value (average of the two middle values for even
// lengths). The input slice is not modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stdDev calculates the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mu := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mu
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// mean calculates the mean of a slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// scoreResidual normalizes a residual against a scale. A zero scale means
// the reference window fit exactly: any nonzero residual is then an unbounded
// deviation and scores maximal, while a zero residual never flags. An invalid
// scale yields ok=false.
func scoreResidual(residual, scale float64) (score float64, ok bool) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || math.IsNaN(residual) {
		return 0, false
	}
	if scale <= 0 {
		if residual == 0 {
			return 0, false
		}
		// The true ratio is infinite; MaxFloat64 keeps the score JSON-safe.
		return math.MaxFloat64, true
	}
	return math.Abs(residual) / scale, true
}
