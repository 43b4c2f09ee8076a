package chart

import "math"

// NormalizeDataset rescales a series so the largest value inside the initial
// view window maps to 100, keeping indicators of very different magnitudes
// visually comparable in the window the user actually looks at.
//
// The window is the inclusive [viewStart, viewEnd] range of day labels
// (ISO YYYY-MM-DD, so lexicographic compare equals date compare); it is only
// applied when dayLabels matches data in length and both bounds are set.
// When the window holds no positive finite value, the maximum is taken over
// the whole series instead, so an indicator with no recent data still gets
// some usable scale. If even that maximum is not positive the values are
// returned unscaled.
//
// Nil and non-finite inputs come out as nil at the same index; non-finite
// numbers are never propagated. The result holds fresh values and never
// aliases the input, scaled or not.
func NormalizeDataset(data []*float64, dayLabels []string, viewStart, viewEnd string) []*float64 {
	out := make([]*float64, len(data))
	for i, v := range data {
		if v != nil && isFinite(*v) {
			c := *v
			out[i] = &c
		}
	}

	windowed := viewStart != "" && viewEnd != "" && len(dayLabels) == len(data)

	maxVal := math.Inf(-1)
	found := false
	if windowed {
		for i, v := range out {
			if v == nil {
				continue
			}
			if dayLabels[i] < viewStart || dayLabels[i] > viewEnd {
				continue
			}
			if !found || *v > maxVal {
				maxVal = *v
				found = true
			}
		}
	}
	if !found || maxVal <= 0 {
		// Fall back to the whole series.
		found = false
		for _, v := range out {
			if v == nil {
				continue
			}
			if !found || *v > maxVal {
				maxVal = *v
				found = true
			}
		}
	}
	if !found || maxVal <= 0 {
		return out
	}

	scale := 100 / maxVal
	for i, v := range out {
		if v == nil {
			continue
		}
		scaled := *v * scale
		out[i] = &scaled
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
