package ta

import "math"

// The recurrences below run over the whole series with scalar state only.
// Warm-up positions are marked NaN and resolved by fillChain afterwards, so
// no NaN ever leaves this package.

// wilderEMA is an exponential moving average with smoothing factor
// alpha = 1/window (center-of-mass = window-1). The recurrence starts at the
// first value; positions before the warm-up window (window observations) are
// NaN.
func wilderEMA(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 || window <= 0 {
		return out
	}
	alpha := 1.0 / float64(window)
	acc := vals[0]
	for i, v := range vals {
		if i > 0 {
			acc = (1-alpha)*acc + alpha*v
		}
		if i < window-1 {
			out[i] = math.NaN()
		} else {
			out[i] = acc
		}
	}
	return out
}

// spanEMA is a span-based exponential moving average, alpha = 2/(span+1),
// seeded with the first value. Defined for every position.
func spanEMA(vals []float64, span int) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 || span <= 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	acc := vals[0]
	for i, v := range vals {
		if i > 0 {
			acc = (1-alpha)*acc + alpha*v
		}
		out[i] = acc
	}
	return out
}

// rollingMean is a simple moving average over a trailing window. Early bars
// use however many observations exist (minimum one), so every position is
// defined.
func rollingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	if window <= 0 {
		window = 1
	}
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= window {
			sum -= vals[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// rollingStd is the population standard deviation over the same trailing
// window as rollingMean. A single observation yields 0.
func rollingStd(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	if window <= 0 {
		window = 1
	}
	for i := range vals {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		n := float64(i - lo + 1)
		mean := 0.0
		for j := lo; j <= i; j++ {
			mean += vals[j]
		}
		mean /= n
		ss := 0.0
		for j := lo; j <= i; j++ {
			d := vals[j] - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / n)
	}
	return out
}

// fillChain resolves NaN positions in place: first backward fill (next defined
// value), then forward fill (previous defined value), then the default. This
// mirrors the bfill -> ffill -> constant chain the indicator contract
// documents for warm-up bars.
func fillChain(vals []float64, def float64) []float64 {
	next := math.NaN()
	for i := len(vals) - 1; i >= 0; i-- {
		if math.IsNaN(vals[i]) {
			vals[i] = next
		} else {
			next = vals[i]
		}
	}
	prev := math.NaN()
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = prev
		} else {
			prev = v
		}
	}
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = def
		}
	}
	return vals
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
