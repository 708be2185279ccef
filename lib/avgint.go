// Package lib supplies self contained utilities used across goheap
// packages.
package lib

import "math"

// AverageInt64 accumulate int64 samples and compute statistical
// mean, variance and standard-deviation. Not thread safe.
type AverageInt64 struct {
	count int64
	total int64
	sqsum float64
	vmin  int64
	vmax  int64
	seen  bool
}

// Add a sample.
func (av *AverageInt64) Add(sample int64) {
	av.count++
	av.total += sample
	f := float64(sample)
	av.sqsum += f * f
	if av.seen == false || sample < av.vmin {
		av.vmin, av.seen = sample, true
	}
	if sample > av.vmax {
		av.vmax = sample
	}
}

// Samples return number of samples accumulated so far.
func (av *AverageInt64) Samples() int64 {
	return av.count
}

// Sum of all samples.
func (av *AverageInt64) Sum() int64 {
	return av.total
}

// Min sample value.
func (av *AverageInt64) Min() int64 {
	return av.vmin
}

// Max sample value.
func (av *AverageInt64) Max() int64 {
	return av.vmax
}

// Mean of samples, 0 for no samples.
func (av *AverageInt64) Mean() int64 {
	if av.count == 0 {
		return 0
	}
	return int64(float64(av.total) / float64(av.count))
}

// Variance of samples, 0 for no samples.
func (av *AverageInt64) Variance() float64 {
	if av.count == 0 {
		return 0
	}
	n, mean := float64(av.count), float64(av.Mean())
	return (av.sqsum / n) - (mean * mean)
}

// SD standard deviation of samples.
func (av *AverageInt64) SD() float64 {
	if av.count == 0 {
		return 0
	}
	return math.Sqrt(av.Variance())
}

// Clone a copy of the accumulator.
func (av *AverageInt64) Clone() *AverageInt64 {
	cloned := *av
	return &cloned
}

// Stats as a settings compatible map.
func (av *AverageInt64) Stats() map[string]interface{} {
	return map[string]interface{}{
		"samples":  av.Samples(),
		"min":      av.Min(),
		"max":      av.Max(),
		"mean":     av.Mean(),
		"variance": av.Variance(),
		"stddev":   av.SD(),
	}
}
