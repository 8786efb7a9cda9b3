// internal/analysis/analysis.go
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/benchkit/weightgen/internal/bench"
)

// Metric selects which measurement of a sample a fit is run against.
type Metric int

const (
	ExtrinsicTime Metric = iota
	StorageRootTime
	Reads
	RepeatReads
	Writes
	RepeatWrites
)

func (m Metric) value(s bench.Sample) float64 {
	switch m {
	case ExtrinsicTime:
		return float64(s.ExtrinsicTime)
	case StorageRootTime:
		return float64(s.StorageRootTime)
	case Reads:
		return float64(s.Reads)
	case RepeatReads:
		return float64(s.RepeatReads)
	case Writes:
		return float64(s.Writes)
	case RepeatWrites:
		return float64(s.RepeatWrites)
	}
	return 0
}

// String returns the metric name used in error messages.
func (m Metric) String() string {
	switch m {
	case ExtrinsicTime:
		return "extrinsic_time"
	case StorageRootTime:
		return "storage_root_time"
	case Reads:
		return "reads"
	case RepeatReads:
		return "repeat_reads"
	case Writes:
		return "writes"
	case RepeatWrites:
		return "repeat_writes"
	}
	return "unknown"
}

// Selector names a fitting strategy for turning raw samples into a
// linear cost model.
type Selector string

const (
	// MedianSlopes is robust to outliers and is the default strategy.
	MedianSlopes Selector = "median-slopes"
	// MinSquares fits an ordinary least squares model across all
	// components at once.
	MinSquares Selector = "min-squares"
	// Max takes the worst observed value and fits no slopes.
	Max Selector = "max"
)

// ErrUnknownSelector is wrapped by ParseSelector for names that do not
// match a strategy.
var ErrUnknownSelector = errors.New("unknown analysis strategy")

// ParseSelector resolves a strategy name from the command line. An
// empty name selects MedianSlopes.
func ParseSelector(name string) (Selector, error) {
	switch name {
	case "", string(MedianSlopes):
		return MedianSlopes, nil
	case string(MinSquares):
		return MinSquares, nil
	case string(Max):
		return Max, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSelector, name)
}

// Error reports a fit that could not be computed, e.g. because the
// sample set is degenerate.
type Error struct {
	Metric Metric
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("analysing %s: %s", e.Metric, e.Reason)
}

// ComponentSlope is the per-component part of a fitted model. Error is
// the dispersion of the slope estimate, in the same unit as the slope.
type ComponentSlope struct {
	Name  string `json:"name"`
	Slope uint64 `json:"slope"`
	Error uint64 `json:"error"`
}

// Result is a fitted linear model: cost = Base + sum(Slope_i * x_i).
// Negative fitted values are clamped to zero before rounding.
type Result struct {
	Base   uint64
	Slopes []ComponentSlope
}

// Analyze fits the selected model against one metric of the sample
// set. The used list gives the components that vary, in presentation
// order; strategies that produce slopes emit exactly one entry per
// used component.
func (sel Selector) Analyze(samples []bench.Sample, metric Metric, used []string) (Result, error) {
	if len(samples) == 0 {
		return Result{}, &Error{Metric: metric, Reason: "no samples"}
	}
	switch sel {
	case MedianSlopes:
		return medianSlopes(samples, metric, used)
	case MinSquares:
		return minSquares(samples, metric, used)
	case Max:
		return maxValue(samples, metric), nil
	}
	return Result{}, &Error{Metric: metric, Reason: fmt.Sprintf("unknown strategy %q", sel)}
}

func saturateU64(f float64) uint64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	return uint64(math.Round(f))
}

func componentValue(s bench.Sample, name string) (float64, bool) {
	for _, c := range s.Components {
		if c.Name == name {
			return float64(c.Value), true
		}
	}
	return 0, false
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// medianSlopes estimates each component's slope from the medians of
// the metric at every distinct component value, then derives the base
// as the median residual once all slopes are subtracted.
func medianSlopes(samples []bench.Sample, metric Metric, used []string) (Result, error) {
	slopes := make([]ComponentSlope, 0, len(used))
	fitted := make([]float64, len(used))

	for i, name := range used {
		byValue := map[float64][]float64{}
		for _, s := range samples {
			x, ok := componentValue(s, name)
			if !ok {
				return Result{}, &Error{Metric: metric, Reason: fmt.Sprintf("component %q missing from a sample", name)}
			}
			byValue[x] = append(byValue[x], metric.value(s))
		}
		if len(byValue) < 2 {
			return Result{}, &Error{Metric: metric, Reason: fmt.Sprintf("component %q does not vary", name)}
		}

		xs := make([]float64, 0, len(byValue))
		for x := range byValue {
			xs = append(xs, x)
		}
		sort.Float64s(xs)

		x0 := xs[0]
		y0 := median(byValue[x0])
		pairwise := make([]float64, 0, len(xs)-1)
		for _, x := range xs[1:] {
			pairwise = append(pairwise, (median(byValue[x])-y0)/(x-x0))
		}

		slope := median(pairwise)
		deviations := make([]float64, len(pairwise))
		for j, p := range pairwise {
			deviations[j] = math.Abs(p - slope)
		}

		fitted[i] = slope
		slopes = append(slopes, ComponentSlope{
			Name:  name,
			Slope: saturateU64(slope),
			Error: saturateU64(median(deviations)),
		})
	}

	residuals := make([]float64, 0, len(samples))
	for _, s := range samples {
		y := metric.value(s)
		for i, name := range used {
			x, _ := componentValue(s, name)
			y -= fitted[i] * x
		}
		residuals = append(residuals, y)
	}

	return Result{Base: saturateU64(median(residuals)), Slopes: slopes}, nil
}

// minSquares fits y = b + sum(m_i x_i) over all used components at
// once by solving the normal equations. Slope errors are the standard
// errors of the estimates.
func minSquares(samples []bench.Sample, metric Metric, used []string) (Result, error) {
	n := len(samples)
	p := len(used) + 1

	// Design matrix rows: [1, x_1 .. x_k].
	rows := make([][]float64, n)
	ys := make([]float64, n)
	for i, s := range samples {
		row := make([]float64, p)
		row[0] = 1
		for j, name := range used {
			x, ok := componentValue(s, name)
			if !ok {
				return Result{}, &Error{Metric: metric, Reason: fmt.Sprintf("component %q missing from a sample", name)}
			}
			row[j+1] = x
		}
		rows[i] = row
		ys[i] = metric.value(s)
	}

	// Normal equations: (X^T X) beta = X^T y.
	xtx := make([][]float64, p)
	xty := make([]float64, p)
	for i := 0; i < p; i++ {
		xtx[i] = make([]float64, p)
	}
	for r := 0; r < n; r++ {
		for i := 0; i < p; i++ {
			xty[i] += rows[r][i] * ys[r]
			for j := 0; j < p; j++ {
				xtx[i][j] += rows[r][i] * rows[r][j]
			}
		}
	}

	inv, ok := invert(xtx)
	if !ok {
		return Result{}, &Error{Metric: metric, Reason: "singular design matrix"}
	}

	beta := make([]float64, p)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			beta[i] += inv[i][j] * xty[j]
		}
	}

	var rss float64
	for r := 0; r < n; r++ {
		pred := 0.0
		for i := 0; i < p; i++ {
			pred += beta[i] * rows[r][i]
		}
		d := ys[r] - pred
		rss += d * d
	}
	var sigma2 float64
	if n > p {
		sigma2 = rss / float64(n-p)
	}

	slopes := make([]ComponentSlope, 0, len(used))
	for j, name := range used {
		stderr := math.Sqrt(sigma2 * inv[j+1][j+1])
		slopes = append(slopes, ComponentSlope{
			Name:  name,
			Slope: saturateU64(beta[j+1]),
			Error: saturateU64(stderr),
		})
	}

	return Result{Base: saturateU64(beta[0]), Slopes: slopes}, nil
}

// invert computes the inverse of a small square matrix with
// Gauss-Jordan elimination and partial pivoting.
func invert(m [][]float64) ([][]float64, bool) {
	p := len(m)
	a := make([][]float64, p)
	inv := make([][]float64, p)
	for i := 0; i < p; i++ {
		a[i] = append([]float64(nil), m[i]...)
		inv[i] = make([]float64, p)
		inv[i][i] = 1
	}

	for col := 0; col < p; col++ {
		pivot := col
		for r := col + 1; r < p; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := a[col][col]
		for j := 0; j < p; j++ {
			a[col][j] /= scale
			inv[col][j] /= scale
		}
		for r := 0; r < p; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for j := 0; j < p; j++ {
				a[r][j] -= factor * a[col][j]
				inv[r][j] -= factor * inv[col][j]
			}
		}
	}
	return inv, true
}

// maxValue uses the worst observed measurement as a flat cost.
func maxValue(samples []bench.Sample, metric Metric) Result {
	var max float64
	for _, s := range samples {
		if v := metric.value(s); v > max {
			max = v
		}
	}
	return Result{Base: saturateU64(max)}
}
