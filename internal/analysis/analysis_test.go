// internal/analysis/analysis_test.go
package analysis

import (
	"errors"
	"testing"

	"github.com/benchkit/weightgen/internal/bench"
)

// linearSamples builds samples over component "s" in 0..count-1 with
// extrinsic_time = base + slope*s and a constant companion component.
func linearSamples(count int, base, slope uint64) []bench.Sample {
	samples := make([]bench.Sample, 0, count)
	for i := 0; i < count; i++ {
		samples = append(samples, bench.Sample{
			Components: []bench.ComponentValue{
				{Name: "s", Value: uint32(i)},
				{Name: "z", Value: 0},
			},
			ExtrinsicTime: base + slope*uint64(i),
			Reads:         base,
			Writes:        slope,
		})
	}
	return samples
}

func TestParseSelector(t *testing.T) {
	cases := map[string]Selector{
		"":              MedianSlopes,
		"median-slopes": MedianSlopes,
		"min-squares":   MinSquares,
		"max":           Max,
	}
	for name, expected := range cases {
		sel, err := ParseSelector(name)
		if err != nil {
			t.Fatalf("ParseSelector(%q): %v", name, err)
		}
		if sel != expected {
			t.Fatalf("ParseSelector(%q) = %q, want %q", name, sel, expected)
		}
	}
	if _, err := ParseSelector("mean"); !errors.Is(err, ErrUnknownSelector) {
		t.Fatalf("expected ErrUnknownSelector, got %v", err)
	}
}

func TestMedianSlopesExactLinear(t *testing.T) {
	samples := linearSamples(5, 100, 7)

	res, err := MedianSlopes.Analyze(samples, ExtrinsicTime, []string{"s"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Base != 100 {
		t.Fatalf("base = %d, want 100", res.Base)
	}
	if len(res.Slopes) != 1 {
		t.Fatalf("expected 1 slope, got %d", len(res.Slopes))
	}
	s := res.Slopes[0]
	if s.Name != "s" || s.Slope != 7 || s.Error != 0 {
		t.Fatalf("unexpected slope %+v", s)
	}
}

func TestMedianSlopesOutlierRobust(t *testing.T) {
	samples := linearSamples(5, 100, 7)
	// One wild measurement should not move the fitted slope.
	samples = append(samples, bench.Sample{
		Components: []bench.ComponentValue{
			{Name: "s", Value: 2},
			{Name: "z", Value: 0},
		},
		ExtrinsicTime: 1_000_000,
	})

	res, err := MedianSlopes.Analyze(samples, ExtrinsicTime, []string{"s"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Slopes[0].Slope != 7 {
		t.Fatalf("slope = %d, want 7", res.Slopes[0].Slope)
	}
}

func TestMinSquaresExactLinear(t *testing.T) {
	samples := linearSamples(5, 100, 7)

	res, err := MinSquares.Analyze(samples, ExtrinsicTime, []string{"s"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Base != 100 {
		t.Fatalf("base = %d, want 100", res.Base)
	}
	if res.Slopes[0].Slope != 7 || res.Slopes[0].Error != 0 {
		t.Fatalf("unexpected slope %+v", res.Slopes[0])
	}
}

func TestMinSquaresTwoComponents(t *testing.T) {
	// y = 10 + 3a + 5b over a small grid.
	var samples []bench.Sample
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			samples = append(samples, bench.Sample{
				Components: []bench.ComponentValue{
					{Name: "a", Value: uint32(a)},
					{Name: "b", Value: uint32(b)},
				},
				ExtrinsicTime: uint64(10 + 3*a + 5*b),
			})
		}
	}

	res, err := MinSquares.Analyze(samples, ExtrinsicTime, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Base != 10 {
		t.Fatalf("base = %d, want 10", res.Base)
	}
	if res.Slopes[0].Slope != 3 || res.Slopes[1].Slope != 5 {
		t.Fatalf("unexpected slopes %+v", res.Slopes)
	}
}

func TestMinSquaresSingular(t *testing.T) {
	// A component that never varies makes the design matrix singular.
	samples := []bench.Sample{
		{Components: []bench.ComponentValue{{Name: "s", Value: 1}}, ExtrinsicTime: 10},
		{Components: []bench.ComponentValue{{Name: "s", Value: 1}}, ExtrinsicTime: 12},
	}
	_, err := MinSquares.Analyze(samples, ExtrinsicTime, []string{"s"})
	var aerr *Error
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *Error, got %v", err)
	}
}

func TestMaxStrategy(t *testing.T) {
	samples := linearSamples(5, 100, 7)

	res, err := Max.Analyze(samples, ExtrinsicTime, []string{"s"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Base != 128 {
		t.Fatalf("base = %d, want 128", res.Base)
	}
	if len(res.Slopes) != 0 {
		t.Fatalf("expected no slopes, got %+v", res.Slopes)
	}
}

func TestAnalyzeEmptySamples(t *testing.T) {
	_, err := MedianSlopes.Analyze(nil, ExtrinsicTime, nil)
	var aerr *Error
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *Error, got %v", err)
	}
}

func TestAnalyzeNoComponents(t *testing.T) {
	samples := []bench.Sample{
		{ExtrinsicTime: 40},
		{ExtrinsicTime: 42},
		{ExtrinsicTime: 44},
	}
	res, err := MedianSlopes.Analyze(samples, ExtrinsicTime, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Base != 42 || len(res.Slopes) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}
