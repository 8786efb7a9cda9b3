// internal/writer/group_test.go
package writer

import (
	"testing"

	"github.com/benchkit/weightgen/internal/analysis"
	"github.com/benchkit/weightgen/internal/bench"
)

// testBatch builds five samples over param 0..4 where every tracked
// metric follows base + slope*i, plus a constant companion component
// "z".
func testBatch(pallet, instance, benchmark, param string, base, slope uint64) bench.Batch {
	var results []bench.Sample
	for i := uint64(0); i < 5; i++ {
		v := base + slope*i
		results = append(results, bench.Sample{
			Components: []bench.ComponentValue{
				{Name: param, Value: uint32(i)},
				{Name: "z", Value: 0},
			},
			ExtrinsicTime: v,
			Reads:         v,
			Writes:        v,
			ProofSize:     v,
		})
	}
	return bench.Batch{Pallet: pallet, Instance: instance, Benchmark: benchmark, Results: results}
}

// checkBenchmark verifies the fitted model of one benchmark against
// the linear inputs used by testBatch.
func checkBenchmark(t *testing.T, data BenchmarkData, benchmark, param string, base, slope uint64) {
	t.Helper()
	if data.Name != benchmark {
		t.Fatalf("name = %q, want %q", data.Name, benchmark)
	}
	if len(data.Components) != 2 {
		t.Fatalf("expected 2 components, got %+v", data.Components)
	}
	if data.Components[0].Name != param || !data.Components[0].IsUsed {
		t.Fatalf("expected %q used, got %+v", param, data.Components[0])
	}
	if data.Components[1].Name != "z" || data.Components[1].IsUsed {
		t.Fatalf("expected z unused, got %+v", data.Components[1])
	}
	if data.BaseWeight != base*1000 {
		t.Fatalf("base_weight = %d, want %d", data.BaseWeight, base*1000)
	}
	if len(data.ComponentWeight) != 1 {
		t.Fatalf("expected 1 weight slope, got %+v", data.ComponentWeight)
	}
	cw := data.ComponentWeight[0]
	if cw.Name != param || cw.Slope != slope*1000 || cw.Error != 0 {
		t.Fatalf("unexpected weight slope %+v", cw)
	}
	if data.BaseReads != base {
		t.Fatalf("base_reads = %d, want %d", data.BaseReads, base)
	}
	if len(data.ComponentReads) != 1 || data.ComponentReads[0].Slope != slope {
		t.Fatalf("unexpected read slopes %+v", data.ComponentReads)
	}
	if data.BaseWrites != base {
		t.Fatalf("base_writes = %d, want %d", data.BaseWrites, base)
	}
	if len(data.ComponentWrites) != 1 || data.ComponentWrites[0].Slope != slope {
		t.Fatalf("unexpected write slopes %+v", data.ComponentWrites)
	}
	if worst := base + 4*slope; data.ProofSize != worst {
		t.Fatalf("proof_size = %d, want %d", data.ProofSize, worst)
	}
}

func TestMapResults(t *testing.T) {
	batches := []bench.Batch{
		testBatch("first_pallet", "", "first_benchmark", "s", 10, 3),
		testBatch("first_pallet", "", "second_benchmark", "d", 9, 2),
		testBatch("second_pallet", "", "first_benchmark", "v", 3, 4),
	}

	groups, err := MapResults(batches, analysis.MedianSlopes)
	if err != nil {
		t.Fatalf("MapResults: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	first := groups[0]
	if first.Key != (GroupKey{Pallet: "first_pallet"}) {
		t.Fatalf("unexpected first key %+v", first.Key)
	}
	if len(first.Benchmarks) != 2 {
		t.Fatalf("expected 2 benchmarks in first group, got %d", len(first.Benchmarks))
	}
	checkBenchmark(t, first.Benchmarks[0], "first_benchmark", "s", 10, 3)
	checkBenchmark(t, first.Benchmarks[1], "second_benchmark", "d", 9, 2)

	second := groups[1]
	if second.Key != (GroupKey{Pallet: "second_pallet"}) {
		t.Fatalf("unexpected second key %+v", second.Key)
	}
	checkBenchmark(t, second.Benchmarks[0], "first_benchmark", "v", 3, 4)
}

func TestMapResultsSplitsInstances(t *testing.T) {
	batches := []bench.Batch{
		testBatch("collective", "Instance1", "propose", "m", 5, 1),
		testBatch("collective", "Instance2", "propose", "m", 6, 2),
	}

	groups, err := MapResults(batches, analysis.MedianSlopes)
	if err != nil {
		t.Fatalf("MapResults: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected one group per instance, got %d", len(groups))
	}
	if groups[0].Key.Instance != "Instance1" || groups[1].Key.Instance != "Instance2" {
		t.Fatalf("unexpected keys %+v / %+v", groups[0].Key, groups[1].Key)
	}
}

func TestMapResultsSkipsEmptyBatches(t *testing.T) {
	batches := []bench.Batch{
		{Pallet: "ghost", Benchmark: "nothing"},
		testBatch("real", "", "bench", "s", 1, 1),
	}

	groups, err := MapResults(batches, analysis.MedianSlopes)
	if err != nil {
		t.Fatalf("MapResults: %v", err)
	}
	if len(groups) != 1 || groups[0].Key.Pallet != "real" {
		t.Fatalf("unexpected groups %+v", groups)
	}
}

func TestMapResultsMaxStrategyNoSlopes(t *testing.T) {
	batches := []bench.Batch{testBatch("p", "", "b", "s", 10, 3)}

	groups, err := MapResults(batches, analysis.Max)
	if err != nil {
		t.Fatalf("MapResults: %v", err)
	}
	data := groups[0].Benchmarks[0]
	// max observed time is 10 + 3*4 = 22, scaled to picoseconds.
	if data.BaseWeight != 22000 {
		t.Fatalf("base_weight = %d, want 22000", data.BaseWeight)
	}
	if len(data.ComponentWeight) != 0 {
		t.Fatalf("expected no slopes, got %+v", data.ComponentWeight)
	}
}

func TestClassifyComponents(t *testing.T) {
	batch := bench.Batch{Results: []bench.Sample{
		{Components: []bench.ComponentValue{{Name: "a", Value: 1}, {Name: "b", Value: 7}}},
		{Components: []bench.ComponentValue{{Name: "a", Value: 2}, {Name: "b", Value: 7}}},
	}}

	components := classifyComponents(batch)
	if len(components) != 2 {
		t.Fatalf("expected 2 components, got %+v", components)
	}
	if components[0].Name != "a" || !components[0].IsUsed {
		t.Fatalf("expected a used, got %+v", components[0])
	}
	if components[1].Name != "b" || components[1].IsUsed {
		t.Fatalf("expected b unused, got %+v", components[1])
	}
}
