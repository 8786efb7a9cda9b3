// internal/writer/group.go
package writer

import (
	"fmt"

	"github.com/benchkit/weightgen/internal/analysis"
	"github.com/benchkit/weightgen/internal/bench"
)

// Time measurements arrive in nanoseconds and are emitted in
// picoseconds, so fitted time values are scaled by 1000. Db operation
// counts are emitted as-is.
const weightScale = 1000

// GroupKey identifies one generated artifact: all benchmarks of one
// pallet instance end up in the same file.
type GroupKey struct {
	Pallet   string
	Instance string
}

// Component is one ranged parameter of a benchmark. IsUsed is false
// when the parameter was held constant across every sample, which the
// generated code surfaces by prefixing the argument with an
// underscore.
type Component struct {
	Name   string `json:"name"`
	IsUsed bool   `json:"is_used"`
}

// BenchmarkData is the fitted cost model of one benchmark, ready for
// template rendering. ProofSize is the worst observed proof size
// across the samples.
type BenchmarkData struct {
	Name            string                    `json:"name"`
	Components      []Component               `json:"components"`
	BaseWeight      uint64                    `json:"base_weight"`
	ComponentWeight []analysis.ComponentSlope `json:"component_weight"`
	BaseReads       uint64                    `json:"base_reads"`
	ComponentReads  []analysis.ComponentSlope `json:"component_reads"`
	BaseWrites      uint64                    `json:"base_writes"`
	ComponentWrites []analysis.ComponentSlope `json:"component_writes"`
	ProofSize       uint64                    `json:"proof_size"`
}

// ResultGroup is every fitted benchmark of one pallet instance, in the
// order the batches arrived.
type ResultGroup struct {
	Key        GroupKey
	Benchmarks []BenchmarkData
}

// MapResults fits a cost model for every batch and groups the results
// by pallet instance. Batches without samples are skipped. Group order
// and benchmark order within a group follow first appearance in the
// input.
func MapResults(batches []bench.Batch, sel analysis.Selector) ([]ResultGroup, error) {
	var groups []ResultGroup
	index := map[GroupKey]int{}

	for _, batch := range batches {
		if len(batch.Results) == 0 {
			continue
		}

		data, err := fitBenchmark(batch, sel)
		if err != nil {
			return nil, fmt.Errorf("benchmark %s.%s: %w", batch.Pallet, batch.Benchmark, err)
		}

		key := GroupKey{Pallet: batch.Pallet, Instance: batch.Instance}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ResultGroup{Key: key})
		}
		groups[i].Benchmarks = append(groups[i].Benchmarks, data)
	}

	return groups, nil
}

// classifyComponents lists a batch's components in first-seen order
// and marks each as used when its value differs between any two
// samples.
func classifyComponents(batch bench.Batch) []Component {
	var order []string
	first := map[string]uint32{}
	varies := map[string]bool{}

	for _, sample := range batch.Results {
		for _, cv := range sample.Components {
			v, seen := first[cv.Name]
			if !seen {
				first[cv.Name] = cv.Value
				order = append(order, cv.Name)
				continue
			}
			if cv.Value != v {
				varies[cv.Name] = true
			}
		}
	}

	components := make([]Component, 0, len(order))
	for _, name := range order {
		components = append(components, Component{Name: name, IsUsed: varies[name]})
	}
	return components
}

func usedNames(components []Component) []string {
	var used []string
	for _, c := range components {
		if c.IsUsed {
			used = append(used, c.Name)
		}
	}
	return used
}

func scaleSlopes(slopes []analysis.ComponentSlope) []analysis.ComponentSlope {
	if slopes == nil {
		return nil
	}
	scaled := make([]analysis.ComponentSlope, len(slopes))
	for i, s := range slopes {
		scaled[i] = analysis.ComponentSlope{
			Name:  s.Name,
			Slope: s.Slope * weightScale,
			Error: s.Error * weightScale,
		}
	}
	return scaled
}

// fitBenchmark runs the selected analysis once per tracked metric and
// assembles the rendered model. Time results are scaled to
// picoseconds, db counts stay raw.
func fitBenchmark(batch bench.Batch, sel analysis.Selector) (BenchmarkData, error) {
	components := classifyComponents(batch)
	used := usedNames(components)

	timeRes, err := sel.Analyze(batch.Results, analysis.ExtrinsicTime, used)
	if err != nil {
		return BenchmarkData{}, err
	}
	readsRes, err := sel.Analyze(batch.Results, analysis.Reads, used)
	if err != nil {
		return BenchmarkData{}, err
	}
	writesRes, err := sel.Analyze(batch.Results, analysis.Writes, used)
	if err != nil {
		return BenchmarkData{}, err
	}

	var proofSize uint64
	for _, s := range batch.Results {
		if s.ProofSize > proofSize {
			proofSize = s.ProofSize
		}
	}

	return BenchmarkData{
		Name:            batch.Benchmark,
		Components:      components,
		BaseWeight:      timeRes.Base * weightScale,
		ComponentWeight: scaleSlopes(timeRes.Slopes),
		BaseReads:       readsRes.Base,
		ComponentReads:  readsRes.Slopes,
		BaseWrites:      writesRes.Base,
		ComponentWrites: writesRes.Slopes,
		ProofSize:       proofSize,
	}, nil
}
