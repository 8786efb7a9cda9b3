// internal/bench/types.go
package bench

// ComponentValue is a single ranged parameter setting recorded with a
// measurement, e.g. {"name": "s", "value": 42}.
type ComponentValue struct {
	Name  string `json:"name"`
	Value uint32 `json:"value"`
}

// Sample is one raw measurement of a benchmark at a specific component
// assignment. Times are in nanoseconds, db counts are raw operation
// counts.
type Sample struct {
	Components      []ComponentValue `json:"components"`
	ExtrinsicTime   uint64           `json:"extrinsic_time"`
	StorageRootTime uint64           `json:"storage_root_time"`
	Reads           uint64           `json:"reads"`
	RepeatReads     uint64           `json:"repeat_reads"`
	Writes          uint64           `json:"writes"`
	RepeatWrites    uint64           `json:"repeat_writes"`
	ProofSize       uint64           `json:"proof_size"`
}

// Batch holds every sample collected for one benchmark of one pallet
// instance.
type Batch struct {
	Pallet    string   `json:"pallet"`
	Instance  string   `json:"instance"`
	Benchmark string   `json:"benchmark"`
	Results   []Sample `json:"results"`
}

// StorageInfo describes one storage item a pallet declares, used to
// annotate generated artifacts.
type StorageInfo struct {
	Pallet    string `json:"pallet" yaml:"pallet"`
	Name      string `json:"name" yaml:"name"`
	Prefix    string `json:"prefix" yaml:"prefix"`
	MaxValues uint64 `json:"max_values" yaml:"max_values"`
	MaxSize   uint64 `json:"max_size" yaml:"max_size"`
}
