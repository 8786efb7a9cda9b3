// internal/bench/load.go
package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// batchSchema validates the raw result file before decoding, so a
// malformed input fails with a field-level message instead of a partial
// unmarshal.
const batchSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["pallet", "benchmark", "results"],
    "properties": {
      "pallet": { "type": "string", "minLength": 1 },
      "instance": { "type": "string" },
      "benchmark": { "type": "string", "minLength": 1 },
      "results": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["components", "extrinsic_time"],
          "properties": {
            "components": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["name", "value"],
                "properties": {
                  "name": { "type": "string", "minLength": 1 },
                  "value": { "type": "integer", "minimum": 0 }
                }
              }
            },
            "extrinsic_time": { "type": "integer", "minimum": 0 },
            "storage_root_time": { "type": "integer", "minimum": 0 },
            "reads": { "type": "integer", "minimum": 0 },
            "repeat_reads": { "type": "integer", "minimum": 0 },
            "writes": { "type": "integer", "minimum": 0 },
            "repeat_writes": { "type": "integer", "minimum": 0 },
            "proof_size": { "type": "integer", "minimum": 0 }
          }
        }
      }
    }
  }
}`

// LoadBatches reads and validates a JSON result file produced by a
// benchmark run and returns the decoded batches.
func LoadBatches(path string) ([]Batch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file %s: %w", path, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(batchSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validating result file %s: %w", path, err)
	}
	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return nil, fmt.Errorf("result file %s is not valid: %s", path, strings.Join(reasons, "; "))
	}

	var batches []Batch
	if err := json.Unmarshal(raw, &batches); err != nil {
		return nil, fmt.Errorf("decoding result file %s: %w", path, err)
	}
	return batches, nil
}

// LoadStorageInfo reads the optional YAML file describing the storage
// items of the benchmarked pallets. A missing path returns an empty
// slice.
func LoadStorageInfo(path string) ([]StorageInfo, error) {
	if path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading storage info %s: %w", path, err)
	}
	defer file.Close()

	var infos []StorageInfo
	if err := yaml.NewDecoder(file).Decode(&infos); err != nil {
		return nil, fmt.Errorf("decoding storage info %s: %w", path, err)
	}
	return infos, nil
}
