package validation

import (
	"encoding/json"
	"fmt"
	"strconv"

	"fileHasher/hasher"
)

// Algorithm checks a caller-supplied algorithm name against the digest
// engine's supported set.
func Algorithm(name string) error {
	if !hasher.IsSupported(name) {
		return fmt.Errorf("%w: %s", hasher.ErrUnsupportedAlgorithm, name)
	}
	return nil
}

// ChunkSize parses an optional chunk_size form value. An empty value yields
// the default.
func ChunkSize(raw string, defaultSize int) (int, error) {
	if raw == "" {
		return defaultSize, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return 0, ErrInvalidChunkSize
	}
	return size, nil
}

type expectationItem struct {
	FileName     string `json:"file_name"`
	ExpectedHash string `json:"expected_hash"`
}

// Expectations parses the verify endpoint's expected_hashes payload, a JSON
// array of {file_name, expected_hash} objects, into a name → digest map.
func Expectations(raw string) (map[string]string, error) {
	var items []expectationItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, ErrMalformedExpectations
	}

	expectations := make(map[string]string, len(items))
	for _, item := range items {
		if item.FileName == "" || item.ExpectedHash == "" {
			return nil, ErrMissingExpectationFields
		}
		expectations[item.FileName] = item.ExpectedHash
	}

	return expectations, nil
}
