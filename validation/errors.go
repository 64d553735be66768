package validation

import "errors"

var (
	ErrInvalidChunkSize         = errors.New("chunk_size must be a positive integer")
	ErrMalformedExpectations    = errors.New("expected_hashes must be a valid JSON array")
	ErrMissingExpectationFields = errors.New("expected_hashes entries must contain file_name and expected_hash")
)
