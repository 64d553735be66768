package service

import (
	"context"
	"strings"
	"time"

	"fileHasher/dto"
	"fileHasher/models"
	"fileHasher/validation"
)

// Verify compares each staged file's digest against its caller-supplied
// expectation. Files without an expectation entry are skipped: verification
// is opt-in per named file. A digest failure counts as a mismatch with the
// sentinel "error" actual value and never aborts the rest of the batch.
func (s *TaskService) Verify(ctx context.Context, files []models.StagedFile, expectations map[string]string, algorithm string, chunkSize int) (*dto.VerifyResponse, error) {
	// the verify path is reachable with unfiltered input, so the algorithm
	// is re-checked here rather than trusted from the boundary
	if err := validation.Algorithm(algorithm); err != nil {
		return nil, err
	}

	start := time.Now()

	results := make([]dto.VerifyResultResponse, 0, len(files))
	matchCount := 0
	mismatchCount := 0

	for _, f := range files {
		expected, ok := expectations[f.Name]
		if !ok {
			continue
		}

		fileStart := time.Now()

		actual, err := s.engine.Sum(f.Path, algorithm, chunkSize)
		if err != nil {
			mismatchCount++
			results = append(results, dto.VerifyResultResponse{
				FileName:       f.Name,
				ExpectedHash:   expected,
				ActualHash:     "error",
				Matched:        false,
				Algorithm:      algorithm,
				ProcessingTime: 0,
			})
			continue
		}

		matched := strings.EqualFold(expected, actual)
		if matched {
			matchCount++
		} else {
			mismatchCount++
		}

		results = append(results, dto.VerifyResultResponse{
			FileName:       f.Name,
			ExpectedHash:   expected,
			ActualHash:     actual,
			Matched:        matched,
			Algorithm:      algorithm,
			ProcessingTime: dto.Seconds(time.Since(fileStart)),
		})
	}

	return &dto.VerifyResponse{
		Results:             results,
		TotalFiles:          len(results),
		MatchCount:          matchCount,
		MismatchCount:       mismatchCount,
		TotalProcessingTime: dto.Seconds(time.Since(start)),
	}, nil
}
