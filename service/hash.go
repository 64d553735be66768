package service

import (
	"context"
	"os"
	"time"

	"fileHasher/dto"
	"fileHasher/hasher"
	"fileHasher/models"
)

// Algorithms lists the digest engine's supported algorithm names.
func (s *TaskService) Algorithms() []string {
	return hasher.Algorithms()
}

// HashFile computes one file's digest synchronously. name is what the
// response reports; path is where the bytes live.
func (s *TaskService) HashFile(ctx context.Context, name, path, algorithm string, chunkSize int) (*dto.HashResponse, error) {
	start := time.Now()

	digest, err := s.engine.Sum(path, algorithm, chunkSize)
	if err != nil {
		return nil, err
	}

	return &dto.HashResponse{
		FileName:       name,
		Algorithm:      algorithm,
		HashValue:      digest,
		ProcessingTime: dto.Seconds(time.Since(start)),
	}, nil
}

// HashLocalFile hashes a server-local file by path, reporting its base name.
func (s *TaskService) HashLocalFile(ctx context.Context, path, algorithm string, chunkSize int) (*dto.HashResponse, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, dto.ErrFileNotFound
	}
	return s.HashFile(ctx, info.Name(), path, algorithm, chunkSize)
}

// HashFiles computes digests for a fixed set of staged files synchronously.
// A file that cannot be hashed yields an "error" entry rather than failing
// the batch.
func (s *TaskService) HashFiles(ctx context.Context, files []models.StagedFile, algorithm string, chunkSize int) *dto.BatchHashResponse {
	start := time.Now()

	results := make([]dto.HashResponse, 0, len(files))
	successCount := 0
	errorCount := 0

	for _, f := range files {
		fileStart := time.Now()

		digest, err := s.engine.Sum(f.Path, algorithm, chunkSize)
		if err != nil {
			errorCount++
			results = append(results, dto.HashResponse{
				FileName:       f.Name,
				Algorithm:      algorithm,
				HashValue:      "error",
				ProcessingTime: 0,
			})
			continue
		}

		successCount++
		results = append(results, dto.HashResponse{
			FileName:       f.Name,
			Algorithm:      algorithm,
			HashValue:      digest,
			ProcessingTime: dto.Seconds(time.Since(fileStart)),
		})
	}

	return &dto.BatchHashResponse{
		Results:             results,
		TotalFiles:          len(files),
		SuccessCount:        successCount,
		ErrorCount:          errorCount,
		TotalProcessingTime: dto.Seconds(time.Since(start)),
	}
}
