package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fileHasher/dto"
	"fileHasher/models"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, logger *zap.Logger, message string, err error, traceID string, status int) {
	logger.Error(message,
		zap.String("trace_id", traceID),
		zap.Error(err),
	)

	respondJSON(w, status, dto.ErrorResponse{
		Error:   message,
		TraceID: traceID,
	})
}

// stageFile copies one uploaded file to a uuid-named temp file under dir so
// it can be processed by path like any local file.
func stageFile(dir string, header *multipart.FileHeader) (models.StagedFile, error) {
	src, err := header.Open()
	if err != nil {
		return models.StagedFile{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(dir, uuid.New().String())
	dst, err := os.Create(path)
	if err != nil {
		return models.StagedFile{}, fmt.Errorf("create staged file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return models.StagedFile{}, fmt.Errorf("write staged file: %w", err)
	}

	return models.StagedFile{
		Name: filepath.Base(header.Filename),
		Path: path,
	}, nil
}

func stageAll(dir string, headers []*multipart.FileHeader) ([]models.StagedFile, error) {
	staged := make([]models.StagedFile, 0, len(headers))
	for _, header := range headers {
		file, err := stageFile(dir, header)
		if err != nil {
			removeStaged(staged)
			return nil, err
		}
		staged = append(staged, file)
	}
	return staged, nil
}

func removeStaged(files []models.StagedFile) {
	for _, f := range files {
		os.Remove(f.Path)
	}
}
