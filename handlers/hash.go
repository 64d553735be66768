package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"fileHasher/dto"
	"fileHasher/middleware"
	"fileHasher/models"
	"fileHasher/validation"
)

type HashService interface {
	Algorithms() []string
	HashFile(ctx context.Context, name, path, algorithm string, chunkSize int) (*dto.HashResponse, error)
	HashLocalFile(ctx context.Context, path, algorithm string, chunkSize int) (*dto.HashResponse, error)
	HashFiles(ctx context.Context, files []models.StagedFile, algorithm string, chunkSize int) *dto.BatchHashResponse
	Verify(ctx context.Context, files []models.StagedFile, expectations map[string]string, algorithm string, chunkSize int) (*dto.VerifyResponse, error)
}

// HashHandler serves the synchronous hashing and verification endpoints.
type HashHandler struct {
	service          HashService
	uploadDir        string
	maxFileSize      int64
	defaultChunkSize int
	logger           *zap.Logger
}

func NewHashHandler(service HashService, uploadDir string, maxFileSize int64, defaultChunkSize int, logger *zap.Logger) *HashHandler {
	return &HashHandler{
		service:          service,
		uploadDir:        uploadDir,
		maxFileSize:      maxFileSize,
		defaultChunkSize: defaultChunkSize,
		logger:           logger,
	}
}

func (h *HashHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "File hash service API",
	})
}

func (h *HashHandler) Algorithms(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.AlgorithmsResponse{
		Algorithms: h.service.Algorithms(),
	})
}

// parseHashForm extracts and validates the algorithm and chunk_size fields
// shared by every multipart hashing endpoint.
func (h *HashHandler) parseHashForm(w http.ResponseWriter, r *http.Request, traceID string) (string, int, bool) {
	algorithm := r.FormValue("algorithm")
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}
	if err := validation.Algorithm(algorithm); err != nil {
		respondError(w, h.logger, "Unsupported hash algorithm: "+algorithm, err, traceID, http.StatusBadRequest)
		return "", 0, false
	}

	chunkSize, err := validation.ChunkSize(r.FormValue("chunk_size"), h.defaultChunkSize)
	if err != nil {
		respondError(w, h.logger, "Invalid chunk size", err, traceID, http.StatusBadRequest)
		return "", 0, false
	}

	return algorithm, chunkSize, true
}

func (h *HashHandler) File(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		respondError(w, h.logger, "Failed to parse form", err, traceID, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, h.logger, "Failed to get file", err, traceID, http.StatusBadRequest)
		return
	}
	defer file.Close()

	algorithm, chunkSize, ok := h.parseHashForm(w, r, traceID)
	if !ok {
		return
	}

	staged, err := stageFile(h.uploadDir, header)
	if err != nil {
		respondError(w, h.logger, "Failed to stage upload", err, traceID, http.StatusInternalServerError)
		return
	}
	defer removeStaged([]models.StagedFile{staged})

	resp, err := h.service.HashFile(r.Context(), staged.Name, staged.Path, algorithm, chunkSize)
	if err != nil {
		respondError(w, h.logger, "Failed to hash file", err, traceID, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *HashHandler) Files(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		respondError(w, h.logger, "Failed to parse form", err, traceID, http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondError(w, h.logger, "At least one file is required", nil, traceID, http.StatusBadRequest)
		return
	}

	algorithm, chunkSize, ok := h.parseHashForm(w, r, traceID)
	if !ok {
		return
	}

	staged, err := stageAll(h.uploadDir, headers)
	if err != nil {
		respondError(w, h.logger, "Failed to stage uploads", err, traceID, http.StatusInternalServerError)
		return
	}
	defer removeStaged(staged)

	resp := h.service.HashFiles(r.Context(), staged, algorithm, chunkSize)
	respondJSON(w, http.StatusOK, resp)
}

func (h *HashHandler) Path(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	filePath := r.FormValue("file_path")
	if filePath == "" {
		respondError(w, h.logger, "file_path is required", nil, traceID, http.StatusBadRequest)
		return
	}

	algorithm, chunkSize, ok := h.parseHashForm(w, r, traceID)
	if !ok {
		return
	}

	resp, err := h.service.HashLocalFile(r.Context(), filePath, algorithm, chunkSize)
	if err != nil {
		if errors.Is(err, dto.ErrFileNotFound) {
			respondError(w, h.logger, "File not found: "+filePath, err, traceID, http.StatusNotFound)
			return
		}
		respondError(w, h.logger, "Failed to hash file", err, traceID, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *HashHandler) Verify(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		respondError(w, h.logger, "Failed to parse form", err, traceID, http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondError(w, h.logger, "At least one file is required", nil, traceID, http.StatusBadRequest)
		return
	}

	expectations, err := validation.Expectations(r.FormValue("expected_hashes"))
	if err != nil {
		respondError(w, h.logger, "Invalid expected_hashes payload", err, traceID, http.StatusBadRequest)
		return
	}

	algorithm, chunkSize, ok := h.parseHashForm(w, r, traceID)
	if !ok {
		return
	}

	staged, err := stageAll(h.uploadDir, headers)
	if err != nil {
		respondError(w, h.logger, "Failed to stage uploads", err, traceID, http.StatusInternalServerError)
		return
	}
	defer removeStaged(staged)

	resp, err := h.service.Verify(r.Context(), staged, expectations, algorithm, chunkSize)
	if err != nil {
		respondError(w, h.logger, "Failed to verify files", err, traceID, http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
