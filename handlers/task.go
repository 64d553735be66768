package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fileHasher/dto"
	"fileHasher/middleware"
	"fileHasher/models"
	"fileHasher/validation"
)

const defaultAlgorithm = "sha256"

type TaskService interface {
	CreateDirectoryTask(ctx context.Context, traceID string, req *dto.DirectoryTaskRequest) (*dto.TaskCreatedResponse, error)
	CreateUploadTask(ctx context.Context, traceID string, files []models.StagedFile, algorithm string, chunkSize int) (*dto.TaskCreatedResponse, error)
	GetTaskStatus(ctx context.Context, taskID string) (*dto.TaskStatusResponse, error)
	GetTaskResults(ctx context.Context, taskID string) (*dto.TaskResultsResponse, error)
}

// TaskHandler serves batch task submission and polling.
type TaskHandler struct {
	service          TaskService
	uploadDir        string
	maxFileSize      int64
	defaultChunkSize int
	logger           *zap.Logger
}

func NewTaskHandler(service TaskService, uploadDir string, maxFileSize int64, defaultChunkSize int, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service:          service,
		uploadDir:        uploadDir,
		maxFileSize:      maxFileSize,
		defaultChunkSize: defaultChunkSize,
		logger:           logger,
	}
}

func (h *TaskHandler) SubmitDirectory(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	var req dto.DirectoryTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, "Invalid request body", err, traceID, http.StatusBadRequest)
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = defaultAlgorithm
	}

	if err := validation.Algorithm(req.Algorithm); err != nil {
		respondError(w, h.logger, "Unsupported hash algorithm: "+req.Algorithm, err, traceID, http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateDirectoryTask(r.Context(), traceID, &req)
	if err != nil {
		if errors.Is(err, dto.ErrDirectoryNotFound) {
			respondError(w, h.logger, "Directory not found: "+req.Directory, err, traceID, http.StatusNotFound)
			return
		}
		respondError(w, h.logger, "Failed to create task", err, traceID, http.StatusInternalServerError)
		return
	}

	h.logger.Info("Directory task submitted",
		zap.String("trace_id", traceID),
		zap.String("task_id", resp.TaskID),
		zap.String("directory", req.Directory),
		zap.Bool("recursive", req.Recursive),
	)

	respondJSON(w, http.StatusAccepted, resp)
}

func (h *TaskHandler) SubmitUpload(w http.ResponseWriter, r *http.Request) {
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

	algorithm := r.FormValue("algorithm")
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}
	if err := validation.Algorithm(algorithm); err != nil {
		respondError(w, h.logger, "Unsupported hash algorithm: "+algorithm, err, traceID, http.StatusBadRequest)
		return
	}

	chunkSize, err := validation.ChunkSize(r.FormValue("chunk_size"), h.defaultChunkSize)
	if err != nil {
		respondError(w, h.logger, "Invalid chunk size", err, traceID, http.StatusBadRequest)
		return
	}

	staged, err := stageAll(h.uploadDir, headers)
	if err != nil {
		respondError(w, h.logger, "Failed to stage uploads", err, traceID, http.StatusInternalServerError)
		return
	}

	resp, err := h.service.CreateUploadTask(r.Context(), traceID, staged, algorithm, chunkSize)
	if err != nil {
		removeStaged(staged)
		respondError(w, h.logger, "Failed to create task", err, traceID, http.StatusInternalServerError)
		return
	}

	h.logger.Info("Upload task submitted",
		zap.String("trace_id", traceID),
		zap.String("task_id", resp.TaskID),
		zap.Int("file_count", len(staged)),
	)

	respondJSON(w, http.StatusAccepted, resp)
}

func (h *TaskHandler) Status(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	taskID := chi.URLParam(r, "taskID")
	if taskID == "" {
		respondError(w, h.logger, "Task ID is required", nil, traceID, http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetTaskStatus(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, dto.ErrTaskNotFound) {
			respondError(w, h.logger, "Task not found: "+taskID, err, traceID, http.StatusNotFound)
			return
		}
		respondError(w, h.logger, "Failed to get task status", err, traceID, http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *TaskHandler) Results(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())

	taskID := chi.URLParam(r, "taskID")
	if taskID == "" {
		respondError(w, h.logger, "Task ID is required", nil, traceID, http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetTaskResults(r.Context(), taskID)
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrTaskNotFound):
			respondError(w, h.logger, "Task not found: "+taskID, err, traceID, http.StatusNotFound)
		case errors.Is(err, dto.ErrTaskNotReady):
			respondError(w, h.logger, "Task not completed yet: "+taskID, err, traceID, http.StatusBadRequest)
		case errors.Is(err, dto.ErrResultsUnavailable):
			respondError(w, h.logger, "Task results unavailable: "+taskID, err, traceID, http.StatusInternalServerError)
		default:
			respondError(w, h.logger, "Failed to get task results", err, traceID, http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
