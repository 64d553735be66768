package service

import (
	"context"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"fileHasher/cache"
	"fileHasher/dto"
	"fileHasher/executor"
	"fileHasher/hasher"
	"fileHasher/kafka"
	"fileHasher/models"
	"fileHasher/registry"
)

const timeFormat = "2006-01-02T15:04:05Z"

// TaskService wires the registry, the batch executor and the optional status
// mirror / event producer together behind the HTTP boundary.
type TaskService struct {
	registry         registry.Registry
	engine           *hasher.Engine
	executor         *executor.Executor
	pool             *executor.Pool
	cache            *cache.StatusCache
	producer         kafka.Producer
	topic            string
	defaultChunkSize int
	logger           *zap.Logger
}

func NewTaskService(
	reg registry.Registry,
	engine *hasher.Engine,
	pool *executor.Pool,
	statusCache *cache.StatusCache,
	producer kafka.Producer,
	topic string,
	defaultChunkSize int,
	logger *zap.Logger,
) *TaskService {
	if defaultChunkSize <= 0 {
		defaultChunkSize = hasher.DefaultChunkSize
	}

	s := &TaskService{
		registry:         reg,
		engine:           engine,
		pool:             pool,
		cache:            statusCache,
		producer:         producer,
		topic:            topic,
		defaultChunkSize: defaultChunkSize,
		logger:           logger,
	}
	s.executor = executor.New(engine, logger, s.onStatusChange)
	return s
}

// CreateDirectoryTask registers a directory-scan task and hands it to the
// executor pool. The submission fails before any record is created when the
// path is not a directory.
func (s *TaskService) CreateDirectoryTask(ctx context.Context, traceID string, req *dto.DirectoryTaskRequest) (*dto.TaskCreatedResponse, error) {
	info, err := os.Stat(req.Directory)
	if err != nil || !info.IsDir() {
		return nil, dto.ErrDirectoryNotFound
	}

	task := models.NewDirectoryTask(req.Directory, req.Recursive, req.Algorithm, s.defaultChunkSize)
	if _, err := s.registry.Create(ctx, task); err != nil {
		return nil, err
	}

	s.onStatusChange(ctx, task, models.StatusPending)
	s.dispatch(ctx, task, traceID)

	return &dto.TaskCreatedResponse{
		TaskID:    task.ID,
		Status:    string(models.StatusPending),
		Directory: req.Directory,
		CreatedAt: task.CreatedAt.Format(timeFormat),
	}, nil
}

// CreateUploadTask registers an upload-batch task over files the boundary
// layer already staged to temporary storage.
func (s *TaskService) CreateUploadTask(ctx context.Context, traceID string, files []models.StagedFile, algorithm string, chunkSize int) (*dto.TaskCreatedResponse, error) {
	if chunkSize <= 0 {
		chunkSize = s.defaultChunkSize
	}

	task := models.NewUploadTask(files, algorithm, chunkSize)
	if _, err := s.registry.Create(ctx, task); err != nil {
		return nil, err
	}

	s.onStatusChange(ctx, task, models.StatusPending)
	s.dispatch(ctx, task, traceID)

	fileCount := len(files)
	return &dto.TaskCreatedResponse{
		TaskID:    task.ID,
		Status:    string(models.StatusPending),
		FileCount: &fileCount,
		CreatedAt: task.CreatedAt.Format(timeFormat),
	}, nil
}

// dispatch hands the task to the pool, detached from the request's
// cancellation so the batch outlives the submitting request.
func (s *TaskService) dispatch(ctx context.Context, task *models.Task, traceID string) {
	runCtx := context.WithoutCancel(ctx)

	s.logger.Info("Batch task submitted",
		zap.String("trace_id", traceID),
		zap.String("task_id", task.ID),
		zap.String("kind", string(task.Kind)),
		zap.String("algorithm", task.Algorithm),
	)

	s.pool.Submit(runCtx, func(ctx context.Context) {
		s.executor.Run(ctx, task)
	})
}

func (s *TaskService) GetTaskStatus(ctx context.Context, taskID string) (*dto.TaskStatusResponse, error) {
	task, err := s.registry.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, registry.ErrTaskNotFound) {
			return nil, dto.ErrTaskNotFound
		}
		return nil, err
	}

	snap := task.Snapshot()

	resp := &dto.TaskStatusResponse{
		TaskID:       snap.ID,
		Kind:         string(snap.Kind),
		Status:       string(snap.Status),
		Directory:    snap.Directory,
		CreatedAt:    snap.CreatedAt.Format(timeFormat),
		ErrorMessage: snap.FailureReason,
	}

	if snap.Kind == models.KindUploadBatch {
		fileCount := snap.FileCount
		resp.FileCount = &fileCount
	}

	if snap.CompletedAt != nil {
		completedAt := snap.CompletedAt.Format(timeFormat)
		resp.CompletedAt = &completedAt
	}

	if snap.Enumerated {
		total := snap.TotalFiles
		processed := snap.ProcessedFiles
		success := snap.SuccessCount
		errCount := snap.ErrorCount
		resp.TotalFiles = &total
		resp.ProcessedFiles = &processed
		resp.SuccessCount = &success
		resp.ErrorCount = &errCount
	}

	return resp, nil
}

func (s *TaskService) GetTaskResults(ctx context.Context, taskID string) (*dto.TaskResultsResponse, error) {
	task, err := s.registry.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, registry.ErrTaskNotFound) {
			return nil, dto.ErrTaskNotFound
		}
		return nil, err
	}

	snap := task.Snapshot()

	switch snap.Status {
	case models.StatusPending, models.StatusProcessing:
		return nil, dto.ErrTaskNotReady
	case models.StatusFailed:
		return nil, dto.ErrResultsUnavailable
	}

	results := make([]dto.FileResultResponse, 0, len(snap.Results))
	for _, r := range snap.Results {
		item := dto.FileResultResponse{
			FileName:     r.Name,
			Algorithm:    r.Algorithm,
			HashValue:    r.HashValue,
			Status:       string(r.Status),
			ErrorMessage: r.ErrorMessage,
		}
		duration := dto.Seconds(r.Duration)
		item.ProcessingTime = &duration
		results = append(results, item)
	}

	return &dto.TaskResultsResponse{
		TaskID:              snap.ID,
		Directory:           snap.Directory,
		Results:             results,
		TotalFiles:          snap.TotalFiles,
		SuccessCount:        snap.SuccessCount,
		ErrorCount:          snap.ErrorCount,
		TotalProcessingTime: dto.Seconds(snap.TotalDuration),
	}, nil
}

// onStatusChange mirrors a transition to Redis and publishes a lifecycle
// event. Both sinks are optional and their failures only logged.
func (s *TaskService) onStatusChange(ctx context.Context, task *models.Task, status models.TaskStatus) {
	if s.cache != nil {
		if err := s.cache.Set(ctx, task.ID, status); err != nil {
			s.logger.Warn("Failed to mirror task status",
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
		}
	}

	if s.producer != nil {
		event := &kafka.TaskEvent{
			TaskID:     task.ID,
			Kind:       string(task.Kind),
			Status:     string(status),
			OccurredAt: time.Now().UTC().Format(timeFormat),
		}
		if err := s.producer.SendTaskEvent(ctx, s.topic, event); err != nil {
			s.logger.Warn("Failed to publish task event",
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
		}
	}
}
