package executor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"fileHasher/hasher"
	"fileHasher/models"
)

// StatusFunc is notified on every task status transition. Used to mirror
// status to external observers; errors are the callback's own concern.
type StatusFunc func(ctx context.Context, task *models.Task, status models.TaskStatus)

// input is one file to hash: Name is what the result reports (full path for
// directory scans, original filename for uploads), Path is where the bytes
// live, staged marks temp files to remove after processing.
type input struct {
	Name   string
	Path   string
	staged bool
}

// Executor runs one batch task to its terminal state. Per-file failures are
// recorded as error results and never fail the task; only enumeration
// failures do.
type Executor struct {
	engine   *hasher.Engine
	logger   *zap.Logger
	onStatus StatusFunc
}

func New(engine *hasher.Engine, logger *zap.Logger, onStatus StatusFunc) *Executor {
	return &Executor{
		engine:   engine,
		logger:   logger,
		onStatus: onStatus,
	}
}

func (e *Executor) notify(ctx context.Context, task *models.Task, status models.TaskStatus) {
	if e.onStatus != nil {
		e.onStatus(ctx, task, status)
	}
}

// Run drives a task from pending to completed or failed. It is the only
// goroutine that ever mutates the task record.
func (e *Executor) Run(ctx context.Context, task *models.Task) {
	start := time.Now()

	task.MarkProcessing()
	e.notify(ctx, task, models.StatusProcessing)

	inputs, err := e.enumerate(task)
	if err != nil {
		task.Fail(err.Error())
		e.notify(ctx, task, models.StatusFailed)
		e.logger.Error("Batch enumeration failed",
			zap.String("task_id", task.ID),
			zap.String("kind", string(task.Kind)),
			zap.Error(err),
		)
		return
	}

	task.SetTotalFiles(len(inputs))

	for _, in := range inputs {
		fileStart := time.Now()

		result := models.FileResult{
			Name:      in.Name,
			Algorithm: task.Algorithm,
		}

		digest, err := e.engine.Sum(in.Path, task.Algorithm, task.ChunkSize)
		if err != nil {
			result.Status = models.ResultError
			result.ErrorMessage = err.Error()
		} else {
			result.Status = models.ResultSuccess
			result.HashValue = digest
		}
		result.Duration = time.Since(fileStart)

		if in.staged {
			// best-effort: a staged file that cannot be removed is not a
			// task error
			if err := os.Remove(in.Path); err != nil {
				e.logger.Warn("Failed to remove staged file",
					zap.String("task_id", task.ID),
					zap.String("path", in.Path),
					zap.Error(err),
				)
			}
		}

		task.AppendResult(result)
	}

	task.Complete(time.Since(start))
	e.notify(ctx, task, models.StatusCompleted)

	snap := task.Snapshot()
	e.logger.Info("Batch task completed",
		zap.String("task_id", task.ID),
		zap.String("kind", string(task.Kind)),
		zap.Int("total_files", snap.TotalFiles),
		zap.Int("success_count", snap.SuccessCount),
		zap.Int("error_count", snap.ErrorCount),
		zap.Duration("duration", snap.TotalDuration),
	)
}

func (e *Executor) enumerate(task *models.Task) ([]input, error) {
	switch task.Kind {
	case models.KindUploadBatch:
		inputs := make([]input, 0, len(task.StagedFiles))
		for _, f := range task.StagedFiles {
			inputs = append(inputs, input{Name: f.Name, Path: f.Path, staged: true})
		}
		return inputs, nil
	case models.KindDirectoryScan:
		if task.Recursive {
			return walkDirectory(task.Directory)
		}
		return listDirectory(task.Directory)
	default:
		return nil, fmt.Errorf("unknown task kind: %s", task.Kind)
	}
}

// walkDirectory collects every regular file under root, depth-first.
func walkDirectory(root string) ([]input, error) {
	var inputs []input
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			inputs = append(inputs, input{Name: path, Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return inputs, nil
}

// listDirectory collects the regular files directly under root, skipping
// subdirectories.
func listDirectory(root string) ([]input, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var inputs []input
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			path := filepath.Join(root, entry.Name())
			inputs = append(inputs, input{Name: path, Path: path})
		}
	}
	return inputs, nil
}
