package models

import (
	"sync"
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusProcessing TaskStatus = "processing"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
)

type TaskKind string

const (
	KindDirectoryScan TaskKind = "directory_scan"
	KindUploadBatch   TaskKind = "upload_batch"
)

type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// FileResult is the outcome of hashing one input file.
type FileResult struct {
	Name         string
	Algorithm    string
	Status       ResultStatus
	HashValue    string
	ErrorMessage string
	Duration     time.Duration
}

// StagedFile is an uploaded file persisted to temporary local storage so the
// executor can process it by path.
type StagedFile struct {
	Name string
	Path string
}

// Task tracks one batch hashing job. The fields set at creation are immutable;
// everything guarded by mu is written by exactly one executor goroutine and
// read by any number of status/results queries.
type Task struct {
	ID        string
	Kind      TaskKind
	Algorithm string
	ChunkSize int
	CreatedAt time.Time

	// directory_scan source
	Directory string
	Recursive bool

	// upload_batch source, fixed at submission
	StagedFiles []StagedFile

	mu             sync.RWMutex
	status         TaskStatus
	completedAt    *time.Time
	enumerated     bool
	totalFiles     int
	processedFiles int
	successCount   int
	errorCount     int
	results        []FileResult
	failureReason  string
	totalDuration  time.Duration
}

func NewDirectoryTask(directory string, recursive bool, algorithm string, chunkSize int) *Task {
	return &Task{
		Kind:      KindDirectoryScan,
		Algorithm: algorithm,
		ChunkSize: chunkSize,
		Directory: directory,
		Recursive: recursive,
		status:    StatusPending,
	}
}

func NewUploadTask(files []StagedFile, algorithm string, chunkSize int) *Task {
	return &Task{
		Kind:        KindUploadBatch,
		Algorithm:   algorithm,
		ChunkSize:   chunkSize,
		StagedFiles: files,
		status:      StatusPending,
	}
}

func (t *Task) MarkProcessing() {
	t.mu.Lock()
	t.status = StatusProcessing
	t.mu.Unlock()
}

// SetTotalFiles records the size of the enumerated input set and resets the
// progress counters. Called once, before the per-file loop starts.
func (t *Task) SetTotalFiles(n int) {
	t.mu.Lock()
	t.enumerated = true
	t.totalFiles = n
	t.processedFiles = 0
	t.mu.Unlock()
}

// AppendResult records one per-file outcome and advances the counters. The
// result sequence stays in lockstep with processedFiles.
func (t *Task) AppendResult(r FileResult) {
	t.mu.Lock()
	t.results = append(t.results, r)
	t.processedFiles++
	if r.Status == ResultSuccess {
		t.successCount++
	} else {
		t.errorCount++
	}
	t.mu.Unlock()
}

func (t *Task) Complete(totalDuration time.Duration) {
	now := time.Now().UTC()
	t.mu.Lock()
	t.status = StatusCompleted
	t.completedAt = &now
	t.totalDuration = totalDuration
	t.mu.Unlock()
}

// Fail terminates the task on a whole-task fault (enumeration errors, not
// per-file ones). A failed task never exposes results.
func (t *Task) Fail(reason string) {
	now := time.Now().UTC()
	t.mu.Lock()
	t.status = StatusFailed
	t.completedAt = &now
	t.failureReason = reason
	t.mu.Unlock()
}

// TaskSnapshot is a consistent read-only copy of a task's mutable state.
// Results is populated only once the task has completed.
type TaskSnapshot struct {
	ID             string
	Kind           TaskKind
	Algorithm      string
	ChunkSize      int
	CreatedAt      time.Time
	Directory      string
	Recursive      bool
	FileCount      int
	Status         TaskStatus
	CompletedAt    *time.Time
	Enumerated     bool
	TotalFiles     int
	ProcessedFiles int
	SuccessCount   int
	ErrorCount     int
	FailureReason  string
	TotalDuration  time.Duration
	Results        []FileResult
}

func (t *Task) Snapshot() TaskSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snap := TaskSnapshot{
		ID:             t.ID,
		Kind:           t.Kind,
		Algorithm:      t.Algorithm,
		ChunkSize:      t.ChunkSize,
		CreatedAt:      t.CreatedAt,
		Directory:      t.Directory,
		Recursive:      t.Recursive,
		FileCount:      len(t.StagedFiles),
		Status:         t.status,
		CompletedAt:    t.completedAt,
		Enumerated:     t.enumerated,
		TotalFiles:     t.totalFiles,
		ProcessedFiles: t.processedFiles,
		SuccessCount:   t.successCount,
		ErrorCount:     t.errorCount,
		FailureReason:  t.failureReason,
		TotalDuration:  t.totalDuration,
	}

	if t.status == StatusCompleted {
		snap.Results = make([]FileResult, len(t.results))
		copy(snap.Results, t.results)
	}

	return snap
}

func (t *Task) Status() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}
