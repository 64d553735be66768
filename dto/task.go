package dto

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskNotReady       = errors.New("task not completed yet")
	ErrResultsUnavailable = errors.New("task results unavailable")
	ErrDirectoryNotFound  = errors.New("directory not found")
	ErrFileNotFound       = errors.New("file not found")
)

type DirectoryTaskRequest struct {
	Directory string `json:"directory"`
	Recursive bool   `json:"recursive"`
	Algorithm string `json:"algorithm"`
}

type TaskCreatedResponse struct {
	TaskID    string `json:"task_id"`
	Status    string `json:"status"`
	Directory string `json:"directory,omitempty"`
	FileCount *int   `json:"file_count,omitempty"`
	CreatedAt string `json:"created_at"`
}

type TaskStatusResponse struct {
	TaskID         string  `json:"task_id"`
	Kind           string  `json:"kind"`
	Status         string  `json:"status"`
	Directory      string  `json:"directory,omitempty"`
	FileCount      *int    `json:"file_count,omitempty"`
	CreatedAt      string  `json:"created_at"`
	CompletedAt    *string `json:"completed_at,omitempty"`
	TotalFiles     *int    `json:"total_files,omitempty"`
	ProcessedFiles *int    `json:"processed_files,omitempty"`
	SuccessCount   *int    `json:"success_count,omitempty"`
	ErrorCount     *int    `json:"error_count,omitempty"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

type FileResultResponse struct {
	FileName       string   `json:"file_name"`
	Algorithm      string   `json:"algorithm"`
	HashValue      string   `json:"hash_value,omitempty"`
	Status         string   `json:"status"`
	ErrorMessage   string   `json:"error_message,omitempty"`
	ProcessingTime *float64 `json:"processing_time,omitempty"`
}

type TaskResultsResponse struct {
	TaskID              string               `json:"task_id"`
	Directory           string               `json:"directory,omitempty"`
	Results             []FileResultResponse `json:"results"`
	TotalFiles          int                  `json:"total_files"`
	SuccessCount        int                  `json:"success_count"`
	ErrorCount          int                  `json:"error_count"`
	TotalProcessingTime float64              `json:"total_processing_time"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}
