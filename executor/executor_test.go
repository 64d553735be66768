package executor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"fileHasher/hasher"
	"fileHasher/models"
)

func newTestExecutor(t *testing.T, onStatus StatusFunc) *Executor {
	logger := zaptest.NewLogger(t)
	return New(hasher.NewEngine(logger), logger, onStatus)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func sha256Hex(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func TestRun_DirectoryScan_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "sub"), "b.txt", "beta")

	task := models.NewDirectoryTask(dir, false, "sha256", 4096)
	task.ID = "dir-task"

	newTestExecutor(t, nil).Run(context.Background(), task)

	snap := task.Snapshot()
	if snap.Status != models.StatusCompleted {
		t.Fatalf("Expected completed, got %s (%s)", snap.Status, snap.FailureReason)
	}
	if snap.TotalFiles != 1 {
		t.Errorf("Expected 1 file without recursion, got %d", snap.TotalFiles)
	}
	if len(snap.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(snap.Results))
	}
	if snap.Results[0].HashValue != sha256Hex("alpha") {
		t.Errorf("Wrong digest: %s", snap.Results[0].HashValue)
	}
}

func TestRun_DirectoryScan_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "alpha")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "sub"), "b.txt", "beta")

	task := models.NewDirectoryTask(dir, true, "sha256", 4096)
	task.ID = "dir-task"

	newTestExecutor(t, nil).Run(context.Background(), task)

	snap := task.Snapshot()
	if snap.Status != models.StatusCompleted {
		t.Fatalf("Expected completed, got %s", snap.Status)
	}
	if snap.TotalFiles != 2 {
		t.Errorf("Expected 2 files with recursion, got %d", snap.TotalFiles)
	}
	if snap.SuccessCount != 2 || snap.ErrorCount != 0 {
		t.Errorf("Expected 2/0 success/error, got %d/%d", snap.SuccessCount, snap.ErrorCount)
	}
}

func TestRun_CompletionInvariants(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		writeFile(t, dir, name, name)
	}

	task := models.NewDirectoryTask(dir, false, "md5", 4096)
	task.ID = "inv-task"

	newTestExecutor(t, nil).Run(context.Background(), task)

	snap := task.Snapshot()
	if snap.Status != models.StatusCompleted {
		t.Fatalf("Expected completed, got %s", snap.Status)
	}
	if snap.CompletedAt == nil {
		t.Error("CompletedAt not set on completed task")
	}
	if len(snap.Results) != snap.ProcessedFiles ||
		snap.ProcessedFiles != snap.TotalFiles ||
		snap.SuccessCount+snap.ErrorCount != snap.TotalFiles {
		t.Errorf("Counter invariants violated: results=%d processed=%d total=%d success=%d error=%d",
			len(snap.Results), snap.ProcessedFiles, snap.TotalFiles, snap.SuccessCount, snap.ErrorCount)
	}
}

func TestRun_PerFileErrorDoesNotFailTask(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("Skipping test: root ignores file permissions")
	}

	dir := t.TempDir()
	writeFile(t, dir, "a", "one")
	writeFile(t, dir, "b", "two")
	writeFile(t, dir, "c", "three")
	locked := writeFile(t, dir, "d", "four")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	defer os.Chmod(locked, 0644)

	task := models.NewDirectoryTask(dir, false, "sha256", 4096)
	task.ID = "partial-task"

	newTestExecutor(t, nil).Run(context.Background(), task)

	snap := task.Snapshot()
	if snap.Status != models.StatusCompleted {
		t.Fatalf("Expected completed despite per-file error, got %s", snap.Status)
	}
	if snap.TotalFiles != 4 || snap.SuccessCount != 3 || snap.ErrorCount != 1 {
		t.Errorf("Expected total=4 success=3 error=1, got total=%d success=%d error=%d",
			snap.TotalFiles, snap.SuccessCount, snap.ErrorCount)
	}

	errored := 0
	for _, r := range snap.Results {
		if r.Status == models.ResultError {
			errored++
			if r.ErrorMessage == "" {
				t.Error("Error result missing message")
			}
			if r.HashValue != "" {
				t.Error("Error result carries a digest")
			}
		}
	}
	if errored != 1 {
		t.Errorf("Expected 1 error result, got %d", errored)
	}
}

func TestRun_EnumerationFailureFailsTask(t *testing.T) {
	task := models.NewDirectoryTask(filepath.Join(t.TempDir(), "gone"), true, "sha256", 4096)
	task.ID = "failed-task"

	var statuses []models.TaskStatus
	exec := newTestExecutor(t, func(_ context.Context, _ *models.Task, status models.TaskStatus) {
		statuses = append(statuses, status)
	})
	exec.Run(context.Background(), task)

	snap := task.Snapshot()
	if snap.Status != models.StatusFailed {
		t.Fatalf("Expected failed, got %s", snap.Status)
	}
	if snap.FailureReason == "" {
		t.Error("Failed task missing failure reason")
	}
	if snap.Results != nil {
		t.Error("Failed task must not expose results")
	}
	if snap.CompletedAt == nil {
		t.Error("CompletedAt not set on failed task")
	}

	want := []models.TaskStatus{models.StatusProcessing, models.StatusFailed}
	if len(statuses) != len(want) || statuses[0] != want[0] || statuses[1] != want[1] {
		t.Errorf("Expected transitions %v, got %v", want, statuses)
	}
}

func TestRun_UploadBatch(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFile(t, dir, "staged-a", "first upload")
	pathB := writeFile(t, dir, "staged-b", "second upload")

	task := models.NewUploadTask([]models.StagedFile{
		{Name: "report.pdf", Path: pathA},
		{Name: "photo.jpg", Path: pathB},
	}, "sha256", 4096)
	task.ID = "upload-task"

	var statuses []models.TaskStatus
	exec := newTestExecutor(t, func(_ context.Context, _ *models.Task, status models.TaskStatus) {
		statuses = append(statuses, status)
	})
	exec.Run(context.Background(), task)

	snap := task.Snapshot()
	if snap.Status != models.StatusCompleted {
		t.Fatalf("Expected completed, got %s", snap.Status)
	}
	if len(snap.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(snap.Results))
	}

	// submission order preserved, original names reported
	if snap.Results[0].Name != "report.pdf" || snap.Results[1].Name != "photo.jpg" {
		t.Errorf("Result order/names wrong: %s, %s", snap.Results[0].Name, snap.Results[1].Name)
	}
	if snap.Results[0].HashValue != sha256Hex("first upload") {
		t.Errorf("Wrong digest for first upload: %s", snap.Results[0].HashValue)
	}
	for _, r := range snap.Results {
		if len(r.HashValue) != 64 {
			t.Errorf("Expected 64 hex chars for sha256, got %d", len(r.HashValue))
		}
	}

	// staged temp files removed on both paths
	for _, path := range []string{pathA, pathB} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Staged file not removed: %s", path)
		}
	}

	want := []models.TaskStatus{models.StatusProcessing, models.StatusCompleted}
	if len(statuses) != len(want) || statuses[0] != want[0] || statuses[1] != want[1] {
		t.Errorf("Expected transitions %v, got %v", want, statuses)
	}
}

func TestRun_UploadBatch_RemovesStagedFileOnError(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "staged-good", "content")
	missing := filepath.Join(dir, "staged-missing")

	task := models.NewUploadTask([]models.StagedFile{
		{Name: "good.txt", Path: good},
		{Name: "bad.txt", Path: missing},
	}, "sha256", 4096)
	task.ID = "upload-err-task"

	newTestExecutor(t, nil).Run(context.Background(), task)

	snap := task.Snapshot()
	if snap.Status != models.StatusCompleted {
		t.Fatalf("Expected completed, got %s", snap.Status)
	}
	if snap.SuccessCount != 1 || snap.ErrorCount != 1 {
		t.Errorf("Expected 1/1 success/error, got %d/%d", snap.SuccessCount, snap.ErrorCount)
	}
	if _, err := os.Stat(good); !os.IsNotExist(err) {
		t.Error("Staged file not removed after successful hash")
	}
}

func TestRun_EmptyDirectoryCompletesWithZeroFiles(t *testing.T) {
	task := models.NewDirectoryTask(t.TempDir(), false, "sha256", 4096)
	task.ID = "empty-task"

	newTestExecutor(t, nil).Run(context.Background(), task)

	snap := task.Snapshot()
	if snap.Status != models.StatusCompleted {
		t.Fatalf("Expected completed, got %s", snap.Status)
	}
	if snap.TotalFiles != 0 || len(snap.Results) != 0 {
		t.Errorf("Expected zero files, got total=%d results=%d", snap.TotalFiles, len(snap.Results))
	}
}
