package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"fileHasher/hasher"
	"fileHasher/models"
)

func sha256Hex(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

func TestVerify_MatchedAndSkipped(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()

	files := []models.StagedFile{
		{Name: "a.txt", Path: writeFile(t, dir, "staged-a", "alpha")},
		{Name: "b.txt", Path: writeFile(t, dir, "staged-b", "beta")},
		{Name: "c.txt", Path: writeFile(t, dir, "staged-c", "gamma")},
	}
	expectations := map[string]string{
		"a.txt": sha256Hex("alpha"),
		"b.txt": sha256Hex("beta"),
		// c.txt has no expectation and must be skipped
	}

	resp, err := svc.Verify(context.Background(), files, expectations, "sha256", 4096)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if resp.TotalFiles != 2 {
		t.Errorf("Expected total_files 2 (skipped file excluded), got %d", resp.TotalFiles)
	}
	if resp.MatchCount != 2 || resp.MismatchCount != 0 {
		t.Errorf("Expected 2/0 match/mismatch, got %d/%d", resp.MatchCount, resp.MismatchCount)
	}
	for _, r := range resp.Results {
		if !r.Matched {
			t.Errorf("Expected match for %s: expected=%s actual=%s", r.FileName, r.ExpectedHash, r.ActualHash)
		}
	}
}

func TestVerify_MismatchOnTamperedContent(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()

	files := []models.StagedFile{
		{Name: "a.txt", Path: writeFile(t, dir, "staged-a", "alphb")},
	}
	expectations := map[string]string{"a.txt": sha256Hex("alpha")}

	resp, err := svc.Verify(context.Background(), files, expectations, "sha256", 4096)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if resp.MatchCount != 0 || resp.MismatchCount != 1 {
		t.Errorf("Expected 0/1 match/mismatch, got %d/%d", resp.MatchCount, resp.MismatchCount)
	}
	if resp.Results[0].Matched {
		t.Error("Tampered content reported as matched")
	}
}

func TestVerify_CaseInsensitiveComparison(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()

	files := []models.StagedFile{
		{Name: "a.txt", Path: writeFile(t, dir, "staged-a", "alpha")},
	}
	expectations := map[string]string{"a.txt": strings.ToUpper(sha256Hex("alpha"))}

	resp, err := svc.Verify(context.Background(), files, expectations, "sha256", 4096)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if resp.MatchCount != 1 {
		t.Errorf("Uppercase expected hash not matched: %+v", resp.Results)
	}
}

func TestVerify_ComputeErrorCountsAsMismatch(t *testing.T) {
	svc, _ := newTestService(t)

	files := []models.StagedFile{
		{Name: "gone.txt", Path: filepath.Join(t.TempDir(), "missing")},
	}
	expectations := map[string]string{"gone.txt": sha256Hex("whatever")}

	resp, err := svc.Verify(context.Background(), files, expectations, "sha256", 4096)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if resp.MismatchCount != 1 {
		t.Errorf("Expected 1 mismatch, got %d", resp.MismatchCount)
	}
	if resp.Results[0].ActualHash != "error" {
		t.Errorf("Expected sentinel actual hash \"error\", got %q", resp.Results[0].ActualHash)
	}
	if resp.Results[0].Matched {
		t.Error("Compute error reported as matched")
	}
}

func TestVerify_UnsupportedAlgorithm(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()

	files := []models.StagedFile{
		{Name: "a.txt", Path: writeFile(t, dir, "staged-a", "alpha")},
	}

	_, err := svc.Verify(context.Background(), files, map[string]string{"a.txt": "00"}, "rot13", 4096)
	if !errors.Is(err, hasher.ErrUnsupportedAlgorithm) {
		t.Fatalf("Expected ErrUnsupportedAlgorithm, got: %v", err)
	}
}
