package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/quizgest/internal/engine"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestQuizHash_DependsOnOptions(t *testing.T) {
	text := "The heart pumps blood through the body."
	mc := engine.ResolveOptions("multiple_choice", engine.Count(5), "medium")
	tf := engine.ResolveOptions("true_false", engine.Count(5), "medium")
	more := engine.ResolveOptions("multiple_choice", engine.Count(6), "medium")

	if QuizHash(text, mc) != QuizHash(text, mc) {
		t.Error("expected stable hash")
	}
	if QuizHash(text, mc) == QuizHash(text, tf) || QuizHash(text, mc) == QuizHash(text, more) {
		t.Error("expected options to change the hash")
	}
	if QuizHash(text, mc) == QuizHash(text+" ", mc) {
		t.Error("expected text to change the hash")
	}
}

func TestNewJob(t *testing.T) {
	opts := engine.ResolveOptions("true_false", engine.Count(7), "hard")
	job := NewJob("notes.txt", "text/plain", []byte("data"), opts)

	if job.ID == "" {
		t.Fatal("expected generated job ID")
	}
	if job.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, job.Status)
	}
	if job.Progress.QuestionsRequested != 7 {
		t.Errorf("expected 7 requested, got %d", job.Progress.QuestionsRequested)
	}
	if string(job.FileData()) != "data" {
		t.Errorf("unexpected file data %q", job.FileData())
	}
	if other := NewJob("notes.txt", "", nil, opts); other.ID == job.ID {
		t.Error("expected unique job IDs")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusExtracting, "extracting"},
		{StatusDeduping, "dedup"},
		{StatusGenerating, "generating"},
		{StatusStoring, "storing"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJobStatus_Done(t *testing.T) {
	done := []JobStatus{StatusCompleted, StatusFailed, StatusPartial, StatusDuplicate}
	for _, s := range done {
		if !s.Done() {
			t.Errorf("expected %q to be terminal", s)
		}
	}
	running := []JobStatus{StatusQueued, StatusExtracting, StatusDeduping, StatusGenerating, StatusStoring}
	for _, s := range running {
		if s.Done() {
			t.Errorf("expected %q to be non-terminal", s)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("extract: ocr unavailable")
	job.AddError("store: database busy")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "extract: ocr unavailable" {
		t.Errorf("expected first error %q, got %q", "extract: ocr unavailable", snap.Progress.Errors[0])
	}

	// The snapshot must not alias the job's slice.
	snap.Progress.Errors[0] = "changed"
	if job.Snapshot().Progress.Errors[0] != "extract: ocr unavailable" {
		t.Error("snapshot shares error storage with job")
	}
}

func TestJob_SnapshotResultOnlyWhenDone(t *testing.T) {
	job := &Job{ID: "result-test", Status: StatusGenerating, UpdatedAt: time.Now()}
	job.SetResult(&engine.Response{}, "")
	if job.Snapshot().Result != nil {
		t.Error("expected no result while running")
	}

	job.SetStatus(StatusCompleted, "done")
	job.SetQuizID("quiz-1")
	snap := job.Snapshot()
	if snap.Result == nil {
		t.Error("expected result once done")
	}
	if snap.QuizID != "quiz-1" {
		t.Errorf("expected quiz ID, got %q", snap.QuizID)
	}
}

func TestJob_SetExtracted(t *testing.T) {
	job := &Job{ID: "extract-test"}
	job.SetExtracted("pdf", false, 1200, "abc")

	snap := job.Snapshot()
	if snap.Progress.Format != "pdf" || snap.Progress.TextChars != 1200 || snap.ContentHash != "abc" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestJob_FileData(t *testing.T) {
	job := &Job{ID: "data-test"}
	data := []byte("file content here")
	job.SetFileData(data)
	got := job.FileData()
	if string(got) != string(data) {
		t.Errorf("expected file data %q, got %q", data, got)
	}
	job.releaseFileData()
	if job.FileData() != nil {
		t.Error("expected file data to be released")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(time.Hour)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	store.Put(&Job{ID: "old", UpdatedAt: base.Add(-2 * time.Hour)})
	store.Put(&Job{ID: "edge", UpdatedAt: base.Add(-time.Hour)})
	store.Put(&Job{ID: "new", UpdatedAt: base.Add(-time.Minute)})

	if n := store.Cleanup(); n != 1 {
		t.Errorf("expected 1 removed job, got %d", n)
	}
	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("edge") == nil || store.Get("new") == nil {
		t.Error("expected jobs within the TTL to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	if n := store.Cleanup(); n != 0 {
		t.Errorf("expected nothing removed, got %d", n)
	}
}
