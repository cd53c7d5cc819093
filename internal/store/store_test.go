package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("OpenPath returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewJobAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	job, err := s.NewJob(ctx, "/videos/movie.mkv", "korean", 2.0)
	if err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}
	if job.ID == "" {
		t.Fatal("expected generated job id")
	}
	if job.Status != StatusPending {
		t.Fatalf("unexpected status: %q", job.Status)
	}
	if job.Language != "korean" || job.FPS != 2.0 {
		t.Fatalf("unexpected job fields: %+v", job)
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	fetched, err := s.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if fetched == nil || fetched.SourcePath != "/videos/movie.mkv" {
		t.Fatalf("unexpected fetched job: %+v", fetched)
	}
}

func TestGetByIDMissing(t *testing.T) {
	s := openTestStore(t)
	job, err := s.GetByID(context.Background(), "no-such-job")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if job != nil {
		t.Fatalf("expected nil job, got %+v", job)
	}
}

func TestJobLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	job, err := s.NewJob(ctx, "/videos/movie.mkv", "", 2.0)
	if err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}

	if err := s.SetStatus(ctx, job.ID, StatusRecognizing); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if err := s.SetFrameCount(ctx, job.ID, 480); err != nil {
		t.Fatalf("SetFrameCount returned error: %v", err)
	}
	if err := s.SetProgress(ctx, job.ID, "recognizing", 50); err != nil {
		t.Fatalf("SetProgress returned error: %v", err)
	}
	if err := s.Complete(ctx, job.ID, "/subtitles/movie.srt", 42); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	final, err := s.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if final.Status != StatusCompleted {
		t.Fatalf("unexpected status: %q", final.Status)
	}
	if final.OutputPath != "/subtitles/movie.srt" || final.CueCount != 42 {
		t.Fatalf("unexpected result fields: %+v", final)
	}
	if final.FrameCount != 480 {
		t.Fatalf("unexpected frame count: %d", final.FrameCount)
	}
	if final.ProgressPercent != 100 {
		t.Fatalf("unexpected progress: %v", final.ProgressPercent)
	}
	if !final.Status.Terminal() {
		t.Fatal("expected completed status to be terminal")
	}
}

func TestFailRecordsMessage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	job, err := s.NewJob(ctx, "/videos/movie.mkv", "", 2.0)
	if err != nil {
		t.Fatalf("NewJob returned error: %v", err)
	}
	if err := s.Fail(ctx, job.ID, "ffmpeg exited with status 1"); err != nil {
		t.Fatalf("Fail returned error: %v", err)
	}

	failed, err := s.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if failed.Status != StatusFailed {
		t.Fatalf("unexpected status: %q", failed.Status)
	}
	if failed.ErrorMessage != "ffmpeg exited with status 1" {
		t.Fatalf("unexpected error message: %q", failed.ErrorMessage)
	}
}

func TestUpdateMissingJob(t *testing.T) {
	s := openTestStore(t)
	if err := s.SetStatus(context.Background(), "no-such-job", StatusExtracting); err == nil {
		t.Fatal("expected error updating missing job")
	}
}

func TestListFiltersByStatus(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.NewJob(ctx, "/videos/a.mkv", "", 2.0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.NewJob(ctx, "/videos/b.mkv", "", 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Complete(ctx, second.ID, "/subtitles/b.srt", 3); err != nil {
		t.Fatal(err)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(all))
	}

	completed, err := s.List(ctx, StatusCompleted)
	if err != nil {
		t.Fatalf("List(completed) returned error: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != second.ID {
		t.Fatalf("unexpected completed jobs: %+v", completed)
	}

	pending, err := s.List(ctx, StatusPending)
	if err != nil {
		t.Fatalf("List(pending) returned error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != first.ID {
		t.Fatalf("unexpected pending jobs: %+v", pending)
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	job, err := s.NewJob(ctx, "/videos/a.mkv", "", 2.0)
	if err != nil {
		t.Fatal(err)
	}
	removed, err := s.Remove(ctx, job.ID)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if !removed {
		t.Fatal("expected job to be removed")
	}
	removed, err = s.Remove(ctx, job.ID)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if removed {
		t.Fatal("expected second remove to be a no-op")
	}

	if _, err := s.NewJob(ctx, "/videos/b.mkv", "", 2.0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.NewJob(ctx, "/videos/c.mkv", "", 2.0); err != nil {
		t.Fatal(err)
	}
	cleared, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("expected 2 cleared jobs, got %d", cleared)
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.NewJob(ctx, "/videos/a.mkv", "", 2.0); err != nil {
		t.Fatal(err)
	}
	job, err := s.NewJob(ctx, "/videos/b.mkv", "", 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Fail(ctx, job.ID, "boom"); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats[StatusPending] != 1 || stats[StatusFailed] != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "jobs.db")
	s, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("OpenPath returned error: %v", err)
	}
	if _, err := s.NewJob(context.Background(), "/videos/a.mkv", "", 2.0); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()

	jobs, err := reopened.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job after reopen, got %d", len(jobs))
	}
}
