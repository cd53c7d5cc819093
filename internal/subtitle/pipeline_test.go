package subtitle

import (
	"errors"
	"strings"
	"testing"

	"subscan/internal/services"
)

func obs(index int, timeMS int64, text string, confidence float64) FrameObservation {
	return FrameObservation{FrameIndex: index, TimeMS: timeMS, Text: text, Confidence: confidence}
}

func TestGenerateCollapsesStableCaption(t *testing.T) {
	frames := []FrameObservation{
		obs(0, 0, "Hello world", 0.92),
		obs(1, 500, "Hello world", 0.93),
		obs(2, 1000, "Hello world", 0.94),
	}

	entries, err := Generate(frames, 2.0, 0.5, DefaultCleanupOptions(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].ID != "sub-1" {
		t.Errorf("id = %q, want sub-1", entries[0].ID)
	}
	if entries[0].StartMS != 0 {
		t.Errorf("start = %d, want 0", entries[0].StartMS)
	}
	if !strings.Contains(strings.ToLower(entries[0].Text), "hello") {
		t.Errorf("text = %q, want it to contain %q", entries[0].Text, "hello")
	}
	if entries[0].EndMS <= entries[0].StartMS {
		t.Errorf("end %d must exceed start %d", entries[0].EndMS, entries[0].StartMS)
	}
}

func TestGenerateAbsorbsBlip(t *testing.T) {
	frames := []FrameObservation{
		obs(0, 0, "Je suis une longue phrase", 0.95),
		obs(1, 500, "Je su1s unel0ngu phrase", 0.96),
		obs(2, 1000, "Je suis une longue phrase", 0.95),
	}
	opts := CleanupOptions{
		MergeSimilar:        true,
		SimilarityThreshold: 0.95,
		MaxGapMS:            1000,
		MinCueDurationMS:    500,
		FilterURLLike:       false,
	}

	entries, err := Generate(frames, 2.0, 0.5, opts, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1 (glitch at 500ms should be absorbed)", len(entries))
	}
	if entries[0].StartMS != 0 {
		t.Errorf("start = %d, want 0", entries[0].StartMS)
	}
	if entries[0].EndMS < 1000 {
		t.Errorf("end = %d, want >= 1000 (span through frame 2)", entries[0].EndMS)
	}
	if entries[0].Text != "Je suis une longue phrase" {
		t.Errorf("text = %q, want the consistent reading", entries[0].Text)
	}
}

func TestGenerateBlipDoesNotExtendPastLastMatchingFrame(t *testing.T) {
	frames := []FrameObservation{
		obs(0, 0, "Je suis une longue phrase", 0.95),
		obs(1, 500, "Je su1s unel0ngu phrase", 0.96),
		obs(2, 1000, "Je suis une longue phrase", 0.95),
		obs(3, 1500, "Une autre phrase", 0.95),
	}
	opts := CleanupOptions{
		MergeSimilar:        true,
		SimilarityThreshold: 0.95,
		MaxGapMS:            1000,
		MinCueDurationMS:    500,
		FilterURLLike:       false,
	}

	entries, err := Generate(frames, 2.0, 0.5, opts, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Text != "Je suis une longue phrase" {
		t.Errorf("first text = %q", entries[0].Text)
	}
	if entries[0].EndMS != 1500 {
		t.Errorf("first end = %d, want 1500", entries[0].EndMS)
	}
	if entries[1].StartMS != 1500 {
		t.Errorf("second start = %d, want 1500", entries[1].StartMS)
	}
}

func TestGenerateRejectsNonPositiveFPS(t *testing.T) {
	frames := []FrameObservation{obs(0, 0, "Hello", 0.99)}

	for _, fps := range []float64{0, -1} {
		entries, err := Generate(frames, fps, 0.5, DefaultCleanupOptions(), nil)
		if err == nil {
			t.Fatalf("Generate(fps=%v) expected error", fps)
		}
		if !errors.Is(err, services.ErrConfiguration) {
			t.Errorf("Generate(fps=%v) error = %v, want ErrConfiguration", fps, err)
		}
		if len(entries) != 0 {
			t.Errorf("Generate(fps=%v) returned %d entries, want 0", fps, len(entries))
		}
	}
}

func TestGenerateAllFramesBelowConfidence(t *testing.T) {
	frames := []FrameObservation{
		obs(0, 0, "Hello", 0.10),
		obs(1, 1000, "World", 0.15),
	}

	entries, err := Generate(frames, 1.0, 0.80, DefaultCleanupOptions(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestGenerateFiltersURLLikeCues(t *testing.T) {
	frames := []FrameObservation{
		obs(0, 0, "www.example.com", 0.99),
		obs(1, 1000, "Real subtitle", 0.99),
	}
	opts := CleanupOptions{
		MergeSimilar:        false,
		SimilarityThreshold: 0.92,
		MaxGapMS:            250,
		MinCueDurationMS:    300,
		FilterURLLike:       true,
	}

	entries, err := Generate(frames, 1.0, 0.5, opts, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Text != "Real subtitle" {
		t.Errorf("text = %q, want %q", entries[0].Text, "Real subtitle")
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	entries, err := Generate(nil, 1.0, 0.5, DefaultCleanupOptions(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestGenerateSingleFrame(t *testing.T) {
	frames := []FrameObservation{obs(0, 0, "Single frame", 0.99)}

	entries, err := Generate(frames, 1.0, 0.5, DefaultCleanupOptions(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Text != "Single frame" {
		t.Errorf("text = %q, want %q", entries[0].Text, "Single frame")
	}
	if entries[0].EndMS <= entries[0].StartMS {
		t.Errorf("end %d must exceed start %d", entries[0].EndMS, entries[0].StartMS)
	}
}

func TestGenerateEndTimeFromTimestampsWhenFPSIsWrong(t *testing.T) {
	frames := []FrameObservation{
		obs(0, 0, "Timing test", 0.95),
		obs(1, 67, "Timing test", 0.95),
		obs(2, 133, "Timing test", 0.95),
	}

	entries, err := Generate(frames, 10.0, 0.5, DefaultCleanupOptions(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].StartMS != 0 {
		t.Errorf("start = %d, want 0", entries[0].StartMS)
	}
	// Median delta is 67ms; 133 + 67 = 200.
	if entries[0].EndMS != 200 {
		t.Errorf("end = %d, want 200", entries[0].EndMS)
	}
}

func TestGenerateEndTimeFallsBackToFPS(t *testing.T) {
	frames := []FrameObservation{
		obs(0, 0, "Fallback timing", 0.95),
		obs(1, 0, "Fallback timing", 0.95),
		obs(2, 0, "Fallback timing", 0.95),
	}

	entries, err := Generate(frames, 10.0, 0.5, DefaultCleanupOptions(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	// No usable deltas: (lastFrame+1) * 1000/fps = 3 * 100.
	if entries[0].EndMS != 300 {
		t.Errorf("end = %d, want 300", entries[0].EndMS)
	}
}

func TestGenerateMergesShortAdjacentCues(t *testing.T) {
	frames := []FrameObservation{
		obs(0, 0, "today we fight together", 0.95),
		obs(1, 500, "today we fight togather", 0.96),
	}
	opts := CleanupOptions{
		MergeSimilar:        true,
		SimilarityThreshold: 0.98,
		MaxGapMS:            1000,
		MinCueDurationMS:    800,
		FilterURLLike:       false,
	}

	entries, err := Generate(frames, 2.0, 0.5, opts, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].StartMS != 0 {
		t.Errorf("start = %d, want 0", entries[0].StartMS)
	}
	if entries[0].EndMS < 1000 {
		t.Errorf("end = %d, want >= 1000", entries[0].EndMS)
	}
}

func TestGenerateOutputInvariants(t *testing.T) {
	frames := []FrameObservation{
		obs(0, 0, "first caption", 0.91),
		obs(1, 400, "first caption", 0.93),
		obs(2, 800, "", 0.0),
		obs(3, 1600, "second caption here", 0.88),
		obs(4, 2000, "second caption hore", 0.86),
		obs(5, 2400, "", 0.0),
		obs(6, 3600, "third one", 0.97),
	}

	entries, err := Generate(frames, 2.5, 0.5, DefaultCleanupOptions(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected entries")
	}
	for i, entry := range entries {
		if entry.EndMS <= entry.StartMS {
			t.Errorf("entry %d: end %d must exceed start %d", i, entry.EndMS, entry.StartMS)
		}
		if entry.Confidence < 0 || entry.Confidence > 1 {
			t.Errorf("entry %d: confidence %v out of [0,1]", i, entry.Confidence)
		}
		if strings.TrimSpace(entry.Text) == "" {
			t.Errorf("entry %d: empty text", i)
		}
		if i > 0 {
			if entry.StartMS < entries[i-1].StartMS {
				t.Errorf("entries not ordered by start: %d < %d", entry.StartMS, entries[i-1].StartMS)
			}
			if entry.StartMS < entries[i-1].EndMS {
				t.Errorf("entries overlap: entry %d starts at %d before previous end %d", i, entry.StartMS, entries[i-1].EndMS)
			}
		}
	}
}

func TestGenerateReportsProgress(t *testing.T) {
	frames := make([]FrameObservation, 250)
	for i := range frames {
		frames[i] = obs(i, int64(i)*100, "steady caption", 0.9)
	}

	var calls int
	var lastTotal int
	_, err := Generate(frames, 10.0, 0.5, DefaultCleanupOptions(), func(current, total int) {
		calls++
		lastTotal = total
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("progress calls = %d, want 3 (frames 0, 100, 200)", calls)
	}
	if lastTotal != len(frames) {
		t.Errorf("progress total = %d, want %d", lastTotal, len(frames))
	}
}

func TestGenerateBaselinePromotion(t *testing.T) {
	// The later, higher-confidence reading should become the anchor so that
	// subsequent frames matching it extend the segment.
	frames := []FrameObservation{
		obs(0, 0, "hella world once more", 0.70),
		obs(1, 200, "hello world once more", 0.98),
		obs(2, 400, "hello world once more", 0.97),
	}

	entries, err := Generate(frames, 5.0, 0.5, DefaultCleanupOptions(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Text != "hello world once more" {
		t.Errorf("text = %q, want the promoted high-confidence reading", entries[0].Text)
	}
}
