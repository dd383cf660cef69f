package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulatesAndResets(t *testing.T) {
	ResetFrame()
	stop := Track("test.Track")
	time.Sleep(2 * time.Millisecond)
	stop()

	if got := Snapshot()["test.Track"]; got < 2*time.Millisecond {
		t.Fatalf("tracked duration too small: %v", got)
	}
	if got := SumWithPrefix("test."); got < 2*time.Millisecond {
		t.Fatalf("SumWithPrefix too small: %v", got)
	}

	ResetFrame()
	if _, ok := Snapshot()["test.Track"]; ok {
		t.Fatalf("ResetFrame did not clear totals")
	}
}

func TestCountSurvivesReset(t *testing.T) {
	before := Counter("test.count")
	Count("test.count", 3)
	ResetFrame()
	if got := Counter("test.count"); got != before+3 {
		t.Fatalf("counter = %d, want %d", got, before+3)
	}
}

func TestTopNOrdersByDuration(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["a.slow"] = 5 * time.Millisecond
	frameTotals["b.fast"] = 1 * time.Millisecond
	frameTotals["c.mid"] = 3 * time.Millisecond
	mu.Unlock()

	got := TopN(2)
	if !strings.HasPrefix(got, "a.slow:5.0ms") || !strings.Contains(got, "c.mid:3.0ms") {
		t.Fatalf("unexpected TopN output: %q", got)
	}
	if strings.Contains(got, "b.fast") {
		t.Fatalf("TopN(2) should drop the cheapest bucket: %q", got)
	}
	ResetFrame()
}
