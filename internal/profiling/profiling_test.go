package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	stop := Track("test.op")
	time.Sleep(time.Millisecond)
	stop()
	stop = Track("test.op")
	stop()

	ss := Snapshot()
	if ss["test.op"] <= 0 {
		t.Fatalf("tracked duration %v, want > 0", ss["test.op"])
	}

	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Fatal("ResetFrame left totals behind")
	}
}

func TestTopN(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	mu.Lock()
	frameTotals["slow"] = 5 * time.Millisecond
	frameTotals["fast"] = 1 * time.Millisecond
	mu.Unlock()

	got := TopN(1)
	if !strings.HasPrefix(got, "slow:") {
		t.Fatalf("TopN(1) = %q, want the slowest entry first", got)
	}
	if TopN(10) == "" {
		t.Fatal("TopN with n beyond entry count should still report all entries")
	}
}
