package costs

import (
	"sync"
	"testing"
)

func TestTracker_RecordAndSnapshot(t *testing.T) {
	tracker := NewTracker()

	tracker.Record("gpt-4o-mini", 100, 50, 0.001)
	tracker.Record("gpt-4o-mini", 200, 100, 0.002)
	tracker.Record("gpt-4o", 10, 5, 0.0005)

	s := tracker.Snapshot()
	if s.Requests != 3 {
		t.Errorf("expected 3 requests, got %d", s.Requests)
	}
	if s.TokensIn != 310 || s.TokensOut != 155 {
		t.Errorf("unexpected token totals: in=%d out=%d", s.TokensIn, s.TokensOut)
	}
	if s.Models != 2 {
		t.Errorf("expected 2 models, got %d", s.Models)
	}

	// Snapshot must not reset.
	if again := tracker.Snapshot(); again.Requests != 3 {
		t.Errorf("snapshot reset totals: %d", again.Requests)
	}
}

func TestTracker_Rollup(t *testing.T) {
	tracker := NewTracker()
	tracker.Record("gpt-4o-mini", 10, 10, 0.1)

	first := tracker.Rollup()
	if first.Requests != 1 {
		t.Errorf("expected 1 request in rollup, got %d", first.Requests)
	}

	second := tracker.Snapshot()
	if second.Requests != 0 || second.Models != 0 {
		t.Errorf("rollup did not reset window: %+v", second)
	}
	if !second.Since.After(first.Since) && !second.Since.Equal(first.Since) {
		t.Error("rollup did not advance window start")
	}
}

func TestTracker_Concurrent(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.Record("gpt-4o-mini", 1, 1, 0.0001)
			}
		}()
	}
	wg.Wait()

	if s := tracker.Snapshot(); s.Requests != 1000 {
		t.Errorf("expected 1000 requests, got %d", s.Requests)
	}
}
