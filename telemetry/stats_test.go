package telemetry

import (
	"math"
	"testing"
)

func TestSessionSummaryEmpty(t *testing.T) {
	s := NewSessionStats()
	sum := s.Summary()
	if sum.Runs != 0 || sum.MeanScore != 0 || sum.MaxScore != 0 {
		t.Errorf("expected zero summary, got %+v", sum)
	}
	if sum.Reasons == nil {
		t.Error("expected non-nil reasons map")
	}
}

func TestSessionSummarySingleRun(t *testing.T) {
	s := NewSessionStats()
	s.Add(RunRecord{RapidsCleared: 3, DurationSec: 42, Reason: "rock"})

	sum := s.Summary()
	if sum.Runs != 1 {
		t.Errorf("runs = %d, want 1", sum.Runs)
	}
	if sum.StdScore != 0 {
		t.Errorf("std = %v, want 0 for one run", sum.StdScore)
	}
	if sum.MeanScore != 3 || sum.MedianScore != 3 || sum.MaxScore != 3 {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestSessionSummary(t *testing.T) {
	s := NewSessionStats()
	for i, score := range []int{0, 2, 4, 4, 5, 5, 7, 9} {
		reason := "rock"
		if i%4 == 0 {
			reason = "off_side"
		}
		s.Add(RunRecord{RapidsCleared: score, DurationSec: float64(10 * (i + 1)), Reason: reason})
	}

	sum := s.Summary()
	if sum.Runs != 8 {
		t.Errorf("runs = %d, want 8", sum.Runs)
	}
	if sum.MeanScore != 4.5 {
		t.Errorf("mean = %v, want 4.5", sum.MeanScore)
	}
	// Sample standard deviation of the scores above.
	if math.Abs(sum.StdScore-math.Sqrt(54.0/7)) > 1e-9 {
		t.Errorf("std = %v, want %v", sum.StdScore, math.Sqrt(54.0/7))
	}
	if sum.MedianScore != 4 {
		t.Errorf("median = %v, want 4 (empirical quantile)", sum.MedianScore)
	}
	if sum.MaxScore != 9 {
		t.Errorf("max = %v, want 9", sum.MaxScore)
	}
	if sum.MeanDuration != 45 {
		t.Errorf("mean duration = %v, want 45", sum.MeanDuration)
	}
	if sum.Reasons["off_side"] != 2 || sum.Reasons["rock"] != 6 {
		t.Errorf("reasons = %v", sum.Reasons)
	}
}

func TestSessionSummaryDoesNotAlias(t *testing.T) {
	s := NewSessionStats()
	s.Add(RunRecord{RapidsCleared: 5, Reason: "rock"})
	s.Add(RunRecord{RapidsCleared: 1, Reason: "rock"})

	sum := s.Summary()
	sum.Reasons["rock"] = 100
	if s.Summary().Reasons["rock"] != 2 {
		t.Error("summary reasons map aliases internal state")
	}
	if s.scores[0] != 5 {
		t.Error("summary sorted the recorded scores in place")
	}
}
