package telemetry

import (
	"log/slog"
	"maps"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// RunRecord is one finished run, written as a row of runs.csv.
type RunRecord struct {
	Run           int     `csv:"run"`
	Seed          int64   `csv:"seed"`
	StartTick     int     `csv:"start_tick"`
	EndTick       int     `csv:"end_tick"`
	DurationSec   float64 `csv:"duration_s"`
	RapidsCleared int     `csv:"rapids_cleared"`
	Reason        string  `csv:"reason"`
	HighScore     int     `csv:"high_score"`
	NewHighScore  bool    `csv:"new_high_score"`
}

// LogValue implements slog.LogValuer.
func (r RunRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("run", r.Run),
		slog.Int("rapids_cleared", r.RapidsCleared),
		slog.String("reason", r.Reason),
		slog.Float64("duration_s", r.DurationSec),
		slog.Int("high_score", r.HighScore),
	)
}

// SessionStats accumulates finished runs for an end-of-session summary.
type SessionStats struct {
	scores    []float64
	durations []float64
	reasons   map[string]int
}

// NewSessionStats creates an empty accumulator.
func NewSessionStats() *SessionStats {
	return &SessionStats{reasons: make(map[string]int)}
}

// Add records a run.
func (s *SessionStats) Add(r RunRecord) {
	s.scores = append(s.scores, float64(r.RapidsCleared))
	s.durations = append(s.durations, r.DurationSec)
	s.reasons[r.Reason]++
}

// Runs returns how many runs were added.
func (s *SessionStats) Runs() int {
	return len(s.scores)
}

// SessionSummary describes the score distribution over a session.
type SessionSummary struct {
	Runs         int
	MeanScore    float64
	StdScore     float64 // Sample standard deviation, 0 below two runs
	MedianScore  float64
	MaxScore     float64
	MeanDuration float64
	Reasons      map[string]int
}

// Summary computes the current summary.
func (s *SessionStats) Summary() SessionSummary {
	sum := SessionSummary{Runs: len(s.scores), Reasons: make(map[string]int, len(s.reasons))}
	maps.Copy(sum.Reasons, s.reasons)
	if sum.Runs == 0 {
		return sum
	}

	sum.MeanScore = stat.Mean(s.scores, nil)
	if sum.Runs > 1 {
		sum.StdScore = stat.StdDev(s.scores, nil)
	}
	sorted := slices.Clone(s.scores)
	slices.Sort(sorted)
	sum.MedianScore = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	sum.MaxScore = sorted[len(sorted)-1]
	sum.MeanDuration = stat.Mean(s.durations, nil)
	return sum
}

// LogValue implements slog.LogValuer.
func (s SessionSummary) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("runs", s.Runs),
		slog.Float64("mean_score", s.MeanScore),
		slog.Float64("std_score", s.StdScore),
		slog.Float64("median_score", s.MedianScore),
		slog.Float64("max_score", s.MaxScore),
		slog.Float64("mean_duration_s", s.MeanDuration),
	}
	for _, reason := range slices.Sorted(maps.Keys(s.Reasons)) {
		attrs = append(attrs, slog.Int("ended_"+reason, s.Reasons[reason]))
	}
	return slog.GroupValue(attrs...)
}
