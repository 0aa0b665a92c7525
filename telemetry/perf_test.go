package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clk.now
	return pc, clk
}

func TestPerfCollector_PhaseTiming(t *testing.T) {
	pc, clk := newTestCollector(10)

	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePainter)
		clk.advance(300 * time.Microsecond)
		pc.StartPhase(PhaseLeaf)
		clk.advance(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 400*time.Microsecond {
		t.Errorf("avg tick = %v, want 400µs", stats.AvgTickDuration)
	}
	if got := stats.PhaseAvg[PhasePainter]; got != 300*time.Microsecond {
		t.Errorf("painter avg = %v, want 300µs", got)
	}
	if got := stats.PhasePct[PhaseLeaf]; got != 25 {
		t.Errorf("leaf pct = %v, want 25", got)
	}
	if _, ok := stats.PhaseAvg[PhaseCollision]; ok {
		t.Error("untimed phase should not be reported")
	}
	if stats.TicksPerSecond != 2500 {
		t.Errorf("ticks/s = %v, want 2500", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clk := newTestCollector(3)

	for _, d := range []time.Duration{100, 100, 100, 400, 400, 400} {
		pc.StartTick()
		clk.advance(d * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 400*time.Microsecond {
		t.Errorf("avg tick = %v, want only the last window (400µs)", stats.AvgTickDuration)
	}
	if stats.MinTickDuration != stats.MaxTickDuration {
		t.Errorf("min %v != max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_UnknownPhase(t *testing.T) {
	pc, clk := newTestCollector(4)

	pc.StartTick()
	pc.StartPhase("warmup")
	clk.advance(time.Millisecond)
	pc.StartPhase(PhaseMenu)
	clk.advance(time.Millisecond)
	pc.EndTick()

	stats := pc.Stats()
	if stats.AvgTickDuration != 2*time.Millisecond {
		t.Errorf("avg tick = %v, want 2ms", stats.AvgTickDuration)
	}
	if got := stats.PhasePct[PhaseMenu]; got != 50 {
		t.Errorf("menu pct = %v, want 50", got)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc, clk := newTestCollector(10)

	pc.RecordFrame()
	clk.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("frame = %v, want 20ms", stats.FrameDuration)
	}
	if stats.FPS != 50 {
		t.Errorf("fps = %v, want 50", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct:        map[string]float64{PhasePainter: 80, PhaseLeaf: 20},
	}
	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 1500 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.PainterPct != 80 || row.LeafPct != 20 || row.MenuPct != 0 {
		t.Errorf("unexpected phase columns %+v", row)
	}
}
