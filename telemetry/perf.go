package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one game tick.
const (
	PhaseMenu      = "menu"
	PhaseCountdown = "countdown"
	PhasePainter   = "painter"
	PhaseLeaf      = "leaf"
	PhaseCollision = "collision"
	PhaseTelemetry = "telemetry"
)

var allPhases = [...]string{
	PhaseMenu, PhaseCountdown, PhasePainter,
	PhaseLeaf, PhaseCollision, PhaseTelemetry,
}

func phaseIndex(name string) int {
	for i, p := range allPhases {
		if p == name {
			return i
		}
	}
	return -1
}

type phaseTimes [len(allPhases)]time.Duration

// perfSample holds timing data for a single tick.
type perfSample struct {
	tick   time.Duration
	phases phaseTimes
}

// PerfCollector tracks tick timing over a rolling window. Phases are
// started in sequence; each one ends when the next starts or the tick ends.
// Unknown phase names are timed as part of the tick only.
type PerfCollector struct {
	samples []perfSample
	next    int
	count   int

	current    phaseTimes
	tickStart  time.Time
	phaseStart time.Time
	phase      int

	lastFrame time.Time
	frame     time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]perfSample, windowSize),
		phase:   -1,
		now:     time.Now,
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = phaseTimes{}
	p.phase = -1
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phaseIndex(phase)
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes the tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.phase = -1

	p.samples[p.next] = perfSample{tick: now.Sub(p.tickStart), phases: p.current}
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average tick

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var sums phaseTimes
	for i := 0; i < p.count; i++ {
		smp := p.samples[i]
		total += smp.tick
		if i == 0 || smp.tick < s.MinTickDuration {
			s.MinTickDuration = smp.tick
		}
		s.MaxTickDuration = max(s.MaxTickDuration, smp.tick)
		for j, d := range smp.phases {
			sums[j] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	for j, sum := range sums {
		if sum == 0 {
			continue
		}
		avg := sum / n
		s.PhaseAvg[allPhases[j]] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[allPhases[j]] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range allPhases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	MenuPct      float64 `csv:"menu_pct"`
	CountdownPct float64 `csv:"countdown_pct"`
	PainterPct   float64 `csv:"painter_pct"`
	LeafPct      float64 `csv:"leaf_pct"`
	CollisionPct float64 `csv:"collision_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for perf.csv.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		MenuPct:      s.PhasePct[PhaseMenu],
		CountdownPct: s.PhasePct[PhaseCountdown],
		PainterPct:   s.PhasePct[PhasePainter],
		LeafPct:      s.PhasePct[PhaseLeaf],
		CollisionPct: s.PhasePct[PhaseCollision],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
