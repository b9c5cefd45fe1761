package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorWindow(t *testing.T) {
	pc := NewPerfCollector(3)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseGrow)
		time.Sleep(time.Millisecond)
		pc.EndStep()
	}

	if pc.filled != 3 {
		t.Fatalf("filled = %d, want 3", pc.filled)
	}
	stats := pc.Stats()
	if stats.AvgStepDuration < time.Millisecond {
		t.Errorf("avg step = %v, want >= 1ms", stats.AvgStepDuration)
	}
	if stats.MinStepDuration > stats.MaxStepDuration {
		t.Errorf("min %v > max %v", stats.MinStepDuration, stats.MaxStepDuration)
	}
	if stats.StepsPerSecond <= 0 {
		t.Error("expected positive steps per second")
	}
}

func TestPerfCollectorPhaseBreakdown(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 3; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseGrow)
		time.Sleep(4 * time.Millisecond)
		pc.StartPhase(PhaseStats)
		time.Sleep(100 * time.Microsecond)
		pc.EndStep()
	}

	stats := pc.Stats()
	grow := stats.PhaseAvg[PhaseGrow]
	if stats.PhaseAvg[PhaseStats] <= 0 {
		t.Fatal("missing stats phase")
	}
	if grow < 4*time.Millisecond {
		t.Errorf("grow avg = %v, want >= 4ms", grow)
	}
	if stats.PhasePct[PhaseGrow] <= stats.PhasePct[PhaseStats] {
		t.Errorf("grow %.1f%% should exceed stats %.1f%%",
			stats.PhasePct[PhaseGrow], stats.PhasePct[PhaseStats])
	}

	row := stats.ToCSV(42)
	if row.Step != 42 {
		t.Errorf("row.Step = %d, want 42", row.Step)
	}
	if row.GrowPct != stats.PhasePct[PhaseGrow] {
		t.Errorf("row.GrowPct = %v, want %v", row.GrowPct, stats.PhasePct[PhaseGrow])
	}
	if row.RenderPct != 0 {
		t.Errorf("row.RenderPct = %v, want 0 for an unused phase", row.RenderPct)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgStepDuration != 0 {
		t.Error("expected zero avg step duration for empty collector")
	}
	if stats.PhasePct[PhaseGrow] != 0 || stats.StepsPerSecond != 0 {
		t.Error("expected zero phase share and rate for empty collector")
	}
}

func TestPerfCollectorDefaultWindow(t *testing.T) {
	pc := NewPerfCollector(0)
	if pc.window != 60 || len(pc.steps) != 60 {
		t.Errorf("window = %d, want 60", pc.window)
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("frame duration = %v, want >= 15ms", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v, want in (0, 70]", stats.FPS)
	}
}

func TestPhaseNames(t *testing.T) {
	phases := Phases()
	if len(phases) != 5 || phases[0] != PhaseGrow || phases[4] != PhaseTelemetry {
		t.Fatalf("Phases() = %v", phases)
	}
	if PhaseScene.String() != "scene" {
		t.Errorf("PhaseScene = %q", PhaseScene.String())
	}
	if Phase(42).String() != "unknown" {
		t.Errorf("Phase(42) = %q", Phase(42).String())
	}
}
