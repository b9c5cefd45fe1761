package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm-cable/agesim/renderer"
	"github.com/pthm-cable/agesim/telemetry"
)

// openOutput creates the output directory files and the frame video.
func (s *Simulation) openOutput(dir string) error {
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		return err
	}
	s.outputManager = om
	if om == nil {
		if s.frameEvery > 0 {
			slog.Warn("frame output needs an output directory, frames disabled")
		}
		return nil
	}

	if err := om.WriteConfig(s.cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if s.frameEvery > 0 {
		side := s.cfg.Settings.Length * s.cfg.Render.CellPx
		v, err := renderer.NewVideoWriter(om.Path(telemetry.VideoFile), side, side, s.cfg.Render.VideoFPS)
		if err != nil {
			om.Close()
			return err
		}
		s.video = v
		s.writeFrame()
	}
	return nil
}

// writeFrame appends the current scene to the video.
func (s *Simulation) writeFrame() {
	img := s.frames.Frame(s.scene, s.cfg.Settings.Length)
	if err := s.video.AddFrame(img); err != nil {
		slog.Error("failed to write frame", "step", s.tick, "error", err)
	}
}

// writeChart renders the history chart to path.
func (s *Simulation) writeChart(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	err = renderer.RenderChart(f, s.History(), s.cfg.Chart.Width, s.cfg.Chart.Height)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if errors.Is(err, renderer.ErrNotEnoughData) {
		os.Remove(path)
		slog.Info("chart skipped", "points", s.History().Len())
		return nil
	}
	if err == nil {
		slog.Info("chart saved", "path", path, "points", s.History().Len())
	}
	return err
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick)
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.outputManager != nil {
		if err := s.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.outputManager.WritePerf(perfStats, s.tick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range s.bookmarkDetector.Check(stats, s.cfg.Settings.Area()) {
		if s.logStats {
			bm.LogBookmark()
		}
		if s.outputManager != nil {
			if err := s.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}
