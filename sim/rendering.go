package sim

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/agesim/telemetry"
	"github.com/pthm-cable/agesim/ui"
)

const controlsLegend = "[Space] start/pause  [</>] steps per update  [P] perf  [R] restart when finished"

// Draw renders the grid canvas, controls and stats. It returns an error only
// when a restart requested through the button fails.
func (s *Simulation) Draw() error {
	s.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	canvas := int32(s.cfg.Screen.CanvasSize)
	s.window.Draw(s.scene, s.cfg.Settings.Length, 20, 20, canvas)

	action := s.controls.Draw(s.running, s.finished)

	s.hud.Draw(ui.HUDData{
		Title:    "Cellular timekeeping",
		Stats:    s.collector.Latest(),
		FPS:      rl.GetFPS(),
		Running:  s.running,
		Finished: s.finished,
	})

	s.drawHistory(20, canvas+90, canvas, int32(s.cfg.Screen.Height)-canvas-130)

	if s.showPerf {
		s.perfPanel.Draw(s.perfCollector.Stats(), telemetry.Phases())
	}
	s.hud.DrawControls(int32(s.cfg.Screen.Height), fmt.Sprintf("%s  | %d steps/update", controlsLegend, s.stepsPerUpdate))

	rl.EndDrawing()

	switch action {
	case ui.ActionToggle:
		s.Toggle()
	case ui.ActionRestart:
		return s.Restart()
	}
	return nil
}

// drawHistory plots mean age and size, each scaled to its own maximum.
func (s *Simulation) drawHistory(x, y, width, height int32) {
	h := s.History()
	if h.Len() < 2 || height < 20 || s.showPerf {
		return
	}

	rl.DrawRectangleLines(x, y, width, height, rl.DarkGray)
	plot := func(values []float64, color rl.Color) {
		var top float64
		for _, v := range values {
			top = max(top, v)
		}
		if top <= 0 {
			top = 1
		}
		n := len(values)
		prev := rl.Vector2{}
		for i, v := range values {
			pt := rl.Vector2{
				X: float32(x) + float32(width)*float32(i)/float32(n-1),
				Y: float32(y+height) - float32(height)*float32(v/top),
			}
			if i > 0 {
				rl.DrawLineV(prev, pt, color)
			}
			prev = pt
		}
	}
	plot(h.MeanAges, rl.Red)
	plot(h.Sizes, rl.SkyBlue)
	rl.DrawText("mean age", x+6, y+4, 12, rl.Red)
	rl.DrawText("size", x+70, y+4, 12, rl.SkyBlue)
}
