package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/agesim/telemetry"
)

// HUDData holds all the data needed to render the stats panel.
type HUDData struct {
	Title    string
	Stats    telemetry.StepStats
	FPS      int32
	Running  bool
	Finished bool
}

// Status returns the run state shown under the title.
func (d HUDData) Status() string {
	switch {
	case d.Finished:
		return "FINISHED"
	case d.Running:
		return "Running"
	default:
		return "PAUSED"
	}
}

// HUD renders the stats side panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	padding := r.Theme.Padding

	sections := []SectionDescriptor{PopulationSection(), EntropySection(data.Stats)}
	height := padding*2 + 46
	for _, sd := range sections {
		height += r.SectionHeight(sd)
	}
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + padding
	y := h.y + padding
	rl.DrawText(data.Title, x, y, r.Theme.TitleSize, r.Theme.Title)
	y += 24
	rl.DrawText(fmt.Sprintf("%s | FPS: %d", data.Status(), data.FPS), x, y, r.Theme.HeaderSize, r.Theme.Status)
	y += 22

	for _, sd := range sections {
		y = r.DrawSection(x, y, sd, data.Stats, h.width-padding*2)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the step phase timings.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// PerfLines formats one line per phase with a non-zero share.
func PerfLines(stats telemetry.PerfStats, phases []telemetry.Phase) []string {
	lines := []string{fmt.Sprintf("Step: %s (%.0f/s)", stats.AvgStepDuration.Round(time.Microsecond), stats.StepsPerSecond)}
	for _, phase := range phases {
		pct := stats.PhasePct[phase]
		if stats.PhaseAvg[phase] == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-10s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct))
	}
	return lines
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []telemetry.Phase) {
	y := p.y
	rl.DrawText("Performance", p.x, y, 16, rl.DarkGray)
	y += 20
	for i, line := range PerfLines(stats, phases) {
		color := rl.Gray
		if i == 0 {
			color = rl.Maroon
		}
		rl.DrawText(line, p.x, y, 12, color)
		y += 14
	}
}
