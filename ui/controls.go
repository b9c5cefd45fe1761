package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Button labels.
const (
	LabelStart   = "Start Simulation"
	LabelPause   = "Pause Simulation"
	LabelRestart = "Reload to Restart"
)

// Action is what a control click asks the runner to do.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionRestart
)

// ButtonLabel returns the start/pause button text for the run state.
func ButtonLabel(running, finished bool) string {
	switch {
	case finished:
		return LabelRestart
	case running:
		return LabelPause
	default:
		return LabelStart
	}
}

// ActionFor maps a button click in the given run state to an action.
func ActionFor(clicked, finished bool) Action {
	switch {
	case !clicked:
		return ActionNone
	case finished:
		return ActionRestart
	default:
		return ActionToggle
	}
}

// Controls renders the start/pause button.
type Controls struct {
	bounds rl.Rectangle
}

// NewControls creates the button at the given rectangle.
func NewControls(x, y, width, height float32) *Controls {
	return &Controls{bounds: rl.Rectangle{X: x, Y: y, Width: width, Height: height}}
}

// Draw renders the button and returns the action a click requests.
func (c *Controls) Draw(running, finished bool) Action {
	clicked := gui.Button(c.bounds, ButtonLabel(running, finished))
	return ActionFor(clicked, finished)
}
