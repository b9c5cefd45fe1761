package sim

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (s *Simulation) handleInput() error {
	if rl.IsKeyPressed(rl.KeySpace) {
		s.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) && s.finished {
		return s.Restart()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && s.stepsPerUpdate > 1 {
		s.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && s.stepsPerUpdate < 50 {
		s.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyP) {
		s.showPerf = !s.showPerf
	}
	return nil
}
