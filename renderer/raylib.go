package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/agesim/scene"
)

// RaylibRenderer draws a scene into the raylib window.
type RaylibRenderer struct {
	palette  Palette
	ageFloor float64
}

// NewRaylibRenderer creates a window renderer.
func NewRaylibRenderer(p Palette, ageFloor float64) *RaylibRenderer {
	return &RaylibRenderer{palette: p, ageFloor: ageFloor}
}

// Draw renders s as a size x size square canvas with its top-left corner at (x, y).
// Must be called between rl.BeginDrawing and rl.EndDrawing.
func (r *RaylibRenderer) Draw(s *scene.World, length int, x, y, size int32) {
	rl.DrawRectangle(x, y, size, size, rl.RayWhite)
	if length < 1 {
		return
	}

	cell := float32(size) / float32(length)
	// Round cell extents up so neighbouring cells leave no gaps.
	side := int32(cell + 0.999)
	maxAge := s.MaxAge()

	s.Each(func(c scene.Cell) {
		col := r.palette.AgeColor(c.Age, maxAge, r.ageFloor)
		rl.DrawRectangle(
			x+int32(float32(c.X)*cell),
			y+int32(float32(c.Y)*cell),
			side, side,
			rl.NewColor(col.R, col.G, col.B, col.A),
		)
	})
	rl.DrawRectangleLines(x, y, size, size, rl.LightGray)
}
