package renderer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pthm-cable/agesim/scene"
)

// FrameRenderer rasterises scenes into square images, cellPx pixels per grid cell.
type FrameRenderer struct {
	Palette  Palette
	AgeFloor float64
	CellPx   int
}

// Frame draws every cell of s on a white length x length grid.
func (r FrameRenderer) Frame(s *scene.World, length int) *image.RGBA {
	px := max(r.CellPx, 1)
	side := length * px
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	maxAge := s.MaxAge()
	s.Each(func(c scene.Cell) {
		rect := image.Rect(c.X*px, c.Y*px, (c.X+1)*px, (c.Y+1)*px)
		fill := r.Palette.AgeColor(c.Age, maxAge, r.AgeFloor)
		draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)
	})
	return img
}
