// Package grid provides integer grid geometry for the cell population.
package grid

import "math"

// Location is a cell position on the grid.
type Location struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// mooreOffsets is the 8-connected neighbourhood in draw order.
// Split targets are chosen by index into the filtered list, so the order matters.
var mooreOffsets = [8][2]int{
	{0, 1}, {1, 0}, {1, 1}, {1, -1},
	{0, -1}, {-1, 0}, {-1, -1}, {-1, 1},
}

// Neighbours returns the Moore neighbourhood of l with negative coordinates removed.
// The upper bound is not checked here; callers clip against the grid length.
func (l Location) Neighbours() []Location {
	out := make([]Location, 0, len(mooreOffsets))
	for _, d := range mooreOffsets {
		n := Location{X: l.X + d[0], Y: l.Y + d[1]}
		if n.X >= 0 && n.Y >= 0 {
			out = append(out, n)
		}
	}
	return out
}

// InBounds reports whether l lies inside a length x length grid.
func (l Location) InBounds(length int) bool {
	return l.X >= 0 && l.Y >= 0 && l.X < length && l.Y < length
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Location) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(float64(dx*dx + dy*dy))
}
