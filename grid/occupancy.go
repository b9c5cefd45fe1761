package grid

// Occupancy marks which grid locations hold a cell.
// Backed by one flat slice of length*length entries.
type Occupancy struct {
	length int
	cells  []bool
	count  int
}

// NewOccupancy creates an empty occupancy index for a length x length grid.
func NewOccupancy(length int) *Occupancy {
	if length < 0 {
		length = 0
	}
	return &Occupancy{
		length: length,
		cells:  make([]bool, length*length),
	}
}

// Set marks l as occupied. Out-of-range locations are ignored.
func (o *Occupancy) Set(l Location) {
	if !l.InBounds(o.length) {
		return
	}
	idx := l.Y*o.length + l.X
	if !o.cells[idx] {
		o.cells[idx] = true
		o.count++
	}
}

// Occupied reports whether l holds a cell. Out-of-range locations are never occupied.
func (o *Occupancy) Occupied(l Location) bool {
	if !l.InBounds(o.length) {
		return false
	}
	return o.cells[l.Y*o.length+l.X]
}

// Count returns the number of occupied locations.
func (o *Occupancy) Count() int {
	return o.count
}

// Free filters candidates down to in-bounds, unoccupied locations, keeping their order.
func (o *Occupancy) Free(candidates []Location) []Location {
	out := candidates[:0]
	for _, c := range candidates {
		if c.InBounds(o.length) && !o.Occupied(c) {
			out = append(out, c)
		}
	}
	return out
}
