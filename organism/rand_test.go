package organism

// scriptedRand replays queued draws, then falls back to fixed values.
type scriptedRand struct {
	floats     []float64
	ints       []int
	fallbackF  float64
	fallbackI  int
	floatDraws int
	intDraws   int
}

func (r *scriptedRand) Float64() float64 {
	r.floatDraws++
	if len(r.floats) > 0 {
		v := r.floats[0]
		r.floats = r.floats[1:]
		return v
	}
	return r.fallbackF
}

func (r *scriptedRand) Intn(n int) int {
	r.intDraws++
	v := r.fallbackI
	if len(r.ints) > 0 {
		v = r.ints[0]
		r.ints = r.ints[1:]
	}
	return v % n
}
