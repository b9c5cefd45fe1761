package telemetry

import "github.com/pthm-cable/agesim/organism"

// History is the per-step time series a chart plots.
type History struct {
	Steps    []float64
	MeanAges []float64
	Sizes    []float64
}

// Append adds one point.
func (h *History) Append(step int, meanAge float64, size int) {
	h.Steps = append(h.Steps, float64(step))
	h.MeanAges = append(h.MeanAges, meanAge)
	h.Sizes = append(h.Sizes, float64(size))
}

// Len returns the number of points.
func (h *History) Len() int {
	return len(h.Steps)
}

// Collector observes every step, keeps the history and produces a stats row
// every window.
type Collector struct {
	windowSteps int

	// Current window tracking
	windowStart int
	births      int
	lastSize    int

	history History
	latest  StepStats
}

// NewCollector creates a collector that flushes every windowSteps steps.
// initialSize is the population the first observed step grows from.
func NewCollector(windowSteps, initialSize int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{
		windowSteps: windowSteps,
		lastSize:    initialSize,
	}
}

// Observe computes stats for the snapshot reached at step and records them.
func (c *Collector) Observe(step int, o organism.Organism) (StepStats, error) {
	stats, err := Compute(step, o)
	if err != nil {
		return StepStats{}, err
	}

	if o.Size > c.lastSize {
		c.births += o.Size - c.lastSize
	}
	c.lastSize = o.Size

	c.history.Append(step, stats.MeanAge, stats.Size)
	c.latest = stats
	return stats, nil
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(step int) bool {
	return step-c.windowStart >= c.windowSteps
}

// Flush returns the latest stats with the window's birth count and starts a new window.
func (c *Collector) Flush(step int) StepStats {
	stats := c.latest
	stats.Births = c.births

	c.windowStart = step
	c.births = 0
	return stats
}

// Latest returns the most recently observed stats.
func (c *Collector) Latest() StepStats {
	return c.latest
}

// History returns the accumulated time series.
func (c *Collector) History() *History {
	return &c.history
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int {
	return c.windowSteps
}
