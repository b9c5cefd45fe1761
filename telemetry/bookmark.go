package telemetry

import (
	"fmt"
	"log/slog"
	"math"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHalfFull        BookmarkType = "half_full"
	BookmarkGridFull        BookmarkType = "grid_full"
	BookmarkGrowthBurst     BookmarkType = "growth_burst"
	BookmarkDiversification BookmarkType = "diversification"
	BookmarkStableAge       BookmarkType = "stable_age"
)

// DiversificationEntropy is the mean per-base entropy that counts as a diverse
// population: half of the four-base maximum ln 4.
var DiversificationEntropy = 0.5 * math.Log(4)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Step        int          `csv:"step"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"step", b.Step,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments in a run from flushed stats rows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []StepStats
	historySize int
	historyIdx  int
	historyFull bool

	// One-shot triggers
	halfFullSeen bool
	fullSeen     bool
	diverseSeen  bool

	stableWindowsCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable age detection
	}
	return &BookmarkDetector{
		history:     make([]StepStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
// area is the grid capacity the population grows into.
func (bd *BookmarkDetector) Check(stats StepStats, area int) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFill(stats, area); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkDiversification(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkGrowthBurst(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkStableAge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats StepStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the stored rows oldest first.
func (bd *BookmarkDetector) getHistory() []StepStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]StepStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkFill(stats StepStats, area int) *Bookmark {
	if area <= 0 {
		return nil
	}
	if !bd.fullSeen && stats.Size >= area {
		bd.fullSeen = true
		bd.halfFullSeen = true
		return &Bookmark{
			Type:        BookmarkGridFull,
			Step:        stats.Step,
			Description: fmt.Sprintf("Population filled all %d grid cells", area),
		}
	}
	if !bd.halfFullSeen && 2*stats.Size >= area {
		bd.halfFullSeen = true
		return &Bookmark{
			Type:        BookmarkHalfFull,
			Step:        stats.Step,
			Description: fmt.Sprintf("Population reached %d of %d grid cells", stats.Size, area),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkDiversification(stats StepStats) *Bookmark {
	if bd.diverseSeen || stats.MeanEntropy < DiversificationEntropy {
		return nil
	}
	bd.diverseSeen = true
	return &Bookmark{
		Type:        BookmarkDiversification,
		Step:        stats.Step,
		Description: fmt.Sprintf("Mean base entropy %.3f crossed %.3f", stats.MeanEntropy, DiversificationEntropy),
	}
}

func (bd *BookmarkDetector) checkGrowthBurst(stats StepStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Births
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Births) > avg*2.0 && stats.Births >= 5 {
		return &Bookmark{
			Type:        BookmarkGrowthBurst,
			Step:        stats.Step,
			Description: fmt.Sprintf("%d births is %.1fx the window average (%.1f)", stats.Births, float64(stats.Births)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableAge(stats StepStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 4 || stats.MeanAge == 0 {
		bd.stableWindowsCount = 0
		return nil
	}

	recent := history[len(history)-4:]
	var sum float64
	for _, h := range recent {
		sum += h.MeanAge
	}
	mean := sum / 4

	var variance float64
	for _, h := range recent {
		d := h.MeanAge - mean
		variance += d * d
	}
	variance /= 4

	// CV^2 < 0.0025 means CV < 5%
	if mean > 0 && variance/(mean*mean) < 0.0025 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableAge,
			Step:        stats.Step,
			Description: fmt.Sprintf("Mean age steady at %.4f over 5+ windows", stats.MeanAge),
		}
	}
	return nil
}
