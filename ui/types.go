// Package ui provides a descriptor-driven UI for the simulation window.
// Panels are described by field metadata that reads values from the data
// passed at draw time.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar over Range
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// Normalize maps v into [0, 1] over the range.
func (r FieldRange) Normalize(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	n := (v - r.Min) / (r.Max - r.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for text (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Getter     func(any) float32 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID     string            // Unique identifier
	Title  string            // Section header text
	Fields []FieldDescriptor // Fields in this section
}

// Theme holds UI styling constants. The window is light, like the page the
// grid canvas sits on.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Title       rl.Color
	Status      rl.Color
	Header      rl.Color
	Label       rl.Color
	Value       rl.Color
	BarBg       rl.Color
	BarFill     rl.Color

	Padding    int32
	LineHeight int32
	LabelWidth int32
	BarHeight  int32
	FontSize   int32
	HeaderSize int32
	TitleSize  int32
}

// DefaultTheme returns the light theme used by the window.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.NewColor(250, 250, 250, 255),
		PanelBorder: rl.NewColor(200, 200, 200, 255),
		Title:       rl.NewColor(30, 30, 30, 255),
		Status:      rl.NewColor(46, 139, 87, 255), // seagreen
		Header:      rl.NewColor(255, 20, 147, 255), // deeppink
		Label:       rl.DarkGray,
		Value:       rl.Black,
		BarBg:       rl.NewColor(230, 230, 230, 255),
		BarFill:     rl.NewColor(218, 165, 32, 255), // goldenrod
		Padding:     12,
		LineHeight:  16,
		LabelWidth:  96,
		BarHeight:   10,
		FontSize:    12,
		HeaderSize:  14,
		TitleSize:   20,
	}
}
