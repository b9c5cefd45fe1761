package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	spacerHeight  = 6
	sectionMargin = 4
	barGap        = 2
	barTextWidth  = 50
)

// Renderer draws descriptor-driven panels with one Theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer returns a renderer using DefaultTheme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// FieldText formats a field's value: TextGetter wins, then Getter with
// Format (default "%.2f").
func FieldText(fd FieldDescriptor, data any) string {
	switch {
	case fd.TextGetter != nil:
		return fd.TextGetter(data)
	case fd.Getter != nil:
		format := fd.Format
		if format == "" {
			format = "%.2f"
		}
		return fmt.Sprintf(format, fd.Getter(data))
	}
	return ""
}

// rowHeight is the vertical space one field takes.
func (r *Renderer) rowHeight(w WidgetType) int32 {
	switch w {
	case WidgetBar:
		return r.Theme.LineHeight + barGap
	case WidgetSpacer:
		return spacerHeight
	}
	return r.Theme.LineHeight
}

// SectionHeight returns the height DrawSection will use.
func (r *Renderer) SectionHeight(sd SectionDescriptor) int32 {
	var h int32
	if sd.Title != "" {
		h += r.rowHeight(WidgetSection)
	}
	for _, fd := range sd.Fields {
		h += r.rowHeight(fd.Widget)
	}
	return h + sectionMargin
}

// DrawPanel fills a bordered panel.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSection draws the title and every field, returning the y below it.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Title != "" {
		r.drawHeader(x, y, sd.Title)
		y += r.rowHeight(WidgetSection)
	}
	for _, fd := range sd.Fields {
		r.DrawField(x, y, fd, data, width)
		y += r.rowHeight(fd.Widget)
	}
	return y + sectionMargin
}

// DrawField draws one field at (x, y).
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) {
	switch fd.Widget {
	case WidgetText:
		r.drawLabel(x, y, fd.Label)
		rl.DrawText(FieldText(fd, data), x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.Value)
	case WidgetBar:
		var v float32
		if fd.Getter != nil {
			v = fd.Getter(data)
		}
		r.drawLabel(x, y, fd.Label)
		r.drawBar(x+r.Theme.LabelWidth, y, width-r.Theme.LabelWidth-barTextWidth, fd.Range.Normalize(v), FieldText(fd, data))
	case WidgetSection:
		r.drawHeader(x, y, fd.Label)
	}
}

func (r *Renderer) drawHeader(x, y int32, title string) {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.Header)
}

func (r *Renderer) drawLabel(x, y int32, label string) {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.Label)
}

// drawBar draws a track of width w filled to fraction, with text after it.
func (r *Renderer) drawBar(x, y, w int32, fraction float32, text string) {
	rl.DrawRectangle(x, y+barGap, w, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(x, y+barGap, int32(float32(w)*fraction), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(text, x+w+5, y, r.Theme.FontSize, r.Theme.Value)
}
