package component

import (
	"image/color"

	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
)

const (
	dotSize         = 4
	dotSizeInactive = 2
	dotInterval     = 8
)

// ScrollBar shows a row (or column) of dots, one per page, with the active
// page drawn larger.
type ScrollBar struct {
	area       geometry.Rect
	axis       geometry.Axis
	pageCount  int
	activePage int

	Foreground color.Color
	Background color.Color
}

func newScrollBar(axis geometry.Axis) *ScrollBar {
	return &ScrollBar{axis: axis, pageCount: 1, Foreground: color.Black, Background: color.White}
}

func HorizontalScrollBar() *ScrollBar { return newScrollBar(geometry.Horizontal) }
func VerticalScrollBar() *ScrollBar   { return newScrollBar(geometry.Vertical) }

// SetCountAndActivePage clamps the active page into [0, count).
func (s *ScrollBar) SetCountAndActivePage(count, active int) {
	s.pageCount = max(count, 1)
	s.activePage = min(max(active, 0), s.pageCount-1)
}

func (s *ScrollBar) PageCount() int  { return s.pageCount }
func (s *ScrollBar) ActivePage() int { return s.activePage }

func (s *ScrollBar) HasNextPage() bool     { return s.activePage < s.pageCount-1 }
func (s *ScrollBar) HasPreviousPage() bool { return s.activePage > 0 }

func (s *ScrollBar) GoToNextPage() {
	if s.HasNextPage() {
		s.activePage++
	}
}

func (s *ScrollBar) GoToPreviousPage() {
	if s.HasPreviousPage() {
		s.activePage--
	}
}

func (s *ScrollBar) Place(bounds geometry.Rect) geometry.Rect {
	s.area = bounds
	return bounds
}

func (s *ScrollBar) Event(_ *EventCtx, _ Event) Msg { return nil }

// dot returns the rectangle of the dot for page i.
func (s *ScrollBar) dot(i int) geometry.Rect {
	size := dotSizeInactive
	if i == s.activePage {
		size = dotSize
	}
	span := (s.pageCount-1)*dotInterval + dotSize
	if s.axis == geometry.Horizontal {
		x := geometry.AlignCenter.Apply(s.area.X0, s.area.Width(), span) + i*dotInterval + (dotSize-size)/2
		y := geometry.AlignCenter.Apply(s.area.Y0, s.area.Height(), size)
		return geometry.NewRect(x, y, size, size)
	}
	x := geometry.AlignCenter.Apply(s.area.X0, s.area.Width(), size)
	y := geometry.AlignCenter.Apply(s.area.Y0, s.area.Height(), span) + i*dotInterval + (dotSize-size)/2
	return geometry.NewRect(x, y, size, size)
}

func (s *ScrollBar) Paint(d display.Display) {
	d.FillRect(s.area, s.Background)
	for i := range s.pageCount {
		d.FillRect(s.dot(i), s.Foreground)
	}
}

func (s *ScrollBar) Bounds(sink func(geometry.Rect)) { sink(s.area) }
