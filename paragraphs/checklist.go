package paragraphs

import (
	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/layout"
)

const (
	// CheckWidth 是为图标保留的左侧宽度。
	CheckWidth = 16
)

var (
	doneOffset    = geometry.NewOffset(-2, 6)
	currentOffset = geometry.NewOffset(2, 3)
)

// Checklist 在 Paragraphs 之上叠加完成/当前图标，不改变分页结果。
// current 是来源中的段落下标，而不是页内位置。
type Checklist[S Source] struct {
	area        geometry.Rect
	paragraphs  *Paragraphs[S]
	current     int
	iconCurrent display.Icon
	iconDone    display.Icon
}

var (
	_ component.Component = (*Checklist[Slice[string]])(nil)
	_ component.Paginate  = (*Checklist[Slice[string]])(nil)
)

func NewChecklist[S Source](iconCurrent, iconDone display.Icon, current int, paragraphs *Paragraphs[S]) *Checklist[S] {
	return &Checklist[S]{
		paragraphs:  paragraphs,
		current:     current,
		iconCurrent: iconCurrent,
		iconDone:    iconDone,
	}
}

func (c *Checklist[S]) Paragraphs() *Paragraphs[S] { return c.paragraphs }

func (c *Checklist[S]) Current() int { return c.current }

// SetCurrent 只影响图标，调用方需要自行重绘。
func (c *Checklist[S]) SetCurrent(current int) { c.current = current }

// currentVisible 返回当前项在可见布局中的下标，前面的项都已完成。
func (c *Checklist[S]) currentVisible() int {
	return max(0, c.current-c.paragraphs.Offset().Par)
}

func (c *Checklist[S]) iconPosition(l layout.TextLayout, offset geometry.Offset) geometry.Point {
	return geometry.NewPoint(c.area.X0, l.Bounds.Y0).Add(offset)
}

func (c *Checklist[S]) paintIcon(d display.Display, l layout.TextLayout, icon display.Icon, offset geometry.Offset) {
	d.Icon(c.iconPosition(l, offset), icon, l.Style.TextColor, l.Style.BackgroundColor)
}

func (c *Checklist[S]) Place(bounds geometry.Rect) geometry.Rect {
	c.area = bounds
	c.paragraphs.Place(bounds.Inset(geometry.InsetsLeft(CheckWidth)))
	return c.area
}

func (c *Checklist[S]) Event(ctx *component.EventCtx, event component.Event) component.Msg {
	return c.paragraphs.Event(ctx, event)
}

func (c *Checklist[S]) Paint(d display.Display) {
	c.paragraphs.Paint(d)

	visible := c.paragraphs.Visible()
	cur := c.currentVisible()
	for _, l := range visible[:min(cur, len(visible))] {
		c.paintIcon(d, l, c.iconDone, doneOffset)
	}
	if cur < len(visible) {
		c.paintIcon(d, visible[cur], c.iconCurrent, currentOffset)
	}
}

func (c *Checklist[S]) Bounds(sink func(geometry.Rect)) {
	sink(c.area)
	c.paragraphs.Bounds(sink)
}

func (c *Checklist[S]) PageCount() int { return c.paragraphs.PageCount() }

func (c *Checklist[S]) ChangePage(page int) { c.paragraphs.ChangePage(page) }

// Trace 在段落轨迹之外记录图标位置。
func (c *Checklist[S]) Trace(page int) layout.PageTrace {
	pt := c.paragraphs.Trace(page)
	visible := c.paragraphs.Visible()
	cur := c.currentVisible()
	for i, l := range visible {
		switch {
		case i < cur:
			pt.Icons = append(pt.Icons, layout.IconTrace{Name: c.iconDone.Name, TopLeft: c.iconPosition(l, doneOffset)})
		case i == cur:
			pt.Icons = append(pt.Icons, layout.IconTrace{Name: c.iconCurrent.Name, TopLeft: c.iconPosition(l, currentOffset)})
		}
	}
	return pt
}
