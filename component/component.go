// Package component defines the contracts between screen widgets and the
// container that hosts them.
package component

import (
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
)

// Msg is what a component reports to its parent after an event. A nil Msg
// means the event produced nothing.
type Msg any

// Component is the placement/event/paint contract shared by every widget.
type Component interface {
	// Place assigns the widget its area and returns the part it occupies.
	Place(bounds geometry.Rect) geometry.Rect
	// Event handles input. Components that never produce messages return nil.
	Event(ctx *EventCtx, event Event) Msg
	// Paint draws the widget.
	Paint(d display.Display)
	// Bounds reports the rectangles the widget occupies, for debugging.
	Bounds(sink func(geometry.Rect))
}

// Paginate is implemented by components whose content spans several pages.
type Paginate interface {
	// PageCount is always at least 1.
	PageCount() int
	// ChangePage switches the visible content to the page with the given index.
	ChangePage(page int)
}

// PaginatedComponent is the usual shape of the content of a Pager.
type PaginatedComponent interface {
	Component
	Paginate
}

// EventCtx collects side effects requested while handling an event.
type EventCtx struct {
	paintRequested bool
	placeRequested bool
}

func NewEventCtx() *EventCtx { return &EventCtx{} }

func (c *EventCtx) RequestPaint() { c.paintRequested = true }
func (c *EventCtx) RequestPlace() { c.placeRequested = true }

func (c *EventCtx) PaintRequested() bool { return c.paintRequested }
func (c *EventCtx) PlaceRequested() bool { return c.placeRequested }

// Clear resets the context before the next event.
func (c *EventCtx) Clear() {
	c.paintRequested = false
	c.placeRequested = false
}
