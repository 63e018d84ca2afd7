package component

import (
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
)

const (
	scrollBarInsetTop = 5
	scrollBarHeight   = 10
)

// PageChanged is reported after a swipe switched the visible page.
type PageChanged struct {
	Page int
}

// Pager turns horizontal swipes into page changes of its content and shows
// a scroll bar above it when there is more than one page. Swipes past the
// first or last page are ignored.
type Pager[T PaginatedComponent] struct {
	area       geometry.Rect
	content    T
	scrollbar  *ScrollBar
	allowLeft  bool
	allowRight bool
}

func NewPager[T PaginatedComponent](content T) *Pager[T] {
	return &Pager[T]{content: content, scrollbar: HorizontalScrollBar()}
}

func (p *Pager[T]) Inner() T { return p.content }

func (p *Pager[T]) ScrollBar() *ScrollBar { return p.scrollbar }

func (p *Pager[T]) ActivePage() int { return p.scrollbar.ActivePage() }

// SwipeAllowed reports whether a swipe in the given direction would change
// the page.
func (p *Pager[T]) SwipeAllowed(dir SwipeDirection) bool {
	switch dir {
	case SwipeLeft:
		return p.allowLeft
	case SwipeRight:
		return p.allowRight
	}
	return false
}

func (p *Pager[T]) updateSwipes() {
	p.allowRight = p.scrollbar.HasPreviousPage()
	p.allowLeft = p.scrollbar.HasNextPage()
}

// Place lays out the content over the whole area first. If that yields more
// than one page a strip is taken from the top for the scroll bar and the
// content is placed again in what is left.
func (p *Pager[T]) Place(bounds geometry.Rect) geometry.Rect {
	p.area = bounds
	active := p.scrollbar.ActivePage()

	p.content.Place(bounds)
	count := p.content.PageCount()
	if count > 1 {
		bar, rest := bounds.Inset(geometry.InsetsTop(scrollBarInsetTop)).SplitTop(scrollBarHeight)
		p.scrollbar.Place(bar)
		p.content.Place(rest)
		count = p.content.PageCount()
	} else {
		p.scrollbar.Place(geometry.Zero())
	}
	p.scrollbar.SetCountAndActivePage(count, active)
	p.content.ChangePage(p.scrollbar.ActivePage())
	p.updateSwipes()
	return bounds
}

func (p *Pager[T]) onSwipe(ctx *EventCtx, dir SwipeDirection) Msg {
	before := p.scrollbar.ActivePage()
	switch {
	case dir == SwipeLeft && p.scrollbar.HasNextPage():
		p.scrollbar.GoToNextPage()
	case dir == SwipeRight && p.scrollbar.HasPreviousPage():
		p.scrollbar.GoToPreviousPage()
	}
	p.updateSwipes()
	if p.scrollbar.ActivePage() == before {
		return nil
	}
	p.content.ChangePage(p.scrollbar.ActivePage())
	ctx.RequestPaint()
	return PageChanged{Page: p.scrollbar.ActivePage()}
}

func (p *Pager[T]) Event(ctx *EventCtx, event Event) Msg {
	if s, ok := event.(Swipe); ok && p.SwipeAllowed(s.Direction) {
		return p.onSwipe(ctx, s.Direction)
	}
	return p.content.Event(ctx, event)
}

func (p *Pager[T]) Paint(d display.Display) {
	if p.scrollbar.PageCount() > 1 {
		p.scrollbar.Paint(d)
	}
	p.content.Paint(d)
}

func (p *Pager[T]) Bounds(sink func(geometry.Rect)) {
	sink(p.area)
	if p.scrollbar.PageCount() > 1 {
		p.scrollbar.Bounds(sink)
	}
	p.content.Bounds(sink)
}

func (p *Pager[T]) PageCount() int { return p.scrollbar.PageCount() }

// ChangePage jumps straight to page, clamped into range.
func (p *Pager[T]) ChangePage(page int) {
	p.scrollbar.SetCountAndActivePage(p.scrollbar.PageCount(), page)
	p.content.ChangePage(p.scrollbar.ActivePage())
	p.updateSwipes()
}
