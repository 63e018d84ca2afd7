package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/geometry"
)

// Viewer 在终端中交互地翻页：方向键与 h/l 产生滑动事件，q、Esc、Ctrl-C 退出。
type Viewer struct {
	screen  tcell.Screen
	content component.PaginatedComponent
	area    geometry.Rect
	ctx     *component.EventCtx
}

func NewViewer(screen tcell.Screen, content component.PaginatedComponent, area geometry.Rect) *Viewer {
	content.Place(area)
	return &Viewer{screen: screen, content: content, area: area, ctx: component.NewEventCtx()}
}

// swipeFor 把按键映射为滑动方向。向左滑动显示下一页。
func swipeFor(ev *tcell.EventKey) (component.SwipeDirection, bool) {
	switch ev.Key() {
	case tcell.KeyRight, tcell.KeyDown, tcell.KeyPgDn:
		return component.SwipeLeft, true
	case tcell.KeyLeft, tcell.KeyUp, tcell.KeyPgUp:
		return component.SwipeRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'l', 'j', ' ':
			return component.SwipeLeft, true
		case 'h', 'k':
			return component.SwipeRight, true
		}
	}
	return 0, false
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Draw 把内容画在终端中央，下方一行显示页码。
func (v *Viewer) Draw() {
	v.screen.Clear()
	cols, rows := Size(v.area)
	w, h := v.screen.Size()
	origin := geometry.NewPoint(max((w-cols)/2, 0), max((h-rows-1)/2, 0))

	v.content.Paint(&Display{screen: v.screen, origin: origin})

	status := fmt.Sprintf("%d/%d  ←/→ 翻页  q 退出", v.ActivePage()+1, v.content.PageCount())
	d := &Display{screen: v.screen, origin: geometry.NewPoint(origin.X, origin.Y+rows)}
	d.Text(geometry.NewPoint(0, cellAscent), status, Face{}, nil, nil)
	v.screen.Show()
}

// ActivePage 返回当前页，内容不是 Pager 时总是 0。
func (v *Viewer) ActivePage() int {
	if p, ok := v.content.(interface{ ActivePage() int }); ok {
		return p.ActivePage()
	}
	return 0
}

// HandleEvent 处理一个终端事件，返回 true 表示退出。
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return true
		}
		dir, ok := swipeFor(ev)
		if !ok {
			return false
		}
		v.ctx.Clear()
		v.content.Event(v.ctx, component.Swipe{Direction: dir})
		if v.ctx.PaintRequested() {
			v.Draw()
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.Draw()
	}
	return false
}

// Run 画出第一屏后处理事件直到退出。屏幕的 Init 与 Fini 由调用方负责。
func (v *Viewer) Run() {
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil || v.HandleEvent(ev) {
			return
		}
	}
}
