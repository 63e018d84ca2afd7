package paragraphs

import (
	"fmt"
	"iter"

	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/layout"
)

// scratchSize 是传给 Source.At 的临时缓冲区大小。
const scratchSize = 256

// Paragraphs 负责把来源中的段落分页显示：保存当前页的续排位置，
// 以及当前页上各可见段落的 TextLayout。
type Paragraphs[S Source] struct {
	area      geometry.Rect
	placement geometry.LinearPlacement
	offset    PageOffset
	visible   bounded[layout.TextLayout]
	source    S
	scratch   []byte
}

var (
	_ component.Component = (*Paragraphs[Slice[string]])(nil)
	_ component.Paginate  = (*Paragraphs[Slice[string]])(nil)
)

// New 创建显示 source 的段落组件，默认纵向排列并居中。
func New[S Source](source S) *Paragraphs[S] {
	return &Paragraphs[S]{
		placement: geometry.VerticalPlacement().
			AlignAtCenter().
			WithSpacing(DefaultSpacing),
		visible: newBounded[layout.TextLayout](MaxLines),
		source:  source,
		scratch: make([]byte, scratchSize),
	}
}

func (p *Paragraphs[S]) WithPlacement(placement geometry.LinearPlacement) *Paragraphs[S] {
	p.placement = placement
	return p
}

func (p *Paragraphs[S]) WithSpacing(spacing int) *Paragraphs[S] {
	p.placement = p.placement.WithSpacing(spacing)
	return p
}

// Inner 返回段落来源。
func (p *Paragraphs[S]) Inner() S { return p.source }

// Offset 返回当前页的起始位置。
func (p *Paragraphs[S]) Offset() PageOffset { return p.offset }

// Visible 返回当前页各可见段落的布局，调用方不得修改。
func (p *Paragraphs[S]) Visible() []layout.TextLayout { return p.visible.items }

// changeOffset 更新当前页上各段落的包围盒：先确定可见段落及其尺寸，
// 再按 placement 排列。
func (p *Paragraphs[S]) changeOffset(offset PageOffset) {
	p.offset = offset
	fillPage(p.area, offset, p.source, &p.visible, p.scratch)
	boxes := make([]geometry.Rect, p.visible.len())
	for i, l := range p.visible.items {
		boxes[i] = l.Bounds
	}
	p.placement.Arrange(p.area, boxes)
	for i := range p.visible.items {
		p.visible.items[i].Bounds = boxes[i]
	}
}

// fillPage 从 offset 开始反复调用 advance，直到来源耗尽或本页已满。
// 它只依赖 Source 接口，不随 S 实例化。
func fillPage(area geometry.Rect, offset PageOffset, source Source, visible *bounded[layout.TextLayout], buf []byte) {
	visible.clear()
	fullHeight := area.Height()

	for offset.Par < source.Size() {
		s := offset.advance(area, source, fullHeight, buf)
		if s.placed {
			visible.mustPush(s.layout, "too many layouts on one page")
		}
		if s.pageFull {
			break
		}
		if Debug && s.next.Par != offset.Par+1 {
			panic(fmt.Sprintf("paragraphs: advance from %v returned %v", offset, s.next))
		}
		area = s.remaining
		offset = s.next
	}
}

// visibleContent 依次给出可见布局及其对应文本。第一段从 offset.Chr 开始，
// 其余段落从开头开始；被 advance 跳过的段落不产生布局，因此在配对前被过滤掉。
func visibleContent(source Source, visible []layout.TextLayout, offset PageOffset, buf []byte) iter.Seq2[layout.TextLayout, string] {
	return func(yield func(layout.TextLayout, string) bool) {
		i := 0
		for par := offset.Par; par < source.Size() && i < len(visible); par++ {
			chr := 0
			if i == 0 {
				chr = offset.Chr
			}
			p := source.At(par, chr, buf)
			if skipped(p) {
				continue
			}
			if !yield(visible[i], p.content) {
				return
			}
			i++
		}
	}
}

// Place 保存区域并重新排版当前页。
func (p *Paragraphs[S]) Place(bounds geometry.Rect) geometry.Rect {
	p.area = bounds
	p.changeOffset(p.offset)
	return p.area
}

// Event 段落是被动文本块，不产生任何消息。
func (p *Paragraphs[S]) Event(_ *component.EventCtx, _ component.Event) component.Msg {
	return nil
}

func (p *Paragraphs[S]) Paint(d display.Display) {
	for l, text := range visibleContent(p.source, p.visible.items, p.offset, p.scratch) {
		l.RenderText(d, text)
	}
}

func (p *Paragraphs[S]) Bounds(sink func(geometry.Rect)) {
	sink(p.area)
	for _, l := range p.visible.items {
		sink(l.Bounds)
	}
}

// PageCount 至少为 1。
func (p *Paragraphs[S]) PageCount() int {
	return max(p.breakPages().Count(), 1)
}

// ChangePage 跳转到第 page 页（从 0 开始）。
func (p *Paragraphs[S]) ChangePage(page int) {
	if offset, ok := p.breakPages().Nth(page); ok {
		p.changeOffset(offset)
		return
	}
	// 不应发生：回到第一段并显示空白页。
	p.offset = PageOffset{}
	p.visible.clear()
}

// Trace 描述当前页的可见内容，page 仅用于标注。
func (p *Paragraphs[S]) Trace(page int) layout.PageTrace {
	pt := layout.PageTrace{Page: page}
	for l, text := range visibleContent(p.source, p.visible.items, p.offset, p.scratch) {
		pt.Blocks = append(pt.Blocks, l.Trace(text))
	}
	return pt
}

func (p *Paragraphs[S]) breakPages() *PageBreakIterator {
	return NewPageBreakIterator(p.area, p.source)
}
