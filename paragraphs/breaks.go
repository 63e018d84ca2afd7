package paragraphs

import (
	"fmt"
	"iter"

	"github.com/ByLCY/folio/geometry"
)

// PageBreakIterator 依次给出每一页的起始位置。第一个值总是 {0, 0}，
// 即使来源为空。它与 Paragraphs 使用同一个 advance，但不保留任何布局。
// 迭代器只能向前；要重新开始请重新创建。
type PageBreakIterator struct {
	area    geometry.Rect
	source  Source
	current PageOffset
	started bool
	scratch []byte
}

// NewPageBreakIterator 为排进 area 的 source 创建分页迭代器。
func NewPageBreakIterator(area geometry.Rect, source Source) *PageBreakIterator {
	return &PageBreakIterator{area: area, source: source, scratch: make([]byte, scratchSize)}
}

// Next 返回下一页的起始位置；没有更多页时 ok 为 false。
func (it *PageBreakIterator) Next() (offset PageOffset, ok bool) {
	if !it.started {
		it.started = true
		return it.current, true
	}
	next, ok := nextPageBreak(it.area, it.source, it.current, it.scratch)
	if ok {
		// 宁可 panic 也不要死循环。
		if next == it.current {
			panic(fmt.Sprintf("paragraphs: page break stalled at %v", next))
		}
		it.current = next
	}
	return next, ok
}

// Count 耗尽迭代器并返回产生的页数。
func (it *PageBreakIterator) Count() int {
	n := 0
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}

// Nth 跳过 n 个值后返回下一个，下标从 0 开始。
func (it *PageBreakIterator) Nth(n int) (PageOffset, bool) {
	for i := 0; ; i++ {
		offset, ok := it.Next()
		if !ok {
			return PageOffset{}, false
		}
		if i == n {
			return offset, true
		}
	}
}

// All 以 range-over-func 形式遍历剩余的页起始位置。
func (it *PageBreakIterator) All() iter.Seq[PageOffset] {
	return func(yield func(PageOffset) bool) {
		for {
			offset, ok := it.Next()
			if !ok || !yield(offset) {
				return
			}
		}
	}
}

// nextPageBreak 从 offset 开始重放 advance，返回下一页的起始位置。
// 若剩余内容都能排进本页则返回 false。
func nextPageBreak(area geometry.Rect, source Source, offset PageOffset, buf []byte) (PageOffset, bool) {
	fullHeight := area.Height()

	for offset.Par < source.Size() {
		s := offset.advance(area, source, fullHeight, buf)
		switch {
		case s.next.Par >= source.Size():
			// 最后一页。
			return PageOffset{}, false
		case !s.pageFull:
			if Debug && s.next.Par != offset.Par+1 {
				panic(fmt.Sprintf("paragraphs: advance from %v returned %v", offset, s.next))
			}
			area = s.remaining
			offset = s.next
		default:
			return s.next, true
		}
	}
	return PageOffset{}, false
}
