package paragraphs

import (
	"fmt"

	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/layout"
)

// PageOffset 标记分页的续排位置：段落下标加段内字节偏移。
// 零值 {0, 0} 永远表示第一页，即使来源为空。
type PageOffset struct {
	// Par 是段落下标。
	Par int `json:"par"`
	// Chr 是段落内的字节偏移，只在 Par < Size() 时有意义。
	Chr int `json:"chr"`
}

func (o PageOffset) String() string { return fmt.Sprintf("%d:%d", o.Par, o.Chr) }

// step 是 advance 的结果。pageFull 为 true 时 remaining 无意义；
// placed 为 false 时 layout 无意义。
type step struct {
	next      PageOffset
	remaining geometry.Rect
	pageFull  bool
	layout    layout.TextLayout
	placed    bool
}

// advance 把从 o 开始的内容排进 area，返回：
//
//   - 下一个续排位置；
//   - area 中剩余的空白区域，若本页已满则 pageFull 为 true；
//   - 本次放置的 TextLayout，若 area 太小放不下任何文本则 placed 为 false。
//
// 若本页未满，则一定有 next.Par == o.Par+1。调用方保证 o.Par < source.Size()。
func (o PageOffset) advance(area geometry.Rect, source Source, fullHeight int, buf []byte) step {
	paragraph := source.At(o.Par, 0, buf)

	// 跳过空段落和无法测量的段落，不占用空间。
	if skipped(paragraph) {
		return step{next: PageOffset{Par: o.Par + 1}, remaining: area}
	}

	// 处理 noBreak：尽量让键值对落在同一页。
	if paragraph.noBreak && o.Chr == 0 && o.Par+1 < source.Size() {
		next := source.At(o.Par+1, 0, buf)
		if shouldPlacePairOnNextPage(paragraph, next, area, fullHeight) {
			return step{next: o, pageFull: true}
		}
	}

	text := paragraph.content
	if o.Chr > 0 {
		text = source.At(o.Par, o.Chr, buf).content
	}

	// 测量从字符偏移开始的段落尺寸。
	l := paragraph.layout(area)
	fit := l.FitText(text)
	used, remaining := area.SplitTop(fit.Height)
	l.Bounds = used

	var pageFull bool
	if fit.Fitting() {
		// 继续排下一段的开头；本段要求强制换页时本页到此为止。
		o.Par++
		o.Chr = 0
		pageFull = paragraph.breakAfter
	} else {
		// 到达页尾且内容未排完，下一页从已处理的位置继续。
		o.Chr += fit.ProcessedChars
		pageFull = true
	}

	return step{
		next:      o,
		remaining: remaining,
		pageFull:  pageFull,
		layout:    l,
		placed:    fit.Height > 0,
	}
}

// shouldPlacePairOnNextPage 判断键值对是否应整体挪到下一页。
func shouldPlacePairOnNextPage(key, value Paragraph[string], area geometry.Rect, fullHeight int) bool {
	// 已经在页首时绝不挪页，否则会原地打转。
	remaining := area.Height()
	if remaining >= fullHeight {
		return false
	}

	fullArea := area.WithHeight(fullHeight)
	keyHeight := key.layout(fullArea).FitText(key.content).Height
	valHeight := value.layout(fullArea).FitText(value.content).Height
	screenFullThreshold := key.style.LineHeight() + value.style.LineHeight()

	if keyHeight+valHeight > remaining {
		// 只剩大约两行，不必尝试，全部放到下一页。
		return remaining <= screenFullThreshold ||
			// 剩余空间多于两行，但值连一行都放不下。
			(valHeight > 0 && keyHeight > remaining) ||
			// 整个键值对在本页放不下，但单独一页放得下。
			keyHeight+valHeight <= fullHeight
	}

	// 以上都不满足，继续在本页排版。
	return false
}
