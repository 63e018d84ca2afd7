package layout

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/ByLCY/folio/display"
)

// breakLines 使用贪心换行算法把 text 拆成宽度不超过 width 的行。
// 断行位置来自 Unicode 换行规则（uniseg）；单个片段超宽时按字素簇拆分，
// 因此任何一行的起止位置都不会落在多字节字符或组合字符内部。
// "\n" 强制换行，连续换行会产生空行。
func breakLines(text string, width int, font display.Font) []Line {
	if text == "" {
		return nil
	}
	var lines []Line
	lineStart := 0
	lineWidth := 0

	emit := func(end int) {
		content := strings.TrimRight(text[lineStart:end], " \t\r\n")
		lines = append(lines, Line{
			Start: lineStart,
			End:   end,
			Text:  content,
			Width: font.TextWidth(content),
		})
		lineStart = end
		lineWidth = 0
	}

	rest := text
	state := -1
	for len(rest) > 0 {
		segment, next, mustBreak, newState := uniseg.FirstLineSegmentInString(rest, state)
		segStart := len(text) - len(rest)
		segEnd := segStart + len(segment)
		visible := strings.TrimRight(segment, " \t\r\n")
		visibleWidth := font.TextWidth(visible)

		// 当前行已有内容且放不下本片段时先换行。
		if lineStart < segStart && lineWidth+visibleWidth > width {
			emit(segStart)
		}

		if lineStart == segStart && visibleWidth > width {
			// 片段本身超宽：按字素簇拆开，最后一块留在当前行继续累计。
			graphemes := uniseg.NewGraphemes(visible)
			chunkWidth := 0
			for graphemes.Next() {
				from, _ := graphemes.Positions()
				w := font.TextWidth(graphemes.Str())
				if chunkWidth > 0 && chunkWidth+w > width {
					emit(segStart + from)
					chunkWidth = 0
				}
				chunkWidth += w
			}
			lineWidth = chunkWidth + font.TextWidth(strings.TrimRight(segment[len(visible):], "\r\n"))
		} else {
			lineWidth += font.TextWidth(strings.TrimRight(segment, "\r\n"))
		}

		if mustBreak {
			emit(segEnd)
		}
		rest = next
		state = newState
	}
	if lineStart < len(text) {
		emit(len(text))
	}
	return lines
}
