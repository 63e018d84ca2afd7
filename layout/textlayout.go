package layout

import (
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
)

// TextLayout 把一种样式的文本排进 Bounds 矩形。
// PaddingTop/PaddingBottom 计入测量高度，可为负值以微调基线位置。
type TextLayout struct {
	Bounds        geometry.Rect      `json:"bounds"`
	Style         *TextStyle         `json:"-"`
	Align         geometry.Alignment `json:"align"`
	PaddingTop    int                `json:"paddingTop"`
	PaddingBottom int                `json:"paddingBottom"`
}

// NewTextLayout 以左对齐、零边距创建布局。
func NewTextLayout(style *TextStyle) TextLayout {
	return TextLayout{Style: style}
}

func (l TextLayout) WithAlign(align geometry.Alignment) TextLayout {
	l.Align = align
	return l
}

func (l TextLayout) WithBounds(bounds geometry.Rect) TextLayout {
	l.Bounds = bounds
	return l
}

func (l TextLayout) WithPadding(top, bottom int) TextLayout {
	l.PaddingTop = top
	l.PaddingBottom = bottom
	return l
}

func (l TextLayout) lineHeight() int {
	if lh := l.Style.LineHeight(); lh > 0 {
		return lh
	}
	return 1
}

// capacity 返回 Bounds 内可以容纳的行数。
func (l TextLayout) capacity() int {
	avail := l.Bounds.Height() - l.PaddingTop - l.PaddingBottom
	if avail <= 0 {
		return 0
	}
	return avail / l.lineHeight()
}

// FitText 测量 text 在 Bounds 中能放下多少。
//
// 结果满足单调性：可用高度越大，ProcessedChars 不会变小。
// 没有任何一行放得下时高度为 0。
//
// 空文本，或样式不可测量（见 TextStyle.Measurable）时返回零值 Fit，
// 即“放得下、高度为 0”；调用方应在排版前跳过这类段落，不为它们保留布局。
func (l TextLayout) FitText(text string) Fit {
	if text == "" || !l.Style.Measurable() {
		return Fit{}
	}
	lines := breakLines(text, l.Bounds.Width(), l.Style.Font)
	n := min(len(lines), l.capacity())
	height := 0
	if n > 0 {
		height = l.PaddingTop + n*l.lineHeight() + l.PaddingBottom
	}
	if n == len(lines) {
		return Fit{Height: height, ProcessedChars: len(text)}
	}
	return Fit{Height: height, ProcessedChars: lines[n].Start, OutOfBounds: true}
}

// Lines 返回 text 中能放进 Bounds 的行。
func (l TextLayout) Lines(text string) []Line {
	if text == "" || !l.Style.Measurable() {
		return nil
	}
	lines := breakLines(text, l.Bounds.Width(), l.Style.Font)
	return lines[:min(len(lines), l.capacity())]
}

// RenderText 先用背景色填充 Bounds，再逐行绘制放得下的文本。样式不可测量时什么也不画。
func (l TextLayout) RenderText(d display.Display, text string) {
	if !l.Style.Measurable() {
		return
	}
	d.FillRect(l.Bounds, l.Style.BackgroundColor)
	font := l.Style.Font
	lh := l.lineHeight()
	top := l.Bounds.Y0 + l.PaddingTop
	for i, line := range l.Lines(text) {
		if line.Text == "" {
			continue
		}
		x := l.Align.Apply(l.Bounds.X0, l.Bounds.Width(), line.Width)
		baseline := geometry.NewPoint(x, top+i*lh+font.Ascent())
		d.Text(baseline, line.Text, font, l.Style.TextColor, l.Style.BackgroundColor)
	}
}
