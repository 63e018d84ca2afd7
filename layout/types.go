package layout

// 该文件定义文本样式与排版结果，供段落分页、渲染与调试 JSON 共用。

import (
	"image/color"

	"github.com/ByLCY/folio/display"
)

// TextStyle 描述一段文本的字体与颜色。样式由调用方持有，排版过程只读不写。
type TextStyle struct {
	Name            string
	Font            display.Font
	TextColor       color.Color
	BackgroundColor color.Color
}

// NewTextStyle 使用白底黑字创建样式。
func NewTextStyle(name string, font display.Font) *TextStyle {
	return &TextStyle{
		Name:            name,
		Font:            font,
		TextColor:       color.Black,
		BackgroundColor: color.White,
	}
}

// Measurable 报告样式是否带有字体。没有字体的样式无法测量文本，
// 使用它的段落不参与排版。
func (s *TextStyle) Measurable() bool { return s != nil && s.Font != nil }

// LineHeight 返回样式字体的行高；字体缺失时为 0。
func (s *TextStyle) LineHeight() int {
	if s == nil || s.Font == nil {
		return 0
	}
	return s.Font.LineHeight()
}

// Fit 是排版后端对一段文本的测量结果。
//
// OutOfBounds 为 false 时文本完整放入区域；否则 ProcessedChars 给出已放入部分的
// 字节长度，后续内容应从该处继续。ProcessedChars 一定落在字素边界上。
type Fit struct {
	Height         int  `json:"height"`
	ProcessedChars int  `json:"processedChars"`
	OutOfBounds    bool `json:"outOfBounds"`
}

// Fitting 报告文本是否完整放入。
func (f Fit) Fitting() bool { return !f.OutOfBounds }

// Line 是排版后的一行文本，Start/End 为原文本中的字节区间。
type Line struct {
	Start int
	End   int
	Text  string
	Width int
}
