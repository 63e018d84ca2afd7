// Package paragraphs 将带样式的段落序列分页排进固定大小的显示区域，
// 并支持在不渲染前面各页的情况下直接跳转到任意一页。
package paragraphs

import (
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/layout"
)

const (
	// MaxLines 是单页内可出现的不同样式段落数量上限。
	MaxLines = 10
	// DefaultSpacing 是段落之间的最大间距，区域不足时实际间距可能更小（甚至为 0）。
	DefaultSpacing = 0
	// ParagraphTopSpace 是文本相对段落包围盒顶部的偏移，用于微调基线。
	ParagraphTopSpace = -1
	// ParagraphBottomSpace 是段落包围盒底部相对文本底部的偏移。
	ParagraphBottomSpace = 5
)

// Text 约束段落内容的持有方式：字符串或字节切片。
type Text interface {
	~string | ~[]byte
}

// Paragraph 是一段使用单一样式的文本。
// 内容类型 T 可以是字符串、字节切片，或由绑定层在使用时再解析的不透明值。
type Paragraph[T any] struct {
	content T
	style   *layout.TextStyle
	align   geometry.Alignment
	// breakAfter 为 true 时本段结束后强制换页。
	breakAfter bool
	// noBreak 为 true 时尽量把本段与下一段放在同一页。连续多段都带此标记时不保证效果。
	noBreak bool
}

// NewParagraph 以左对齐创建段落。
func NewParagraph[T any](style *layout.TextStyle, content T) Paragraph[T] {
	return Paragraph[T]{content: content, style: style, align: geometry.AlignStart}
}

func (p Paragraph[T]) Centered() Paragraph[T] {
	p.align = geometry.AlignCenter
	return p
}

func (p Paragraph[T]) WithAlign(align geometry.Alignment) Paragraph[T] {
	p.align = align
	return p
}

func (p Paragraph[T]) BreakAfter() Paragraph[T] {
	p.breakAfter = true
	return p
}

func (p Paragraph[T]) NoBreak() Paragraph[T] {
	p.noBreak = true
	return p
}

func (p Paragraph[T]) Content() T                 { return p.content }
func (p Paragraph[T]) Style() *layout.TextStyle   { return p.style }
func (p Paragraph[T]) Align() geometry.Alignment  { return p.align }
func (p Paragraph[T]) HasBreakAfter() bool        { return p.breakAfter }
func (p Paragraph[T]) HasNoBreak() bool           { return p.noBreak }

// Update 原地替换段落内容，样式与标记保持不变。
func (p *Paragraph[T]) Update(content T) {
	p.content = content
}

// WithContent 返回替换了内容（及内容类型）的段落副本。
func WithContent[T, U any](p Paragraph[T], content U) Paragraph[U] {
	return Paragraph[U]{
		content:    content,
		style:      p.style,
		align:      p.align,
		breakAfter: p.breakAfter,
		noBreak:    p.noBreak,
	}
}

// skipped 报告段落是否不占版面：没有文本，或样式没有字体。
// advance 与 visibleContent 必须用同一判断，布局与文本才能一一对应。
func skipped(p Paragraph[string]) bool {
	return p.content == "" || !p.style.Measurable()
}

// textFrom 返回从 offset 开始的文本视图。
func textFrom[T Text](p Paragraph[T], offset int) Paragraph[string] {
	return WithContent(p, string(p.content)[offset:])
}

func (p Paragraph[T]) layout(area geometry.Rect) layout.TextLayout {
	return layout.NewTextLayout(p.style).
		WithAlign(p.align).
		WithBounds(area).
		WithPadding(ParagraphTopSpace, ParagraphBottomSpace)
}
