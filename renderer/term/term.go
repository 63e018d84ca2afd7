// Package term 把分页组件显示在终端里。每个字符格对应 8x16 个虚拟像素，
// 排版仍以像素计算，绘制时再四舍五入到字符格。
package term

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/renderer"
)

const (
	// CellWidth 和 CellHeight 是一个字符格的虚拟像素尺寸。
	CellWidth  = 8
	CellHeight = 16

	cellAscent = 12
)

// iconRunes 为内置图标选择字符，其余图标画成 '*'。
var iconRunes = map[string]rune{
	display.IconDone.Name:    '✓',
	display.IconCurrent.Name: '▶',
}

// Face 用字符宽度度量文本：半角 1 格，全角 2 格。
type Face struct{}

func (Face) TextWidth(text string) int { return runewidth.StringWidth(text) * CellWidth }
func (Face) LineHeight() int           { return CellHeight }
func (Face) Ascent() int               { return cellAscent }

// cell 把像素坐标四舍五入到字符格，负数向下取整。
func cell(v, size int) int {
	v += size / 2
	if v < 0 {
		return (v - size + 1) / size
	}
	return v / size
}

// Size 返回覆盖 area 所需的列数与行数。
func Size(area geometry.Rect) (cols, rows int) {
	return (area.Width() + CellWidth - 1) / CellWidth, (area.Height() + CellHeight - 1) / CellHeight
}

func toColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorDefault
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// Display 在 tcell.Screen 上实现 display.Display，origin 是区域左上角所在的字符格。
type Display struct {
	screen tcell.Screen
	origin geometry.Point
}

var _ display.Display = (*Display)(nil)

func NewDisplay(screen tcell.Screen) *Display {
	return &Display{screen: screen}
}

func (d *Display) set(col, row int, r rune, style tcell.Style) {
	d.screen.SetContent(d.origin.X+col, d.origin.Y+row, r, nil, style)
}

// FillRect 填充矩形覆盖的字符格。小于一格的矩形（例如滚动条上的圆点）画成一个字符。
func (d *Display) FillRect(r geometry.Rect, c color.Color) {
	if r.IsEmpty() {
		return
	}
	c0, c1 := cell(r.X0, CellWidth), cell(r.X1, CellWidth)
	r0, r1 := cell(r.Y0, CellHeight), cell(r.Y1, CellHeight)
	if c0 == c1 || r0 == r1 {
		glyph := '·'
		if r.Width() >= 4 {
			glyph = '●'
		}
		cx := (r.X0 + r.X1) / 2 / CellWidth
		cy := (r.Y0 + r.Y1) / 2 / CellHeight
		d.set(cx, cy, glyph, tcell.StyleDefault.Foreground(toColor(c)))
		return
	}
	style := tcell.StyleDefault.Background(toColor(c))
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			d.set(col, row, ' ', style)
		}
	}
}

func (d *Display) Text(p geometry.Point, text string, _ display.Font, fg, bg color.Color) {
	style := tcell.StyleDefault.Foreground(toColor(fg)).Background(toColor(bg))
	col := cell(p.X, CellWidth)
	row := cell(p.Y-cellAscent, CellHeight)
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		d.set(col, row, r, style)
		col += w
	}
}

func (d *Display) Icon(p geometry.Point, icon display.Icon, fg, bg color.Color) {
	r, ok := iconRunes[icon.Name]
	if !ok {
		r = '*'
	}
	style := tcell.StyleDefault.Foreground(toColor(fg)).Background(toColor(bg))
	d.set(cell(p.X, CellWidth), cell(p.Y, CellHeight), r, style)
}

// Renderer 以字符格度量字体，并把每一页输出为纯文本快照。
type Renderer struct{}

var (
	_ renderer.Renderer     = Renderer{}
	_ renderer.FontProvider = Renderer{}
)

// Font 忽略字体文件与字号，终端只有一种字体。
func (Renderer) Font(renderer.FontSpec) (display.Font, error) { return Face{}, nil }

// Render 把每一页画到模拟屏幕上，再逐行导出文本，页之间用分隔行隔开。
func (Renderer) Render(content component.PaginatedComponent, area geometry.Rect) ([]byte, error) {
	if area.IsEmpty() {
		return nil, fmt.Errorf("term: 区域为空")
	}
	cols, rows := Size(area)
	var out strings.Builder
	err := renderer.EachPage(content, area, func(page int) error {
		screen := tcell.NewSimulationScreen("UTF-8")
		if err := screen.Init(); err != nil {
			return fmt.Errorf("term: 初始化模拟屏幕失败: %w", err)
		}
		defer screen.Fini()
		screen.SetSize(cols, rows)
		screen.Clear()

		content.Paint(NewDisplay(screen))
		fmt.Fprintf(&out, "-- page %d/%d --\n", page+1, content.PageCount())
		for _, line := range Snapshot(screen, cols, rows) {
			out.WriteString(line)
			out.WriteByte('\n')
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []byte(out.String()), nil
}

// Snapshot 返回屏幕左上角 cols x rows 范围内的文本，行尾空白被去掉。
func Snapshot(screen tcell.Screen, cols, rows int) []string {
	lines := make([]string, rows)
	for y := range rows {
		var b strings.Builder
		for x := 0; x < cols; {
			r, _, _, w := screen.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
			x += max(w, 1)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}
