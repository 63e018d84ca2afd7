// Package document 把 DSL 文档中的一个 screen 段落构建成可分页显示的组件：
// text 语句得到段落列表，checklist 语句得到带图标的清单，外层由 Pager 处理翻页。
package document

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/paragraphs"
	"github.com/ByLCY/folio/renderer"
)

const (
	defaultStyleName    = "Body"
	defaultScreenWidth  = 240
	defaultScreenHeight = 240
)

// BuildOptions 控制构建过程。
type BuildOptions struct {
	// Fonts 由输出后端提供，排版与绘制使用同一套字体度量。
	Fonts renderer.FontProvider
	// DPI 用于把 pt/mm 换算成显示像素，0 表示 layout.DefaultDPI。
	DPI float64
	// Width/Height 大于 0 时覆盖 screen 段落声明的尺寸。
	Width, Height int
	// Screen 指定要构建的 screen 名称，空串表示第一个。
	Screen string
	// BaseDir 是相对字体路径的基准目录。
	BaseDir string
}

// tracer 由 Paragraphs 与 Checklist 实现。
type tracer interface {
	Trace(page int) layout.PageTrace
}

// Screen 是构建完成的屏幕。
type Screen struct {
	Name    string
	Meta    Meta
	Area    geometry.Rect
	Styles  map[string]*layout.TextStyle
	Content *component.Pager[component.PaginatedComponent]

	tracer tracer
}

// Place 把内容放进整块屏幕区域。
func (s *Screen) Place() {
	s.Content.Place(s.Area)
}

// Traces 依次记录每一页的可见内容，结束后回到原来的页。
func (s *Screen) Traces() []layout.PageTrace {
	active := s.Content.ActivePage()
	defer s.Content.ChangePage(active)

	pages := make([]layout.PageTrace, 0, s.Content.PageCount())
	for page := range s.Content.PageCount() {
		s.Content.ChangePage(page)
		pages = append(pages, s.tracer.Trace(page))
	}
	return pages
}

// Build 根据 DSL AST 与绑定数据生成屏幕组件，并完成一次 Place。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Screen, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Fonts == nil {
		return nil, fmt.Errorf("document: 缺少字体后端 Fonts")
	}

	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	section := findScreen(doc, opts.Screen)
	if section == nil {
		if opts.Screen != "" {
			return nil, fmt.Errorf("文档中缺少 screen %s", opts.Screen)
		}
		return nil, fmt.Errorf("文档中缺少 screen 段落")
	}
	if section.Block == nil {
		return nil, fmt.Errorf("screen %s 缺少内容", section.Name)
	}

	styles, err := buildStyles(res, opts)
	if err != nil {
		return nil, err
	}

	params := parseArgs(section.Params)
	width, height := defaultScreenWidth, defaultScreenHeight
	if v := params["width"]; v != "" {
		width = lengthToPX(v, opts.DPI)
	}
	if v := params["height"]; v != "" {
		height = lengthToPX(v, opts.DPI)
	}
	if opts.Width > 0 {
		width = opts.Width
	}
	if opts.Height > 0 {
		height = opts.Height
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screen %s 尺寸无效: %dx%d", section.Name, width, height)
	}

	placement := geometry.VerticalPlacement().AlignAtCenter().WithSpacing(paragraphs.DefaultSpacing)
	if v := params["align"]; v != "" {
		placement.Align = geometry.ParseAlignment(v)
	}
	if v := params["spacing"]; v != "" {
		placement = placement.WithSpacing(lengthToPX(v, opts.DPI))
	}

	b := &screenBuilder{styles: styles, data: data}
	content, tr, err := b.build(section.Block, placement)
	if err != nil {
		return nil, fmt.Errorf("screen %s: %w", section.Name, err)
	}

	screen := &Screen{
		Name:    section.Name,
		Meta:    collectMeta(doc),
		Area:    geometry.NewRect(0, 0, width, height),
		Styles:  styles,
		Content: component.NewPager(content),
		tracer:  tr,
	}
	screen.Place()
	return screen, nil
}

func findScreen(doc *dsl.Document, name string) *dsl.ScreenSection {
	for _, screen := range doc.Screens() {
		if name == "" || screen.Name == name {
			return screen
		}
	}
	return nil
}

// buildStyles 通过字体后端把每个样式解析成 TextStyle。
func buildStyles(res ResourceSet, opts BuildOptions) (map[string]*layout.TextStyle, error) {
	out := make(map[string]*layout.TextStyle, len(res.Styles))
	for name, style := range res.Styles {
		fontName := style.Props["font"]
		if fontName == "" {
			fontName = defaultFont(res.Fonts)
		}
		fr, ok := res.Fonts[fontName]
		if !ok {
			return nil, fmt.Errorf("style %s 引用了未定义的字体 %s", name, fontName)
		}
		size := fr.Size
		if v := style.Props["size"]; v != "" {
			if l := layout.ParseRawLengthStr(v); !l.IsZero() {
				size = l
			}
		}
		src := fr.Src
		if src != "" && !fonts.IsBuiltin(src) && !filepath.IsAbs(src) && opts.BaseDir != "" {
			src = filepath.Join(opts.BaseDir, src)
		}
		font, err := opts.Fonts.Font(renderer.FontSpec{Name: fr.Name, Src: src, Size: size.ToPX(opts.DPI)})
		if err != nil {
			return nil, fmt.Errorf("style %s: 加载字体 %s 失败: %w", name, fr.Name, err)
		}

		ts := layout.NewTextStyle(name, font)
		fg, err := resolveColor(style.Props["color"], res, color.RGBA{A: 0xff})
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		bg, err := resolveColor(style.Props["background"], res, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		ts.TextColor = fg
		ts.BackgroundColor = bg
		out[name] = ts
	}
	return out, nil
}

type screenBuilder struct {
	styles map[string]*layout.TextStyle
	data   any
}

func (b *screenBuilder) build(block *dsl.Block, placement geometry.LinearPlacement) (component.PaginatedComponent, tracer, error) {
	values := binding.NewValues(paragraphs.VecLongCapacity)
	var checklist *dsl.Command
	texts := 0

	for _, stmt := range block.Statements {
		if stmt.Command == nil {
			continue
		}
		cmd := stmt.Command
		switch cmd.Name {
		case "text":
			p, err := b.paragraph(cmd)
			if err != nil {
				return nil, nil, err
			}
			values.Add(p)
			texts++
		case "checklist":
			if checklist != nil {
				return nil, nil, fmt.Errorf("一个 screen 只能有一个 checklist")
			}
			checklist = cmd
		default:
			return nil, nil, fmt.Errorf("未知的语句 %s", cmd.Name)
		}
	}

	if checklist == nil {
		content := paragraphs.New(values).WithPlacement(placement)
		return content, content, nil
	}
	if texts > 0 {
		return nil, nil, fmt.Errorf("checklist 不能与 text 混用")
	}
	return b.checklist(checklist, placement)
}

func (b *screenBuilder) checklist(cmd *dsl.Command, placement geometry.LinearPlacement) (component.PaginatedComponent, tracer, error) {
	attrs := parseArgs(cmd.Args)
	current := 0
	if v := attrs["current"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, nil, fmt.Errorf("checklist current 无效: %s", v)
		}
		current = n
	}

	values := binding.NewValues(paragraphs.VecLongCapacity)
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			if stmt.Command.Name != "item" {
				return nil, nil, fmt.Errorf("checklist 中只允许 item，得到 %s", stmt.Command.Name)
			}
			p, err := b.paragraph(stmt.Command)
			if err != nil {
				return nil, nil, err
			}
			values.Add(p)
		}
	}

	list := paragraphs.NewChecklist(display.IconCurrent, display.IconDone, current,
		paragraphs.New(values).WithPlacement(placement))
	return list, list, nil
}

// paragraph 解析 text/item 语句：可选的样式名，align 参数，以及
// break-after、no-break、centered 标记。
func (b *screenBuilder) paragraph(cmd *dsl.Command) (paragraphs.Paragraph[any], error) {
	styleName := defaultStyleName
	align := geometry.AlignStart
	var breakAfter, noBreak bool

	args := cmd.Args
	for i := 0; i < len(args); i++ {
		switch v := args[i].Value(); v {
		case "break-after":
			breakAfter = true
		case "no-break":
			noBreak = true
		case "centered":
			align = geometry.AlignCenter
		case "align":
			if i+1 >= len(args) {
				return paragraphs.Paragraph[any]{}, fmt.Errorf("%s: align 缺少取值", cmd.Name)
			}
			align = geometry.ParseAlignment(args[i+1].Value())
			i++
		default:
			if i != 0 {
				return paragraphs.Paragraph[any]{}, fmt.Errorf("%s: 无法识别的参数 %s", cmd.Name, v)
			}
			styleName = v
		}
	}

	style, ok := b.styles[styleName]
	if !ok {
		return paragraphs.Paragraph[any]{}, fmt.Errorf("style %s 未定义", styleName)
	}

	// 没有文本的段落内容为 nil，会被 Values 跳过。
	var content any
	if text := extractText(cmd.Block); text != "" {
		content = binding.Value(text, b.data)
	}
	p := paragraphs.NewParagraph(style, content).WithAlign(align)
	if breakAfter {
		p = p.BreakAfter()
	}
	if noBreak {
		p = p.NoBreak()
	}
	return p, nil
}

// parseArgs 把 key value 形式的参数序列转成 map，落单的末尾参数被忽略。
func parseArgs(args []*dsl.Arg) map[string]string {
	result := map[string]string{}
	for cursor := 0; cursor < len(args)-1; cursor += 2 {
		result[args[cursor].Value()] = args[cursor+1].Value()
	}
	return result
}

func extractText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var builder strings.Builder
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			builder.WriteString(string(stmt.Text.Value))
		}
	}
	return builder.String()
}

func lengthToPX(v string, dpi float64) int {
	return layout.ParseRawLengthStr(v).Pixels(dpi)
}
