package document

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
)

const (
	defaultFontName = "Body"
	defaultFontSize = "12px"
)

// FontResource 是 resources 段中声明的字体。
type FontResource struct {
	Name string
	Src  string
	Size layout.Length
}

// Style 是 resources 段中声明的样式，属性在继承链上合并。
type Style struct {
	Name    string
	Extends string
	Props   map[string]string
}

// ResourceSet 汇总文档中声明的字体、颜色与样式。
type ResourceSet struct {
	Fonts  map[string]FontResource
	Colors map[string]color.RGBA
	Styles map[string]Style
}

// Meta 是 meta 段中的文档信息。
type Meta struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
}

func collectResources(doc *dsl.Document) (ResourceSet, error) {
	res := ResourceSet{
		Fonts:  map[string]FontResource{},
		Colors: map[string]color.RGBA{},
		Styles: map[string]Style{},
	}
	rawStyles := map[string]Style{}

	for _, section := range doc.Sections {
		if section.Resources == nil || section.Resources.Block == nil {
			continue
		}
		for _, stmt := range section.Resources.Block.Statements {
			if stmt.Command == nil {
				continue
			}
			switch stmt.Command.Name {
			case "font":
				font := parseFontResource(stmt.Command)
				if font.Name != "" {
					res.Fonts[font.Name] = font
				}
			case "color":
				name, value := parseColorResource(stmt.Command)
				if name == "" || value == "" {
					continue
				}
				c, err := parseColor(value)
				if err != nil {
					return res, err
				}
				res.Colors[name] = c
			case "style":
				style := parseStyleResource(stmt.Command)
				if style.Name != "" {
					rawStyles[style.Name] = style
				}
			default:
				return res, fmt.Errorf("未知的资源类型 %s", stmt.Command.Name)
			}
		}
	}

	if len(res.Fonts) == 0 {
		res.Fonts[defaultFontName] = FontResource{
			Name: defaultFontName,
			Src:  "builtin:" + fonts.Default,
			Size: layout.ParseRawLengthStr(defaultFontSize),
		}
	}
	if _, ok := rawStyles[defaultStyleName]; !ok {
		rawStyles[defaultStyleName] = Style{
			Name:  defaultStyleName,
			Props: map[string]string{"font": defaultFont(res.Fonts)},
		}
	}

	resolvedStyles, err := resolveStyles(rawStyles)
	if err != nil {
		return res, err
	}
	res.Styles = resolvedStyles
	return res, nil
}

// defaultFont 优先选用名为 Body 的字体，否则取名字最小的一个。
func defaultFont(set map[string]FontResource) string {
	if _, ok := set[defaultFontName]; ok {
		return defaultFontName
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}

func collectMeta(doc *dsl.Document) Meta {
	var meta Meta
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = stmt.Assignment.Value.Text()
			case "author":
				meta.Author = stmt.Assignment.Value.Text()
			case "subject":
				meta.Subject = stmt.Assignment.Value.Text()
			case "keywords":
				meta.Keywords = stmt.Assignment.Value.Strings()
			}
		}
	}
	return meta
}

func parseFontResource(cmd *dsl.Command) FontResource {
	if len(cmd.Args) == 0 {
		return FontResource{}
	}
	font := FontResource{
		Name: cmd.Args[0].Value(),
		Size: layout.ParseRawLengthStr(defaultFontSize),
	}
	if cmd.Block == nil {
		return font
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		switch stmt.Assignment.Key {
		case "src":
			font.Src = stmt.Assignment.Value.Text()
		case "size":
			if size := layout.ParseRawLengthStr(stmt.Assignment.Value.Text()); !size.IsZero() {
				font.Size = size
			}
		}
	}
	return font
}

func parseStyleResource(cmd *dsl.Command) Style {
	if len(cmd.Args) == 0 {
		return Style{}
	}
	style := Style{
		Name:  cmd.Args[0].Value(),
		Props: map[string]string{},
	}
	if len(cmd.Args) >= 3 && strings.EqualFold(cmd.Args[1].Value(), "extends") {
		style.Extends = cmd.Args[2].Value()
	}
	if cmd.Block == nil {
		return style
	}
	for _, stmt := range cmd.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		val := stmt.Assignment.Value.Text()
		if val == "" {
			continue
		}
		style.Props[stmt.Assignment.Key] = val
	}
	return style
}

func resolveStyles(styles map[string]Style) (map[string]Style, error) {
	resolved := map[string]Style{}
	visiting := map[string]bool{}

	var dfs func(name string) (Style, error)
	dfs = func(name string) (Style, error) {
		if style, ok := resolved[name]; ok {
			return style, nil
		}
		style, ok := styles[name]
		if !ok {
			return Style{}, fmt.Errorf("style %s 未定义", name)
		}
		if visiting[name] {
			return Style{}, fmt.Errorf("style 继承存在循环：%s", name)
		}
		visiting[name] = true

		props := map[string]string{}
		if style.Extends != "" {
			parent, err := dfs(style.Extends)
			if err != nil {
				return Style{}, err
			}
			for k, v := range parent.Props {
				props[k] = v
			}
		}
		for k, v := range style.Props {
			props[k] = v
		}
		style.Props = props
		resolved[name] = style
		delete(visiting, name)
		return style, nil
	}

	for name := range styles {
		if _, err := dfs(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func parseColorResource(cmd *dsl.Command) (string, string) {
	if len(cmd.Args) == 0 {
		return "", ""
	}
	name := cmd.Args[0].Value()
	value := ""
	if len(cmd.Args) > 1 {
		value = cmd.Args[len(cmd.Args)-1].Value()
	}
	return name, value
}

// resolveColor 先查颜色资源，再按 #rgb/#rrggbb/#rrggbbaa 解析；都失败时返回 fallback。
func resolveColor(value string, res ResourceSet, fallback color.RGBA) (color.RGBA, error) {
	if value == "" {
		return fallback, nil
	}
	if c, ok := res.Colors[value]; ok {
		return c, nil
	}
	if strings.HasPrefix(value, "#") {
		return parseColor(value)
	}
	switch strings.ToLower(value) {
	case "black":
		return color.RGBA{A: 0xff}, nil
	case "white":
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	}
	return fallback, fmt.Errorf("颜色 %s 未定义", value)
}

func parseColor(value string) (color.RGBA, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		r := strings.Repeat(string(value[0]), 2)
		g := strings.Repeat(string(value[1]), 2)
		b := strings.Repeat(string(value[2]), 2)
		return color.RGBA{R: mustHex(r), G: mustHex(g), B: mustHex(b), A: 0xff}, nil
	case 6:
		return color.RGBA{R: mustHex(value[0:2]), G: mustHex(value[2:4]), B: mustHex(value[4:6]), A: 0xff}, nil
	case 8:
		return color.RGBA{R: mustHex(value[0:2]), G: mustHex(value[2:4]), B: mustHex(value[4:6]), A: mustHex(value[6:8])}, nil
	default:
		return color.RGBA{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func mustHex(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}
