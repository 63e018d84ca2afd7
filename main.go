package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
	"github.com/ByLCY/folio/renderer/bitmap"
	canvasrenderer "github.com/ByLCY/folio/renderer/canvas"
	termrenderer "github.com/ByLCY/folio/renderer/term"
)

// options 汇总命令行参数。
type options struct {
	input  string
	output string
	debug  string
	format string
	screen string
	page   int
	width  int
	height int
	scale  int
	dpi    float64
	data   any
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "in", "examples/confirm.folio", "DSL 文件路径")
	flag.StringVar(&opts.output, "out", "output/confirm.png", "输出路径（term 格式忽略）")
	flag.StringVar(&opts.debug, "debug", "", "分页调试 JSON 输出路径")
	flag.StringVar(&opts.format, "format", "", "输出格式：png、pdf、txt 或 term，默认按 -out 扩展名推断")
	flag.StringVar(&opts.screen, "screen", "", "要显示的 screen 名称，默认第一个")
	flag.IntVar(&opts.page, "page", -1, "png 只输出该页（从 0 开始），负数输出全部")
	flag.IntVar(&opts.width, "width", 0, "覆盖屏幕宽度（像素）")
	flag.IntVar(&opts.height, "height", 0, "覆盖屏幕高度（像素）")
	flag.IntVar(&opts.scale, "scale", 1, "png 放大倍数")
	flag.Float64Var(&opts.dpi, "dpi", layout.DefaultDPI, "屏幕像素密度，用于换算 pt/mm")
	dataJSON := flag.String("data", "", "绑定到 DSL 的 JSON 数据")
	dataFile := flag.String("data-file", "", "绑定数据 JSON 文件，与 -data 二选一")
	flag.Parse()

	data, err := loadData(*dataJSON, *dataFile)
	if err != nil {
		log.Fatalf("读取绑定数据失败: %v", err)
	}
	opts.data = data
	if opts.format == "" {
		opts.format = formatFromPath(opts.output)
	}
	if opts.format != "png" && (opts.page >= 0 || opts.scale != 1) {
		log.Printf("-page 与 -scale 只对 png 生效，已忽略")
	}

	if err := run(opts); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
	if opts.format != "term" {
		fmt.Printf("已生成 %s：%s\n", opts.format, opts.output)
	}
}

// loadData 解析 JSON 绑定数据，并把 {"$base64": "..."} 还原为字节。
func loadData(inline, path string) (any, error) {
	if inline != "" && path != "" {
		return nil, fmt.Errorf("-data 与 -data-file 不能同时使用")
	}
	raw := []byte(inline)
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}
	return binding.DecodeBytes(data), nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "pdf"
	case ".txt":
		return "txt"
	default:
		return "png"
	}
}

// newBackend 返回输出后端；每个后端同时为排版提供字体。
func newBackend(opts options) (renderer.Renderer, renderer.FontProvider, error) {
	switch opts.format {
	case "png":
		bopts := bitmap.DefaultOptions()
		bopts.Page = opts.page
		bopts.Scale = opts.scale
		r := bitmap.New(bopts)
		return r, r, nil
	case "pdf":
		r := canvasrenderer.NewRenderer(canvasrenderer.Options{DPI: opts.dpi, Creator: "folio"})
		return r, r, nil
	case "txt", "term":
		return termrenderer.Renderer{}, termrenderer.Renderer{}, nil
	default:
		return nil, nil, fmt.Errorf("未知的输出格式 %s", opts.format)
	}
}

// run 串联解析、构建与输出。
func run(opts options) error {
	r, fonts, err := newBackend(opts)
	if err != nil {
		return err
	}
	if opts.format == "term" && !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("term 格式需要在终端中运行")
	}

	file, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", opts.input, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	screen, err := document.Build(doc, opts.data, document.BuildOptions{
		Fonts:   fonts,
		DPI:     opts.dpi,
		Width:   opts.width,
		Height:  opts.height,
		Screen:  opts.screen,
		BaseDir: filepath.Dir(opts.input),
	})
	if err != nil {
		return fmt.Errorf("构建屏幕失败: %w", err)
	}

	if opts.debug != "" {
		if err := writeDebug(screen, opts.debug); err != nil {
			return err
		}
	}

	if opts.format == "term" {
		return view(screen)
	}
	if c, ok := r.(*canvasrenderer.Renderer); ok {
		c.SetInfo(screen.Meta.Title, screen.Meta.Subject, screen.Meta.Author, screen.Meta.Keywords)
	}

	if err := os.MkdirAll(filepath.Dir(opts.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	out, err := r.Render(screen.Content, screen.Area)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func view(screen *document.Screen) error {
	ts, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("创建终端屏幕失败: %w", err)
	}
	if err := ts.Init(); err != nil {
		return fmt.Errorf("初始化终端失败: %w", err)
	}
	defer ts.Fini()
	termrenderer.NewViewer(ts, screen.Content, screen.Area).Run()
	return nil
}

func writeDebug(screen *document.Screen, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(screen.Traces(), debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
