// Package bitmap 在内存中的 image.RGBA 上模拟设备屏幕，把每一页画成像素并输出 PNG。
package bitmap

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/renderer"
)

// BasicSrc 选用 x/image 自带的 7x13 点阵字体，不需要任何字体文件。
const BasicSrc = "bitmap:basic"

// Options 控制 PNG 输出。
type Options struct {
	// Page 为负数时输出所有页，横向排成一条；否则只输出该页。
	Page int
	// Gap 是相邻两页之间的间隔像素。
	Gap int
	// Scale 大于 1 时按最近邻放大，便于查看小屏幕。
	Scale int
	// Backdrop 填充页间隔与整张图片的底色。
	Backdrop color.Color
}

// DefaultOptions 输出所有页，页间隔 8 像素。
func DefaultOptions() Options {
	return Options{Page: -1, Gap: 8, Scale: 1, Backdrop: color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}}
}

// Renderer 实现 renderer.Renderer 与 renderer.FontProvider。
type Renderer struct {
	opts Options

	mu    sync.Mutex
	faces map[renderer.FontSpec]*Face
}

var (
	_ renderer.Renderer     = (*Renderer)(nil)
	_ renderer.FontProvider = (*Renderer)(nil)
)

func New(opts Options) *Renderer {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Backdrop == nil {
		opts.Backdrop = color.Black
	}
	return &Renderer{opts: opts, faces: map[renderer.FontSpec]*Face{}}
}

// Face 把 font.Face 包装成 display.Font，度量向上取整到整像素。
type Face struct {
	face   font.Face
	height int
	ascent int
}

func newFace(face font.Face) *Face {
	m := face.Metrics()
	return &Face{face: face, height: m.Height.Ceil(), ascent: m.Ascent.Ceil()}
}

func (f *Face) TextWidth(text string) int { return font.MeasureString(f.face, text).Ceil() }
func (f *Face) LineHeight() int           { return f.height }
func (f *Face) Ascent() int               { return f.ascent }

// Font 解析字体并缓存，相同的 spec 返回同一个 Face。
func (r *Renderer) Font(spec renderer.FontSpec) (display.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.faces[spec]; ok {
		return f, nil
	}
	face, err := loadFace(spec)
	if err != nil {
		return nil, err
	}
	f := newFace(face)
	r.faces[spec] = f
	return f, nil
}

func loadFace(spec renderer.FontSpec) (font.Face, error) {
	if spec.Src == BasicSrc {
		return basicfont.Face7x13, nil
	}
	data, err := fonts.Load(spec.Src, "")
	if err != nil {
		return nil, err
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", spec.Name, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("创建字体 %s 失败: %w", spec.Name, err)
	}
	return face, nil
}

// Display 是画在 image.RGBA 上的 display.Display。
type Display struct {
	img *image.RGBA
}

var _ display.Display = (*Display)(nil)

// NewDisplay 创建覆盖 area 的帧缓冲，初始为黑色。
func NewDisplay(area geometry.Rect) *Display {
	img := image.NewRGBA(toImageRect(area))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	return &Display{img: img}
}

// Image 返回帧缓冲本身。
func (d *Display) Image() *image.RGBA { return d.img }

func (d *Display) FillRect(r geometry.Rect, c color.Color) {
	draw.Draw(d.img, toImageRect(r), image.NewUniform(c), image.Point{}, draw.Src)
}

func (d *Display) Text(p geometry.Point, text string, f display.Font, fg, _ color.Color) {
	var face font.Face = basicfont.Face7x13
	if ff, ok := f.(*Face); ok {
		face = ff.face
	}
	drawer := font.Drawer{
		Dst:  d.img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(p.X, p.Y),
	}
	drawer.DrawString(text)
}

func (d *Display) Icon(p geometry.Point, icon display.Icon, fg, bg color.Color) {
	if icon.Mask == nil {
		return
	}
	r := icon.Mask.Bounds().Sub(icon.Mask.Bounds().Min).Add(image.Pt(p.X, p.Y))
	draw.Draw(d.img, r, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.DrawMask(d.img, r, image.NewUniform(fg), image.Point{}, icon.Mask, icon.Mask.Bounds().Min, draw.Over)
}

func toImageRect(r geometry.Rect) image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

// Render 画出每一页并编码为 PNG。
func (r *Renderer) Render(content component.PaginatedComponent, area geometry.Rect) ([]byte, error) {
	img, err := r.Draw(content, area)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// Draw 返回未编码的图像，页按 Options 排列并放大。
func (r *Renderer) Draw(content component.PaginatedComponent, area geometry.Rect) (*image.RGBA, error) {
	if area.IsEmpty() {
		return nil, fmt.Errorf("bitmap: 区域为空")
	}
	var pages []*image.RGBA
	err := renderer.EachPage(content, area, func(page int) error {
		if r.opts.Page >= 0 && page != r.opts.Page {
			return nil
		}
		d := NewDisplay(area)
		content.Paint(d)
		pages = append(pages, d.Image())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("bitmap: 第 %d 页不存在", r.opts.Page)
	}

	w, h := area.Width(), area.Height()
	sheet := image.NewRGBA(image.Rect(0, 0, len(pages)*w+(len(pages)-1)*r.opts.Gap, h))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(r.opts.Backdrop), image.Point{}, draw.Src)
	for i, page := range pages {
		dst := image.Rect(i*(w+r.opts.Gap), 0, i*(w+r.opts.Gap)+w, h)
		draw.Draw(sheet, dst, page, page.Bounds().Min, draw.Src)
	}
	if r.opts.Scale == 1 {
		return sheet, nil
	}

	b := sheet.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*r.opts.Scale, b.Dy()*r.opts.Scale))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), sheet, b, draw.Src, nil)
	return scaled, nil
}
