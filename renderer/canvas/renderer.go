package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

const mmPerInch = 25.4

// Renderer draws every page of a paginated screen onto its own PDF page via
// github.com/tdewolff/canvas. Screen pixels map to millimetres through DPI.
type Renderer struct {
	opts Options

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer     = (*Renderer)(nil)
	_ renderer.FontProvider = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	// DPI is the density of the simulated screen, layout.DefaultDPI when zero.
	DPI float64
	// Document information written into the PDF.
	Title    string
	Subject  string
	Author   string
	Creator  string
	Keywords []string
}

// NewRenderer creates a PDF proof renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.DPI <= 0 {
		opts.DPI = layout.DefaultDPI
	}
	return &Renderer{
		opts:         opts,
		fontFamilies: map[string]*fontFamilyEntry{},
	}
}

// SetInfo replaces the document information written into the PDF.
func (r *Renderer) SetInfo(title, subject, author string, keywords []string) {
	r.opts.Title = title
	r.opts.Subject = subject
	r.opts.Author = author
	r.opts.Keywords = keywords
}

// toMM converts screen pixels to millimetres.
func (r *Renderer) toMM(px int) float64 { return float64(px) * mmPerInch / r.opts.DPI }

// toPX converts millimetres back to screen pixels, rounding up.
func (r *Renderer) toPX(mm float64) int { return int(math.Ceil(mm*r.opts.DPI/mmPerInch - 1e-9)) }

// PageSize returns the PDF page size in millimetres for a screen area.
func (r *Renderer) PageSize(area geometry.Rect) (float64, float64) {
	return r.toMM(area.Width()), r.toMM(area.Height())
}

// Face measures text with a canvas font face and reports pixels.
type Face struct {
	r      *Renderer
	family *canvas.FontFamily
	style  canvas.FontStyle
	sizePt float64
	face   *canvas.FontFace
}

func (f *Face) TextWidth(text string) int { return f.r.toPX(f.face.TextWidth(text)) }
func (f *Face) LineHeight() int           { return f.r.toPX(f.face.Metrics().LineHeight) }
func (f *Face) Ascent() int               { return f.r.toPX(f.face.Metrics().Ascent) }

// withColor returns a face of the same font painted in c.
func (f *Face) withColor(c color.Color) *canvas.FontFace {
	return f.family.Face(f.sizePt, c, f.style, canvas.FontNormal)
}

// Font implements renderer.FontProvider. Size in spec is in screen pixels.
func (r *Renderer) Font(spec renderer.FontSpec) (display.Font, error) {
	family, style, err := r.ensureFontFamily(spec)
	if err != nil {
		return nil, err
	}
	sizePt := spec.Size * layout.DefaultDPI / r.opts.DPI
	return &Face{
		r:      r,
		family: family,
		style:  style,
		sizePt: sizePt,
		face:   family.Face(sizePt, canvas.Black, style, canvas.FontNormal),
	}, nil
}

func (r *Renderer) ensureFontFamily(spec renderer.FontSpec) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(spec)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(spec.Name)
	familyName := spec.Name
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)

	if err := loadFontIntoFamily(family, spec, style); err != nil {
		fallback, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: canvas.FontRegular}
		return fallback, canvas.FontRegular, nil
	}

	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func loadFontIntoFamily(family *canvas.FontFamily, spec renderer.FontSpec, style canvas.FontStyle) error {
	data, err := fonts.Load(spec.Src, "")
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

// fallback is used when a declared font cannot be loaded. Caller holds fontMu.
func (r *Renderer) fallback() (*canvas.FontFamily, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, nil
	}
	data, err := fonts.Load("", "")
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("folio-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	r.fallbackFamily = family
	return family, nil
}

func parseFontStyle(name string) canvas.FontStyle {
	s := strings.ToLower(name)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(spec renderer.FontSpec) string {
	return fmt.Sprintf("%s|%s", spec.Name, spec.Src)
}

// Render renders every page of content into a PDF byte slice.
func (r *Renderer) Render(content component.PaginatedComponent, area geometry.Rect) ([]byte, error) {
	if area.IsEmpty() {
		return nil, fmt.Errorf("渲染区域为空")
	}
	width, height := r.PageSize(area)

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	r.applyMeta(writer)
	err := renderer.EachPage(content, area, func(page int) error {
		if page > 0 {
			writer.NewPage(width, height)
		}
		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与屏幕保持左上角为原点

		content.Paint(&pageDisplay{r: r, ctx: ctx, origin: area.TopLeft()})
		c.RenderTo(writer)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF) {
	if writer == nil {
		return
	}
	keywords := strings.Join(r.opts.Keywords, ", ")
	writer.SetInfo(r.opts.Title, r.opts.Subject, keywords, r.opts.Author, r.opts.Creator)
}

// pageDisplay draws onto one canvas page, converting pixels to millimetres.
type pageDisplay struct {
	r      *Renderer
	ctx    *canvas.Context
	origin geometry.Point
}

var _ display.Display = (*pageDisplay)(nil)

func (d *pageDisplay) x(px int) float64 { return d.r.toMM(px - d.origin.X) }
func (d *pageDisplay) y(px int) float64 { return d.r.toMM(px - d.origin.Y) }

func (d *pageDisplay) FillRect(rect geometry.Rect, c color.Color) {
	if rect.IsEmpty() {
		return
	}
	d.ctx.SetFillColor(c)
	d.ctx.SetStrokeColor(canvas.Transparent)
	d.ctx.DrawPath(d.x(rect.X0), d.y(rect.Y0), canvas.Rectangle(d.r.toMM(rect.Width()), d.r.toMM(rect.Height())))
}

func (d *pageDisplay) Text(p geometry.Point, text string, f display.Font, fg, _ color.Color) {
	face, ok := f.(*Face)
	if !ok {
		return
	}
	line := canvas.NewTextLine(face.withColor(fg), text, canvas.Left)
	d.ctx.DrawText(d.x(p.X), d.y(p.Y), line)
}

// Icon draws each set pixel of the mask as a square.
func (d *pageDisplay) Icon(p geometry.Point, icon display.Icon, fg, bg color.Color) {
	d.FillRect(geometry.NewRect(p.X, p.Y, icon.Width(), icon.Height()), bg)
	d.ctx.SetFillColor(fg)
	d.ctx.SetStrokeColor(canvas.Transparent)
	px := d.r.toMM(1)
	for y := range icon.Height() {
		for x := range icon.Width() {
			if icon.Set(x, y) {
				d.ctx.DrawPath(d.x(p.X+x), d.y(p.Y+y), canvas.Rectangle(px, px))
			}
		}
	}
}
