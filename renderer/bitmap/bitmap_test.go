package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/paragraphs"
	"github.com/ByLCY/folio/renderer"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func basicStyle(t *testing.T, r *Renderer) *layout.TextStyle {
	t.Helper()
	f, err := r.Font(renderer.FontSpec{Name: "basic", Src: BasicSrc, Size: 13})
	if err != nil {
		t.Fatalf("font: %v", err)
	}
	return layout.NewTextStyle("basic", f)
}

func TestBasicFontMetrics(t *testing.T) {
	r := New(DefaultOptions())
	f, err := r.Font(renderer.FontSpec{Src: BasicSrc})
	if err != nil {
		t.Fatalf("font: %v", err)
	}
	got := []int{f.TextWidth("abc"), f.LineHeight(), f.Ascent()}
	if diff := cmp.Diff([]int{21, 13, 11}, got); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestFontCache(t *testing.T) {
	r := New(DefaultOptions())
	spec := renderer.FontSpec{Name: "mono", Src: "builtin:gomono", Size: 10}
	a, err := r.Font(spec)
	if err != nil {
		t.Fatalf("font: %v", err)
	}
	b, _ := r.Font(spec)
	if a != b {
		t.Fatal("same spec should return the cached face")
	}
	if a.LineHeight() <= 0 || a.TextWidth("mmmm") != 2*a.TextWidth("mm") {
		t.Fatalf("unexpected monospace metrics: lh=%d w=%d", a.LineHeight(), a.TextWidth("mmmm"))
	}
	if _, err := r.Font(renderer.FontSpec{Src: "builtin:nope"}); err == nil {
		t.Fatal("expected error for unknown builtin font")
	}
}

func TestDisplayIcon(t *testing.T) {
	d := NewDisplay(geometry.NewRect(0, 0, 20, 20))
	d.Icon(geometry.NewPoint(2, 3), display.IconCurrent, red, color.White)
	img := d.Image()
	// 第一行是 "..##.."。
	if got := img.RGBAAt(4, 3); got != red {
		t.Fatalf("mask pixel = %v, want red", got)
	}
	if got := img.RGBAAt(2, 3); got != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Fatalf("clear pixel = %v, want white", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("untouched pixel = %v, want black", got)
	}
}

func TestDisplayFillRect(t *testing.T) {
	d := NewDisplay(geometry.NewRect(0, 0, 10, 10))
	d.FillRect(geometry.NewRect(2, 2, 3, 3), red)
	img := d.Image()
	if img.RGBAAt(2, 2) != red || img.RGBAAt(4, 4) != red {
		t.Fatal("rect should be filled")
	}
	if img.RGBAAt(5, 5) == red {
		t.Fatal("fill leaked outside the rect")
	}
}

func pages(t *testing.T, r *Renderer) *paragraphs.Paragraphs[paragraphs.Slice[string]] {
	t.Helper()
	return paragraphs.New(paragraphs.Slice[string]{
		paragraphs.NewParagraph(basicStyle(t, r), "aaaa bbbb cccc"),
	})
}

func darkPixels(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R < 0x80 {
				n++
			}
		}
	}
	return n
}

func TestDrawStrip(t *testing.T) {
	r := New(Options{Page: -1, Gap: 8, Backdrop: red})
	// 每行 4 个字符（28 像素），30 像素高的区域一页只能放 2 行。
	img, err := r.Draw(pages(t, r), geometry.NewRect(0, 0, 35, 30))
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 78, 30) {
		t.Fatalf("bounds = %v", got)
	}
	if img.RGBAAt(38, 10) != red {
		t.Fatal("gap should show the backdrop")
	}
	if img.RGBAAt(0, 0) != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Fatalf("paragraph background should be white, got %v", img.RGBAAt(0, 0))
	}
	if darkPixels(img, image.Rect(0, 0, 35, 30)) == 0 || darkPixels(img, image.Rect(43, 0, 78, 30)) == 0 {
		t.Fatal("both pages should contain text")
	}
}

func TestRenderSinglePageScaled(t *testing.T) {
	r := New(Options{Page: 1, Scale: 2})
	data, err := r.Render(pages(t, r), geometry.NewRect(0, 0, 35, 30))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 70, 60) {
		t.Fatalf("bounds = %v", got)
	}
}

func TestRenderMissingPage(t *testing.T) {
	r := New(Options{Page: 5})
	if _, err := r.Render(pages(t, r), geometry.NewRect(0, 0, 35, 30)); err == nil {
		t.Fatal("expected error for a page past the end")
	}
	if _, err := r.Render(pages(t, r), geometry.Zero()); err == nil {
		t.Fatal("expected error for an empty area")
	}
}
