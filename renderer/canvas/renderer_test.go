package canvasrenderer

import (
	"bytes"
	"math"
	"testing"

	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/paragraphs"
	"github.com/ByLCY/folio/renderer"
)

func TestPageSizeFollowsDPI(t *testing.T) {
	area := geometry.NewRect(0, 0, 240, 120)
	for _, tt := range []struct {
		dpi  float64
		w, h float64
	}{
		{0, 240 * 25.4 / 72, 120 * 25.4 / 72},
		{254, 24, 12},
	} {
		w, h := NewRenderer(Options{DPI: tt.dpi}).PageSize(area)
		if math.Abs(w-tt.w) > 1e-9 || math.Abs(h-tt.h) > 1e-9 {
			t.Fatalf("dpi %g: page size = %gx%g, want %gx%g", tt.dpi, w, h, tt.w, tt.h)
		}
	}
}

func TestFontMetricsInPixels(t *testing.T) {
	r := NewRenderer(Options{})
	f, err := r.Font(renderer.FontSpec{Name: "Mono", Src: "builtin:gomono", Size: 12})
	if err != nil {
		t.Fatalf("font: %v", err)
	}
	if lh := f.LineHeight(); lh < 12 || lh > 20 {
		t.Fatalf("line height %d out of range for a 12px font", lh)
	}
	if f.Ascent() <= 0 || f.Ascent() > f.LineHeight() {
		t.Fatalf("unexpected ascent %d", f.Ascent())
	}
	if w := f.TextWidth("mmmmmmmmmm"); w < 60 || w > 90 {
		t.Fatalf("width of ten monospace glyphs = %d", w)
	}
	if f.TextWidth("") != 0 {
		t.Fatal("empty text should have no width")
	}
}

func TestFontFamilyCache(t *testing.T) {
	r := NewRenderer(Options{})
	spec := renderer.FontSpec{Name: "Body", Src: "builtin:goregular", Size: 10}
	if _, err := r.Font(spec); err != nil {
		t.Fatalf("font: %v", err)
	}
	spec.Size = 20
	if _, err := r.Font(spec); err != nil {
		t.Fatalf("font: %v", err)
	}
	if len(r.fontFamilies) != 1 {
		t.Fatalf("expected one cached family, got %d", len(r.fontFamilies))
	}
}

func TestUnknownFontFallsBack(t *testing.T) {
	r := NewRenderer(Options{})
	f, err := r.Font(renderer.FontSpec{Name: "Missing", Src: "builtin:nope", Size: 10})
	if err != nil {
		t.Fatalf("expected fallback font, got %v", err)
	}
	if f.LineHeight() <= 0 {
		t.Fatal("fallback font should have metrics")
	}
}

func TestParseFontStyle(t *testing.T) {
	tests := map[string]string{
		"Body":          "regular",
		"TitleBold":     "bold",
		"SemiBold":      "semibold",
		"Caption Light": "light",
	}
	want := map[string]int{
		"regular":  int(parseFontStyle("")),
		"bold":     int(parseFontStyle("bold")),
		"semibold": int(parseFontStyle("semibold")),
		"light":    int(parseFontStyle("light")),
	}
	if want["bold"] == want["semibold"] || want["regular"] == want["bold"] {
		t.Fatal("styles should differ")
	}
	for name, kind := range tests {
		if got := int(parseFontStyle(name)); got != want[kind] {
			t.Errorf("parseFontStyle(%q) = %d, want %s", name, got, kind)
		}
	}
	if parseFontStyle("Italic")&parseFontStyle("italic") == 0 {
		t.Error("italic flag should be set")
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(Options{Title: "Proof", Keywords: []string{"a", "b"}})
	f, err := r.Font(renderer.FontSpec{Name: "Mono", Src: "builtin:gomono", Size: 12})
	if err != nil {
		t.Fatalf("font: %v", err)
	}
	style := layout.NewTextStyle("Body", f)
	list := paragraphs.NewChecklist(display.IconCurrent, display.IconDone, 1,
		paragraphs.New(paragraphs.Slice[string]{
			paragraphs.NewParagraph(style, "first step"),
			paragraphs.NewParagraph(style, "second step").BreakAfter(),
			paragraphs.NewParagraph(style, "third step"),
		}))
	content := component.NewPager(list)

	data, err := r.Render(content, geometry.NewRect(0, 0, 200, 120))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 8)])
	}
	if content.ActivePage() != 0 {
		t.Fatalf("render should return to the first page, got %d", content.ActivePage())
	}
	if _, err := r.Render(content, geometry.Zero()); err == nil {
		t.Fatal("expected error for an empty area")
	}
}
