package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
)

// monoFont 是测试用等宽字体：每个字符宽 advance 像素。
type monoFont struct {
	advance int
	height  int
}

func (f monoFont) TextWidth(s string) int { return utf8.RuneCountInString(s) * f.advance }
func (f monoFont) LineHeight() int        { return f.height }
func (f monoFont) Ascent() int            { return f.height - 2 }

func lineTexts(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Text)
	}
	return out
}

func TestBreakLinesGreedy(t *testing.T) {
	font := monoFont{advance: 1, height: 10}
	got := lineTexts(breakLines("hello world again", 11, font))
	want := []string{"hello world", "again"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBreakLinesHonorsNewlines(t *testing.T) {
	font := monoFont{advance: 1, height: 10}
	got := lineTexts(breakLines("foo\n\nbar", 100, font))
	want := []string{"foo", "", "bar"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBreakLinesSplitsLongWordAtGraphemes(t *testing.T) {
	font := monoFont{advance: 1, height: 10}
	text := "ééééééé"
	lines := breakLines(text, 3, font)
	if diff := cmp.Diff([]string{"ééé", "ééé", "é"}, lineTexts(lines)); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	for _, l := range lines {
		if !utf8.ValidString(text[l.Start:]) {
			t.Fatalf("line starts inside a code point: %d", l.Start)
		}
	}
}

func TestBreakLinesCoversWholeText(t *testing.T) {
	font := monoFont{advance: 1, height: 10}
	text := "the quick brown fox jumps over the lazy dog\nand keeps running"
	lines := breakLines(text, 9, font)
	var b strings.Builder
	prev := 0
	for _, l := range lines {
		if l.Start != prev {
			t.Fatalf("gap between lines at %d (line starts at %d)", prev, l.Start)
		}
		b.WriteString(text[l.Start:l.End])
		prev = l.End
	}
	if b.String() != text {
		t.Fatalf("lines do not reproduce text: %q", b.String())
	}
}

func TestFitText(t *testing.T) {
	style := NewTextStyle("body", monoFont{advance: 1, height: 10})
	text := "aaaa bbbb cccc dddd"
	tests := []struct {
		name   string
		height int
		want   Fit
	}{
		{"all", 100, Fit{Height: 40, ProcessedChars: len(text)}},
		{"exact", 40, Fit{Height: 40, ProcessedChars: len(text)}},
		{"two lines", 29, Fit{Height: 20, ProcessedChars: 10, OutOfBounds: true}},
		{"nothing", 9, Fit{Height: 0, ProcessedChars: 0, OutOfBounds: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewTextLayout(style).WithBounds(geometry.NewRect(0, 0, 5, tt.height))
			if diff := cmp.Diff(tt.want, l.FitText(text)); diff != "" {
				t.Fatalf("fit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFitTextPadding(t *testing.T) {
	style := NewTextStyle("body", monoFont{advance: 1, height: 10})
	l := NewTextLayout(style).WithPadding(-1, 5).WithBounds(geometry.NewRect(0, 0, 5, 24))
	got := l.FitText("aaaa bbbb cccc")
	want := Fit{Height: 24, ProcessedChars: 10, OutOfBounds: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fit mismatch (-want +got):\n%s", diff)
	}
}

func TestFitTextEmpty(t *testing.T) {
	style := NewTextStyle("body", monoFont{advance: 1, height: 10})
	l := NewTextLayout(style).WithBounds(geometry.NewRect(0, 0, 5, 100))
	if got := l.FitText(""); got != (Fit{}) {
		t.Fatalf("empty text should fit with zero height, got %+v", got)
	}
}

func TestStyleWithoutFont(t *testing.T) {
	style := NewTextStyle("nofont", nil)
	if style.Measurable() || (*TextStyle)(nil).Measurable() {
		t.Fatal("a style without font must not be measurable")
	}
	l := NewTextLayout(style).WithBounds(geometry.NewRect(0, 0, 5, 100))
	if got := l.FitText("aaaa"); got != (Fit{}) {
		t.Fatalf("unmeasurable style should yield the zero Fit, got %+v", got)
	}
	if lines := l.Lines("aaaa"); lines != nil {
		t.Fatalf("unmeasurable style has no lines, got %v", lines)
	}
	var rec display.Recorder
	l.RenderText(&rec, "aaaa")
	if len(rec.Ops) != 0 {
		t.Fatalf("unmeasurable style should draw nothing, got %+v", rec.Ops)
	}
}

func TestFitTextMonotonic(t *testing.T) {
	style := NewTextStyle("body", monoFont{advance: 1, height: 7})
	text := strings.Repeat("lorem ipsum dolor sit amet ", 8)
	prev := -1
	for h := 0; h <= 200; h++ {
		fit := NewTextLayout(style).WithBounds(geometry.NewRect(0, 0, 12, h)).FitText(text)
		if fit.ProcessedChars < prev {
			t.Fatalf("height %d processed %d < %d", h, fit.ProcessedChars, prev)
		}
		prev = fit.ProcessedChars
	}
}

func TestRenderTextAlignment(t *testing.T) {
	style := NewTextStyle("body", monoFont{advance: 2, height: 10})
	l := NewTextLayout(style).WithAlign(geometry.AlignEnd).WithBounds(geometry.NewRect(0, 0, 20, 15))
	var rec display.Recorder
	l.RenderText(&rec, "abc defgh ijk")
	if diff := cmp.Diff([]string{"abc defgh"}, rec.Texts()); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
	if rec.Ops[0].Kind != "fill" {
		t.Fatalf("background should be filled first, got %+v", rec.Ops[0])
	}
	if p := rec.Ops[1].Point; p.X != 2 || p.Y != 8 {
		t.Fatalf("unexpected baseline %+v", p)
	}
}
