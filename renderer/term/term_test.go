package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/folio/component"
	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/paragraphs"
)

func style() *layout.TextStyle { return layout.NewTextStyle("term", Face{}) }

func TestFaceMetrics(t *testing.T) {
	got := []int{Face{}.TextWidth("ab"), Face{}.TextWidth("中"), Face{}.LineHeight(), Face{}.Ascent()}
	if diff := cmp.Diff([]int{16, 16, 16, 12}, got); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestCellRounding(t *testing.T) {
	tests := []struct{ v, want int }{
		{0, 0}, {7, 0}, {8, 1}, {15, 1}, {-1, 0}, {-8, 0}, {-9, -1},
	}
	for _, tt := range tests {
		if got := cell(tt.v, CellHeight); got != tt.want {
			t.Errorf("cell(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func simScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func TestDisplayDrawsIconsAndDots(t *testing.T) {
	screen := simScreen(t, 6, 2)
	d := NewDisplay(screen)
	d.Icon(geometry.NewPoint(0, 0), display.IconDone, nil, nil)
	d.Icon(geometry.NewPoint(8, 0), display.IconCurrent, nil, nil)
	d.FillRect(geometry.NewRect(18, 3, 4, 4), nil)
	d.FillRect(geometry.NewRect(27, 4, 2, 2), nil)
	d.Text(geometry.NewPoint(0, 16+cellAscent), "hi", Face{}, nil, nil)
	want := []string{"✓▶●·", "hi"}
	if diff := cmp.Diff(want, Snapshot(screen, 6, 2)); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSnapshot(t *testing.T) {
	content := paragraphs.New(paragraphs.Slice[string]{
		paragraphs.NewParagraph(style(), "hello world"),
	})
	out, err := Renderer{}.Render(content, geometry.NewRect(0, 0, 48, 40))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "-- page 1/1 --\nhello\nworld\n\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
	if _, err := (Renderer{}).Render(content, geometry.Zero()); err == nil {
		t.Fatal("expected error for an empty area")
	}
}

func TestViewerKeys(t *testing.T) {
	screen := simScreen(t, 20, 6)
	pager := component.NewPager(paragraphs.New(paragraphs.Slice[string]{
		paragraphs.NewParagraph(style(), "aaaa bbbb cccc dddd"),
	}))
	v := NewViewer(screen, pager, geometry.NewRect(0, 0, 32, 40))
	v.Draw()
	text := strings.Join(Snapshot(screen, 20, 6), "\n")
	if !strings.Contains(text, "aaaa") || !strings.Contains(text, "1/4") {
		t.Fatalf("first page not shown:\n%s", text)
	}

	if v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)) {
		t.Fatal("arrow key should not quit")
	}
	if v.ActivePage() != 1 {
		t.Fatalf("active page = %d, want 1", v.ActivePage())
	}
	text = strings.Join(Snapshot(screen, 20, 6), "\n")
	if !strings.Contains(text, "bbbb") || strings.Contains(text, "aaaa") {
		t.Fatalf("second page not shown:\n%s", text)
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	v.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if v.ActivePage() != 0 {
		t.Fatalf("active page = %d, want 0", v.ActivePage())
	}
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
}
