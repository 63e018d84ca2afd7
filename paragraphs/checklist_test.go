package paragraphs

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/folio/display"
	"github.com/ByLCY/folio/geometry"
)

func checklistItems(n int) Slice[string] {
	items := make(Slice[string], n)
	for i := range items {
		items[i] = para(words(1, byte('a'+i)))
	}
	return items
}

func placedChecklist(current, items, height int) *Checklist[Slice[string]] {
	c := NewChecklist(display.IconCurrent, display.IconDone, current, New(checklistItems(items)))
	c.Place(geometry.NewRect(0, 0, CheckWidth+5, height))
	return c
}

func TestChecklistReservesIconColumn(t *testing.T) {
	c := placedChecklist(0, 3, 100)
	for _, l := range c.Paragraphs().Visible() {
		if l.Bounds.X0 != CheckWidth {
			t.Fatalf("text starts at %d, want %d", l.Bounds.X0, CheckWidth)
		}
	}
}

func TestChecklistIcons(t *testing.T) {
	c := placedChecklist(1, 3, 100)
	var rec display.Recorder
	c.Paint(&rec)

	v := c.Paragraphs().Visible()
	want := []display.Op{
		{Kind: "icon", Icon: "done", Point: geometry.NewPoint(-2, v[0].Bounds.Y0+6)},
		{Kind: "icon", Icon: "current", Point: geometry.NewPoint(2, v[1].Bounds.Y0+3)},
	}
	if diff := cmp.Diff(want, rec.Icons()); diff != "" {
		t.Fatalf("icons mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"aaaa", "bbbb", "cccc"}, rec.Texts()); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestChecklistAllDone(t *testing.T) {
	c := placedChecklist(5, 3, 100)
	var rec display.Recorder
	c.Paint(&rec)
	var names []string
	for _, op := range rec.Icons() {
		names = append(names, op.Icon)
	}
	if diff := cmp.Diff([]string{"done", "done", "done"}, names); diff != "" {
		t.Fatalf("icons mismatch (-want +got):\n%s", diff)
	}
}

func TestChecklistCurrentOnLaterPage(t *testing.T) {
	// 每页放得下 2 项（14+14 <= 30 < 42）。
	c := placedChecklist(3, 5, 30)
	if n := c.PageCount(); n != 3 {
		t.Fatalf("page count = %d, want 3", n)
	}

	c.ChangePage(1)
	if c.Paragraphs().Offset().Par != 2 {
		t.Fatalf("page 1 starts at %v", c.Paragraphs().Offset())
	}
	pt := c.Trace(1)
	var names []string
	for _, icon := range pt.Icons {
		names = append(names, icon.Name)
	}
	if diff := cmp.Diff([]string{"done", "current"}, names); diff != "" {
		t.Fatalf("icons mismatch (-want +got):\n%s", diff)
	}

	// 当前项在更早的页上时被钳到本页第一项。
	c.SetCurrent(0)
	c.ChangePage(2)
	var rec display.Recorder
	c.Paint(&rec)
	names = names[:0]
	for _, op := range rec.Icons() {
		names = append(names, op.Icon)
	}
	if diff := cmp.Diff([]string{"current"}, names); diff != "" {
		t.Fatalf("page 2 icons mismatch (-want +got):\n%s", diff)
	}
}

func TestChecklistBounds(t *testing.T) {
	c := placedChecklist(0, 1, 50)
	var got []geometry.Rect
	c.Bounds(func(r geometry.Rect) { got = append(got, r) })
	if len(got) != 3 {
		t.Fatalf("bounds = %v", got)
	}
	if got[0] != geometry.NewRect(0, 0, CheckWidth+5, 50) {
		t.Fatalf("checklist area = %v", got[0])
	}
	if got[1] != geometry.NewRect(CheckWidth, 0, 5, 50) {
		t.Fatalf("paragraph area = %v", got[1])
	}
}
