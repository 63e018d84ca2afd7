// Package display defines the drawing collaborator the text engine paints
// through, together with the font metrics it measures text with.
package display

import (
	"image/color"

	"github.com/ByLCY/folio/geometry"
)

// Font reports metrics in display pixels.
type Font interface {
	// TextWidth is the advance of text drawn on a single line.
	TextWidth(text string) int
	// LineHeight is the distance between two consecutive baselines.
	LineHeight() int
	// Ascent is the distance between the top of a line and its baseline.
	Ascent() int
}

// Display is implemented by every output backend.
type Display interface {
	// FillRect paints r with c.
	FillRect(r geometry.Rect, c color.Color)
	// Text draws a single line of text whose baseline starts at p.
	Text(p geometry.Point, text string, font Font, fg, bg color.Color)
	// Icon blits icon with its top-left corner at p.
	Icon(p geometry.Point, icon Icon, fg, bg color.Color)
}

// Recorder is a Display that only remembers what was drawn. It is handy for
// tests and for tracing.
type Recorder struct {
	Ops []Op
}

// Op is a single recorded drawing call.
type Op struct {
	Kind  string
	Rect  geometry.Rect
	Point geometry.Point
	Text  string
	Icon  string
}

var _ Display = (*Recorder)(nil)

func (r *Recorder) FillRect(rect geometry.Rect, _ color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "fill", Rect: rect})
}

func (r *Recorder) Text(p geometry.Point, text string, _ Font, _, _ color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", Point: p, Text: text})
}

func (r *Recorder) Icon(p geometry.Point, icon Icon, _, _ color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "icon", Point: p, Icon: icon.Name})
}

// Texts returns the recorded text calls in drawing order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Icons returns the recorded icon calls in drawing order.
func (r *Recorder) Icons() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == "icon" {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
