package display

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Icon is a monochrome bitmap. Opaque mask pixels take the foreground colour,
// transparent ones the background colour.
type Icon struct {
	Name string
	Mask *image.Alpha
}

func (i Icon) Width() int {
	if i.Mask == nil {
		return 0
	}
	return i.Mask.Bounds().Dx()
}

func (i Icon) Height() int {
	if i.Mask == nil {
		return 0
	}
	return i.Mask.Bounds().Dy()
}

// Set reports whether the pixel at (x, y) belongs to the glyph.
func (i Icon) Set(x, y int) bool {
	if i.Mask == nil {
		return false
	}
	return i.Mask.AlphaAt(x, y).A >= 0x80
}

// ParseIcon builds an icon from rows of '#' (set) and '.' (clear) characters.
// All rows must have the same width.
func ParseIcon(name string, rows ...string) (Icon, error) {
	if len(rows) == 0 {
		return Icon{}, fmt.Errorf("icon %s: no rows", name)
	}
	width := len(rows[0])
	mask := image.NewAlpha(image.Rect(0, 0, width, len(rows)))
	for y, row := range rows {
		if len(row) != width {
			return Icon{}, fmt.Errorf("icon %s: row %d has width %d, want %d", name, y, len(row), width)
		}
		for x, c := range row {
			if c == '#' {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return Icon{Name: name, Mask: mask}, nil
}

// MustParseIcon is like ParseIcon but panics on malformed input.
func MustParseIcon(name string, rows ...string) Icon {
	icon, err := ParseIcon(name, rows...)
	if err != nil {
		panic(err)
	}
	return icon
}

// IconFromText parses an icon from a multi-line string, ignoring blank lines
// and surrounding whitespace.
func IconFromText(name, text string) (Icon, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	return ParseIcon(name, rows...)
}

// Built-in checklist icons.
var (
	IconDone = MustParseIcon("done",
		"..........",
		".........#",
		"........##",
		".......##.",
		"#.....##..",
		"##...##...",
		".##.##....",
		"..###.....",
		"...#......",
	)
	IconCurrent = MustParseIcon("current",
		"..##..",
		".####.",
		"######",
		"######",
		".####.",
		"..##..",
	)
)
