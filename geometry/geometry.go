package geometry

// Coordinates are integer pixels with the origin in the top-left corner of the
// display; y grows downwards.

// Offset is a relative displacement.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewOffset(x, y int) Offset { return Offset{X: x, Y: y} }

// Point is an absolute position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewPoint(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p moved by o.
func (p Point) Add(o Offset) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

// Rect is a half-open rectangle [X0, X1) x [Y0, Y1).
type Rect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Zero returns the empty rectangle at the origin.
func Zero() Rect { return Rect{} }

// NewRect builds a rectangle from its top-left corner and size.
func NewRect(x, y, width, height int) Rect {
	return Rect{X0: x, Y0: y, X1: x + width, Y1: y + height}
}

func (r Rect) Width() int  { return r.X1 - r.X0 }
func (r Rect) Height() int { return r.Y1 - r.Y0 }

func (r Rect) TopLeft() Point     { return Point{X: r.X0, Y: r.Y0} }
func (r Rect) BottomRight() Point { return Point{X: r.X1, Y: r.Y1} }

// IsEmpty reports whether the rectangle covers no pixels.
func (r Rect) IsEmpty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// WithHeight keeps the top edge and replaces the height.
func (r Rect) WithHeight(height int) Rect {
	r.Y1 = r.Y0 + height
	return r
}

// WithWidth keeps the left edge and replaces the width.
func (r Rect) WithWidth(width int) Rect {
	r.X1 = r.X0 + width
	return r
}

// Translate moves the rectangle by o.
func (r Rect) Translate(o Offset) Rect {
	return Rect{X0: r.X0 + o.X, Y0: r.Y0 + o.Y, X1: r.X1 + o.X, Y1: r.Y1 + o.Y}
}

// SplitTop cuts height pixels off the top. The height is clamped to the
// rectangle so that both halves stay well formed.
func (r Rect) SplitTop(height int) (top, rest Rect) {
	height = clamp(height, 0, r.Height())
	top = Rect{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y0 + height}
	rest = Rect{X0: r.X0, Y0: r.Y0 + height, X1: r.X1, Y1: r.Y1}
	return top, rest
}

// SplitBottom cuts height pixels off the bottom.
func (r Rect) SplitBottom(height int) (rest, bottom Rect) {
	height = clamp(height, 0, r.Height())
	rest = Rect{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1 - height}
	bottom = Rect{X0: r.X0, Y0: r.Y1 - height, X1: r.X1, Y1: r.Y1}
	return rest, bottom
}

// SplitLeft cuts width pixels off the left side.
func (r Rect) SplitLeft(width int) (left, rest Rect) {
	width = clamp(width, 0, r.Width())
	left = Rect{X0: r.X0, Y0: r.Y0, X1: r.X0 + width, Y1: r.Y1}
	rest = Rect{X0: r.X0 + width, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
	return left, rest
}

// Inset shrinks the rectangle by the given insets.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X0: r.X0 + in.Left,
		Y0: r.Y0 + in.Top,
		X1: r.X1 - in.Right,
		Y1: r.Y1 - in.Bottom,
	}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// Insets describe the space removed from each edge of a rectangle.
type Insets struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

func InsetsUniform(n int) Insets { return Insets{Top: n, Right: n, Bottom: n, Left: n} }
func InsetsTop(n int) Insets     { return Insets{Top: n} }
func InsetsRight(n int) Insets   { return Insets{Right: n} }
func InsetsBottom(n int) Insets  { return Insets{Bottom: n} }
func InsetsLeft(n int) Insets    { return Insets{Left: n} }

// Alignment positions content along one axis.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlignment accepts start/left, center and end/right. Unknown values map
// to AlignStart.
func ParseAlignment(v string) Alignment {
	switch v {
	case "center", "centre", "middle":
		return AlignCenter
	case "end", "right":
		return AlignEnd
	default:
		return AlignStart
	}
}

// Apply returns the start coordinate of a span of size inside [start, start+space).
func (a Alignment) Apply(start, space, size int) int {
	switch a {
	case AlignCenter:
		return start + (space-size)/2
	case AlignEnd:
		return start + space - size
	default:
		return start
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
