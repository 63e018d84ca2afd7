package geometry

// Axis selects the direction in which LinearPlacement stacks items.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) main(r Rect) int {
	if a == Horizontal {
		return r.Width()
	}
	return r.Height()
}

// LinearPlacement stacks boxes along one axis, keeping each box's own size on
// that axis and stretching it over the whole area on the cross axis.
type LinearPlacement struct {
	Axis    Axis
	Align   Alignment
	Spacing int
}

func VerticalPlacement() LinearPlacement   { return LinearPlacement{Axis: Vertical} }
func HorizontalPlacement() LinearPlacement { return LinearPlacement{Axis: Horizontal} }

func (p LinearPlacement) AlignAtStart() LinearPlacement  { p.Align = AlignStart; return p }
func (p LinearPlacement) AlignAtCenter() LinearPlacement { p.Align = AlignCenter; return p }
func (p LinearPlacement) AlignAtEnd() LinearPlacement    { p.Align = AlignEnd; return p }

func (p LinearPlacement) WithSpacing(spacing int) LinearPlacement {
	p.Spacing = spacing
	return p
}

// Arrange repositions boxes inside area in place. Spacing shrinks (down to
// zero) when the boxes would otherwise overflow the area.
func (p LinearPlacement) Arrange(area Rect, boxes []Rect) {
	if len(boxes) == 0 {
		return
	}
	sum := 0
	for _, b := range boxes {
		sum += p.Axis.main(b)
	}
	cursor, spacing := p.computeSpacing(area, len(boxes), sum)
	for i, b := range boxes {
		size := p.Axis.main(b)
		if p.Axis == Horizontal {
			boxes[i] = Rect{X0: area.X0 + cursor, Y0: area.Y0, X1: area.X0 + cursor + size, Y1: area.Y1}
		} else {
			boxes[i] = Rect{X0: area.X0, Y0: area.Y0 + cursor, X1: area.X1, Y1: area.Y0 + cursor + size}
		}
		cursor += size + spacing
	}
}

func (p LinearPlacement) computeSpacing(area Rect, count, sum int) (start, spacing int) {
	gaps := count - 1
	free := p.Axis.main(area) - sum
	if free < 0 {
		free = 0
	}
	spacing = p.Spacing
	if spacing < 0 {
		spacing = 0
	}
	if gaps > 0 && spacing*gaps > free {
		spacing = free / gaps
	}
	total := spacing * gaps
	if gaps <= 0 {
		total = 0
	}
	return p.Align.Apply(0, free, total), spacing
}
