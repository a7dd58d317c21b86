package grid

// Rect is the set of cells a block occupies, expressed as inclusive cell
// index bounds. Because coordinates are whole cells (closed intervals, not
// continuous space), two rectangles that merely share an edge in a drawing
// do not intersect: adjacency requires distinct cell indices.
type Rect struct {
	Top, Left     int
	Bottom, Right int
}

// rectAt builds the occupied rectangle for an origin and span.
func rectAt(p Position, s Span) Rect {
	return Rect{
		Top:    p.Row,
		Left:   p.Column,
		Bottom: p.Row + s.RowSpan - 1,
		Right:  p.Column + s.ColumnSpan - 1,
	}
}

// Intersects reports whether two rectangles share at least one cell,
// using the standard axis-aligned test on inclusive bounds.
func (r Rect) Intersects(o Rect) bool {
	return r.Left <= o.Right && r.Right >= o.Left &&
		r.Top <= o.Bottom && r.Bottom >= o.Top
}

// Within reports whether the rectangle lies entirely inside a grid of the
// given dimensions.
func (r Rect) Within(rows, columns int) bool {
	return r.Top >= 0 && r.Left >= 0 && r.Bottom < rows && r.Right < columns
}

// Contains reports whether the cell lies inside the rectangle.
func (r Rect) Contains(row, column int) bool {
	return row >= r.Top && row <= r.Bottom && column >= r.Left && column <= r.Right
}

// Rows returns the number of rows the rectangle covers.
func (r Rect) Rows() int { return r.Bottom - r.Top + 1 }

// Columns returns the number of columns the rectangle covers.
func (r Rect) Columns() int { return r.Right - r.Left + 1 }
