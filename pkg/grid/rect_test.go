package grid

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{
			name: "identical",
			a:    Rect{Top: 0, Left: 0, Bottom: 1, Right: 1},
			b:    Rect{Top: 0, Left: 0, Bottom: 1, Right: 1},
			want: true,
		},
		{
			name: "partial overlap",
			a:    Rect{Top: 0, Left: 0, Bottom: 1, Right: 1},
			b:    Rect{Top: 1, Left: 1, Bottom: 2, Right: 2},
			want: true,
		},
		{
			name: "contained",
			a:    Rect{Top: 0, Left: 0, Bottom: 3, Right: 3},
			b:    Rect{Top: 1, Left: 1, Bottom: 2, Right: 2},
			want: true,
		},
		{
			name: "horizontally adjacent cells do not intersect",
			a:    Rect{Top: 0, Left: 0, Bottom: 0, Right: 0},
			b:    Rect{Top: 0, Left: 1, Bottom: 0, Right: 1},
			want: false,
		},
		{
			name: "vertically adjacent cells do not intersect",
			a:    Rect{Top: 0, Left: 0, Bottom: 0, Right: 1},
			b:    Rect{Top: 1, Left: 0, Bottom: 1, Right: 1},
			want: false,
		},
		{
			name: "diagonal neighbors do not intersect",
			a:    Rect{Top: 0, Left: 0, Bottom: 0, Right: 0},
			b:    Rect{Top: 1, Left: 1, Bottom: 1, Right: 1},
			want: false,
		},
		{
			name: "disjoint",
			a:    Rect{Top: 0, Left: 0, Bottom: 0, Right: 0},
			b:    Rect{Top: 3, Left: 3, Bottom: 4, Right: 4},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			// Intersection is symmetric.
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("reverse Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectWithin(t *testing.T) {
	tests := []struct {
		name       string
		r          Rect
		rows, cols int
		want       bool
	}{
		{
			name: "fills grid exactly",
			r:    Rect{Top: 0, Left: 0, Bottom: 1, Right: 1},
			rows: 2, cols: 2,
			want: true,
		},
		{
			name: "single cell inside",
			r:    Rect{Top: 1, Left: 1, Bottom: 1, Right: 1},
			rows: 3, cols: 3,
			want: true,
		},
		{
			name: "bottom edge past grid",
			r:    Rect{Top: 1, Left: 0, Bottom: 2, Right: 0},
			rows: 2, cols: 2,
			want: false,
		},
		{
			name: "right edge past grid",
			r:    Rect{Top: 0, Left: 1, Bottom: 0, Right: 2},
			rows: 2, cols: 2,
			want: false,
		},
		{
			name: "negative origin",
			r:    Rect{Top: -1, Left: 0, Bottom: 0, Right: 0},
			rows: 2, cols: 2,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Within(tt.rows, tt.cols); got != tt.want {
				t.Errorf("Within(%d, %d) = %v, want %v", tt.rows, tt.cols, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Top: 1, Left: 1, Bottom: 2, Right: 3}

	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{"top-left corner", 1, 1, true},
		{"bottom-right corner", 2, 3, true},
		{"interior", 2, 2, true},
		{"above", 0, 2, false},
		{"left of", 1, 0, false},
		{"below", 3, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.row, tt.col); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestRectDimensions(t *testing.T) {
	r := Rect{Top: 1, Left: 0, Bottom: 2, Right: 3}
	if got := r.Rows(); got != 2 {
		t.Errorf("Rows() = %d, want 2", got)
	}
	if got := r.Columns(); got != 4 {
		t.Errorf("Columns() = %d, want 4", got)
	}
}
