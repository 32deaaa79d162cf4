package core

import "testing"

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{"overlap", RectF{0, 0, 10, 10}, RectF{9.5, 9.5, 1, 1}, true},
		{"contained", RectF{0, 0, 10, 10}, RectF{2, 2, 3, 3}, true},
		{"touching edge", RectF{0, 0, 10, 10}, RectF{10, 0, 5, 5}, false},
		{"touching corner", RectF{0, 0, 10, 10}, RectF{10, 10, 5, 5}, false},
		{"disjoint", RectF{0, 0, 1, 1}, RectF{3, 3, 1, 1}, false},
		{"empty box never hits", RectF{0, 0, 10, 10}, RectF{2, 2, 0, 5}, false},
		{"negative size", RectF{0, 0, 10, 10}, RectF{5, 5, 3, -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFInset(t *testing.T) {
	r := RectF{X: 10, Y: 20, W: 30, H: 40}.Inset(2, 5)
	if r.X != 12 || r.Y != 25 || r.W != 26 || r.H != 30 {
		t.Errorf("Inset() = %+v", r)
	}
	if r.Right() != 38 || r.Bottom() != 55 {
		t.Errorf("edges = (%f, %f), expected (38, 55)", r.Right(), r.Bottom())
	}
	if !(RectF{W: 4, H: 4}).Inset(2, 0).Empty() {
		t.Error("insetting a box to zero width should leave it empty")
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{7, 10, 5, 10}, // inverted range
	}
	for _, tt := range tests {
		if got := ClampF(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 5, 6)
	if r.Right() != 8 || r.Bottom() != 10 {
		t.Errorf("Right/Bottom = %d/%d, expected 8/10", r.Right(), r.Bottom())
	}
}

func TestActionNames(t *testing.T) {
	if ActionJump.String() != "Jump" || ActionPause.String() != "Pause" {
		t.Error("unexpected action names")
	}
	if Action(-1).String() != "Unknown" || Action(99).String() != "Unknown" {
		t.Error("out of range actions should be Unknown")
	}
}
