package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping tiles", NewRect(0, 0, 64, 64), NewRect(32, 32, 64, 64), true},
		{"side by side", NewRect(0, 0, 64, 64), NewRect(64, 0, 64, 64), false},
		{"stacked", NewRect(0, 0, 64, 64), NewRect(0, 64, 64, 64), false},
		{"hitbox inside tile", NewRect(0, 0, 64, 64), NewRect(10, 20, 20, 20), true},
		{"one pixel overlap", NewRect(0, 0, 64, 64), NewRect(63, 63, 64, 64), true},
		{"far apart", NewRect(0, 0, 10, 10), NewRect(500, 500, 10, 10), false},
		{"empty rect never overlaps", NewRect(5, 5, 0, 10), NewRect(0, 0, 64, 64), false},
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

func TestRectContains(t *testing.T) {
	r := NewRect(64, 128, 64, 64)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 70, 150, true},
		{"top-left corner", 64, 128, true},
		{"right edge exclusive", 128, 150, false},
		{"bottom edge exclusive", 70, 192, false},
		{"outside", 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectInflateKeepsCenter(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		dx, dy int
		w, h   int
	}{
		{"tile hitbox", NewRect(0, 0, 64, 64), 0, -10, 64, 54},
		{"player hitbox", NewRect(100, 100, 64, 64), -6, -26, 58, 38},
		{"grow", NewRect(10, 10, 20, 20), 10, 10, 30, 30},
		{"shrink below zero", NewRect(10, 10, 4, 4), -10, -10, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.Inflate(tc.dx, tc.dy)
			if got.W != tc.w || got.H != tc.h {
				t.Fatalf("size = %dx%d, expected %dx%d", got.W, got.H, tc.w, tc.h)
			}
			wantX, wantY := tc.r.Center()
			gotX, gotY := got.Center()
			if gotX != wantX || gotY != wantY {
				t.Errorf("center = (%d,%d), expected (%d,%d)", gotX, gotY, wantX, wantY)
			}
		})
	}
}

func TestRectSetCenter(t *testing.T) {
	r := NewRect(0, 0, 58, 38)
	r.SetCenter(200, 300)

	cx, cy := r.Center()
	if cx != 200 || cy != 300 {
		t.Errorf("Center() = (%d,%d), expected (200,300)", cx, cy)
	}
	if r.W != 58 || r.H != 38 {
		t.Errorf("SetCenter changed size to %dx%d", r.W, r.H)
	}

	c := RectAt(32, 32, 64, 64)
	if c.X != 0 || c.Y != 0 {
		t.Errorf("RectAt(32,32,64,64) = %+v, expected origin", c)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := V(3, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("Normalize().Len() = %f, expected 1", n.Len())
	}
	if n.X != 0.6 || n.Y != 0.8 {
		t.Errorf("Normalize() = %+v, expected (0.6, 0.8)", n)
	}

	if z := (Vec2{}).Normalize(); !z.IsZero() {
		t.Errorf("zero vector normalized to %+v", z)
	}
}

func TestVec2Dist(t *testing.T) {
	if d := V(0, 0).Dist(V(250, 0)); d != 250 {
		t.Errorf("Dist() = %f, expected 250", d)
	}
	if d := V(1, 1).Sub(V(1, 1)); !d.IsZero() {
		t.Errorf("Sub() of equal vectors = %+v", d)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(320, 0, 300); got != 300 {
		t.Errorf("ClampF(320, 0, 300) = %f, expected 300", got)
	}
}

func TestSign(t *testing.T) {
	if Sign(2.5) != 1 || Sign(-0.1) != -1 || Sign(0) != 0 {
		t.Error("Sign() returned wrong values")
	}
}
