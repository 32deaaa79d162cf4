// Package core provides fundamental types and utilities shared by the game
// logic and the frontends. It contains no external dependencies (especially
// no Bubble Tea or Ebitengine) to keep game logic pure and testable.
package core

// Rect is a box of screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the box.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the box.
func (r Rect) Bottom() int { return r.Y + r.H }

// RectF is an axis-aligned box in world units. Collision checks use it.
type RectF struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 { return r.Y + r.H }

// Empty reports whether the box has no area.
func (r RectF) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports whether the boxes overlap. Touching edges do not
// count, and an empty box never overlaps anything.
func (r RectF) Intersects(other RectF) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Inset shrinks the box by dx on both sides horizontally and dy vertically.
func (r RectF) Inset(dx, dy float64) RectF {
	return RectF{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// ClampF restricts v to [lo, hi]. When the range is inverted lo wins.
func ClampF(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
