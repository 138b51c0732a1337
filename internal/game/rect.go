package game

// Rect is an axis-aligned bounding box in field pixels
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) Right() int {
	return r.X + r.W
}

func (r Rect) Bottom() int {
	return r.Y + r.H
}

func (r Rect) CenterY() int {
	return r.Y + r.H/2
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func Intersects(a, b Rect) bool {
	return a.X < b.Right() &&
		a.Right() > b.X &&
		a.Y < b.Bottom() &&
		a.Bottom() > b.Y
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
