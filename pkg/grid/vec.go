package grid

// Vec2 is a continuous world-space position on the ground plane.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V is a shorthand constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns p + q.
func (p Vec2) Add(q Vec2) Vec2 {
	return Vec2{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Vec2) Sub(q Vec2) Vec2 {
	return Vec2{p.X - q.X, p.Y - q.Y}
}

// Scale returns p * s.
func (p Vec2) Scale(s float64) Vec2 {
	return Vec2{p.X * s, p.Y * s}
}
