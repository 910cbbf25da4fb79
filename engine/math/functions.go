package math

import "github.com/chewxy/math32"

const (
	K_PI                 float32 = math32.Pi
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	K_FLOAT_EPSILON      float32 = 1.192092896e-07
)

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) MulScalar(scalar float32) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

// Compare reports whether both components are within tolerance of other.
func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	return math32.Abs(v.X-other.X) <= tolerance && math32.Abs(v.Y-other.Y) <= tolerance
}

func NewVec4Create(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

func NewMat2Identity() Mat2 {
	return Mat2{Data: [4]float32{1, 0, 0, 1}}
}

// NewMat2Rotation builds the counter-clockwise rotation
//
//	x' = x*cos - y*sin
//	y' = y*cos + x*sin
func NewMat2Rotation(angleRadians float32) Mat2 {
	s, c := math32.Sincos(angleRadians)
	return Mat2{Data: [4]float32{
		c, -s,
		s, c,
	}}
}

// Apply returns m * v.
func (m Mat2) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m.Data[0]*v.X + m.Data[1]*v.Y,
		Y: m.Data[2]*v.X + m.Data[3]*v.Y,
	}
}

func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

// WrapEdge moves a coordinate that left [-bound, bound] onto the opposite
// edge, giving toroidal motion. Values inside the range are returned as is.
func WrapEdge(v, bound float32) float32 {
	if v > bound {
		return -bound
	}
	if v < -bound {
		return bound
	}
	return v
}
