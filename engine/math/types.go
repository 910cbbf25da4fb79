package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec4 represents a 4D vector, also used for RGBA colours.
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief a 2x2 matrix in row-major order, used for planar rotations. */
type Mat2 struct {
	Data [4]float32
}
