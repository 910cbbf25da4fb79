package simulation

import "github.com/spaghettifunk/colony/engine/math"

const (
	// FloatsPerVertex is the size of one vertex record: x, y, then the
	// three colour slots (marker, protein, greed).
	FloatsPerVertex = 5
	// VerticesPerAgent is one triangle per agent.
	VerticesPerAgent = 3
	// FloatsPerAgent is the number of floats emitted for every agent.
	FloatsPerAgent = FloatsPerVertex * VerticesPerAgent
	// BytesPerFloat is the size of a float32 in the vertex stream.
	BytesPerFloat = 4
	// VertexStride is the byte size of one vertex record.
	VertexStride = FloatsPerVertex * BytesPerFloat
	// ColorOffset is the byte offset of the colour attribute in a vertex.
	ColorOffset = 2 * BytesPerFloat

	// ColorMarker fills the first colour channel of every vertex.
	ColorMarker float32 = 0.2
)

// Agent is a single simulated point. Velocity is fixed at spawn.
type Agent struct {
	X, Y         float32
	DX, DY       float32
	ProteinLevel float32
	Greediness   float32
	Speed        float32
}

func (a *Agent) Position() math.Vec2 {
	return math.NewVec2(a.X, a.Y)
}

// Color returns the per-vertex colour record of the agent.
func (a *Agent) Color() math.Vec4 {
	return math.NewVec4Create(ColorMarker, a.ProteinLevel, a.Greediness, 1.0)
}
