package simulation

import (
	"fmt"
	"math/rand/v2"

	"github.com/spaghettifunk/colony/engine/core"
	"github.com/spaghettifunk/colony/engine/math"
)

// Population owns the agent array. It is not safe for concurrent use.
type Population struct {
	config Config
	rng    *rand.Rand
	agents []Agent
}

func NewPopulation(config Config, rng *rand.Rand) *Population {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Population{
		config: config,
		rng:    rng,
	}
}

func (p *Population) Config() Config {
	return p.config
}

// SetBounds moves the wrap edges. Agents left outside are wrapped on the next Step.
func (p *Population) SetBounds(wrapX, wrapY float32) {
	if wrapX <= 0 || wrapY <= 0 {
		return
	}
	p.config.WrapX = wrapX
	p.config.WrapY = wrapY
}

// Agents returns the live agent slice. Callers must not retain it across Reset.
func (p *Population) Agents() []Agent {
	return p.agents
}

func (p *Population) Len() int {
	return len(p.agents)
}

// Reset discards every agent and spawns n new ones.
func (p *Population) Reset(n int) error {
	if n < 0 {
		return fmt.Errorf("reset to %d agents: %w", n, core.ErrPopulationOutOfRange)
	}
	if cap(p.agents) >= n {
		p.agents = p.agents[:n]
	} else {
		p.agents = make([]Agent, n)
	}
	for i := range p.agents {
		p.agents[i] = p.spawn()
	}
	return nil
}

func (p *Population) spawn() Agent {
	extent := p.config.SpawnExtent
	return Agent{
		X:            (p.rng.Float32()*2 - 1) * extent,
		Y:            (p.rng.Float32()*2 - 1) * extent,
		ProteinLevel: p.rng.Float32(),
		Greediness:   p.rng.Float32(),
		Speed:        p.rng.Float32() + p.config.MinSpeed,
		DX:           (p.rng.Float32() - 0.5) * p.config.VelocityScale,
		DY:           (p.rng.Float32() - 0.5) * p.config.VelocityScale,
	}
}

// Step advances every agent by one frame.
func (p *Population) Step() {
	for i := range p.agents {
		a := &p.agents[i]
		a.X += a.DX * a.Speed
		a.Y += a.DY * a.Speed

		if a.Greediness > p.config.GreedThreshold {
			a.X += p.jitter()
			a.Y += p.jitter()
		}

		a.X = math.WrapEdge(a.X, p.config.WrapX)
		a.Y = math.WrapEdge(a.Y, p.config.WrapY)
	}
}

func (p *Population) jitter() float32 {
	return (p.rng.Float32() - 0.5) * p.config.JitterAmplitude
}

// Tessellate appends one triangle per agent to dst[:0] and returns it.
// rotation is in degrees. The slice is grown only when too small.
func (p *Population) Tessellate(zoom, rotation float32, dst []float32) []float32 {
	need := len(p.agents) * FloatsPerAgent
	if cap(dst) < need {
		dst = make([]float32, 0, need)
	}
	dst = dst[:0]

	rot := math.NewMat2Rotation(math.DegToRad(rotation))
	s := p.config.TriangleRadius * zoom
	corners := [VerticesPerAgent]math.Vec2{
		rot.Apply(math.NewVec2(-s, -s)),
		rot.Apply(math.NewVec2(s, -s)),
		rot.Apply(math.NewVec2(0, s)),
	}

	for i := range p.agents {
		a := &p.agents[i]
		center := rot.Apply(a.Position()).MulScalar(zoom)
		color := a.Color()
		for _, c := range corners {
			v := center.Add(c)
			dst = append(dst, v.X, v.Y, color.X, color.Y, color.Z)
		}
	}
	return dst
}
