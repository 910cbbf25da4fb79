package simulation

// Config holds the tunables of the population model.
type Config struct {
	WrapX           float32
	WrapY           float32
	TriangleRadius  float32
	GreedThreshold  float32
	JitterAmplitude float32
	SpawnExtent     float32
	VelocityScale   float32
	MinSpeed        float32
}

func DefaultConfig() Config {
	return Config{
		WrapX:           1.77,
		WrapY:           1.0,
		TriangleRadius:  0.01,
		GreedThreshold:  0.8,
		JitterAmplitude: 0.002,
		SpawnExtent:     0.9,
		VelocityScale:   0.01,
		MinSpeed:        0.05,
	}
}
