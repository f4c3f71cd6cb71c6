package core

// RuntimeConfig contains configuration passed to the terminal platform.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation steps per second when animating
	Seed     int64 // RNG seed for random scenarios
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 4,
		Seed:     0, // 0 means use current time in platform layer
	}
}
