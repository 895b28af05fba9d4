package core

// RuntimeConfig describes the terminal a viewer runs in.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Updates per second
}

// DefaultConfig returns the configuration used when the terminal size is
// unknown.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}
