package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			HalfHeight: 4,
			HalfLength: 7,
			TileScale:  1.2,
		},
		Colors: ColorConfig{
			Head:     []float32{0.82, 0.62, 0.32},
			TailEnd:  []float32{1.0, 0.0, 0.0},
			Resource: []float32{0.16, 1.0, 0.16},
			Clear:    []float32{0.1, 0.1, 0.1, 1.0},
			Text:     []float32{0.9, 0.9, 0.9},
			Button:   []float32{1.0, 0.0, 0.0},
		},
		Placement: PlacementConfig{
			MaxRetries: 64,
		},
		Display: DisplayConfig{
			TileWidth: 2,
			ShowHelp:  true,
		},
	}
}
