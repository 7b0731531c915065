// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid      GridConfig      `yaml:"grid"`
	Colors    ColorConfig     `yaml:"colors"`
	Placement PlacementConfig `yaml:"placement"`
	Display   DisplayConfig   `yaml:"display"`
}

// GridConfig defines the playfield geometry.
type GridConfig struct {
	HalfHeight int     `yaml:"half_height"`
	HalfLength int     `yaml:"half_length"`
	TileScale  float32 `yaml:"tile_scale"`
}

// ColorConfig defines actor and UI colours as RGB(A) components in [0, 1].
type ColorConfig struct {
	Head     []float32 `yaml:"head"`
	TailEnd  []float32 `yaml:"tail_end"`
	Resource []float32 `yaml:"resource"`
	Clear    []float32 `yaml:"clear"` // RGBA
	Text     []float32 `yaml:"text"`
	Button   []float32 `yaml:"button"`
}

// PlacementConfig bounds the random resource placement.
type PlacementConfig struct {
	MaxRetries int `yaml:"max_retries"` // Random samples before the exhaustive scan
}

// DisplayConfig defines terminal presentation.
type DisplayConfig struct {
	TileWidth int  `yaml:"tile_width"` // Terminal cells per tile horizontally
	ShowHelp  bool `yaml:"show_help"`
}

// GridGeometry returns the playfield geometry.
func (c SnakeConfig) GridGeometry() core.Grid {
	return core.NewGrid(c.Grid.HalfHeight, c.Grid.HalfLength, c.Grid.TileScale)
}

// HeadRGB returns the head colour.
func (c ColorConfig) HeadRGB() core.RGB { return rgb(c.Head) }

// TailEndRGB returns the colour of the last tail segment.
func (c ColorConfig) TailEndRGB() core.RGB { return rgb(c.TailEnd) }

// ResourceRGB returns the resource colour.
func (c ColorConfig) ResourceRGB() core.RGB { return rgb(c.Resource) }

// ClearRGBA returns the background colour.
func (c ColorConfig) ClearRGBA() core.RGBA {
	if len(c.Clear) < 4 {
		return core.RGBAFromRGB(rgb(c.Clear))
	}
	return core.RGBA{c.Clear[0], c.Clear[1], c.Clear[2], c.Clear[3]}
}

// TextRGB returns the menu text colour.
func (c ColorConfig) TextRGB() core.RGB { return rgb(c.Text) }

// ButtonRGB returns the menu button colour.
func (c ColorConfig) ButtonRGB() core.RGB { return rgb(c.Button) }

func rgb(v []float32) core.RGB {
	var c core.RGB
	copy(c[:], v)
	return c
}

// Validate checks the configuration for values the game cannot run with.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Grid.HalfHeight <= 0 || c.Grid.HalfLength <= 0 {
		errs = append(errs, fmt.Errorf("grid half extents must be positive, got %dx%d",
			c.Grid.HalfHeight, c.Grid.HalfLength))
	}
	if c.Grid.TileScale <= 0 {
		errs = append(errs, fmt.Errorf("grid tile_scale must be positive, got %g", c.Grid.TileScale))
	}
	if c.Placement.MaxRetries <= 0 {
		errs = append(errs, fmt.Errorf("placement max_retries must be positive, got %d", c.Placement.MaxRetries))
	}
	if c.Display.TileWidth <= 0 {
		errs = append(errs, fmt.Errorf("display tile_width must be positive, got %d", c.Display.TileWidth))
	}

	colors := map[string][]float32{
		"head":     c.Colors.Head,
		"tail_end": c.Colors.TailEnd,
		"resource": c.Colors.Resource,
		"text":     c.Colors.Text,
		"button":   c.Colors.Button,
	}
	for _, name := range []string{"head", "tail_end", "resource", "text", "button"} {
		if v := colors[name]; len(v) != 3 {
			errs = append(errs, fmt.Errorf("colors %s must have 3 components, got %d", name, len(v)))
		}
	}
	if n := len(c.Colors.Clear); n != 3 && n != 4 {
		errs = append(errs, fmt.Errorf("colors clear must have 3 or 4 components, got %d", n))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
