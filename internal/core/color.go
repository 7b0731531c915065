package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// RGB is a colour with components in [0, 1].
type RGB = mgl32.Vec3

// RGBA is a colour with an alpha channel, components in [0, 1].
type RGBA = mgl32.Vec4

// RGBFromRGBA drops the alpha channel.
func RGBFromRGBA(c RGBA) RGB {
	return RGB{c.X(), c.Y(), c.Z()}
}

// RGBAFromRGB adds an opaque alpha channel.
func RGBAFromRGB(c RGB) RGBA {
	return RGBA{c.X(), c.Y(), c.Z(), 1}
}

// LerpRGB linearly interpolates between a and b, t in [0, 1].
func LerpRGB(a, b RGB, t float32) RGB {
	return a.Add(b.Sub(a).Mul(t))
}

// RGBToHex formats a colour as "#rrggbb", clamping each channel.
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X()), channel(c.Y()), channel(c.Z()))
}

// RGBBytes returns the colour as 8-bit channels.
func RGBBytes(c RGB) (r, g, b uint8) {
	return uint8(channel(c.X())), uint8(channel(c.Y())), uint8(channel(c.Z()))
}

func channel(v float32) int {
	return Clamp(int(v*255+0.5), 0, 255)
}
