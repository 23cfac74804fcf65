// Package shell: this file carries the bundled tray icon and the
// generator that stands in when the bundle does not decode.
package shell

import (
	"bytes"
	_ "embed"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/onyx-dot-app/onyx-desktop/common"
)

//go:embed assets/tray.png
var trayAsset []byte

// IconConfig defines the configuration for tray icon generation.
type IconConfig struct {
	Size      int
	TileColor color.RGBA
	RingColor color.RGBA
	// Template skips the tile so the system can recolor the mark.
	Template bool
}

// DefaultTrayIconConfig returns the full-color status icon config.
func DefaultTrayIconConfig() IconConfig {
	return IconConfig{
		Size:      common.TrayIconSize,
		TileColor: color.RGBA{0x1a, 0x1a, 0x2e, 0xff},
		RingColor: color.RGBA{0xff, 0xff, 0xff, 0xff},
	}
}

// TemplateTrayIconConfig returns the monochrome template config used
// where the menu bar recolors status icons.
func TemplateTrayIconConfig() IconConfig {
	return IconConfig{
		Size:      common.TrayIconSize,
		RingColor: color.RGBA{0x00, 0x00, 0x00, 0xff},
		Template:  true,
	}
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	if !g.config.Template {
		g.drawTile(img)
	}
	g.drawRing(img)

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawTile draws the rounded backdrop square.
func (g *IconGenerator) drawTile(img *image.RGBA) {
	size := g.config.Size
	lo := 1.0
	hi := float64(size) - 2
	radius := float64(size) / 4.5

	inTile := func(x, y float64) bool {
		if x < lo || x > hi || y < lo || y > hi {
			return false
		}
		cx := math.Min(math.Max(x, lo+radius), hi-radius)
		cy := math.Min(math.Max(y, lo+radius), hi-radius)
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= radius*radius
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if inTile(float64(x)+0.5, float64(y)+0.5) {
				img.Set(x, y, g.config.TileColor)
			}
		}
	}
}

// drawRing draws the O mark centered on the tile.
func (g *IconGenerator) drawRing(img *image.RGBA) {
	size := g.config.Size
	center := float64(size) / 2
	outer := float64(size) * 0.30
	inner := outer - 2.2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			d := math.Hypot(fx-center, fy-center)
			if d <= outer && d >= inner {
				img.Set(x, y, g.config.RingColor)
			}
		}
	}
}

// TrayIcon returns the bundled status icon, or a generated stand-in
// when the bundled bytes do not decode.
func TrayIcon() []byte {
	return trayIconFrom(trayAsset)
}

func trayIconFrom(asset []byte) []byte {
	if _, err := png.Decode(bytes.NewReader(asset)); err != nil {
		return GenerateTrayIcon()
	}
	return asset
}

// GenerateTrayIcon generates the full-color tray icon.
func GenerateTrayIcon() []byte {
	gen := NewIconGenerator(DefaultTrayIconConfig())
	return gen.Generate()
}

// GenerateTrayTemplateIcon generates the monochrome template variant.
func GenerateTrayTemplateIcon() []byte {
	gen := NewIconGenerator(TemplateTrayIconConfig())
	return gen.Generate()
}
