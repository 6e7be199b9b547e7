// Package ui provides the graphical user interface for System Monitor.
// This file contains PNG rendering for the tray icon and sidebar graphs.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// IconConfig defines the configuration for the tray gauge icon.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	LevelColor  color.RGBA
	AlertColor  color.RGBA
	// AlertLevel is the fraction above which LevelColor turns to AlertColor.
	AlertLevel float64
}

// DefaultIconConfig returns the default tray icon configuration.
func DefaultIconConfig() IconConfig {
	return IconConfig{
		Size:        22,
		FillColor:   color.RGBA{60, 60, 60, 255},    // Dark gray
		BorderColor: color.RGBA{158, 158, 158, 255}, // Gray
		LevelColor:  color.RGBA{46, 194, 126, 255},  // Green
		AlertColor:  color.RGBA{224, 27, 36, 255},   // Red
		AlertLevel:  0.9,
	}
}

// IconGenerator draws a small monitor with a CPU level bar.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon showing level (0..1) and returns the bytes.
func (g *IconGenerator) Generate(level float64) []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawScreen(img)
	g.drawLevel(img, clamp01(level))

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawScreen draws the monitor frame and stand.
func (g *IconGenerator) drawScreen(img *image.RGBA) {
	size := g.config.Size
	bottom := size - 5

	for y := 1; y <= bottom; y++ {
		for x := 1; x < size-1; x++ {
			if y == 1 || y == bottom || x == 1 || x == size-2 {
				img.Set(x, y, g.config.BorderColor)
			} else {
				img.Set(x, y, g.config.FillColor)
			}
		}
	}

	// Stand
	mid := size / 2
	for y := bottom + 1; y < size-1; y++ {
		img.Set(mid-1, y, g.config.BorderColor)
		img.Set(mid, y, g.config.BorderColor)
	}
	for x := mid - 4; x <= mid+3; x++ {
		img.Set(x, size-2, g.config.BorderColor)
	}
}

// drawLevel fills a bar from the bottom of the screen area.
func (g *IconGenerator) drawLevel(img *image.RGBA, level float64) {
	size := g.config.Size
	top, bottom := 3, size-7
	height := int(level * float64(bottom-top+1))

	c := g.config.LevelColor
	if level >= g.config.AlertLevel {
		c = g.config.AlertColor
	}

	for y := bottom; y > bottom-height; y-- {
		for x := 4; x < size-4; x++ {
			img.Set(x, y, c)
		}
	}
}

// SparklineConfig defines the look of a sidebar graph.
type SparklineConfig struct {
	Width, Height int
	LineColor     color.RGBA
	FillColor     color.RGBA
}

// RenderSparkline draws values (each 0..max) right-aligned as a filled
// line graph and returns PNG bytes. max <= 0 scales to the largest value.
func RenderSparkline(values []float64, max float64, cfg SparklineConfig) []byte {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))

	if max <= 0 {
		for _, v := range values {
			if v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}

	if len(values) > cfg.Width {
		values = values[len(values)-cfg.Width:]
	}
	offset := cfg.Width - len(values)

	for i, v := range values {
		x := offset + i
		h := int(clamp01(v/max) * float64(cfg.Height-1))
		top := cfg.Height - 1 - h
		img.Set(x, top, cfg.LineColor)
		for y := top + 1; y < cfg.Height; y++ {
			img.Set(x, y, cfg.FillColor)
		}
	}

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
