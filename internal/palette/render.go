package palette

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/VoidMesh/noise/internal/field"
)

// MaxTile bounds the pixel size of one sample in rendered images.
const MaxTile = 16

// MaxImageSide bounds the side of a rendered image: 4096² RGBA is 64 MiB.
const MaxImageSide = 4096

// FitTile clamps tile to [1, MaxTile] and lowers it until samples*tile fits
// in MaxImageSide. It never goes below 1.
func FitTile(samples, tile int) int {
	tile = max(1, min(tile, MaxTile))
	if samples > 0 && samples*tile > MaxImageSide {
		tile = max(1, MaxImageSide/samples)
	}
	return tile
}

// Render draws f with one tile×tile square per sample, with tile adjusted
// by FitTile.
func Render(f *field.Field, m Mapper, tile int) *image.RGBA {
	tile = FitTile(f.Samples, tile)

	size := f.Samples * tile
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < f.Samples; y++ {
		for x := 0; x < f.Samples; x++ {
			r, g, b := m.Colour(f.At(x, y)).Clamped().RGB255()
			c := color.RGBA{R: r, G: g, B: b, A: 0xff}
			for dy := 0; dy < tile; dy++ {
				for dx := 0; dx < tile; dx++ {
					img.SetRGBA(x*tile+dx, y*tile+dy, c)
				}
			}
		}
	}
	return img
}

// EncodePNG writes img to w as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
