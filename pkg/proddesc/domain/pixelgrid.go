package domain

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MaxImageSide images with a larger width or height are rejected before decoding their pixels.
const MaxImageSide = 8192

// PixelGrid is a decoded image normalized to 8-bit RGB, 3 bytes per pixel, row-major.
// It implements image.Image so that backends can re-encode it for transport.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []uint8
	// Format the container format the grid was decoded from ("jpeg", "png", "gif", "webp")
	Format string
}

// DecodeImage decodes JPEG, PNG, GIF or WebP bytes. The alpha channel, if any, is dropped.
func DecodeImage(data []byte) (*PixelGrid, error) {
	if len(data) == 0 {
		return nil, NewDecodeError("image is empty", nil)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, NewDecodeError("unrecognized image format", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxImageSide || cfg.Height > MaxImageSide {
		return nil, NewDecodeError(fmt.Sprintf("unsupported image dimensions %dx%d", cfg.Width, cfg.Height), nil)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, NewDecodeError("failed to decode image", err)
	}
	bounds := img.Bounds()
	grid := &PixelGrid{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    make([]uint8, bounds.Dx()*bounds.Dy()*3),
		Format: format,
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			grid.Pix[i], grid.Pix[i+1], grid.Pix[i+2] = c.R, c.G, c.B
			i += 3
		}
	}
	return grid, nil
}

func (g *PixelGrid) ColorModel() color.Model {
	return color.RGBAModel
}

func (g *PixelGrid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

func (g *PixelGrid) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return color.RGBA{}
	}
	i := (y*g.Width + x) * 3
	return color.RGBA{R: g.Pix[i], G: g.Pix[i+1], B: g.Pix[i+2], A: 0xff}
}

// JPEG re-encodes the grid, which is what remote captioners accept.
func (g *PixelGrid) JPEG(quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, g, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
