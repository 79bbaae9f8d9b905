package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// maxPreviewStops caps the shift; beyond it every pixel is black or white.
const maxPreviewStops = 16

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// PreviewOptions controls Preview.
type PreviewOptions struct {
	// Stops of light to add (positive) or remove (negative).
	Stops float64
	// MaxWidth downsizes wider images, keeping the aspect ratio. 0 disables it.
	MaxWidth int
	// Region limits the preview to part of the image. Nil means all of it.
	Region *Region
}

// PreviewResult contains the re-exposed image.
type PreviewResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Stops       float64 `json:"stops"`
	Gain        float64 `json:"gain"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// Preview renders img as if it had been exposed opts.Stops brighter or
// darker. Pixel values are converted from sRGB to linear light, multiplied by
// 2^stops, and converted back with highlights clipped to white.
//
// The result is a base64-encoded PNG. Alpha is preserved.
func Preview(img image.Image, opts PreviewOptions) (*PreviewResult, error) {
	if math.IsNaN(opts.Stops) || math.Abs(opts.Stops) > maxPreviewStops {
		return nil, fmt.Errorf("stops must be within ±%d, got %v", maxPreviewStops, opts.Stops)
	}

	var src image.Image = img
	if r := opts.Region; r != nil {
		bounds := img.Bounds()
		if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
			return nil, fmt.Errorf("preview region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
				r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
			return nil, fmt.Errorf("invalid preview region: x1 must be < x2, y1 must be < y2")
		}
		src = imaging.Crop(img, image.Rect(r.X1, r.Y1, r.X2, r.Y2))
	}

	if opts.MaxWidth > 0 && src.Bounds().Dx() > opts.MaxWidth {
		src = imaging.Resize(src, opts.MaxWidth, 0, imaging.Lanczos)
	}

	gain := math.Exp2(opts.Stops)
	shifted := adjust.Apply(src, func(c color.RGBA) color.RGBA {
		return ShiftColor(c, gain)
	})

	var buf bytes.Buffer
	if err := png.Encode(&buf, shifted); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       shifted.Bounds().Dx(),
		Height:      shifted.Bounds().Dy(),
		Stops:       opts.Stops,
		Gain:        math.Round(gain*1000) / 1000,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// ShiftColor multiplies the linear-light intensity of c by gain. c is
// alpha-premultiplied, as bild's adjust.Apply supplies it; the shift is applied
// to the straight colour and the result premultiplied again, so no channel
// exceeds alpha.
func ShiftColor(c color.RGBA, gain float64) color.RGBA {
	if c.A == 0 {
		return c
	}
	alpha := float64(c.A) / 255
	src := colorful.Color{
		R: float64(c.R) / 255 / alpha,
		G: float64(c.G) / 255 / alpha,
		B: float64(c.B) / 255 / alpha,
	}.Clamped()
	r, g, b := src.LinearRgb()
	out := colorful.LinearRgb(r*gain, g*gain, b*gain).Clamped()
	return color.RGBA{
		R: premultiply(out.R, alpha),
		G: premultiply(out.G, alpha),
		B: premultiply(out.B, alpha),
		A: c.A,
	}
}

func premultiply(v, alpha float64) uint8 {
	return uint8(math.Round(v * alpha * 255))
}
