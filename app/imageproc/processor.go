package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	_ "image/gif"

	"golang.org/x/image/draw"
)

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

// Size is a bounding box in pixels.
type Size struct {
	Name   string
	Width  int
	Height int
}

var (
	SizeThumbnail = Size{Name: "thumbnail", Width: 400, Height: 400}
	SizeFull      = Size{Name: "full", Width: 1024, Height: 1024}
)

// DefaultMaxPixels bounds the decoded size of a source image (40 megapixels).
const DefaultMaxPixels = 40_000_000

// ErrTooManyPixels is returned for sources whose header declares more pixels
// than the processor accepts.
var ErrTooManyPixels = errors.New("image dimensions exceed the pixel budget")

type Processor struct {
	quality   int
	maxPixels int
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality, maxPixels: DefaultMaxPixels}
}

// WithMaxPixels returns a copy of p that rejects sources above n pixels.
// Non-positive values keep the default.
func (p *Processor) WithMaxPixels(n int) *Processor {
	cp := *p
	if n > 0 {
		cp.maxPixels = n
	}
	return &cp
}

// Result is an encoded image.
type Result struct {
	Data        []byte
	Format      string
	Width       int
	Height      int
	ContentType string
}

func (r Result) Ext() string {
	if r.Format == FormatPNG {
		return "png"
	}
	return "jpg"
}

// Process decodes r, scales it down to fit in size and encodes it as format.
// An empty format keeps PNG sources as PNG and encodes everything else as JPEG.
// The header is checked against the pixel budget before the pixels are decoded.
func (p *Processor) Process(r io.Reader, size Size, format string) (Result, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(p.maxPixels) {
		return Result{}, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, srcFormat, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode image: %w", err)
	}

	if format == "" {
		format = FormatJPEG
		if srcFormat == FormatPNG {
			format = FormatPNG
		}
	}

	resized := Fit(img, size.Width, size.Height)

	var buf bytes.Buffer
	switch format {
	case FormatJPEG, "jpg":
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return Result{}, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		format = FormatJPEG
	case FormatPNG:
		if err := png.Encode(&buf, resized); err != nil {
			return Result{}, fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		return Result{}, fmt.Errorf("unsupported image format: %s", format)
	}

	b := resized.Bounds()
	return Result{
		Data:        buf.Bytes(),
		Format:      format,
		Width:       b.Dx(),
		Height:      b.Dy(),
		ContentType: "image/" + format,
	}, nil
}

// Fit scales img down to fit within maxW x maxH, keeping the aspect ratio.
// Images that already fit are returned unchanged.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
