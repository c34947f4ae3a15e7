// Package qoiimage adapts the pure byte-buffer qoi codec to the standard
// library's image.Image interface and format registry, the way image/png
// and image/gif present themselves. It holds no codec state of its own: it
// only marshals between image.Image/color.NRGBA and the packed pixel
// buffers qoi.Encode/qoi.DecodeAlloc expect.
package qoiimage

import (
	"image"
	"image/color"

	"github.com/qoi-go/qoi/qoi"
)

// Image is a QOI-decoded image. It implements image.Image directly over the
// decoded pixel buffer rather than copying into an *image.NRGBA.
type Image struct {
	header qoi.Header
	pixels []byte
}

// ColorModel returns color.NRGBAModel, since QOI pixels are stored
// un-premultiplied.
func (img *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds returns the image's pixel rectangle.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(img.header.Width), int(img.header.Height))
}

// At returns the pixel at (x, y).
func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.NRGBA{}
	}
	channels := int(img.header.Channels)
	off := (y*int(img.header.Width) + x) * channels
	if channels == 4 {
		return color.NRGBA{R: img.pixels[off], G: img.pixels[off+1], B: img.pixels[off+2], A: img.pixels[off+3]}
	}
	return color.NRGBA{R: img.pixels[off], G: img.pixels[off+1], B: img.pixels[off+2], A: 255}
}

// Header returns the decoded QOI header, exposing the channel count and
// colorspace byte that image.Image has no room for.
func (img *Image) Header() qoi.Header {
	return img.header
}
