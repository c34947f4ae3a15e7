package qoiimage

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/qoi-go/qoi/qoi"
)

func init() {
	image.RegisterFormat("qoi", "qoif", Decode, DecodeConfig)
}

// Options configures Encode's choice of channel count and colorspace byte.
// A nil Options behaves like &Options{Channels: qoi.RGBA, ColorSpace: qoi.SRGB}.
type Options struct {
	Channels   qoi.Channels
	ColorSpace qoi.ColorSpace
}

func (o *Options) orDefault() Options {
	if o == nil {
		return Options{Channels: qoi.RGBA, ColorSpace: qoi.SRGB}
	}
	return *o
}

// Decode reads a QOI image from r.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	h, pixels, err := qoi.DecodeAlloc(data)
	if err != nil {
		return nil, err
	}
	return &Image{header: h, pixels: pixels}, nil
}

// DecodeConfig reads just the 14-byte QOI header from r, without decoding
// any pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	buf := make([]byte, 14)
	if _, err := io.ReadFull(r, buf); err != nil {
		return image.Config{}, err
	}
	h, err := qoi.DecodeHeader(buf)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{Width: int(h.Width), Height: int(h.Height), ColorModel: color.NRGBAModel}, nil
}

// Encode writes img to w in QOI format. A nil opts encodes as RGBA/sRGB.
func Encode(w io.Writer, img image.Image, opts *Options) error {
	o := opts.orDefault()
	b := img.Bounds()
	h := qoi.Header{Width: uint32(b.Dx()), Height: uint32(b.Dy()), Channels: o.Channels, ColorSpace: o.ColorSpace}

	pixels := make([]byte, int(h.Width)*int(h.Height)*int(h.Channels))
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels[i], pixels[i+1], pixels[i+2] = c.R, c.G, c.B
			if h.Channels == qoi.RGBA {
				pixels[i+3] = c.A
			}
			i += int(h.Channels)
		}
	}

	out, err := qoi.EncodeAlloc(pixels, h)
	if err != nil {
		return fmt.Errorf("qoiimage: encode: %w", err)
	}
	_, err = w.Write(out)
	return err
}
