package qoi

import (
	"encoding/binary"
	"fmt"
)

// Channels selects whether a pixel buffer carries an alpha channel.
type Channels uint8

const (
	RGB  Channels = 3
	RGBA Channels = 4
)

// ColorSpace is pass-through metadata; the codec never transforms pixel
// values based on it.
type ColorSpace uint8

const (
	SRGB   ColorSpace = 0
	Linear ColorSpace = 1
)

const (
	magic        = "qoif"
	headerSize   = 14
	endMarkerLen = 8

	// maxPixels bounds width*height at 400 megapixels, which stays inside
	// the range that a worst-case
	// 5-bytes-per-pixel RGBA encoding can address without overflowing an
	// int on 32-bit platforms.
	maxPixels = 400_000_000
)

// endMarker is the fixed 8-byte trailer every QOI stream ends with.
var endMarker = [endMarkerLen]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Header carries the 14 bytes of metadata that precede every QOI chunk
// stream.
type Header struct {
	Width, Height uint32
	Channels      Channels
	ColorSpace    ColorSpace
}

// Validate reports whether h describes an encodable/decodable image:
// non-zero dimensions, a recognized channel count, and a recognized
// colorspace. Zero-dimension images are rejected; encode and decode are
// kept consistent about it.
func (h Header) Validate() error {
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: zero dimensions", ErrMalformedHeader)
	}
	if h.Channels != RGB && h.Channels != RGBA {
		return fmt.Errorf("%w: channels %d not in {3,4}", ErrMalformedHeader, h.Channels)
	}
	if h.ColorSpace != SRGB && h.ColorSpace != Linear {
		return fmt.Errorf("%w: colorspace %d not in {0,1}", ErrMalformedHeader, h.ColorSpace)
	}
	return nil
}

// PixelCount returns width*height, bounds-checked against maxPixels.
func (h Header) PixelCount() (uint64, error) {
	count := uint64(h.Width) * uint64(h.Height)
	if count > maxPixels {
		return 0, fmt.Errorf("%w: %d pixels exceeds limit of %d", ErrDimensionsOverflow, count, maxPixels)
	}
	return count, nil
}

// EncodedSizeLimit returns the worst-case number of bytes Encode can write
// for h: header + channels+1 bytes per pixel (an RGBA chunk for RGBA images,
// an RGB chunk for RGB images) + end marker.
func EncodedSizeLimit(h Header) (int, error) {
	pixels, err := h.PixelCount()
	if err != nil {
		return 0, err
	}
	return headerSize + int(pixels)*(int(h.Channels)+1) + endMarkerLen, nil
}

// putHeader writes h's 14-byte wire representation into dst, which must be
// at least headerSize bytes.
func putHeader(dst []byte, h Header) {
	copy(dst[0:4], magic)
	binary.BigEndian.PutUint32(dst[4:8], h.Width)
	binary.BigEndian.PutUint32(dst[8:12], h.Height)
	dst[12] = byte(h.Channels)
	dst[13] = byte(h.ColorSpace)
}

// DecodeHeader parses just the 14-byte wire header from src, without
// requiring the rest of the stream to be present. This is what
// qoiimage.DecodeConfig uses to answer width/height queries without
// decoding pixels.
func DecodeHeader(src []byte) (Header, error) {
	if len(src) < headerSize {
		return Header{}, fmt.Errorf("%w: need %d header bytes, got %d", ErrTruncated, headerSize, len(src))
	}
	return readHeader(src[:headerSize])
}

// readHeader parses the 14-byte wire header from src, which must be at least
// headerSize bytes.
func readHeader(src []byte) (Header, error) {
	if string(src[0:4]) != magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrMalformedHeader, src[0:4])
	}
	h := Header{
		Width:      binary.BigEndian.Uint32(src[4:8]),
		Height:     binary.BigEndian.Uint32(src[8:12]),
		Channels:   Channels(src[12]),
		ColorSpace: ColorSpace(src[13]),
	}
	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}
