package qoi

import (
	"bytes"
	"fmt"
)

// Decode parses the QOI stream src, writing width*height*channels decoded
// pixel bytes into dst and returning the parsed header and the number of
// bytes written.
//
// Decode stops after producing exactly width*height pixels and requires the
// 8-byte end marker to immediately follow; trailing bytes after the marker
// are not consumed or validated.
func Decode(dst, src []byte) (Header, int, error) {
	if len(src) < headerSize {
		return Header{}, 0, fmt.Errorf("%w: need %d header bytes, got %d", ErrTruncated, headerSize, len(src))
	}
	h, err := readHeader(src[:headerSize])
	if err != nil {
		return Header{}, 0, err
	}
	pixelCount, err := h.PixelCount()
	if err != nil {
		return Header{}, 0, err
	}
	outBytes := int(pixelCount) * int(h.Channels)
	if len(dst) < outBytes {
		return Header{}, 0, fmt.Errorf("%w: need %d bytes, got %d", ErrOutputBufferTooSmall, outBytes, len(dst))
	}

	pos := headerSize
	var idx runningIndex
	prev := startPixel
	run := 0
	step := int(h.Channels)

	for off := 0; off < outBytes; off += step {
		pix, consumed, err := decodeStep(&prev, &idx, &run, src[pos:])
		if err != nil {
			return Header{}, 0, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		pos += consumed
		copy(dst[off:off+3], pix[:3])
		if h.Channels == RGBA {
			dst[off+3] = pix[3]
		}
	}

	if len(src)-pos < endMarkerLen {
		return Header{}, 0, fmt.Errorf("%w: %d trailing bytes", ErrTruncated, len(src)-pos)
	}
	if !bytes.Equal(src[pos:pos+endMarkerLen], endMarker[:]) {
		return Header{}, 0, ErrMissingEndMarker
	}

	return h, outBytes, nil
}

// DecodeAlloc decodes src into a freshly allocated, exactly-sized pixel
// buffer.
func DecodeAlloc(src []byte) (Header, []byte, error) {
	if len(src) < headerSize {
		return Header{}, nil, fmt.Errorf("%w: need %d header bytes, got %d", ErrTruncated, headerSize, len(src))
	}
	h, err := readHeader(src[:headerSize])
	if err != nil {
		return Header{}, nil, err
	}
	pixelCount, err := h.PixelCount()
	if err != nil {
		return Header{}, nil, err
	}
	dst := make([]byte, int(pixelCount)*int(h.Channels))
	h, n, err := Decode(dst, src)
	if err != nil {
		return Header{}, nil, err
	}
	return h, dst[:n], nil
}
