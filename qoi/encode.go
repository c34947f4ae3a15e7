package qoi

import "fmt"

// Encode writes the QOI encoding of pixels (a packed, row-major buffer of
// width*height*channels bytes) into dst and returns the number of bytes
// written.
//
// dst must be at least EncodedSizeLimit(h) bytes; Encode never writes
// partial output on error — any bytes already placed in dst must be
// discarded by the caller.
func Encode(dst, pixels []byte, h Header) (int, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}
	pixelCount, err := h.PixelCount()
	if err != nil {
		return 0, err
	}
	pixelBytes := int(pixelCount) * int(h.Channels)
	if len(pixels) < pixelBytes {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", ErrNotEnoughPixelData, pixelBytes, len(pixels))
	}
	limit, err := EncodedSizeLimit(h)
	if err != nil {
		return 0, err
	}
	if len(dst) < limit {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", ErrOutputBufferTooSmall, limit, len(dst))
	}

	putHeader(dst, h)
	pos := headerSize

	var idx runningIndex
	prev := startPixel
	run := 0
	step := int(h.Channels)

	for off := 0; off < pixelBytes; off += step {
		var curr pixel
		if h.Channels == RGBA {
			curr = readPixelRGBA(pixels[off : off+4])
		} else {
			curr = readPixelRGB(pixels[off:off+3], prev[3])
		}
		atEnd := off+step == pixelBytes
		pos += encodeStep(&prev, &idx, &run, curr, atEnd, dst[pos:])
	}

	copy(dst[pos:], endMarker[:])
	pos += endMarkerLen
	return pos, nil
}

// EncodeAlloc encodes pixels into a freshly allocated, exactly-sized buffer.
func EncodeAlloc(pixels []byte, h Header) ([]byte, error) {
	limit, err := EncodedSizeLimit(h)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, limit)
	n, err := Encode(dst, pixels, h)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
