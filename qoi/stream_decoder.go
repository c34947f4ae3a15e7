package qoi

import (
	"bytes"
	"fmt"
)

// Decoder drives the QOI decoder state machine across arbitrarily-sized
// fragments of input bytes. It buffers at most one partial chunk (up to 5
// bytes, the size of an RGBA chunk) and the 8-byte trailer; it never grows
// its internal buffers with input size.
type Decoder struct {
	header Header

	idx runningIndex
	prev pixel
	run  int

	remaining uint64

	headerBuf [headerSize]byte
	headerLen int

	chunkBuf [5]byte
	chunkLen int

	trailerBuf [endMarkerLen]byte
	trailerLen int

	began, finished bool
}

// NewDecoder creates a streaming decoder. The header is not known until
// Begin has consumed 14 bytes.
func NewDecoder() *Decoder {
	return &Decoder{prev: startPixel}
}

// Begin accumulates bytes from src until the 14-byte header is complete. It
// returns how many bytes it consumed and, once ok is true, the parsed
// header. Callers should keep calling Begin with more input until ok is
// true or err is non-nil.
func (d *Decoder) Begin(src []byte) (consumed int, header Header, ok bool, err error) {
	if d.began {
		return 0, d.header, true, nil
	}
	n := copy(d.headerBuf[d.headerLen:], src)
	d.headerLen += n
	if d.headerLen < headerSize {
		return n, Header{}, false, nil
	}
	h, err := readHeader(d.headerBuf[:])
	if err != nil {
		return n, Header{}, false, err
	}
	count, err := h.PixelCount()
	if err != nil {
		return n, Header{}, false, err
	}
	d.header = h
	d.remaining = count
	d.began = true
	return n, h, true, nil
}

// Push decodes as many pixels as it can from src into dst, limited by
// whichever of src or dst (in channel-sized pixels) runs out first. It
// returns how many pixel bytes it wrote and how many input bytes it
// consumed. Once all width*height pixels have been produced, Push also
// consumes and buffers the trailing end-marker bytes so Finish can validate
// them.
func (d *Decoder) Push(dst, src []byte) (written, consumed int, err error) {
	if !d.began {
		return 0, 0, fmt.Errorf("qoi: Decoder.Push called before Begin completed")
	}
	channels := int(d.header.Channels)
	pos := 0

	for d.remaining > 0 && len(dst)-written >= channels {
		if d.run > 0 {
			pix, _, _ := decodeStep(&d.prev, &d.idx, &d.run, nil)
			writePixel(dst[written:], pix, channels)
			written += channels
			d.remaining--
			continue
		}

		if d.chunkLen == 0 {
			if pos >= len(src) {
				break
			}
			d.chunkBuf[0] = src[pos]
			d.chunkLen = 1
			pos++
		}
		need := chunkByteLen(d.chunkBuf[0])
		for d.chunkLen < need && pos < len(src) {
			d.chunkBuf[d.chunkLen] = src[pos]
			d.chunkLen++
			pos++
		}
		if d.chunkLen < need {
			break
		}

		pix, _, err := decodeStep(&d.prev, &d.idx, &d.run, d.chunkBuf[:d.chunkLen])
		d.chunkLen = 0
		if err != nil {
			return written, pos, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		writePixel(dst[written:], pix, channels)
		written += channels
		d.remaining--
	}

	if d.remaining == 0 && d.trailerLen < endMarkerLen {
		n := copy(d.trailerBuf[d.trailerLen:], src[pos:])
		d.trailerLen += n
		pos += n
	}

	return written, pos, nil
}

// Finish verifies that width*height pixels were produced and that the end
// marker was seen in full.
func (d *Decoder) Finish() error {
	if !d.began {
		return fmt.Errorf("qoi: Decoder.Finish called before Begin completed")
	}
	if d.remaining > 0 {
		return fmt.Errorf("%w: %d pixels not yet decoded", ErrTruncated, d.remaining)
	}
	if d.trailerLen < endMarkerLen {
		return fmt.Errorf("%w: end marker incomplete", ErrTruncated)
	}
	if !bytes.Equal(d.trailerBuf[:], endMarker[:]) {
		return ErrMissingEndMarker
	}
	d.finished = true
	return nil
}
