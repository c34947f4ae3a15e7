package qoi

import "fmt"

// Encoder drives the QOI encoder state machine across arbitrarily-sized
// fragments of pixel data. It holds the same running index, previous pixel,
// and in-progress run as the one-shot Encode, plus a small carry buffer (at
// most one partial pixel) so that callers need not align Push calls to
// pixel boundaries.
type Encoder struct {
	header    Header
	idx       runningIndex
	prev      pixel
	run       int
	remaining uint64 // pixels not yet pushed

	pending    [4]byte
	pendingLen int

	began, finished bool
}

// NewEncoder creates a streaming encoder for an image described by h.
func NewEncoder(h Header) (*Encoder, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	count, err := h.PixelCount()
	if err != nil {
		return nil, err
	}
	return &Encoder{header: h, prev: startPixel, remaining: count}, nil
}

// Begin writes the 14-byte header into dst and returns how many bytes it
// wrote. It must be called exactly once, before the first Push.
func (e *Encoder) Begin(dst []byte) (int, error) {
	if e.began {
		return 0, fmt.Errorf("qoi: Encoder.Begin called twice")
	}
	if len(dst) < headerSize {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", ErrOutputBufferTooSmall, headerSize, len(dst))
	}
	putHeader(dst, e.header)
	e.began = true
	return headerSize, nil
}

// Push feeds a fragment of the raw pixel stream into the encoder, writing
// encoded bytes into dst and returning how many bytes it wrote and how many
// bytes of pixels it consumed. Push may consume less than all of pixels if
// dst runs out of room for the next chunk, or buffer up to one partial
// pixel internally if pixels ends mid-pixel; call Push again with more
// input and/or a fresh dst to make progress.
func (e *Encoder) Push(dst, pixels []byte) (written, consumed int, err error) {
	if !e.began {
		return 0, 0, fmt.Errorf("qoi: Encoder.Push called before Begin")
	}
	if e.finished {
		return 0, 0, fmt.Errorf("qoi: Encoder.Push called after Finish")
	}

	channels := int(e.header.Channels)
	pos := 0
	for {
		for e.pendingLen < channels && pos < len(pixels) {
			e.pending[e.pendingLen] = pixels[pos]
			e.pendingLen++
			pos++
		}
		if e.pendingLen < channels || e.remaining == 0 {
			break
		}
		if len(dst)-written < encodeStepMaxBytes {
			break
		}

		var curr pixel
		if channels == 4 {
			curr = readPixelRGBA(e.pending[:4])
		} else {
			curr = readPixelRGB(e.pending[:3], e.prev[3])
		}
		e.remaining--
		atEnd := e.remaining == 0
		written += encodeStep(&e.prev, &e.idx, &e.run, curr, atEnd, dst[written:])
		e.pendingLen = 0
	}
	return written, pos, nil
}

// Finish writes the 8-byte end marker into dst. It writes no run chunk: the
// Push call that consumes the final pixel has already flushed any run.
// After Finish returns successfully, no further Push calls are accepted.
// It is an error to call Finish before every pixel has been pushed.
func (e *Encoder) Finish(dst []byte) (int, error) {
	if !e.began {
		return 0, fmt.Errorf("qoi: Encoder.Finish called before Begin")
	}
	if e.remaining > 0 || e.pendingLen > 0 {
		return 0, fmt.Errorf("%w: %d pixels and %d pending bytes not yet pushed", ErrNotEnoughPixelData, e.remaining, e.pendingLen)
	}
	if len(dst) < endMarkerLen {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", ErrOutputBufferTooSmall, endMarkerLen, len(dst))
	}
	// encodeStep always flushes a pending run on the last pixel (atEnd),
	// so by the time remaining hits zero run is already reset.
	copy(dst, endMarker[:])
	e.finished = true
	return endMarkerLen, nil
}
