package qoi

import "errors"

// errShortChunk is returned internally by decodeStep when in does not yet
// hold enough bytes to decode the next chunk. Both decoders report it as
// ErrTruncated; the streaming decoder buffers a whole chunk (sized by
// chunkByteLen) before calling decodeStep, so it does not hit this case for
// input that merely arrives in fragments.
var errShortChunk = errors.New("qoi: short chunk")

// encodeStepMaxBytes is the most bytes a single call to encodeStep can ever
// produce: one flushed RUN chunk (1 byte) followed by one RGBA chunk (5
// bytes).
const encodeStepMaxBytes = 6

// encodeStep folds one pixel into the encoder's state machine, writing
// between 0 and encodeStepMaxBytes bytes to out (which must have at least
// that much room) and returning how many it wrote. atEnd must be true for
// the image's final pixel so that an in-progress run is flushed rather than
// left pending.
//
// This is the one place that implements the encoder's chunk-selection
// policy (run extension, index hit, diff, luma, rgb, rgba, in that
// preference order); both the one-shot encoder and the streaming Encoder
// call it once per pixel.
func encodeStep(prev *pixel, idx *runningIndex, run *int, curr pixel, atEnd bool, out []byte) int {
	if curr == *prev {
		*run++
		if *run == maxRun || atEnd {
			out[0] = opRun | byte(*run-1)
			*run = 0
			return 1
		}
		return 0
	}

	n := 0
	if *run > 0 {
		out[0] = opRun | byte(*run-1)
		n++
		*run = 0
	}

	slot := curr.hash()
	if idx.get(slot) == curr {
		out[n] = opIndex | slot
		n++
	} else if curr[3] == prev[3] {
		switch {
		case fitsDiff(*prev, curr):
			out[n] = encodeDiff(*prev, curr)
			n++
		case fitsLuma(*prev, curr):
			b := encodeLuma(*prev, curr)
			out[n], out[n+1] = b[0], b[1]
			n += 2
		default:
			out[n] = opRGB
			out[n+1], out[n+2], out[n+3] = curr[0], curr[1], curr[2]
			n += 4
		}
	} else {
		out[n] = opRGBA
		out[n+1], out[n+2], out[n+3], out[n+4] = curr[0], curr[1], curr[2], curr[3]
		n += 5
	}

	idx.set(slot, curr)
	*prev = curr
	return n
}

// decodeStep reads one chunk from in and returns the pixel it decodes to,
// along with how many bytes of in it consumed. If in does not hold a full
// chunk, it returns errShortChunk and consumed is meaningless.
//
// run is the state's in-progress run counter: a positive run is consumed one
// pixel at a time without touching in or the running index.
func decodeStep(prev *pixel, idx *runningIndex, run *int, in []byte) (pix pixel, consumed int, err error) {
	if *run > 0 {
		*run--
		return *prev, 0, nil
	}

	if len(in) < 1 {
		return pixel{}, 0, errShortChunk
	}
	tag := in[0]

	switch {
	case tag == opRGB:
		if len(in) < 4 {
			return pixel{}, 0, errShortChunk
		}
		pix = pixel{in[1], in[2], in[3], prev[3]}
		consumed = 4
	case tag == opRGBA:
		if len(in) < 5 {
			return pixel{}, 0, errShortChunk
		}
		pix = pixel{in[1], in[2], in[3], in[4]}
		consumed = 5
	case tag&opMask == opIndex:
		pix = idx.get(tag & 0x3F)
		consumed = 1
	case tag&opMask == opDiff:
		pix = decodeDiff(*prev, tag)
		consumed = 1
	case tag&opMask == opLuma:
		if len(in) < 2 {
			return pixel{}, 0, errShortChunk
		}
		pix = decodeLuma(*prev, tag, in[1])
		consumed = 2
	default: // tag&opMask == opRun
		runLen := int(tag&0x3F) + 1
		*run = runLen - 1
		return *prev, 1, nil
	}

	idx.set(pix.hash(), pix)
	*prev = pix
	return pix, consumed, nil
}

// chunkByteLen returns the total byte length of the chunk whose first byte
// is tag. Used by the streaming decoder to know how many bytes it needs to
// buffer before it can call decodeStep.
func chunkByteLen(tag byte) int {
	switch {
	case tag == opRGB:
		return 4
	case tag == opRGBA:
		return 5
	case tag&opMask == opLuma:
		return 2
	default: // INDEX, DIFF, RUN
		return 1
	}
}

// writePixel copies p's first `channels` bytes into dst.
func writePixel(dst []byte, p pixel, channels int) {
	dst[0], dst[1], dst[2] = p[0], p[1], p[2]
	if channels == 4 {
		dst[3] = p[3]
	}
}
