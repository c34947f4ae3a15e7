package qoi

import "errors"

// Error kinds returned by this package. Wrapped errors returned from Encode,
// Decode, and the streaming Encoder/Decoder satisfy errors.Is against one of
// these sentinels, except the errors reporting that the streaming methods
// were called out of order (Push before Begin, Begin twice, and so on),
// which match none of them.
var (
	// ErrMalformedHeader is returned when the magic bytes don't match, the
	// channels byte is not 3 or 4, the colorspace byte is not 0 or 1, or
	// width or height is zero.
	ErrMalformedHeader = errors.New("qoi: malformed header")

	// ErrDimensionsOverflow is returned when width*height exceeds the
	// implementation's pixel-count limit.
	ErrDimensionsOverflow = errors.New("qoi: dimensions overflow")

	// ErrOutputBufferTooSmall is returned when a caller-supplied output
	// buffer is smaller than the operation's worst-case bound.
	ErrOutputBufferTooSmall = errors.New("qoi: output buffer too small")

	// ErrTruncated is returned when the input ends before width*height
	// pixels could be reconstructed, or before the end marker.
	ErrTruncated = errors.New("qoi: truncated stream")

	// ErrMissingEndMarker is returned when all pixels were decoded but the
	// trailing 8 bytes are not the end marker.
	ErrMissingEndMarker = errors.New("qoi: missing end marker")

	// ErrNotEnoughPixelData is returned when the caller's pixel buffer is
	// shorter than width*height*channels. Named separately from
	// ErrOutputBufferTooSmall because it diagnoses the opposite side of the
	// call (input, not output).
	ErrNotEnoughPixelData = errors.New("qoi: not enough pixel data")
)
