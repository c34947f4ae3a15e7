package qoi

// pixel is the 4-channel representation every decision in the chunk codec is
// made against. When the caller's buffer carries only 3 channels, alpha is
// synthesized as 255 here and never transmitted, but it still participates
// in hashing per spec.
type pixel [4]byte

var (
	startPixel = pixel{0, 0, 0, 255}
	zeroPixel  = pixel{0, 0, 0, 0}
)

func readPixelRGB(b []byte, alpha byte) pixel {
	return pixel{b[0], b[1], b[2], alpha}
}

func readPixelRGBA(b []byte) pixel {
	return pixel{b[0], b[1], b[2], b[3]}
}

// hash maps a pixel to its running-index slot: (r*3 + g*5 + b*7 + a*11) % 64.
// Computed in at least 16-bit width per spec so the contract is obviously
// correct regardless of how the compiler happens to promote byte arithmetic.
func (p pixel) hash() byte {
	sum := int(p[0])*3 + int(p[1])*5 + int(p[2])*7 + int(p[3])*11
	return byte(sum % 64)
}
