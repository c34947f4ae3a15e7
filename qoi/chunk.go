package qoi

// Chunk opcodes. The two 8-bit tags take precedence over the four 2-bit
// tags: a decoder must check for 0xFE/0xFF before masking off the top two
// bits.
const (
	opRGB   = 0b11111110
	opRGBA  = 0b11111111
	opIndex = 0b00000000
	opDiff  = 0b01000000
	opLuma  = 0b10000000
	opRun   = 0b11000000
	opMask  = 0b11000000

	// maxRun is the largest run length a single RUN chunk can encode
	// (encoded value 61 => run 62). Values 62/63 are reserved: they collide
	// with the RGB/RGBA 8-bit tags.
	maxRun = 62
)

// diffDelta returns curr-prev for one channel as a byte holding the true
// difference modulo 256. Interpreting the result as a signed 8-bit value
// (int8(d)) gives the wraparound delta between the two channel values.
func diffDelta(prev, curr byte) byte {
	return curr - prev
}

// fitsDiff reports whether the per-channel deltas between prev and curr all
// lie in -2..1, the DIFF chunk's representable range. Alpha must already be
// known unchanged by the caller.
func fitsDiff(prev, curr pixel) bool {
	for i := 0; i < 3; i++ {
		d := int8(diffDelta(prev[i], curr[i]))
		if d < -2 || d > 1 {
			return false
		}
	}
	return true
}

// encodeDiff packs the DIFF chunk byte. Caller must have confirmed fitsDiff.
func encodeDiff(prev, curr pixel) byte {
	dr := (diffDelta(prev[0], curr[0]) + 2) & 0x03
	dg := (diffDelta(prev[1], curr[1]) + 2) & 0x03
	db := (diffDelta(prev[2], curr[2]) + 2) & 0x03
	return byte(opDiff) | dr<<4 | dg<<2 | db
}

// decodeDiff reconstructs a pixel from prev and a DIFF chunk byte.
func decodeDiff(prev pixel, b byte) pixel {
	dr := (b>>4)&0x03 - 2
	dg := (b>>2)&0x03 - 2
	db := b&0x03 - 2
	return pixel{prev[0] + dr, prev[1] + dg, prev[2] + db, prev[3]}
}

// fitsLuma reports whether the green delta lies in -32..31 and both
// red-minus-green and blue-minus-green deltas lie in -8..7.
func fitsLuma(prev, curr pixel) bool {
	dg := int8(diffDelta(prev[1], curr[1]))
	if dg < -32 || dg > 31 {
		return false
	}
	drDg := int8(diffDelta(prev[0], curr[0]) - diffDelta(prev[1], curr[1]))
	if drDg < -8 || drDg > 7 {
		return false
	}
	dbDg := int8(diffDelta(prev[2], curr[2]) - diffDelta(prev[1], curr[1]))
	return dbDg >= -8 && dbDg <= 7
}

// encodeLuma packs the two LUMA chunk bytes. Caller must have confirmed
// fitsLuma.
func encodeLuma(prev, curr pixel) [2]byte {
	dg := diffDelta(prev[1], curr[1])
	drDg := diffDelta(prev[0], curr[0]) - dg
	dbDg := diffDelta(prev[2], curr[2]) - dg
	b0 := byte(opLuma) | (dg+32)&0x3F
	b1 := (drDg+8)&0x0F<<4 | (dbDg+8)&0x0F
	return [2]byte{b0, b1}
}

// decodeLuma reconstructs a pixel from prev and the two LUMA chunk bytes.
func decodeLuma(prev pixel, b0, b1 byte) pixel {
	dg := (b0 & 0x3F) - 32
	drDg := (b1>>4)&0x0F - 8
	dbDg := b1&0x0F - 8
	return pixel{prev[0] + dg + drDg, prev[1] + dg, prev[2] + dg + dbDg, prev[3]}
}
