package qoi

import (
	"bytes"
	"testing"
)

// syntheticPixels builds a packed RGBA pixel buffer that exercises every
// chunk kind: runs, repeated pixels (INDEX), small deltas (DIFF/LUMA), and
// large jumps (RGB/RGBA).
func syntheticPixels(w, h int) []byte {
	out := make([]byte, w*h*4)
	var prev pixel
	for i := 0; i < w*h; i++ {
		var p pixel
		switch i % 7 {
		case 0, 1:
			p = prev // run
		case 2:
			p = pixel{prev[0] + 1, prev[1], prev[2] - 1, prev[3]} // DIFF
		case 3:
			p = pixel{prev[0] + 10, prev[1] + 3, prev[2] + 3, prev[3]} // LUMA
		case 4:
			p = pixel{byte(i * 37), byte(i * 53), byte(i * 97), 255} // RGB/RGBA jump
		case 5:
			p = pixel{10, 20, 30, 255} // likely INDEX hit on repeat
		default:
			p = pixel{byte(200 - i), byte(i), byte(i * 3), byte(128 + i)}
		}
		out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = p[0], p[1], p[2], p[3]
		prev = p
	}
	return out
}

func TestRoundtripOneShot(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 5}, {5, 1}, {8, 8}, {17, 13}, {64, 64}}
	for _, sz := range sizes {
		pixels := syntheticPixels(sz[0], sz[1])
		h := Header{Width: uint32(sz[0]), Height: uint32(sz[1]), Channels: RGBA, ColorSpace: SRGB}

		encoded, err := EncodeAlloc(pixels, h)
		if err != nil {
			t.Fatalf("%v: EncodeAlloc() err = %v", sz, err)
		}
		gotHeader, decoded, err := DecodeAlloc(encoded)
		if err != nil {
			t.Fatalf("%v: DecodeAlloc() err = %v", sz, err)
		}
		if gotHeader != h {
			t.Errorf("%v: header = %+v, want %+v", sz, gotHeader, h)
		}
		if !bytes.Equal(decoded, pixels) {
			t.Errorf("%v: decoded pixels mismatch", sz)
		}
	}
}

func TestRoundtripStreamingMatchesOneShot(t *testing.T) {
	w, h := 16, 16
	pixels := syntheticPixels(w, h)
	header := Header{Width: uint32(w), Height: uint32(h), Channels: RGBA, ColorSpace: SRGB}

	oneShot, err := EncodeAlloc(pixels, header)
	if err != nil {
		t.Fatalf("EncodeAlloc() err = %v", err)
	}

	enc, err := NewEncoder(header)
	if err != nil {
		t.Fatalf("NewEncoder() err = %v", err)
	}
	var streamed bytes.Buffer
	hdrBuf := make([]byte, headerSize)
	n, err := enc.Begin(hdrBuf)
	if err != nil {
		t.Fatalf("Begin() err = %v", err)
	}
	streamed.Write(hdrBuf[:n])

	// Feed pixels in small, misaligned fragments to exercise the carry
	// buffer, and drain output in small fragments to exercise partial
	// flushes.
	pos := 0
	fragment := 3
	out := make([]byte, 7)
	for pos < len(pixels) {
		end := pos + fragment
		if end > len(pixels) {
			end = len(pixels)
		}
		chunk := pixels[pos:end]
		cpos := 0
		for cpos < len(chunk) {
			written, consumed, err := enc.Push(out, chunk[cpos:])
			if err != nil {
				t.Fatalf("Push() err = %v", err)
			}
			streamed.Write(out[:written])
			cpos += consumed
			if consumed == 0 && written == 0 {
				break
			}
		}
		pos = end
	}
	finBuf := make([]byte, endMarkerLen)
	n, err = enc.Finish(finBuf)
	if err != nil {
		t.Fatalf("Finish() err = %v", err)
	}
	streamed.Write(finBuf[:n])

	if !bytes.Equal(streamed.Bytes(), oneShot) {
		t.Fatalf("streaming encode diverged from one-shot:\nstreamed=%x\noneShot =%x", streamed.Bytes(), oneShot)
	}

	// Decode the streamed-and-verified output back with the streaming
	// decoder and check it reproduces the original pixels.
	dec := NewDecoder()
	src := streamed.Bytes()
	consumed, gotHeader, ok, err := dec.Begin(src)
	if err != nil || !ok {
		t.Fatalf("Decoder.Begin() ok=%v err = %v", ok, err)
	}
	if gotHeader != header {
		t.Fatalf("Decoder.Begin() header = %+v, want %+v", gotHeader, header)
	}
	src = src[consumed:]

	var decoded bytes.Buffer
	dst := make([]byte, 9)
	for len(src) > 0 {
		written, dconsumed, err := dec.Push(dst, src)
		if err != nil {
			t.Fatalf("Decoder.Push() err = %v", err)
		}
		decoded.Write(dst[:written])
		src = src[dconsumed:]
		if dconsumed == 0 && written == 0 {
			break
		}
	}
	if err := dec.Finish(); err != nil {
		t.Fatalf("Decoder.Finish() err = %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), pixels) {
		t.Fatalf("streaming decode mismatch")
	}
}

func TestRoundtripRGBChannels(t *testing.T) {
	w, h := 10, 10
	pixels := make([]byte, w*h*3)
	for i := range pixels {
		pixels[i] = byte(i * 7)
	}
	header := Header{Width: uint32(w), Height: uint32(h), Channels: RGB, ColorSpace: SRGB}

	encoded, err := EncodeAlloc(pixels, header)
	if err != nil {
		t.Fatalf("EncodeAlloc() err = %v", err)
	}
	_, decoded, err := DecodeAlloc(encoded)
	if err != nil {
		t.Fatalf("DecodeAlloc() err = %v", err)
	}
	if !bytes.Equal(decoded, pixels) {
		t.Fatalf("RGB roundtrip mismatch")
	}
}
