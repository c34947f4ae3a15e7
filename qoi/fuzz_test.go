package qoi

import (
	"bytes"
	"testing"
)

// FuzzDecodeAlloc feeds arbitrary bytes to the decoder. It must never panic
// or hang, only return an error or a decoded buffer.
func FuzzDecodeAlloc(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("qoif"))
	f.Add(append([]byte("qoif"), make([]byte, 10)...))

	valid, err := EncodeAlloc([]byte{1, 2, 3, 4, 5, 6, 7, 8}, Header{Width: 2, Height: 1, Channels: RGBA})
	if err != nil {
		f.Fatalf("failed to build seed corpus: %v", err)
	}
	f.Add(valid)
	f.Add(valid[:len(valid)-1])
	f.Add(valid[:headerSize])

	f.Fuzz(func(t *testing.T, data []byte) {
		h, pixels, err := DecodeAlloc(data)
		if err != nil {
			return
		}
		count, cerr := h.PixelCount()
		if cerr != nil {
			t.Fatalf("decoded header fails PixelCount: %v", cerr)
		}
		if uint64(len(pixels)) != count*uint64(h.Channels) {
			t.Fatalf("decoded %d pixel bytes, want %d", len(pixels), count*uint64(h.Channels))
		}
	})
}

// FuzzEncodeDecodeRoundtrip checks that any pixel buffer long enough for the
// chosen header encodes and decodes back losslessly.
func FuzzEncodeDecodeRoundtrip(f *testing.F) {
	f.Add(uint32(1), uint32(1), []byte{10, 20, 30, 40})
	f.Add(uint32(3), uint32(2), bytes.Repeat([]byte{1, 2, 3, 255}, 6))
	f.Add(uint32(8), uint32(8), bytes.Repeat([]byte{0, 0, 0, 255}, 64))

	f.Fuzz(func(t *testing.T, w, h uint32, pixelData []byte) {
		header := Header{Width: w, Height: h, Channels: RGBA, ColorSpace: SRGB}
		count, err := header.PixelCount()
		if err != nil || count == 0 || count > 4096 {
			return
		}
		need := count * uint64(header.Channels)
		if uint64(len(pixelData)) < need {
			return
		}
		pixels := pixelData[:need]

		encoded, err := EncodeAlloc(pixels, header)
		if err != nil {
			t.Fatalf("EncodeAlloc() err = %v", err)
		}
		gotHeader, decoded, err := DecodeAlloc(encoded)
		if err != nil {
			t.Fatalf("DecodeAlloc() err = %v", err)
		}
		if gotHeader != header {
			t.Fatalf("header mismatch: got %+v, want %+v", gotHeader, header)
		}
		if !bytes.Equal(decoded, pixels) {
			t.Fatalf("roundtrip mismatch")
		}
	})
}
