// Package qoi implements the Quite-OK Image (QOI) lossless raster codec.
//
// The package operates purely on in-memory byte buffers: callers supply a
// packed, row-major pixel buffer (RGB or RGBA, top-left origin, no row
// padding) plus width/height/colour-space metadata and get back a QOI byte
// stream, or the reverse. No file I/O, image decoding, or format conversion
// lives here — see the sibling qoiimage package and cmd/qoiconv for that.
//
// Both directions are available one-shot (Encode/Decode, on fully-sized
// buffers) and streaming (Encoder/Decoder, fed arbitrary-sized fragments).
// Both shapes drive the same pixel state machine: a 64-slot running index of
// recently seen pixels, the previous pixel, and an in-progress run length.
package qoi
